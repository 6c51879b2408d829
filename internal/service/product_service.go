package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Condition     string   `json:"condition"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"original_price"`
	StockCount    int      `json:"stock_count"`
	Description   string   `json:"description"`
	FeaturedImage string   `json:"featured_image"`
	GalleryImages []string `json:"gallery_images"`
	Published     bool     `json:"published"`

	IsNewArrival      bool `json:"is_new_arrival"`
	IsLimitedStock    bool `json:"is_limited_stock"`
	IsDeal            bool `json:"is_deal"`
	IsTopHighlight    bool `json:"is_top_highlight"`
	IsBottomHighlight bool `json:"is_bottom_highlight"`
}

type UpdateProductRequest struct {
	Title         *string   `json:"title"`
	Brand         *string   `json:"brand"`
	Category      *string   `json:"category"`
	Condition     *string   `json:"condition"`
	Price         *string   `json:"price"`
	OriginalPrice *string   `json:"original_price"`
	StockCount    *int      `json:"stock_count"`
	Description   *string   `json:"description"`
	FeaturedImage *string   `json:"featured_image"`
	GalleryImages *[]string `json:"gallery_images"`
	Published     *bool     `json:"published"`

	IsNewArrival      *bool `json:"is_new_arrival"`
	IsLimitedStock    *bool `json:"is_limited_stock"`
	IsDeal            *bool `json:"is_deal"`
	IsTopHighlight    *bool `json:"is_top_highlight"`
	IsBottomHighlight *bool `json:"is_bottom_highlight"`
}

// ListProductFilters mirrors the storefront's section queries
type ListProductFilters struct {
	Published       *bool
	Category        string
	Brand           string
	NewArrival      bool
	LimitedStock    bool
	Deal            bool
	TopHighlight    bool
	BottomHighlight bool
	Limit           int
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Condition     string          `json:"condition"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	StockCount    int             `json:"stock_count"`
	Description   string          `json:"description"`
	FeaturedImage string          `json:"featured_image"`
	GalleryImages []string        `json:"gallery_images"`
	Published     bool            `json:"published"`

	IsNewArrival      bool `json:"is_new_arrival"`
	IsLimitedStock    bool `json:"is_limited_stock"`
	IsDeal            bool `json:"is_deal"`
	IsTopHighlight    bool `json:"is_top_highlight"`
	IsBottomHighlight bool `json:"is_bottom_highlight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductResponse, error)
	ListProducts(ctx context.Context, filters ListProductFilters) ([]ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
}

// --- Implementation ---

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService returns a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify builds a URL slug from a product title
func slugify(title string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func parsePrice(field, value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperr.Validation("%s must be a valid number", field)
	}
	if price.IsNegative() {
		return decimal.Zero, apperr.Validation("%s cannot be negative", field)
	}
	return price, nil
}

func toProductResponse(p *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		Slug:              p.Slug,
		Brand:             p.Brand,
		Category:          p.Category,
		Condition:         p.Condition,
		Price:             p.Price,
		OriginalPrice:     p.OriginalPrice,
		StockCount:        p.StockCount,
		Description:       p.Description,
		FeaturedImage:     p.FeaturedImage,
		GalleryImages:     []string(p.GalleryImages),
		Published:         p.Published,
		IsNewArrival:      p.IsNewArrival,
		IsLimitedStock:    p.IsLimitedStock,
		IsDeal:            p.IsDeal,
		IsTopHighlight:    p.IsTopHighlight,
		IsBottomHighlight: p.IsBottomHighlight,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.Brand == "" {
		return nil, apperr.Validation("brand is required")
	}
	if req.Category == "" {
		return nil, apperr.Validation("category is required")
	}
	if req.FeaturedImage == "" {
		return nil, apperr.Validation("featured_image is required")
	}
	if req.StockCount < 0 {
		return nil, apperr.Validation("stock_count cannot be negative")
	}
	price, err := parsePrice("price", req.Price)
	if err != nil {
		return nil, err
	}
	originalPrice := decimal.Zero
	if req.OriginalPrice != "" {
		if originalPrice, err = parsePrice("original_price", req.OriginalPrice); err != nil {
			return nil, err
		}
	}

	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, apperr.Backend("failed to count products", err)
	}
	if total >= model.MaxProducts {
		return nil, apperr.Validation("product limit of %d reached", model.MaxProducts)
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	product := &model.Product{
		Title:             req.Title,
		Slug:              slug,
		Brand:             req.Brand,
		Category:          req.Category,
		Condition:         req.Condition,
		Price:             price,
		OriginalPrice:     originalPrice,
		StockCount:        req.StockCount,
		Description:       req.Description,
		FeaturedImage:     req.FeaturedImage,
		GalleryImages:     req.GalleryImages,
		Published:         req.Published,
		IsNewArrival:      req.IsNewArrival,
		IsLimitedStock:    req.IsLimitedStock,
		IsDeal:            req.IsDeal,
		IsTopHighlight:    req.IsTopHighlight,
		IsBottomHighlight: req.IsBottomHighlight,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperr.Backend("failed to create product", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product ID")
	}
	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, apperr.Backend("failed to fetch product", err)
	}
	return toProductResponse(product), nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, apperr.Backend("failed to fetch product", err)
	}
	return toProductResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, filters ListProductFilters) ([]ProductResponse, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilters{
		Published:       filters.Published,
		Category:        filters.Category,
		Brand:           filters.Brand,
		NewArrival:      filters.NewArrival,
		LimitedStock:    filters.LimitedStock,
		Deal:            filters.Deal,
		TopHighlight:    filters.TopHighlight,
		BottomHighlight: filters.BottomHighlight,
		Limit:           filters.Limit,
	})
	if err != nil {
		return nil, apperr.Backend("failed to fetch products", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, *toProductResponse(&products[i]))
	}
	return res, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product ID")
	}
	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, apperr.Backend("failed to fetch product", err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		product.Title = *req.Title
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.Price != nil {
		price, err := parsePrice("price", *req.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if req.OriginalPrice != nil {
		originalPrice, err := parsePrice("original_price", *req.OriginalPrice)
		if err != nil {
			return nil, err
		}
		product.OriginalPrice = originalPrice
	}
	if req.StockCount != nil {
		if *req.StockCount < 0 {
			return nil, apperr.Validation("stock_count cannot be negative")
		}
		product.StockCount = *req.StockCount
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.FeaturedImage != nil {
		product.FeaturedImage = *req.FeaturedImage
	}
	if req.GalleryImages != nil {
		product.GalleryImages = *req.GalleryImages
	}
	if req.Published != nil {
		product.Published = *req.Published
	}
	if req.IsNewArrival != nil {
		product.IsNewArrival = *req.IsNewArrival
	}
	if req.IsLimitedStock != nil {
		product.IsLimitedStock = *req.IsLimitedStock
	}
	if req.IsDeal != nil {
		product.IsDeal = *req.IsDeal
	}
	if req.IsTopHighlight != nil {
		product.IsTopHighlight = *req.IsTopHighlight
	}
	if req.IsBottomHighlight != nil {
		product.IsBottomHighlight = *req.IsBottomHighlight
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperr.Backend("failed to update product", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid product ID")
	}
	// Customers keep their denormalized product snapshot; deleting a
	// product does not cascade to customer records.
	if err := s.productRepo.Delete(ctx, uid); err != nil {
		return apperr.Backend("failed to delete product", err)
	}
	return nil
}
