package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilters narrows product list queries. Zero values mean "no filter".
type ProductFilters struct {
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

// ProductRepository defines the interface for data access of Product entities
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filters ProductFilters) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new instance of ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filters ProductFilters) ([]model.Product, error) {
	var products []model.Product

	query := GetDB(ctx, r.db).Model(&model.Product{})
	if filters.Published != nil {
		query = query.Where("published = ?", *filters.Published)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Brand != "" {
		query = query.Where("brand = ?", filters.Brand)
	}
	if filters.NewArrival {
		query = query.Where("is_new_arrival = ?", true)
	}
	if filters.LimitedStock {
		query = query.Where("is_limited_stock = ?", true)
	}
	if filters.Deal {
		query = query.Where("is_deal = ?", true)
	}
	if filters.TopHighlight {
		query = query.Where("is_top_highlight = ?", true)
	}
	if filters.BottomHighlight {
		query = query.Where("is_bottom_highlight = ?", true)
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&model.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}
