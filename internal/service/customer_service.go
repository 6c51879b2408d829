package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/mail"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/format"
	"backend/pkg/warranty"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format for date-only fields
const DateLayout = "2006-01-02"

// --- DTOs ---

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD
	ProductID    string `json:"product_id"`
	Notes        string `json:"notes"`
}

// UpdateCustomerRequest enumerates the updatable fields; nil means "not sent".
// There is deliberately no warranty_end_date field: it is derived from
// purchase_date and the pair is always written together.
type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	PurchaseDate *string `json:"purchase_date"`
	ProductID    *string `json:"product_id"`
	Notes        *string `json:"notes"`
	Status       *string `json:"status"`
}

type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	PurchaseDate    string          `json:"purchase_date"`
	WarrantyEndDate string          `json:"warranty_end_date"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductDetails  json.RawMessage `json:"product_details"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// productSnapshot is the denormalized product view frozen onto a customer
// at creation time; the product reference itself stays weak.
type productSnapshot struct {
	Title         string `json:"title"`
	Brand         string `json:"brand"`
	Price         string `json:"price"`
	FeaturedImage string `json:"featuredImage"`
}

// --- Interface ---

// CustomerService owns customer records and their warranty status machine.
// It never advances the machine on its own; RecomputeStatus and the Mark*
// transitions are invoked by callers (the warranty sweep or an admin).
type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, status string) ([]CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error

	// RecomputeStatus transitions Active -> Warranty Expired once the
	// warranty end date has passed. Idempotent; never regresses a status.
	RecomputeStatus(ctx context.Context, id string) (string, error)
	// ExpiringWithin returns Active customers whose warranty ends within
	// [now, now+daysAhead], inclusive.
	ExpiringWithin(ctx context.Context, daysAhead int) ([]CustomerResponse, error)
	// ExpiredNeedingReview returns customers past warranty whose status is
	// neither Review Requested nor Completed.
	ExpiredNeedingReview(ctx context.Context) ([]CustomerResponse, error)
	// MarkReviewRequested is invoked by the caller after a review-request
	// message was dispatched successfully.
	MarkReviewRequested(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) error
}

// --- Implementation ---

type customerService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txManager    repository.TransactionManager
	hub          interface{ GetBroadcast() chan []byte } // optional websocket hub
}

// NewCustomerService returns a new instance of CustomerService.
// hub may be nil when no websocket fan-out is wanted (e.g. tests).
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txManager repository.TransactionManager,
	hub interface{ GetBroadcast() chan []byte },
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

var validCustomerStatuses = map[string]bool{
	model.CustomerStatusActive:          true,
	model.CustomerStatusWarrantyExpired: true,
	model.CustomerStatusReviewRequested: true,
	model.CustomerStatusCompleted:       true,
}

func validateCustomerPhone(phone string) error {
	if phone == "" {
		return apperr.Validation("phone is required")
	}
	if len(format.Digits(phone)) != 10 {
		return apperr.Validation("phone must be a 10-digit number")
	}
	return nil
}

func validateCustomerEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation("invalid email format")
	}
	return nil
}

func parsePurchaseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("purchase_date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// Helper: parse model to standard json API response
func toCustomerResponse(c *model.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		PurchaseDate:    c.PurchaseDate.Format(DateLayout),
		WarrantyEndDate: c.WarrantyEndDate.Format(DateLayout),
		ProductID:       c.ProductID,
		ProductDetails:  json.RawMessage(c.ProductDetails),
		Notes:           c.Notes,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := validateCustomerPhone(req.Phone); err != nil {
		return nil, err
	}
	if err := validateCustomerEmail(req.Email); err != nil {
		return nil, err
	}
	if req.PurchaseDate == "" {
		return nil, apperr.Validation("purchase_date is required")
	}
	purchaseDate, err := parsePurchaseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	if req.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product_id")
	}

	// The snapshot must reflect the product row at the moment of sale, so
	// the lookup and the insert share one transaction.
	var customer *model.Customer
	txErr := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByID(txCtx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation("product does not exist")
			}
			return apperr.Backend("failed to look up product", err)
		}

		snapshot, err := json.Marshal(productSnapshot{
			Title:         product.Title,
			Brand:         product.Brand,
			Price:         product.Price.String(),
			FeaturedImage: product.FeaturedImage,
		})
		if err != nil {
			return apperr.Backend("failed to snapshot product details", err)
		}

		customer = &model.Customer{
			Name:            req.Name,
			Phone:           req.Phone,
			Email:           req.Email,
			PurchaseDate:    purchaseDate,
			WarrantyEndDate: warranty.ComputeEnd(purchaseDate),
			ProductID:       productID,
			ProductDetails:  snapshot,
			Notes:           req.Notes,
			Status:          model.CustomerStatusActive,
		}

		if err := s.customerRepo.Create(txCtx, customer); err != nil {
			return apperr.Backend("failed to create customer", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return toCustomerResponse(customer), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (s *customerService) ListCustomers(ctx context.Context, status string) ([]CustomerResponse, error) {
	if status != "" && !validCustomerStatuses[status] {
		return nil, apperr.Validation("unknown customer status %q", status)
	}

	customers, err := s.customerRepo.List(ctx, status)
	if err != nil {
		return nil, apperr.Backend("failed to fetch customers", err)
	}

	res := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		res = append(res, *toCustomerResponse(&customers[i]))
	}
	return res, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		if err := validateCustomerPhone(*req.Phone); err != nil {
			return nil, err
		}
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		if err := validateCustomerEmail(*req.Email); err != nil {
			return nil, err
		}
		customer.Email = *req.Email
	}
	if req.ProductID != nil {
		productID, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, apperr.Validation("invalid product_id")
		}
		customer.ProductID = productID
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.Status != nil {
		if !validCustomerStatuses[*req.Status] {
			return nil, apperr.Validation("unknown customer status %q", *req.Status)
		}
		customer.Status = *req.Status
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := parsePurchaseDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		// Recompute the warranty end so both fields land in the same write.
		customer.PurchaseDate = purchaseDate
		customer.WarrantyEndDate = warranty.ComputeEnd(purchaseDate)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, apperr.Backend("failed to update customer", err)
	}

	return toCustomerResponse(customer), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid customer ID")
	}
	if err := s.customerRepo.Delete(ctx, uid); err != nil {
		return apperr.Backend("failed to delete customer", err)
	}
	return nil
}

func (s *customerService) RecomputeStatus(ctx context.Context, id string) (string, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return "", err
	}

	if customer.Status != model.CustomerStatusActive {
		return customer.Status, nil
	}
	if !time.Now().After(customer.WarrantyEndDate) {
		return customer.Status, nil
	}

	customer.Status = model.CustomerStatusWarrantyExpired
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return "", apperr.Backend("failed to update customer status", err)
	}

	s.broadcast("customer.warranty_expired", customer)
	return customer.Status, nil
}

func (s *customerService) ExpiringWithin(ctx context.Context, daysAhead int) ([]CustomerResponse, error) {
	if daysAhead < 0 {
		return nil, apperr.Validation("daysAhead cannot be negative")
	}

	customers, err := s.customerRepo.List(ctx, model.CustomerStatusActive)
	if err != nil {
		return nil, apperr.Backend("failed to fetch customers", err)
	}

	// Full scan over the active set; cardinality is bounded by the size of
	// the store's customer base, so pushing the window predicate to the
	// store is not worth the machinery.
	now := time.Now()
	cutoff := now.AddDate(0, 0, daysAhead)

	res := make([]CustomerResponse, 0)
	for i := range customers {
		end := customers[i].WarrantyEndDate
		if !end.Before(now) && !end.After(cutoff) {
			res = append(res, *toCustomerResponse(&customers[i]))
		}
	}
	return res, nil
}

func (s *customerService) ExpiredNeedingReview(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.List(ctx, "")
	if err != nil {
		return nil, apperr.Backend("failed to fetch customers", err)
	}

	now := time.Now()
	res := make([]CustomerResponse, 0)
	for i := range customers {
		c := &customers[i]
		if c.WarrantyEndDate.Before(now) &&
			c.Status != model.CustomerStatusReviewRequested &&
			c.Status != model.CustomerStatusCompleted {
			res = append(res, *toCustomerResponse(c))
		}
	}
	return res, nil
}

func (s *customerService) MarkReviewRequested(ctx context.Context, id string) error {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}

	switch customer.Status {
	case model.CustomerStatusReviewRequested:
		return nil // already there, idempotent
	case model.CustomerStatusCompleted:
		return apperr.Validation("customer is already completed")
	}

	customer.Status = model.CustomerStatusReviewRequested
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return apperr.Backend("failed to update customer status", err)
	}
	return nil
}

func (s *customerService) MarkCompleted(ctx context.Context, id string) error {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}

	if customer.Status == model.CustomerStatusCompleted {
		return nil
	}
	if customer.Status != model.CustomerStatusReviewRequested {
		return apperr.Validation("only customers with a requested review can be completed")
	}

	customer.Status = model.CustomerStatusCompleted
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return apperr.Backend("failed to update customer status", err)
	}
	return nil
}

func (s *customerService) findCustomer(ctx context.Context, id string) (*model.Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid customer ID")
	}
	customer, err := s.customerRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer")
		}
		return nil, apperr.Backend("failed to fetch customer", err)
	}
	return customer, nil
}

func (s *customerService) broadcast(eventType string, customer *model.Customer) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":     eventType,
		"customer": toCustomerResponse(customer),
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
		// No listeners draining the hub; drop rather than block
	}
}
