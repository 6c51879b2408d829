package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository defines the interface for data access of Customer entities
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	// List returns customers ordered by purchase date descending, filtered
	// by status when non-empty. At most one equality filter is applied
	// before ordering; cohort predicates are evaluated in memory by callers.
	List(ctx context.Context, status string) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository returns a new instance of CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, status string) ([]model.Customer, error) {
	var customers []model.Customer
	query := GetDB(ctx, r.db).Model(&model.Customer{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("purchase_date DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Update saves the full row in a single write, so derived fields
// (warranty_end_date) land atomically with the fields they derive from.
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Customer{}).Error
}
