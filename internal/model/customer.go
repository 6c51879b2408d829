package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CustomerStatus enum constants.
// Statuses only ever move forward: Active -> Warranty Expired ->
// Review Requested -> Completed.
const (
	CustomerStatusActive          = "Active"
	CustomerStatusWarrantyExpired = "Warranty Expired"
	CustomerStatusReviewRequested = "Review Requested"
	CustomerStatusCompleted       = "Completed"
)

// Customer represents a buyer created at time of sale, tracked through
// the warranty and review-solicitation lifecycle.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(20);not null" json:"phone"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	PurchaseDate time.Time `gorm:"type:date;not null;index" json:"purchase_date"`
	// WarrantyEndDate is always PurchaseDate + warranty.Days. The pair is
	// written in the same row update whenever PurchaseDate changes.
	WarrantyEndDate time.Time      `gorm:"type:date;not null" json:"warranty_end_date"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"` // weak reference, no FK constraint
	ProductDetails  datatypes.JSON `gorm:"type:jsonb" json:"product_details"`          // snapshot taken at creation
	Notes           string         `gorm:"type:text" json:"notes"`
	Status          string         `gorm:"type:varchar(30);not null;default:'Active';index" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
