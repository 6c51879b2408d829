package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus enum constants
const (
	ReviewStatusPending  = "Pending"
	ReviewStatusApproved = "Approved"
	ReviewStatusRejected = "Rejected"
)

// ReviewSourceManual is the default source for directly submitted reviews
const ReviewSourceManual = "Manual"

// Review represents a store review awaiting or past moderation.
// Only approved reviews are visible to public consumers.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	Rating       int       `gorm:"type:int;not null" json:"rating"` // 1..5
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	Comment      string    `gorm:"type:text;not null" json:"comment"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Source       string    `gorm:"type:varchar(50);not null;default:'Manual'" json:"source"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
