package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product condition constants
const (
	ConditionNew         = "New"
	ConditionLikeNew     = "Like New"
	ConditionUsed        = "Used"
	ConditionRefurbished = "Refurbished"
)

// MaxProducts caps the catalog size; the storefront is built for a
// small inventory and cohort queries assume this ceiling.
const MaxProducts = 80

// Product represents a catalog item listed on the storefront
type Product struct {
	ID            uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string                      `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Brand         string                      `gorm:"type:varchar(100);not null;index" json:"brand"`
	Category      string                      `gorm:"type:varchar(100);not null;index" json:"category"`
	Condition     string                      `gorm:"type:varchar(50)" json:"condition"`
	Price         decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice decimal.Decimal             `gorm:"type:decimal(12,2)" json:"original_price"`
	StockCount    int                         `gorm:"type:int;default:0;not null" json:"stock_count"`
	Description   string                      `gorm:"type:text" json:"description"`
	FeaturedImage string                      `gorm:"type:text;not null" json:"featured_image"`
	GalleryImages datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"gallery_images"`
	Published     bool                        `gorm:"default:false;index" json:"published"`

	// Homepage section flags
	IsNewArrival      bool `gorm:"default:false" json:"is_new_arrival"`
	IsLimitedStock    bool `gorm:"default:false" json:"is_limited_stock"`
	IsDeal            bool `gorm:"default:false" json:"is_deal"`
	IsTopHighlight    bool `gorm:"default:false" json:"is_top_highlight"`
	IsBottomHighlight bool `gorm:"default:false" json:"is_bottom_highlight"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
