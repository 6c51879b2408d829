package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SettingsKeyMain is the well-known key of the single site-settings row.
// The settings document is a process-wide singleton by convention.
const SettingsKeyMain = "main"

// Branding holds store identity shown across the storefront
type Branding struct {
	Logo    string `json:"logo"`
	Slogan  string `json:"slogan"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// SocialLinks holds the store's social media handles
type SocialLinks struct {
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	YouTube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
}

// CloudinaryConfig holds the media CDN upload configuration
type CloudinaryConfig struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
}

// WarrantyTemplates holds the outbound warranty message templates,
// keyed by purpose. Each supports {customerName}, {productTitle} and
// {warrantyEndDate} placeholders.
type WarrantyTemplates struct {
	Reminder      string `json:"reminder"`
	Expired       string `json:"expired"`
	ReviewRequest string `json:"reviewRequest"`
}

// SiteSettings is the singleton configuration row. Nested structures are
// stored as jsonb and replaced wholesale on update, never deep-merged.
type SiteSettings struct {
	ID                uuid.UUID                             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key               string                                `gorm:"type:varchar(50);uniqueIndex;not null" json:"-"`
	Branding          datatypes.JSONType[Branding]          `gorm:"type:jsonb" json:"branding"`
	Social            datatypes.JSONType[SocialLinks]       `gorm:"type:jsonb" json:"social"`
	Cloudinary        datatypes.JSONType[CloudinaryConfig]  `gorm:"type:jsonb" json:"cloudinary"`
	ContactTemplates  datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"contact_templates"`
	WarrantyTemplates datatypes.JSONType[WarrantyTemplates] `gorm:"type:jsonb" json:"warranty_templates"`
	UpdatedAt         time.Time                             `gorm:"autoUpdateTime" json:"updated_at"`
}

// Page holds editable static page content (about, terms, privacy, contact)
type Page struct {
	ID            string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255)" json:"title"`
	Content       string    `gorm:"type:text" json:"content"`
	FeaturedImage string    `gorm:"type:text" json:"featured_image"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
