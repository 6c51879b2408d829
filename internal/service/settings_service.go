package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	settingsCacheKey = "siteSettings"
	settingsCacheTTL = 5 * time.Minute
)

// --- DTOs ---

type SettingsResponse struct {
	Branding          model.Branding          `json:"branding"`
	Social            model.SocialLinks       `json:"social"`
	Cloudinary        model.CloudinaryConfig  `json:"cloudinary"`
	ContactTemplates  []string                `json:"contactTemplates"`
	WarrantyTemplates model.WarrantyTemplates `json:"warrantyTemplates"`
	UpdatedAt         time.Time               `json:"updated_at,omitempty"`
}

// UpdateSettingsRequest merges over the current (or default) settings.
// Top-level keys only: a nested structure sent here replaces the stored
// one wholesale, it is never deep-merged.
type UpdateSettingsRequest struct {
	Branding          *model.Branding          `json:"branding"`
	Social            *model.SocialLinks       `json:"social"`
	Cloudinary        *model.CloudinaryConfig  `json:"cloudinary"`
	ContactTemplates  *[]string                `json:"contactTemplates"`
	WarrantyTemplates *model.WarrantyTemplates `json:"warrantyTemplates"`
}

type UpdatePageRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	FeaturedImage *string `json:"featured_image"`
}

// --- Interface ---

// SettingsService owns the singleton site configuration and the static
// page content. Get never fails on a missing row; it degrades to the
// hard-coded defaults instead.
type SettingsService interface {
	GetSettings(ctx context.Context) (*SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error)
	GetPage(ctx context.Context, id string) (*model.Page, error)
	UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*model.Page, error)
}

// DefaultSettings returns the hard-coded configuration used whenever no
// settings row exists yet. Callers always see a full settings object.
func DefaultSettings() *SettingsResponse {
	return &SettingsResponse{
		Branding: model.Branding{
			Slogan:  "Premium Laptops in Kashmir",
			Address: "Maisuma, Near Gaw Kadal Bridge, Srinagar",
		},
		Social: model.SocialLinks{},
		Cloudinary: model.CloudinaryConfig{
			Folder: "mitc-store",
		},
		ContactTemplates: []string{
			"Hi, I'm interested in {productTitle}. Is it available?",
			"Can I get more details about {productTitle}?",
			"What's the final price for {productTitle}?",
			"Is {productTitle} still in stock?",
			"Can I visit the store to see {productTitle}?",
			"Do you offer any warranty on {productTitle}?",
			"Can you send more photos of {productTitle}?",
			"What are the payment options for {productTitle}?",
			"Is there any discount on {productTitle}?",
			"Can you hold {productTitle} for me?",
		},
		WarrantyTemplates: model.WarrantyTemplates{
			Reminder:      "Hi {customerName}, your warranty for {productTitle} expires on {warrantyEndDate}. Please contact us if you need any assistance.",
			Expired:       "Hi {customerName}, your warranty for {productTitle} has expired. We hope you're enjoying your purchase! Please share your experience.",
			ReviewRequest: "Hi {customerName}, we'd love to hear about your experience with {productTitle}. Please leave us a review!",
		},
	}
}

var defaultPages = map[string]model.Page{
	"about": {
		ID:      "about",
		Title:   "About MITC Store",
		Content: "Welcome to Mateen IT Corp. - your trusted source for premium laptops in Kashmir.",
	},
	"terms": {
		ID:      "terms",
		Title:   "Terms and Conditions",
		Content: "Please read these terms and conditions carefully before using our services.",
	},
	"privacy": {
		ID:      "privacy",
		Title:   "Privacy Policy",
		Content: "Your privacy is important to us. This policy explains how we handle your information.",
	},
	"contact": {
		ID:      "contact",
		Title:   "Contact Us",
		Content: "Get in touch with us for any inquiries about our products and services.",
	},
}

// --- Implementation ---

type settingsService struct {
	settingsRepo repository.SettingsRepository
	cache        *gocache.Cache
}

// NewSettingsService returns a new instance of SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		cache:        gocache.New(settingsCacheTTL, 10*time.Minute),
	}
}

func toSettingsResponse(s *model.SiteSettings) *SettingsResponse {
	return &SettingsResponse{
		Branding:          s.Branding.Data(),
		Social:            s.Social.Data(),
		Cloudinary:        s.Cloudinary.Data(),
		ContactTemplates:  []string(s.ContactTemplates),
		WarrantyTemplates: s.WarrantyTemplates.Data(),
		UpdatedAt:         s.UpdatedAt,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	if cached, found := s.cache.Get(settingsCacheKey); found {
		return cached.(*SettingsResponse), nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Missing configuration is not an error; synthesize the
			// defaults without persisting them.
			res := DefaultSettings()
			s.cache.Set(settingsCacheKey, res, gocache.DefaultExpiration)
			return res, nil
		}
		return nil, apperr.Backend("failed to fetch settings", err)
	}

	res := toSettingsResponse(settings)
	s.cache.Set(settingsCacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Backend("failed to fetch settings", err)
		}
		// First write: start from the defaults and lazily create the row.
		defaults := DefaultSettings()
		settings = &model.SiteSettings{
			Branding:          datatypes.NewJSONType(defaults.Branding),
			Social:            datatypes.NewJSONType(defaults.Social),
			Cloudinary:        datatypes.NewJSONType(defaults.Cloudinary),
			ContactTemplates:  datatypes.NewJSONSlice(defaults.ContactTemplates),
			WarrantyTemplates: datatypes.NewJSONType(defaults.WarrantyTemplates),
		}
	}

	if req.Branding != nil {
		settings.Branding = datatypes.NewJSONType(*req.Branding)
	}
	if req.Social != nil {
		settings.Social = datatypes.NewJSONType(*req.Social)
	}
	if req.Cloudinary != nil {
		settings.Cloudinary = datatypes.NewJSONType(*req.Cloudinary)
	}
	if req.ContactTemplates != nil {
		settings.ContactTemplates = datatypes.NewJSONSlice(*req.ContactTemplates)
	}
	if req.WarrantyTemplates != nil {
		settings.WarrantyTemplates = datatypes.NewJSONType(*req.WarrantyTemplates)
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, apperr.Backend("failed to save settings", err)
	}

	s.cache.Delete(settingsCacheKey)
	return toSettingsResponse(settings), nil
}

func (s *settingsService) GetPage(ctx context.Context, id string) (*model.Page, error) {
	page, err := s.settingsRepo.GetPage(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if def, ok := defaultPages[id]; ok {
				return &def, nil
			}
			return &model.Page{ID: id}, nil
		}
		return nil, apperr.Backend("failed to fetch page", err)
	}
	return page, nil
}

func (s *settingsService) UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*model.Page, error) {
	page, err := s.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		page.FeaturedImage = *req.FeaturedImage
	}

	if err := s.settingsRepo.SavePage(ctx, page); err != nil {
		return nil, apperr.Backend("failed to save page", err)
	}
	return page, nil
}
