package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SettingsRepository defines data access for the singleton site-settings
// row and the static page content rows.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	// Save creates the settings row on first write and overwrites it after.
	Save(ctx context.Context, settings *model.SiteSettings) error
	GetPage(ctx context.Context, id string) (*model.Page, error)
	SavePage(ctx context.Context, page *model.Page) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a new instance of SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	var settings model.SiteSettings
	if err := GetDB(ctx, r.db).First(&settings, "key = ?", model.SettingsKeyMain).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *model.SiteSettings) error {
	settings.Key = model.SettingsKeyMain
	return GetDB(ctx, r.db).Save(settings).Error
}

func (r *settingsRepository) GetPage(ctx context.Context, id string) (*model.Page, error) {
	var page model.Page
	if err := GetDB(ctx, r.db).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *settingsRepository) SavePage(ctx context.Context, page *model.Page) error {
	return GetDB(ctx, r.db).Save(page).Error
}
