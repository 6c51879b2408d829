package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	res, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Premium Laptops in Kashmir", res.Branding.Slogan)
	assert.Equal(t, "mitc-store", res.Cloudinary.Folder)
	assert.Len(t, res.ContactTemplates, 10)
	assert.Contains(t, res.WarrantyTemplates.Reminder, "{warrantyEndDate}")
	assert.Contains(t, res.WarrantyTemplates.ReviewRequest, "{productTitle}")
}

func TestUpdateSettingsMergesTopLevelOnly(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)

	branding := model.Branding{Slogan: "New slogan"}
	res, err := svc.UpdateSettings(context.Background(), UpdateSettingsRequest{
		Branding: &branding,
	})
	require.NoError(t, err)

	// The sent key replaces the stored value wholesale
	assert.Equal(t, "New slogan", res.Branding.Slogan)
	assert.Empty(t, res.Branding.Address)

	// Untouched keys keep their defaults
	assert.Equal(t, "mitc-store", res.Cloudinary.Folder)
	assert.Len(t, res.ContactTemplates, 10)

	// The merge persisted
	stored, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New slogan", stored.Branding.Data().Slogan)
}

func TestUpdateSettingsInvalidatesCache(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	first, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Premium Laptops in Kashmir", first.Branding.Slogan)

	branding := model.Branding{Slogan: "Changed"}
	_, err = svc.UpdateSettings(context.Background(), UpdateSettingsRequest{Branding: &branding})
	require.NoError(t, err)

	second, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Changed", second.Branding.Slogan)
}

func TestGetPageDefaults(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	page, err := svc.GetPage(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "About MITC Store", page.Title)

	// Unknown pages come back empty rather than erroring
	page, err = svc.GetPage(context.Background(), "faq")
	require.NoError(t, err)
	assert.Equal(t, "faq", page.ID)
	assert.Empty(t, page.Title)
}

func TestUpdatePagePersists(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)

	title := "Our Story"
	content := "Updated content"
	page, err := svc.UpdatePage(context.Background(), "about", UpdatePageRequest{
		Title:   &title,
		Content: &content,
	})
	require.NoError(t, err)
	assert.Equal(t, "Our Story", page.Title)

	stored, err := repo.GetPage(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "Our Story", stored.Title)
	assert.Equal(t, "Updated content", stored.Content)
}
