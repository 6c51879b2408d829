package service

import (
	"context"
	"fmt"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductRequest() CreateProductRequest {
	return CreateProductRequest{
		Title:         "HP Pavilion 15",
		Brand:         "HP",
		Category:      "Laptops",
		Price:         "54999.00",
		FeaturedImage: "https://example.com/pavilion.jpg",
	}
}

func TestCreateProductSlugFallback(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	req := validProductRequest()
	req.Title = "HP Pavilion 15 (2024, Silver)"
	res, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "hp-pavilion-15-2024-silver", res.Slug)

	// An explicit slug wins over the derived one
	req = validProductRequest()
	req.Title = "Dell XPS 13"
	req.Slug = "custom-slug"
	res, err = svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", res.Slug)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	tests := []struct {
		name   string
		mutate func(*CreateProductRequest)
	}{
		{"missing title", func(r *CreateProductRequest) { r.Title = "" }},
		{"missing brand", func(r *CreateProductRequest) { r.Brand = "" }},
		{"missing category", func(r *CreateProductRequest) { r.Category = "" }},
		{"missing featured image", func(r *CreateProductRequest) { r.FeaturedImage = "" }},
		{"bad price", func(r *CreateProductRequest) { r.Price = "abc" }},
		{"negative price", func(r *CreateProductRequest) { r.Price = "-10" }},
		{"negative stock", func(r *CreateProductRequest) { r.StockCount = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProductRequest()
			tt.mutate(&req)
			_, err := svc.CreateProduct(context.Background(), req)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateProductEnforcesCatalogCap(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	for i := 0; i < model.MaxProducts; i++ {
		req := validProductRequest()
		req.Title = fmt.Sprintf("Laptop %d", i)
		_, err := svc.CreateProduct(context.Background(), req)
		require.NoError(t, err)
	}

	_, err := svc.CreateProduct(context.Background(), validProductRequest())
	assert.True(t, apperr.IsValidation(err))
}

func TestGetProductBySlug(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	created, err := svc.CreateProduct(context.Background(), validProductRequest())
	require.NoError(t, err)

	found, err := svc.GetProductBySlug(context.Background(), "hp-pavilion-15")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetProductBySlug(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListProductsSectionFilter(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	deal := validProductRequest()
	deal.Title = "Deal Laptop"
	deal.IsDeal = true
	deal.Published = true
	_, err := svc.CreateProduct(context.Background(), deal)
	require.NoError(t, err)

	plain := validProductRequest()
	plain.Title = "Plain Laptop"
	plain.Published = true
	_, err = svc.CreateProduct(context.Background(), plain)
	require.NoError(t, err)

	res, err := svc.ListProducts(context.Background(), ListProductFilters{Deal: true})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Deal Laptop", res[0].Title)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	created, err := svc.CreateProduct(context.Background(), validProductRequest())
	require.NoError(t, err)

	newPrice := "49999.00"
	published := true
	res, err := svc.UpdateProduct(context.Background(), created.ID.String(), UpdateProductRequest{
		Price:     &newPrice,
		Published: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "49999", res.Price.String())
	assert.True(t, res.Published)
	// Untouched fields survive the patch
	assert.Equal(t, "HP Pavilion 15", res.Title)
	assert.Equal(t, "hp-pavilion-15", res.Slug)
}
