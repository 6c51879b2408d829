package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"backend/internal/model"
	"backend/pkg/apperr"
	"backend/pkg/warranty"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture(t *testing.T) (CustomerService, *fakeCustomerRepo, *model.Product) {
	t.Helper()

	productRepo := newFakeProductRepo()
	product := &model.Product{
		Title:         "ThinkPad X1 Carbon Gen 11",
		Brand:         "Lenovo",
		Category:      "Laptops",
		Price:         decimal.NewFromInt(124999),
		FeaturedImage: "https://example.com/x1.jpg",
	}
	require.NoError(t, productRepo.Create(context.Background(), product))

	customerRepo := newFakeCustomerRepo()
	return NewCustomerService(customerRepo, productRepo, fakeTxManager{}, nil), customerRepo, product
}

func seedCustomer(t *testing.T, repo *fakeCustomerRepo, purchaseDate time.Time, status string) *model.Customer {
	t.Helper()
	c := &model.Customer{
		Name:            "Aamir",
		Phone:           "9876543210",
		PurchaseDate:    purchaseDate,
		WarrantyEndDate: warranty.ComputeEnd(purchaseDate),
		ProductID:       uuid.New(),
		ProductDetails:  []byte(`{"title":"ThinkPad X1 Carbon Gen 11"}`),
		Status:          status,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestCreateCustomerComputesWarrantyEnd(t *testing.T) {
	svc, _, product := newCustomerFixture(t)

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name:         "Aamir",
		Phone:        "98765 43210",
		Email:        "aamir@example.com",
		PurchaseDate: "2024-01-20",
		ProductID:    product.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-20", res.PurchaseDate)
	assert.Equal(t, "2024-02-04", res.WarrantyEndDate)
	assert.Equal(t, model.CustomerStatusActive, res.Status)

	var snapshot map[string]string
	require.NoError(t, json.Unmarshal(res.ProductDetails, &snapshot))
	assert.Equal(t, "ThinkPad X1 Carbon Gen 11", snapshot["title"])
	assert.Equal(t, "Lenovo", snapshot["brand"])
}

func TestCreateCustomerWarrantyCrossesYearBoundary(t *testing.T) {
	svc, _, product := newCustomerFixture(t)

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name:         "Bilal",
		Phone:        "9876543210",
		PurchaseDate: "2024-12-25",
		ProductID:    product.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-09", res.WarrantyEndDate)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _, product := newCustomerFixture(t)

	valid := CreateCustomerRequest{
		Name:         "Aamir",
		Phone:        "9876543210",
		PurchaseDate: "2024-01-20",
		ProductID:    product.ID.String(),
	}

	tests := []struct {
		name   string
		mutate func(*CreateCustomerRequest)
	}{
		{"missing name", func(r *CreateCustomerRequest) { r.Name = "" }},
		{"short phone", func(r *CreateCustomerRequest) { r.Phone = "12345" }},
		{"bad email", func(r *CreateCustomerRequest) { r.Email = "not-an-email" }},
		{"bad date", func(r *CreateCustomerRequest) { r.PurchaseDate = "20/01/2024" }},
		{"missing product", func(r *CreateCustomerRequest) { r.ProductID = uuid.NewString() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.CreateCustomer(context.Background(), req)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	svc, _, _ := newCustomerFixture(t)
	_, err := svc.GetCustomer(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateCustomerRecomputesWarrantyEnd(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), model.CustomerStatusActive)

	newDate := "2024-03-01"
	res, err := svc.UpdateCustomer(context.Background(), c.ID.String(), UpdateCustomerRequest{
		PurchaseDate: &newDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", res.PurchaseDate)
	assert.Equal(t, "2024-03-16", res.WarrantyEndDate)

	stored, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.WarrantyEndDate, warranty.ComputeEnd(stored.PurchaseDate))
}

func TestRecomputeStatusExpiresActiveCustomer(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusActive)

	status, err := svc.RecomputeStatus(context.Background(), c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusWarrantyExpired, status)

	// Second invocation is a no-op
	status, err = svc.RecomputeStatus(context.Background(), c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusWarrantyExpired, status)
}

func TestRecomputeStatusLeavesUnexpiredAlone(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now(), model.CustomerStatusActive)

	status, err := svc.RecomputeStatus(context.Background(), c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusActive, status)
}

func TestRecomputeStatusNeverRegresses(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -60), model.CustomerStatusCompleted)

	status, err := svc.RecomputeStatus(context.Background(), c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusCompleted, status)
}

func TestExpiringWithinWindow(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)

	// Warranty ends purchase+15d, so purchase now-13d ends in ~2 days.
	inWindow := seedCustomer(t, repo, time.Now().AddDate(0, 0, -13), model.CustomerStatusActive)
	seedCustomer(t, repo, time.Now().AddDate(0, 0, -11), model.CustomerStatusActive) // ends in ~4 days
	seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusActive) // already past

	res, err := svc.ExpiringWithin(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, inWindow.ID, res[0].ID)
}

func TestExpiredNeedingReviewExcludesSolicited(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)

	past := time.Now().AddDate(0, 0, -30)
	expired := seedCustomer(t, repo, past, model.CustomerStatusWarrantyExpired)
	stillActive := seedCustomer(t, repo, past, model.CustomerStatusActive) // sweep has not run yet
	seedCustomer(t, repo, past, model.CustomerStatusReviewRequested)
	seedCustomer(t, repo, past, model.CustomerStatusCompleted)
	seedCustomer(t, repo, time.Now(), model.CustomerStatusActive) // not expired

	res, err := svc.ExpiredNeedingReview(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)

	ids := map[uuid.UUID]bool{res[0].ID: true, res[1].ID: true}
	assert.True(t, ids[expired.ID])
	assert.True(t, ids[stillActive.ID])
}

func TestMarkReviewRequested(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusWarrantyExpired)

	require.NoError(t, svc.MarkReviewRequested(context.Background(), c.ID.String()))
	stored, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusReviewRequested, stored.Status)

	// Idempotent
	require.NoError(t, svc.MarkReviewRequested(context.Background(), c.ID.String()))
}

func TestMarkReviewRequestedRejectsCompleted(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusCompleted)

	err := svc.MarkReviewRequested(context.Background(), c.ID.String())
	assert.True(t, apperr.IsValidation(err))
}

func TestMarkCompleted(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusReviewRequested)

	require.NoError(t, svc.MarkCompleted(context.Background(), c.ID.String()))
	stored, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusCompleted, stored.Status)
}

func TestMarkCompletedRequiresReviewRequested(t *testing.T) {
	svc, repo, _ := newCustomerFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusActive)

	err := svc.MarkCompleted(context.Background(), c.ID.String())
	assert.True(t, apperr.IsValidation(err))
}

func TestListCustomersRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newCustomerFixture(t)
	_, err := svc.ListCustomers(context.Background(), "Archived")
	assert.True(t, apperr.IsValidation(err))
}
