package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend/internal/model"
	"backend/pkg/apperr"
	"backend/pkg/format"
	"backend/pkg/warranty"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoticeFixture(t *testing.T) (WarrantyNoticeService, *fakeCustomerRepo, *fakeMessenger) {
	t.Helper()

	customerRepo := newFakeCustomerRepo()
	customers := NewCustomerService(customerRepo, newFakeProductRepo(), fakeTxManager{}, nil)
	settings := NewSettingsService(newFakeSettingsRepo())
	messenger := newFakeMessenger()

	return NewWarrantyNoticeService(customers, settings, messenger), customerRepo, messenger
}

func TestSweepStatusesCountsTransitions(t *testing.T) {
	svc, repo, _ := newNoticeFixture(t)

	seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusActive)
	seedCustomer(t, repo, time.Now().AddDate(0, 0, -40), model.CustomerStatusActive)
	seedCustomer(t, repo, time.Now(), model.CustomerStatusActive)

	transitioned, err := svc.SweepStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, transitioned)

	// A second sweep finds nothing left to transition
	transitioned, err = svc.SweepStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, transitioned)
}

func TestSendRemindersRendersTemplate(t *testing.T) {
	svc, repo, messenger := newNoticeFixture(t)

	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -13), model.CustomerStatusActive)
	seedCustomer(t, repo, time.Now(), model.CustomerStatusActive) // not expiring yet

	results, err := svc.SendReminders(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Sent)
	assert.Equal(t, NoticeReminder, results[0].Purpose)

	require.Len(t, messenger.sent, 1)
	body := messenger.sent[0].Body
	assert.Contains(t, body, "Hi Aamir")
	assert.Contains(t, body, "ThinkPad X1 Carbon Gen 11")
	assert.Contains(t, body, format.Date(c.WarrantyEndDate))
}

func TestSendReviewRequestsMarksAfterDispatch(t *testing.T) {
	svc, repo, _ := newNoticeFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusWarrantyExpired)

	results, err := svc.SendReviewRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Sent)

	stored, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusReviewRequested, stored.Status)

	// Solicited customers drop out of the next run
	results, err = svc.SendReviewRequests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSendReviewRequestsFailedDispatchLeavesStatus(t *testing.T) {
	svc, repo, messenger := newNoticeFixture(t)
	c := seedCustomer(t, repo, time.Now().AddDate(0, 0, -30), model.CustomerStatusWarrantyExpired)
	messenger.failPhones[c.Phone] = errors.New("transport down")

	results, err := svc.SendReviewRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Sent)
	assert.Equal(t, "transport down", results[0].Error)

	stored, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusWarrantyExpired, stored.Status)
}

func TestPreviewMessageDoesNotDispatch(t *testing.T) {
	svc, repo, messenger := newNoticeFixture(t)
	c := seedCustomer(t, repo, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), model.CustomerStatusActive)

	message, err := svc.PreviewMessage(context.Background(), c.ID.String(), NoticeReviewRequest)
	require.NoError(t, err)
	assert.Contains(t, message, "Hi Aamir")
	assert.Contains(t, message, "leave us a review")
	assert.Empty(t, messenger.sent)
}

func TestPreviewMessageUnknownPurpose(t *testing.T) {
	svc, repo, _ := newNoticeFixture(t)
	c := seedCustomer(t, repo, time.Now(), model.CustomerStatusActive)

	_, err := svc.PreviewMessage(context.Background(), c.ID.String(), "nudge")
	assert.True(t, apperr.IsValidation(err))
}

// Guards the end-to-end warranty math used by the reminder cohort.
func TestWarrantyWindowMath(t *testing.T) {
	purchase := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), warranty.ComputeEnd(purchase))
}
