package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/pkg/apperr"
	"backend/pkg/format"
	"backend/pkg/template"
)

// Warranty message purposes, matching the template set in site settings
const (
	NoticeReminder      = "reminder"
	NoticeExpired       = "expired"
	NoticeReviewRequest = "reviewRequest"
)

// DefaultReminderDays is the default look-ahead window for reminders
const DefaultReminderDays = 3

// --- DTOs ---

// NoticeResult records one dispatch attempt during a sweep
type NoticeResult struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Purpose      string `json:"purpose"`
	Message      string `json:"message"`
	Sent         bool   `json:"sent"`
	Error        string `json:"error,omitempty"`
}

// --- Interface ---

// WarrantyNoticeService drives the outbound side of the warranty
// lifecycle: it pulls cohorts from the customer service, renders the
// matching template from site settings and hands the text to the
// messenger. It is invoked by the scheduler or an admin action, never
// by the lifecycle manager itself.
type WarrantyNoticeService interface {
	// SweepStatuses recomputes the status of every active customer and
	// returns how many transitioned to Warranty Expired.
	SweepStatuses(ctx context.Context) (int, error)
	// SendReminders messages active customers whose warranty ends within
	// daysAhead days.
	SendReminders(ctx context.Context, daysAhead int) ([]NoticeResult, error)
	// SendReviewRequests messages customers past warranty who have not
	// been solicited yet, marking each Review Requested after a
	// successful dispatch.
	SendReviewRequests(ctx context.Context) ([]NoticeResult, error)
	// PreviewMessage renders the template for one customer without
	// dispatching anything.
	PreviewMessage(ctx context.Context, customerID, purpose string) (string, error)
}

// --- Implementation ---

type warrantyNoticeService struct {
	customers CustomerService
	settings  SettingsService
	messenger notify.Messenger
}

// NewWarrantyNoticeService returns a new instance of WarrantyNoticeService
func NewWarrantyNoticeService(customers CustomerService, settings SettingsService, messenger notify.Messenger) WarrantyNoticeService {
	return &warrantyNoticeService{customers: customers, settings: settings, messenger: messenger}
}

func (s *warrantyNoticeService) SweepStatuses(ctx context.Context) (int, error) {
	// Only Active customers can transition here, no need to scan the rest.
	customers, err := s.customers.ListCustomers(ctx, model.CustomerStatusActive)
	if err != nil {
		return 0, err
	}

	transitioned := 0
	for _, c := range customers {
		before := c.Status
		after, err := s.customers.RecomputeStatus(ctx, c.ID.String())
		if err != nil {
			log.Printf("status recompute failed for customer %s: %v", c.ID, err)
			continue
		}
		if after != before {
			transitioned++
		}
	}
	return transitioned, nil
}

func (s *warrantyNoticeService) SendReminders(ctx context.Context, daysAhead int) ([]NoticeResult, error) {
	if daysAhead <= 0 {
		daysAhead = DefaultReminderDays
	}

	cohort, err := s.customers.ExpiringWithin(ctx, daysAhead)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, cohort, NoticeReminder, nil), nil
}

func (s *warrantyNoticeService) SendReviewRequests(ctx context.Context) ([]NoticeResult, error) {
	cohort, err := s.customers.ExpiredNeedingReview(ctx)
	if err != nil {
		return nil, err
	}
	// Only after the message went out does the customer move to
	// Review Requested; a failed dispatch leaves them eligible for the
	// next sweep.
	return s.dispatch(ctx, cohort, NoticeReviewRequest, func(c *CustomerResponse) error {
		return s.customers.MarkReviewRequested(ctx, c.ID.String())
	}), nil
}

func (s *warrantyNoticeService) PreviewMessage(ctx context.Context, customerID, purpose string) (string, error) {
	tmpl, err := s.templateFor(ctx, purpose)
	if err != nil {
		return "", err
	}
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	return renderNotice(tmpl, customer), nil
}

func (s *warrantyNoticeService) dispatch(ctx context.Context, cohort []CustomerResponse, purpose string, onSent func(*CustomerResponse) error) []NoticeResult {
	results := make([]NoticeResult, 0, len(cohort))

	tmpl, err := s.templateFor(ctx, purpose)
	if err != nil {
		for i := range cohort {
			results = append(results, NoticeResult{
				CustomerID:   cohort[i].ID.String(),
				CustomerName: cohort[i].Name,
				Purpose:      purpose,
				Error:        err.Error(),
			})
		}
		return results
	}

	for i := range cohort {
		c := &cohort[i]
		message := renderNotice(tmpl, c)
		result := NoticeResult{
			CustomerID:   c.ID.String(),
			CustomerName: c.Name,
			Phone:        c.Phone,
			Purpose:      purpose,
			Message:      message,
		}

		if err := s.messenger.Send(ctx, c.Phone, message); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Sent = true

		if onSent != nil {
			if err := onSent(c); err != nil {
				result.Error = err.Error()
			}
		}
		results = append(results, result)
	}
	return results
}

func (s *warrantyNoticeService) templateFor(ctx context.Context, purpose string) (string, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", err
	}

	switch purpose {
	case NoticeReminder:
		return settings.WarrantyTemplates.Reminder, nil
	case NoticeExpired:
		return settings.WarrantyTemplates.Expired, nil
	case NoticeReviewRequest:
		return settings.WarrantyTemplates.ReviewRequest, nil
	default:
		return "", apperr.Validation("unknown message purpose %q", purpose)
	}
}

// renderNotice substitutes the warranty placeholders for one customer.
// The warranty end date is rendered human-readable before substitution.
func renderNotice(tmpl string, c *CustomerResponse) string {
	endDate, _ := time.Parse(DateLayout, c.WarrantyEndDate)
	return template.Render(tmpl, map[string]string{
		"customerName":    c.Name,
		"productTitle":    snapshotTitle(c.ProductDetails),
		"warrantyEndDate": format.Date(endDate),
	})
}

func snapshotTitle(details json.RawMessage) string {
	var snapshot productSnapshot
	if err := json.Unmarshal(details, &snapshot); err != nil {
		return ""
	}
	return snapshot.Title
}
