// Package scheduler periodically drives the warranty workflow. The
// lifecycle services have no background execution of their own; this
// loop is the only caller that advances statuses on a clock.
package scheduler

import (
	"context"
	"log"
	"time"

	"backend/internal/service"
)

// WarrantySweeper runs the status sweep and outbound messaging on a
// fixed interval.
type WarrantySweeper struct {
	notices      service.WarrantyNoticeService
	interval     time.Duration
	reminderDays int
}

// NewWarrantySweeper returns a sweeper. A non-positive reminderDays
// falls back to the service default.
func NewWarrantySweeper(notices service.WarrantyNoticeService, interval time.Duration, reminderDays int) *WarrantySweeper {
	if reminderDays <= 0 {
		reminderDays = service.DefaultReminderDays
	}
	return &WarrantySweeper{notices: notices, interval: interval, reminderDays: reminderDays}
}

// Run blocks until ctx is cancelled, sweeping once immediately and then
// on every tick.
func (s *WarrantySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *WarrantySweeper) sweep(ctx context.Context) {
	transitioned, err := s.notices.SweepStatuses(ctx)
	if err != nil {
		log.Printf("warranty sweep: status recompute failed: %v", err)
	} else if transitioned > 0 {
		log.Printf("warranty sweep: %d customer(s) moved to Warranty Expired", transitioned)
	}

	reminders, err := s.notices.SendReminders(ctx, s.reminderDays)
	if err != nil {
		log.Printf("warranty sweep: reminders failed: %v", err)
	} else if len(reminders) > 0 {
		log.Printf("warranty sweep: dispatched %d reminder(s)", len(reminders))
	}

	requests, err := s.notices.SendReviewRequests(ctx)
	if err != nil {
		log.Printf("warranty sweep: review requests failed: %v", err)
	} else if len(requests) > 0 {
		log.Printf("warranty sweep: dispatched %d review request(s)", len(requests))
	}
}
