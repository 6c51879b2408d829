package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type SubmitReviewRequest struct {
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Title        string `json:"title"`
	Comment      string `json:"comment"`
	Source       string `json:"source"`
}

type ModerateReviewRequest struct {
	Decision string `json:"decision"` // Approved or Rejected
}

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Comment      string    `json:"comment"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewStats aggregates approved reviews only. The distribution always
// carries all five rating keys, zero counts included.
type ReviewStats struct {
	Total              int         `json:"total"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// --- Interface ---

type ReviewService interface {
	SubmitReview(ctx context.Context, req SubmitReviewRequest) (*ReviewResponse, error)
	// ModerateReview overwrites the status with the decision. Re-moderating
	// an already decided review is allowed.
	ModerateReview(ctx context.Context, id string, req ModerateReviewRequest) (*ReviewResponse, error)
	ListReviews(ctx context.Context, status string) ([]ReviewResponse, error)
	ListApprovedReviews(ctx context.Context) ([]ReviewResponse, error)
	DeleteReview(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ReviewStats, error)
}

// --- Implementation ---

type reviewService struct {
	reviewRepo repository.ReviewRepository
	hub        interface{ GetBroadcast() chan []byte } // optional websocket hub
}

// NewReviewService returns a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, hub interface{ GetBroadcast() chan []byte }) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, hub: hub}
}

var validReviewStatuses = map[string]bool{
	model.ReviewStatusPending:  true,
	model.ReviewStatusApproved: true,
	model.ReviewStatusRejected: true,
}

func toReviewResponse(r *model.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		Status:       r.Status,
		Source:       r.Source,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, req SubmitReviewRequest) (*ReviewResponse, error) {
	if req.CustomerName == "" {
		return nil, apperr.Validation("customer_name is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return nil, apperr.Validation("comment is required")
	}

	source := req.Source
	if source == "" {
		source = model.ReviewSourceManual
	}

	review := &model.Review{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
		Status:       model.ReviewStatusPending,
		Source:       source,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperr.Backend("failed to create review", err)
	}

	s.broadcastSubmitted(review)
	return toReviewResponse(review), nil
}

func (s *reviewService) ModerateReview(ctx context.Context, id string, req ModerateReviewRequest) (*ReviewResponse, error) {
	if req.Decision != model.ReviewStatusApproved && req.Decision != model.ReviewStatusRejected {
		return nil, apperr.Validation("decision must be Approved or Rejected")
	}

	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}

	review.Status = req.Decision
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, apperr.Backend("failed to moderate review", err)
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) ListReviews(ctx context.Context, status string) ([]ReviewResponse, error) {
	if status != "" && !validReviewStatuses[status] {
		return nil, apperr.Validation("unknown review status %q", status)
	}

	reviews, err := s.reviewRepo.List(ctx, status)
	if err != nil {
		return nil, apperr.Backend("failed to fetch reviews", err)
	}

	res := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		res = append(res, *toReviewResponse(&reviews[i]))
	}
	return res, nil
}

// ListApprovedReviews is the only subset visible to public consumers
func (s *reviewService) ListApprovedReviews(ctx context.Context) ([]ReviewResponse, error) {
	return s.ListReviews(ctx, model.ReviewStatusApproved)
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid review ID")
	}
	if err := s.reviewRepo.Delete(ctx, uid); err != nil {
		return apperr.Backend("failed to delete review", err)
	}
	return nil
}

func (s *reviewService) Stats(ctx context.Context) (*ReviewStats, error) {
	reviews, err := s.reviewRepo.List(ctx, model.ReviewStatusApproved)
	if err != nil {
		return nil, apperr.Backend("failed to fetch reviews", err)
	}

	stats := &ReviewStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats, nil
	}

	totalRating := 0
	for i := range reviews {
		totalRating += reviews[i].Rating
		stats.RatingDistribution[reviews[i].Rating]++
	}

	stats.Total = len(reviews)
	average := float64(totalRating) / float64(len(reviews))
	stats.AverageRating = math.Round(average*10) / 10

	return stats, nil
}

func (s *reviewService) findReview(ctx context.Context, id string) (*model.Review, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid review ID")
	}
	review, err := s.reviewRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review")
		}
		return nil, apperr.Backend("failed to fetch review", err)
	}
	return review, nil
}

func (s *reviewService) broadcastSubmitted(review *model.Review) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":   "review.submitted",
		"review": toReviewResponse(review),
	})
	if err != nil {
		log.Printf("failed to marshal review.submitted event: %v", err)
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
	}
}
