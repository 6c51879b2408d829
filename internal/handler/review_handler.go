package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/api/reviews")
	{
		// Public storefront endpoints
		reviews.POST("", h.SubmitReview)
		reviews.GET("/approved", h.ListApprovedReviews)
		reviews.GET("/stats", h.Stats)

		// Moderation endpoints
		reviews.GET("", middleware.RequireRole("admin"), h.ListReviews)
		reviews.PATCH("/:id/moderate", middleware.RequireRole("admin"), h.ModerateReview)
		reviews.DELETE("/:id", middleware.RequireRole("admin"), h.DeleteReview)
	}
}

// SubmitReview accepts a store review; it starts in Pending state
// @Summary      Submit review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SubmitReviewRequest  true  "Review payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req service.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, review))
}

// ListApprovedReviews returns the publicly visible reviews
// @Summary      List approved reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/reviews/approved [get]
func (h *ReviewHandler) ListApprovedReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListApprovedReviews(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// Stats aggregates approved reviews for the storefront rating widget
// @Summary      Review statistics
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/reviews/stats [get]
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.reviewService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// ListReviews returns all reviews with an optional status filter
// @Summary      List reviews
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        status  query  string  false  "Filter by status: Pending, Approved, Rejected"
// @Success      200  {object}  response.Response
// @Router       /api/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// ModerateReview approves or rejects a review
// @Summary      Moderate review
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Review ID"
// @Param        payload  body  service.ModerateReviewRequest  true  "Moderation decision"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/reviews/{id}/moderate [patch]
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	var req service.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	review, err := h.reviewService.ModerateReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, review))
}

// DeleteReview removes a review permanently
// @Summary      Delete review
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Review ID"
// @Success      200  {object}  response.Response
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Review deleted successfully"}))
}
