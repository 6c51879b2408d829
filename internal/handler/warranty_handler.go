package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type WarrantyHandler struct {
	noticeService service.WarrantyNoticeService
}

func NewWarrantyHandler(noticeService service.WarrantyNoticeService) *WarrantyHandler {
	return &WarrantyHandler{noticeService: noticeService}
}

func (h *WarrantyHandler) RegisterRoutes(router *gin.RouterGroup) {
	warranty := router.Group("/api/warranty")
	warranty.Use(middleware.RequireRole("admin"))
	{
		warranty.POST("/sweep", h.Sweep)
		warranty.POST("/reminders", h.SendReminders)
		warranty.POST("/review-requests", h.SendReviewRequests)
		warranty.GET("/preview/:id", h.PreviewMessage)
	}
}

// Sweep recomputes the status of every active customer
// @Summary      Sweep warranty statuses
// @Tags         warranty
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/warranty/sweep [post]
func (h *WarrantyHandler) Sweep(c *gin.Context) {
	transitioned, err := h.noticeService.SweepStatuses(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"transitioned": transitioned}))
}

// SendReminders messages customers whose warranty is about to end
// @Summary      Send warranty reminders
// @Tags         warranty
// @Security     BearerAuth
// @Produce      json
// @Param        days  query  int  false  "Look-ahead window in days (default 3)"
// @Success      200  {object}  response.Response
// @Router       /api/warranty/reminders [post]
func (h *WarrantyHandler) SendReminders(c *gin.Context) {
	days := service.DefaultReminderDays
	if d := c.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	results, err := h.noticeService.SendReminders(c.Request.Context(), days)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}

// SendReviewRequests solicits reviews from customers past warranty
// @Summary      Send review requests
// @Tags         warranty
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/warranty/review-requests [post]
func (h *WarrantyHandler) SendReviewRequests(c *gin.Context) {
	results, err := h.noticeService.SendReviewRequests(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}

// PreviewMessage renders a warranty message for one customer without sending it
// @Summary      Preview warranty message
// @Tags         warranty
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   string  true   "Customer ID"
// @Param        purpose  query  string  false  "Message purpose: reminder, expired, reviewRequest (default reminder)"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warranty/preview/{id} [get]
func (h *WarrantyHandler) PreviewMessage(c *gin.Context) {
	purpose := c.DefaultQuery("purpose", service.NoticeReminder)

	message, err := h.noticeService.PreviewMessage(c.Request.Context(), c.Param("id"), purpose)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"purpose": purpose, "message": message}))
}
