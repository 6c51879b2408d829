package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", middleware.RequireRole("admin"), h.UpdateSettings)
	}

	pages := router.Group("/api/pages")
	{
		pages.GET("/:id", h.GetPage)
		pages.PUT("/:id", middleware.RequireRole("admin"), h.UpdatePage)
	}
}

// GetSettings returns site settings, falling back to defaults when unset
// @Summary      Get site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// UpdateSettings merges the payload over the stored settings
// @Summary      Update site settings
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.UpdateSettingsRequest  true  "Settings changes"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// GetPage returns editable page content (about, terms, privacy, contact)
// @Summary      Get page content
// @Tags         settings
// @Produce      json
// @Param        id  path  string  true  "Page ID"
// @Success      200  {object}  response.Response
// @Router       /api/pages/{id} [get]
func (h *SettingsHandler) GetPage(c *gin.Context) {
	page, err := h.settingsService.GetPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

// UpdatePage saves page content
// @Summary      Update page content
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Page ID"
// @Param        payload  body  service.UpdatePageRequest  true  "Page changes"
// @Success      200  {object}  response.Response
// @Router       /api/pages/{id} [put]
func (h *SettingsHandler) UpdatePage(c *gin.Context) {
	var req service.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	page, err := h.settingsService.UpdatePage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.HTTPStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}
