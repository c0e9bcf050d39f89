package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-tracker-api/internal/service"
	"github.com/noah-isme/timetable-tracker-api/pkg/response"
)

type setupService interface {
	Status() service.SetupStatus
	Complete(ctx context.Context) error
	Reset(ctx context.Context) error
}

// SetupHandler exposes the onboarding endpoints.
type SetupHandler struct {
	service setupService
}

// NewSetupHandler builds a new handler.
func NewSetupHandler(service setupService) *SetupHandler {
	return &SetupHandler{service: service}
}

// Status godoc
// @Summary Get setup status
// @Tags Setup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /setup [get]
func (h *SetupHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Status(), nil)
}

// Complete godoc
// @Summary Mark setup as complete
// @Tags Setup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /setup/complete [post]
func (h *SetupHandler) Complete(c *gin.Context) {
	if err := h.service.Complete(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Status(), nil)
}

// Reset godoc
// @Summary Reset all stored data
// @Tags Setup
// @Success 204
// @Router /setup/reset [post]
func (h *SetupHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
