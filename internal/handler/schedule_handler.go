package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/service"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
	"github.com/noah-isme/timetable-tracker-api/pkg/response"
)

type scheduleService interface {
	Get() []models.Slot
	Replace(ctx context.Context, req service.ReplaceSlotsRequest) ([]models.Slot, error)
	Summary() service.ScheduleSummary
}

// ScheduleHandler exposes the slot schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Get godoc
// @Summary Get the slot schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Get(), nil)
}

// Replace godoc
// @Summary Replace the slot schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.ReplaceSlotsRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req service.ReplaceSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	slots, err := h.service.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Summary godoc
// @Summary Summarize the slot schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/summary [get]
func (h *ScheduleHandler) Summary(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Summary(), nil)
}
