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

type timetableService interface {
	ReplaceAll(ctx context.Context, req service.ReplaceTimetableRequest) ([]models.DayTimetable, error)
	Day(day models.Weekday) (service.DayView, error)
	Today() service.DayView
	Week() service.WeekView
	Now() service.NowView
	Progress() service.TimetableProgress
}

// TimetableHandler exposes the weekly timetable endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler builds a new handler.
func NewTimetableHandler(service timetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// Replace godoc
// @Summary Replace the weekly timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.ReplaceTimetableRequest true "Timetable payload"
// @Success 200 {object} response.Envelope
// @Router /timetable [put]
func (h *TimetableHandler) Replace(c *gin.Context) {
	var req service.ReplaceTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	days, err := h.service.ReplaceAll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// Week godoc
// @Summary Get the resolved weekly timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Week(), nil)
}

// Day godoc
// @Summary Get a resolved day timetable
// @Tags Timetable
// @Produce json
// @Param day path string true "Weekday (MONDAY..FRIDAY)"
// @Success 200 {object} response.Envelope
// @Router /timetable/{day} [get]
func (h *TimetableHandler) Day(c *gin.Context) {
	day := models.Weekday(c.Param("day"))
	view, err := h.service.Day(day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Today godoc
// @Summary Get today's resolved timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/today [get]
func (h *TimetableHandler) Today(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Today(), nil)
}

// Now godoc
// @Summary Get the current and next slot
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/now [get]
func (h *TimetableHandler) Now(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Now(), nil)
}

// Progress godoc
// @Summary Get timetable completion progress
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/progress [get]
func (h *TimetableHandler) Progress(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Progress(), nil)
}
