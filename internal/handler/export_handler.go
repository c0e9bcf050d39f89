package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-tracker-api/internal/service"
	"github.com/noah-isme/timetable-tracker-api/pkg/response"
)

type exportService interface {
	Timetable(format string) (*service.ExportFile, error)
	Course(id, format string) (*service.ExportFile, error)
}

// ExportHandler exposes CSV and PDF export endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Timetable godoc
// @Summary Export the weekly timetable
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /exports/timetable [get]
func (h *ExportHandler) Timetable(c *gin.Context) {
	file, err := h.service.Timetable(c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeFile(c, file)
}

// Course godoc
// @Summary Export a course report
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Course ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /exports/courses/{id} [get]
func (h *ExportHandler) Course(c *gin.Context) {
	file, err := h.service.Course(c.Param("id"), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeFile(c, file)
}

func writeFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
