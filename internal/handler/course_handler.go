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

type courseService interface {
	List() []models.Course
	Get(id string) (models.Course, error)
	Create(ctx context.Context, req service.CreateCourseRequest) (models.Course, error)
	Update(ctx context.Context, id string, req service.UpdateCourseRequest) (models.Course, error)
	Delete(ctx context.Context, id string) error
	Summary(id string) (service.CourseSummary, error)

	AddMark(ctx context.Context, courseID string, req service.AddMarkRequest) (models.Mark, error)
	UpdateMark(ctx context.Context, courseID, markID string, req service.UpdateMarkRequest) (models.Mark, error)
	DeleteMark(ctx context.Context, courseID, markID string) error

	AddTask(ctx context.Context, courseID string, req service.AddTaskRequest) (models.Task, error)
	UpdateTask(ctx context.Context, courseID, taskID string, req service.UpdateTaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, courseID, taskID string) error

	AddNote(ctx context.Context, courseID string, req service.AddNoteRequest) (models.Note, error)
	UpdateNote(ctx context.Context, courseID, noteID string, req service.UpdateNoteRequest) (models.Note, error)
	DeleteNote(ctx context.Context, courseID, noteID string) error
}

// CourseHandler exposes the course registry endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler builds a new handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(), nil)
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete a course
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Get a course summary
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/summary [get]
func (h *CourseHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// AddMark godoc
// @Summary Add a mark to a course
// @Tags Marks
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddMarkRequest true "Mark payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/marks [post]
func (h *CourseHandler) AddMark(c *gin.Context) {
	var req service.AddMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mark payload"))
		return
	}
	mark, err := h.service.AddMark(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mark)
}

// UpdateMark godoc
// @Summary Update a mark
// @Tags Marks
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param markId path string true "Mark ID"
// @Param payload body service.UpdateMarkRequest true "Mark payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/marks/{markId} [put]
func (h *CourseHandler) UpdateMark(c *gin.Context) {
	var req service.UpdateMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mark payload"))
		return
	}
	mark, err := h.service.UpdateMark(c.Request.Context(), c.Param("id"), c.Param("markId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mark, nil)
}

// DeleteMark godoc
// @Summary Delete a mark
// @Tags Marks
// @Param id path string true "Course ID"
// @Param markId path string true "Mark ID"
// @Success 204
// @Router /courses/{id}/marks/{markId} [delete]
func (h *CourseHandler) DeleteMark(c *gin.Context) {
	if err := h.service.DeleteMark(c.Request.Context(), c.Param("id"), c.Param("markId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddTask godoc
// @Summary Add a task to a course
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddTaskRequest true "Task payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/tasks [post]
func (h *CourseHandler) AddTask(c *gin.Context) {
	var req service.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}
	task, err := h.service.AddTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param taskId path string true "Task ID"
// @Param payload body service.UpdateTaskRequest true "Task payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/tasks/{taskId} [put]
func (h *CourseHandler) UpdateTask(c *gin.Context) {
	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}
	task, err := h.service.UpdateTask(c.Request.Context(), c.Param("id"), c.Param("taskId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Tasks
// @Param id path string true "Course ID"
// @Param taskId path string true "Task ID"
// @Success 204
// @Router /courses/{id}/tasks/{taskId} [delete]
func (h *CourseHandler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("id"), c.Param("taskId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddNote godoc
// @Summary Add a note to a course
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/notes [post]
func (h *CourseHandler) AddNote(c *gin.Context) {
	var req service.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}
	note, err := h.service.AddNote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateNote godoc
// @Summary Update a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param noteId path string true "Note ID"
// @Param payload body service.UpdateNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/notes/{noteId} [put]
func (h *CourseHandler) UpdateNote(c *gin.Context) {
	var req service.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}
	note, err := h.service.UpdateNote(c.Request.Context(), c.Param("id"), c.Param("noteId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags Notes
// @Param id path string true "Course ID"
// @Param noteId path string true "Note ID"
// @Success 204
// @Router /courses/{id}/notes/{noteId} [delete]
func (h *CourseHandler) DeleteNote(c *gin.Context) {
	if err := h.service.DeleteNote(c.Request.Context(), c.Param("id"), c.Param("noteId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
