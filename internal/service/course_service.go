package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

type courseStore interface {
	Courses() []models.Course
	CourseByID(id string) (models.Course, bool)
	AddCourse(ctx context.Context, course models.Course) (models.Course, error)
	SaveCourse(ctx context.Context, course models.Course) (models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CreateCourseRequest describes payload for creating a course.
type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required"`
	FacultyName string `json:"faculty_name" validate:"required"`
	CourseCode  string `json:"course_code"`
	Color       string `json:"color" validate:"required"`
}

// UpdateCourseRequest updates course fields; nil pointers leave a field
// untouched.
type UpdateCourseRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1"`
	FacultyName        *string `json:"faculty_name" validate:"omitempty,min=1"`
	CourseCode         *string `json:"course_code"`
	Color              *string `json:"color" validate:"omitempty,min=1"`
	CurrentUnit        *string `json:"current_unit"`
	PreviousClassTopic *string `json:"previous_class_topic"`
}

// AddMarkRequest records one exam score.
type AddMarkRequest struct {
	ExamName string     `json:"exam_name" validate:"required"`
	Score    float64    `json:"score" validate:"min=0"`
	MaxScore *float64   `json:"max_score" validate:"omitempty,gt=0"`
	Date     *time.Time `json:"date"`
}

// UpdateMarkRequest updates a mark; nil pointers leave a field untouched.
type UpdateMarkRequest struct {
	ExamName *string    `json:"exam_name" validate:"omitempty,min=1"`
	Score    *float64   `json:"score" validate:"omitempty,min=0"`
	MaxScore *float64   `json:"max_score" validate:"omitempty,gt=0"`
	Date     *time.Time `json:"date"`
}

// AddTaskRequest creates a to-do item for a course.
type AddTaskRequest struct {
	Name     string              `json:"name" validate:"required"`
	Deadline *time.Time          `json:"deadline"`
	Priority models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskRequest updates a task; nil pointers leave a field untouched.
type UpdateTaskRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=1"`
	Deadline  *time.Time           `json:"deadline"`
	Priority  *models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed *bool                `json:"completed"`
}

// AddNoteRequest attaches a free-form note to a course.
type AddNoteRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"is_pinned"`
}

// UpdateNoteRequest updates a note; nil pointers leave a field untouched.
type UpdateNoteRequest struct {
	Title    *string   `json:"title" validate:"omitempty,min=1"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"is_pinned"`
}

// TaskStats summarises a course's to-do list.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// CourseSummary carries the derived aggregates for a course detail view.
type CourseSummary struct {
	CourseID     string    `json:"course_id"`
	AverageScore *float64  `json:"average_score,omitempty"`
	Progress     int       `json:"progress"`
	MarkCount    int       `json:"mark_count"`
	NoteCount    int       `json:"note_count"`
	Tasks        TaskStats `json:"tasks"`
}

// CourseService is the CRUD registry for courses and their owned marks,
// tasks and notes, plus derived aggregates.
type CourseService struct {
	store     courseStore
	validator *validator.Validate
	logger    *zap.Logger
	clock     func() time.Time
}

// NewCourseService instantiates CourseService.
func NewCourseService(store courseStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: store, validator: validate, logger: logger, clock: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (s *CourseService) WithClock(clock func() time.Time) *CourseService {
	s.clock = clock
	return s
}

// List returns all courses.
func (s *CourseService) List() []models.Course {
	return s.store.Courses()
}

// Get returns one course by id.
func (s *CourseService) Get(id string) (models.Course, error) {
	course, ok := s.store.CourseByID(id)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Create adds a new course to the registry.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.Course{
		Name:        req.Name,
		FacultyName: req.FacultyName,
		CourseCode:  req.CourseCode,
		Color:       req.Color,
	}
	created, err := s.store.AddCourse(ctx, course)
	if err != nil {
		return models.Course{}, err
	}
	s.logger.Info("course created", zap.String("course_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Update applies partial field updates to a course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.Get(id)
	if err != nil {
		return models.Course{}, err
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.FacultyName != nil {
		course.FacultyName = *req.FacultyName
	}
	if req.CourseCode != nil {
		course.CourseCode = *req.CourseCode
	}
	if req.Color != nil {
		course.Color = *req.Color
	}
	if req.CurrentUnit != nil {
		course.CurrentUnit = *req.CurrentUnit
	}
	if req.PreviousClassTopic != nil {
		course.PreviousClassTopic = *req.PreviousClassTopic
	}
	return s.store.SaveCourse(ctx, course)
}

// Delete removes a course and cascades to its marks, tasks, notes and any
// timetable assignment referencing it.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

// AddMark records an exam score. When a max score is present the score may
// not exceed it; the same rule applies on update.
func (s *CourseService) AddMark(ctx context.Context, courseID string, req AddMarkRequest) (models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Mark{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}
	if req.MaxScore != nil && req.Score > *req.MaxScore {
		return models.Mark{}, appErrors.Clone(appErrors.ErrValidation, "score cannot exceed max score")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Mark{}, err
	}
	mark := models.Mark{
		ID:       uuid.NewString(),
		ExamName: req.ExamName,
		Score:    req.Score,
		MaxScore: req.MaxScore,
		Date:     req.Date,
	}
	course.Marks = append(course.Marks, mark)
	if _, err := s.store.SaveCourse(ctx, course); err != nil {
		return models.Mark{}, err
	}
	return mark, nil
}

// UpdateMark applies partial updates to a mark.
func (s *CourseService) UpdateMark(ctx context.Context, courseID, markID string, req UpdateMarkRequest) (models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Mark{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Mark{}, err
	}
	for i := range course.Marks {
		if course.Marks[i].ID != markID {
			continue
		}
		mark := course.Marks[i]
		if req.ExamName != nil {
			mark.ExamName = *req.ExamName
		}
		if req.Score != nil {
			mark.Score = *req.Score
		}
		if req.MaxScore != nil {
			mark.MaxScore = req.MaxScore
		}
		if req.Date != nil {
			mark.Date = req.Date
		}
		if mark.MaxScore != nil && mark.Score > *mark.MaxScore {
			return models.Mark{}, appErrors.Clone(appErrors.ErrValidation, "score cannot exceed max score")
		}
		course.Marks[i] = mark
		if _, err := s.store.SaveCourse(ctx, course); err != nil {
			return models.Mark{}, err
		}
		return mark, nil
	}
	return models.Mark{}, appErrors.Clone(appErrors.ErrNotFound, "mark not found")
}

// DeleteMark removes a mark from a course.
func (s *CourseService) DeleteMark(ctx context.Context, courseID, markID string) error {
	course, err := s.Get(courseID)
	if err != nil {
		return err
	}
	marks := make([]models.Mark, 0, len(course.Marks))
	found := false
	for _, mark := range course.Marks {
		if mark.ID == markID {
			found = true
			continue
		}
		marks = append(marks, mark)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "mark not found")
	}
	course.Marks = marks
	_, err = s.store.SaveCourse(ctx, course)
	return err
}

// AddTask creates a to-do item on a course.
func (s *CourseService) AddTask(ctx context.Context, courseID string, req AddTaskRequest) (models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Task{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Task{}, err
	}
	now := s.clock()
	task := models.Task{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Deadline:  req.Deadline,
		CreatedAt: &now,
		Priority:  req.Priority,
	}
	course.Tasks = append(course.Tasks, task)
	if _, err := s.store.SaveCourse(ctx, course); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies partial updates to a task.
func (s *CourseService) UpdateTask(ctx context.Context, courseID, taskID string, req UpdateTaskRequest) (models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Task{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Task{}, err
	}
	for i := range course.Tasks {
		if course.Tasks[i].ID != taskID {
			continue
		}
		task := course.Tasks[i]
		if req.Name != nil {
			task.Name = *req.Name
		}
		if req.Deadline != nil {
			task.Deadline = req.Deadline
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.Completed != nil {
			task.Completed = *req.Completed
		}
		course.Tasks[i] = task
		if _, err := s.store.SaveCourse(ctx, course); err != nil {
			return models.Task{}, err
		}
		return task, nil
	}
	return models.Task{}, appErrors.Clone(appErrors.ErrNotFound, "task not found")
}

// DeleteTask removes a task from a course.
func (s *CourseService) DeleteTask(ctx context.Context, courseID, taskID string) error {
	course, err := s.Get(courseID)
	if err != nil {
		return err
	}
	tasks := make([]models.Task, 0, len(course.Tasks))
	found := false
	for _, task := range course.Tasks {
		if task.ID == taskID {
			found = true
			continue
		}
		tasks = append(tasks, task)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	course.Tasks = tasks
	_, err = s.store.SaveCourse(ctx, course)
	return err
}

// AddNote attaches a note to a course.
func (s *CourseService) AddNote(ctx context.Context, courseID string, req AddNoteRequest) (models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Note{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Note{}, err
	}
	now := s.clock()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPinned:  req.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	course.Notes = append(course.Notes, note)
	if _, err := s.store.SaveCourse(ctx, course); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// UpdateNote applies partial updates to a note.
func (s *CourseService) UpdateNote(ctx context.Context, courseID, noteID string, req UpdateNoteRequest) (models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Note{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	course, err := s.Get(courseID)
	if err != nil {
		return models.Note{}, err
	}
	for i := range course.Notes {
		if course.Notes[i].ID != noteID {
			continue
		}
		note := course.Notes[i]
		if req.Title != nil {
			note.Title = *req.Title
		}
		if req.Content != nil {
			note.Content = *req.Content
		}
		if req.Tags != nil {
			note.Tags = *req.Tags
		}
		if req.IsPinned != nil {
			note.IsPinned = *req.IsPinned
		}
		note.UpdatedAt = s.clock()
		course.Notes[i] = note
		if _, err := s.store.SaveCourse(ctx, course); err != nil {
			return models.Note{}, err
		}
		return note, nil
	}
	return models.Note{}, appErrors.Clone(appErrors.ErrNotFound, "note not found")
}

// DeleteNote removes a note from a course.
func (s *CourseService) DeleteNote(ctx context.Context, courseID, noteID string) error {
	course, err := s.Get(courseID)
	if err != nil {
		return err
	}
	notes := make([]models.Note, 0, len(course.Notes))
	found := false
	for _, note := range course.Notes {
		if note.ID == noteID {
			found = true
			continue
		}
		notes = append(notes, note)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "note not found")
	}
	course.Notes = notes
	_, err = s.store.SaveCourse(ctx, course)
	return err
}

// Summary computes the derived aggregates for a course.
func (s *CourseService) Summary(id string) (CourseSummary, error) {
	course, err := s.Get(id)
	if err != nil {
		return CourseSummary{}, err
	}
	summary := CourseSummary{
		CourseID:     course.ID,
		AverageScore: AverageScore(course.Marks),
		Progress:     CourseProgress(course),
		MarkCount:    len(course.Marks),
		NoteCount:    len(course.Notes),
		Tasks:        taskStats(course.Tasks, s.clock()),
	}
	return summary, nil
}

// AverageScore averages score/maxScore*100 over marks that carry a max
// score. Marks without one are excluded from both the sum and the count;
// with zero eligible marks there is no average, not a zero.
func AverageScore(marks []models.Mark) *float64 {
	var total float64
	count := 0
	for _, mark := range marks {
		if pct, ok := mark.Percentage(); ok {
			total += pct
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)
	return &avg
}

// CourseProgress sums four independent 25%-weighted signals: a current unit
// is set, a previous-class topic is set, at least one note exists, at least
// one mark exists.
func CourseProgress(course models.Course) int {
	progress := 0
	if course.CurrentUnit != "" {
		progress += 25
	}
	if course.PreviousClassTopic != "" {
		progress += 25
	}
	if len(course.Notes) > 0 {
		progress += 25
	}
	if len(course.Marks) > 0 {
		progress += 25
	}
	return progress
}

func taskStats(tasks []models.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
			continue
		}
		if task.Deadline != nil && task.Deadline.Before(now) {
			stats.Overdue++
		}
	}
	return stats
}
