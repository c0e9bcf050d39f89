package models

import "time"

// TaskPriority grades how urgent a task is.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Mark is one exam score recorded for a course. MaxScore is optional; marks
// without it are excluded from average computation.
type Mark struct {
	ID       string     `json:"id"`
	ExamName string     `json:"exam_name"`
	Score    float64    `json:"score"`
	MaxScore *float64   `json:"max_score,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// Percentage returns score/maxScore*100, or false when no max score is set.
func (m Mark) Percentage() (float64, bool) {
	if m.MaxScore == nil || *m.MaxScore == 0 {
		return 0, false
	}
	return m.Score / *m.MaxScore * 100, true
}

// Task is a to-do item attached to a course.
type Task struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Deadline  *time.Time   `json:"deadline,omitempty"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
	Priority  TaskPriority `json:"priority,omitempty"`
	Completed bool         `json:"completed"`
}

// Note is a free-form note attached to a course.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Course is a user-defined subject with its owned collections. Marks, tasks
// and notes are cascade-deleted with the course.
type Course struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	FacultyName        string    `json:"faculty_name"`
	CourseCode         string    `json:"course_code,omitempty"`
	Color              string    `json:"color"`
	CurrentUnit        string    `json:"current_unit"`
	PreviousClassTopic string    `json:"previous_class_topic"`
	Marks              []Mark    `json:"marks"`
	Tasks              []Task    `json:"tasks"`
	Notes              []Note    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Pagination captures list pagination metadata in responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
