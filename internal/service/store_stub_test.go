package service

import (
	"context"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

// stateStub satisfies every service's store interface with plain in-memory
// state and injectable failures.
type stateStub struct {
	slots         []models.Slot
	timetable     []models.DayTimetable
	courses       []models.Course
	setupComplete bool

	replaceSlotsErr     error
	replaceTimetableErr error
	saveCourseErr       error
	resetErr            error

	replacedTimetable []models.DayTimetable
}

func (s *stateStub) Slots() []models.Slot { return s.slots }

func (s *stateStub) ReplaceSlots(_ context.Context, slots []models.Slot) error {
	if s.replaceSlotsErr != nil {
		return s.replaceSlotsErr
	}
	s.slots = slots
	return nil
}

func (s *stateStub) Timetable() []models.DayTimetable { return s.timetable }

func (s *stateStub) ReplaceTimetable(_ context.Context, timetable []models.DayTimetable) error {
	if s.replaceTimetableErr != nil {
		return s.replaceTimetableErr
	}
	s.timetable = timetable
	s.replacedTimetable = timetable
	return nil
}

func (s *stateStub) Courses() []models.Course { return s.courses }

func (s *stateStub) CourseByID(id string) (models.Course, bool) {
	for _, course := range s.courses {
		if course.ID == id {
			return course, true
		}
	}
	return models.Course{}, false
}

func (s *stateStub) AddCourse(_ context.Context, course models.Course) (models.Course, error) {
	if s.saveCourseErr != nil {
		return models.Course{}, s.saveCourseErr
	}
	if course.ID == "" {
		course.ID = "course-" + string(rune('a'+len(s.courses)))
	}
	if course.Marks == nil {
		course.Marks = []models.Mark{}
	}
	if course.Tasks == nil {
		course.Tasks = []models.Task{}
	}
	if course.Notes == nil {
		course.Notes = []models.Note{}
	}
	s.courses = append(s.courses, course)
	return course, nil
}

func (s *stateStub) SaveCourse(_ context.Context, course models.Course) (models.Course, error) {
	if s.saveCourseErr != nil {
		return models.Course{}, s.saveCourseErr
	}
	for i := range s.courses {
		if s.courses[i].ID == course.ID {
			s.courses[i] = course
			return course, nil
		}
	}
	return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

func (s *stateStub) DeleteCourse(_ context.Context, id string) error {
	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

func (s *stateStub) SetupComplete() bool { return s.setupComplete }

func (s *stateStub) CompleteSetup(_ context.Context) error {
	s.setupComplete = true
	return nil
}

func (s *stateStub) Reset(_ context.Context) error {
	if s.resetErr != nil {
		return s.resetErr
	}
	*s = stateStub{}
	return nil
}
