// Package store owns the whole in-memory state tree of the tracker and its
// snapshot persistence. One instance exists per process; every mutation
// updates memory first, persists the affected snapshot, and rolls the
// memory change back if the save fails, so callers never observe state the
// blob store refused.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/pkg/blob"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

// Store holds courses, the canonical slot schedule, the weekly timetable and
// the setup flag, backed by a key-value blob store.
type Store struct {
	mu     sync.RWMutex
	blobs  blob.Store
	logger *zap.Logger
	now    func() time.Time

	courses       []models.Course
	slots         []models.Slot
	timetable     []models.DayTimetable
	setupComplete bool
}

// New builds a Store around the given blob backend.
func New(blobs blob.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{blobs: blobs, logger: logger, now: time.Now}
}

// Load reads the four snapshot keys. Absent keys leave the zero state in
// place, so a fresh blob store boots the app into setup mode.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadKey(ctx, blob.KeySetupComplete, &s.setupComplete); err != nil {
		return err
	}
	if err := s.loadKey(ctx, blob.KeyCourses, &s.courses); err != nil {
		return err
	}
	if err := s.loadKey(ctx, blob.KeySlots, &s.slots); err != nil {
		return err
	}
	if err := s.loadKey(ctx, blob.KeyTimetable, &s.timetable); err != nil {
		return err
	}
	s.logger.Info("state loaded",
		zap.Int("courses", len(s.courses)),
		zap.Int("slots", len(s.slots)),
		zap.Bool("setup_complete", s.setupComplete),
	)
	return nil
}

func (s *Store) loadKey(ctx context.Context, key string, target interface{}) error {
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		if blob.IsNotFound(err) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load snapshot "+key)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "corrupt snapshot "+key)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode snapshot "+key)
	}
	if err := s.blobs.Set(ctx, key, data); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to save snapshot "+key)
	}
	return nil
}

// Slots returns a copy of the canonical slot schedule.
func (s *Store) Slots() []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Slot(nil), s.slots...)
}

// ReplaceSlots swaps in a new canonical schedule wholesale.
func (s *Store) ReplaceSlots(ctx context.Context, slots []models.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.slots
	s.slots = append([]models.Slot(nil), slots...)
	if err := s.persist(ctx, blob.KeySlots, s.slots); err != nil {
		s.slots = prev
		return err
	}
	return nil
}

// Timetable returns a copy of the weekly assignment sets.
func (s *Store) Timetable() []models.DayTimetable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTimetable(s.timetable)
}

// ReplaceTimetable swaps in the full five-day timetable wholesale.
func (s *Store) ReplaceTimetable(ctx context.Context, timetable []models.DayTimetable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.timetable
	s.timetable = copyTimetable(timetable)
	if err := s.persist(ctx, blob.KeyTimetable, s.timetable); err != nil {
		s.timetable = prev
		return err
	}
	return nil
}

// Courses returns a copy of the course registry.
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCourses(s.courses)
}

// CourseByID returns a copy of the course with the given id.
func (s *Store) CourseByID(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			return copyCourse(s.courses[i]), true
		}
	}
	return models.Course{}, false
}

// AddCourse mints an id and timestamps for the course and persists the
// registry.
func (s *Store) AddCourse(ctx context.Context, course models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	course.ID = uuid.NewString()
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.Marks == nil {
		course.Marks = []models.Mark{}
	}
	if course.Tasks == nil {
		course.Tasks = []models.Task{}
	}
	if course.Notes == nil {
		course.Notes = []models.Note{}
	}

	prev := s.courses
	s.courses = append(copyCourses(s.courses), course)
	if err := s.persist(ctx, blob.KeyCourses, s.courses); err != nil {
		s.courses = prev
		return models.Course{}, err
	}
	return copyCourse(course), nil
}

// SaveCourse replaces the stored course with the same id, bumping UpdatedAt.
// Any mutation to a course or its owned collections goes through here, so a
// failed save always leaves the prior record intact.
func (s *Store) SaveCourse(ctx context.Context, course models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.courses {
		if s.courses[i].ID == course.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	course.UpdatedAt = s.now()
	prev := s.courses
	next := copyCourses(s.courses)
	next[index] = copyCourse(course)
	s.courses = next
	if err := s.persist(ctx, blob.KeyCourses, s.courses); err != nil {
		s.courses = prev
		return models.Course{}, err
	}
	return copyCourse(course), nil
}

// DeleteCourse removes the course with all its marks, tasks and notes, and
// scrubs any timetable assignment that references it, as one operation.
// Both snapshots roll back together when either save fails.
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	nextCourses := make([]models.Course, 0, len(s.courses))
	for i := range s.courses {
		if s.courses[i].ID == id {
			found = true
			continue
		}
		nextCourses = append(nextCourses, copyCourse(s.courses[i]))
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	nextTimetable := make([]models.DayTimetable, 0, len(s.timetable))
	scrubbed := 0
	for _, day := range s.timetable {
		assignments := make([]models.SlotAssignment, 0, len(day.SlotAssignments))
		for _, a := range day.SlotAssignments {
			if a.Kind == models.SlotKindCourse && a.CourseID == id {
				scrubbed++
				continue
			}
			assignments = append(assignments, a)
		}
		nextTimetable = append(nextTimetable, models.DayTimetable{Day: day.Day, SlotAssignments: assignments})
	}

	prevCourses, prevTimetable := s.courses, s.timetable
	s.courses = nextCourses
	s.timetable = nextTimetable
	if err := s.persist(ctx, blob.KeyCourses, s.courses); err != nil {
		s.courses, s.timetable = prevCourses, prevTimetable
		return err
	}
	if err := s.persist(ctx, blob.KeyTimetable, s.timetable); err != nil {
		s.courses, s.timetable = prevCourses, prevTimetable
		// best effort: put the course snapshot back in line with memory
		if restoreErr := s.persist(ctx, blob.KeyCourses, s.courses); restoreErr != nil {
			s.logger.Error("failed to restore course snapshot after rollback", zap.Error(restoreErr))
		}
		return err
	}
	if scrubbed > 0 {
		s.logger.Info("scrubbed course assignments", zap.String("course_id", id), zap.Int("assignments", scrubbed))
	}
	return nil
}

// SetupComplete reports whether guided setup has finished.
func (s *Store) SetupComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setupComplete
}

// CompleteSetup flips and persists the setup flag.
func (s *Store) CompleteSetup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.setupComplete
	s.setupComplete = true
	if err := s.persist(ctx, blob.KeySetupComplete, s.setupComplete); err != nil {
		s.setupComplete = prev
		return err
	}
	return nil
}

// Reset clears all four snapshots and empties the in-memory state, dropping
// the app back to first-run setup.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{blob.KeySetupComplete, blob.KeyCourses, blob.KeySlots, blob.KeyTimetable} {
		if err := s.blobs.Delete(ctx, key); err != nil {
			return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to clear snapshot "+key)
		}
	}
	s.courses = nil
	s.slots = nil
	s.timetable = nil
	s.setupComplete = false
	return nil
}

func copyCourse(c models.Course) models.Course {
	c.Marks = append([]models.Mark(nil), c.Marks...)
	c.Tasks = append([]models.Task(nil), c.Tasks...)
	c.Notes = append([]models.Note(nil), c.Notes...)
	return c
}

func copyCourses(courses []models.Course) []models.Course {
	next := make([]models.Course, len(courses))
	for i := range courses {
		next[i] = copyCourse(courses[i])
	}
	return next
}

func copyTimetable(timetable []models.DayTimetable) []models.DayTimetable {
	next := make([]models.DayTimetable, len(timetable))
	for i, day := range timetable {
		next[i] = models.DayTimetable{
			Day:             day.Day,
			SlotAssignments: append([]models.SlotAssignment(nil), day.SlotAssignments...),
		}
	}
	return next
}
