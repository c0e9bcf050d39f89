package schedule

import (
	"math"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

// AssignmentSet is the in-memory draft of per-weekday slot assignments built
// up during setup. It answers completeness queries without touching
// persistence; saving the finished draft is the caller's move.
type AssignmentSet struct {
	days map[models.Weekday]map[string]models.SlotAssignment
}

// NewAssignmentSet returns an empty draft.
func NewAssignmentSet() *AssignmentSet {
	return &AssignmentSet{days: make(map[models.Weekday]map[string]models.SlotAssignment)}
}

// NewAssignmentSetFrom seeds a draft from an existing timetable.
func NewAssignmentSetFrom(timetable []models.DayTimetable) *AssignmentSet {
	set := NewAssignmentSet()
	for _, day := range timetable {
		for _, assignment := range day.SlotAssignments {
			set.days[day.Day] = ensureDay(set.days, day.Day)
			set.days[day.Day][assignment.SlotID] = assignment
		}
	}
	return set
}

func ensureDay(days map[models.Weekday]map[string]models.SlotAssignment, day models.Weekday) map[string]models.SlotAssignment {
	if days[day] == nil {
		days[day] = make(map[string]models.SlotAssignment)
	}
	return days[day]
}

// Set upserts the assignment for (day, slotID), replacing any prior one.
// Break kinds are rejected outright, and a COURSE assignment without a
// course id is rejected rather than deferred to caller discipline.
func (s *AssignmentSet) Set(day models.Weekday, slotID string, kind models.SlotKind, courseID, label string) error {
	if !kind.Assignable() {
		return appErrors.Clone(appErrors.ErrBreakNotAssignable, "")
	}
	if kind == models.SlotKindCourse && courseID == "" {
		return appErrors.Clone(appErrors.ErrMissingCourseRef, "")
	}
	s.days[day] = ensureDay(s.days, day)
	s.days[day][slotID] = models.SlotAssignment{SlotID: slotID, Kind: kind, CourseID: courseID, Label: label}
	return nil
}

// Clear removes the draft assignment for (day, slotID), if any.
func (s *AssignmentSet) Clear(day models.Weekday, slotID string) {
	if assignments, ok := s.days[day]; ok {
		delete(assignments, slotID)
	}
}

// Assignments returns the draft assignments for a day ordered by the
// canonical slot list passed in.
func (s *AssignmentSet) Assignments(day models.Weekday, canonicalSlots []models.Slot) []models.SlotAssignment {
	assignments := s.days[day]
	result := make([]models.SlotAssignment, 0, len(assignments))
	for _, slot := range canonicalSlots {
		if a, ok := assignments[slot.ID]; ok {
			result = append(result, a)
		}
	}
	return result
}

// IsDayComplete reports whether every non-break slot in the canonical
// schedule has a valid assignment. Break slots are excluded from the
// denominator entirely; assignments for breaks or unknown slot ids never
// count toward completeness.
func (s *AssignmentSet) IsDayComplete(day models.Weekday, canonicalSlots []models.Slot) bool {
	return dayComplete(s.days[day], canonicalSlots)
}

func dayComplete(assignments map[string]models.SlotAssignment, canonicalSlots []models.Slot) bool {
	for _, slot := range canonicalSlots {
		if slot.IsBreak {
			continue
		}
		assignment, ok := assignments[slot.ID]
		if !ok || !validAssignment(assignment) {
			return false
		}
	}
	return len(canonicalSlots) > 0
}

func validAssignment(a models.SlotAssignment) bool {
	if !a.Kind.Assignable() {
		return false
	}
	if a.Kind == models.SlotKindCourse {
		return a.CourseID != ""
	}
	return true
}

// OverallProgress returns the share of the five weekdays that are complete,
// as a percentage rounded to the nearest integer.
func (s *AssignmentSet) OverallProgress(canonicalSlots []models.Slot) int {
	complete := 0
	for _, day := range models.Weekdays {
		if s.IsDayComplete(day, canonicalSlots) {
			complete++
		}
	}
	return int(math.Round(float64(complete) / float64(len(models.Weekdays)) * 100))
}

// IsTimetableDayComplete checks a persisted day timetable against the
// canonical slots using the same rules as the draft set.
func IsTimetableDayComplete(day models.DayTimetable, canonicalSlots []models.Slot) bool {
	assignments := make(map[string]models.SlotAssignment, len(day.SlotAssignments))
	for _, a := range day.SlotAssignments {
		assignments[a.SlotID] = a
	}
	return dayComplete(assignments, canonicalSlots)
}
