package schedule

import (
	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/timeutil"
)

// ResolveDay joins the canonical slots with one weekday's assignments and
// the course list into a display-ready, index-ordered view. Break slots
// carry no assignment. A COURSE assignment whose course no longer exists
// resolves as unassigned rather than raising; a missing assignment resolves
// as unassigned too.
func ResolveDay(day models.Weekday, canonicalSlots []models.Slot, timetable []models.DayTimetable, courses []models.Course) []models.ResolvedSlot {
	var assignments map[string]models.SlotAssignment
	for _, dt := range timetable {
		if dt.Day == day {
			assignments = make(map[string]models.SlotAssignment, len(dt.SlotAssignments))
			for _, a := range dt.SlotAssignments {
				assignments[a.SlotID] = a
			}
			break
		}
	}

	courseByID := make(map[string]*models.Course, len(courses))
	for i := range courses {
		courseByID[courses[i].ID] = &courses[i]
	}

	resolved := make([]models.ResolvedSlot, len(canonicalSlots))
	for i, slot := range canonicalSlots {
		rs := models.ResolvedSlot{Slot: slot}
		if !slot.IsBreak {
			if assignment, ok := assignments[slot.ID]; ok {
				rs.Assignment = resolveAssignment(assignment, courseByID)
			}
		}
		resolved[i] = rs
	}
	return resolved
}

func resolveAssignment(a models.SlotAssignment, courseByID map[string]*models.Course) *models.ResolvedAssignment {
	switch a.Kind {
	case models.SlotKindCourse:
		course, ok := courseByID[a.CourseID]
		if a.CourseID == "" || !ok {
			// Dangling course reference degrades to unassigned.
			return nil
		}
		return &models.ResolvedAssignment{Kind: models.SlotKindCourse, Course: course}
	case models.SlotKindLibrary, models.SlotKindMentor, models.SlotKindFree:
		return &models.ResolvedAssignment{Kind: a.Kind, Label: a.Label}
	default:
		return nil
	}
}

// CurrentSlotIndex returns the index of the slot whose [start, end) interval
// contains nowMinutes, scanning in canonical order. At most one slot can
// match a well-formed schedule.
func CurrentSlotIndex(resolved []models.ResolvedSlot, nowMinutes int) (int, bool) {
	for i, slot := range resolved {
		start, err := timeutil.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if nowMinutes >= start && nowMinutes < end {
			return i, true
		}
	}
	return 0, false
}

// NextUpcomingSlot returns the first slot whose start is strictly after
// nowMinutes, with the countdown until it begins. A slot already in
// progress is "current", never "next".
func NextUpcomingSlot(resolved []models.ResolvedSlot, nowMinutes int) (*models.UpcomingSlot, bool) {
	for i, slot := range resolved {
		start, err := timeutil.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		if start > nowMinutes {
			return &models.UpcomingSlot{Slot: slot, Index: i, MinutesUntil: start - nowMinutes}, true
		}
	}
	return nil, false
}
