package models

// Weekday is one of the five fixed schedule days.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

// Weekdays lists the schedule days in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid reports whether the value is one of the five schedule days.
func (d Weekday) Valid() bool {
	for _, day := range Weekdays {
		if day == d {
			return true
		}
	}
	return false
}

// SlotAssignment binds a non-break slot to a course or a labeled activity
// for one weekday.
type SlotAssignment struct {
	SlotID   string   `json:"slot_id"`
	Kind     SlotKind `json:"kind"`
	CourseID string   `json:"course_id,omitempty"`
	Label    string   `json:"label,omitempty"`
}

// DayTimetable holds the assignment set for one weekday.
type DayTimetable struct {
	Day             Weekday          `json:"day"`
	SlotAssignments []SlotAssignment `json:"slot_assignments"`
}

// ResolvedAssignment is an assignment joined with its course, when the
// assignment points at one.
type ResolvedAssignment struct {
	Kind   SlotKind `json:"kind"`
	Course *Course  `json:"course,omitempty"`
	Label  string   `json:"label,omitempty"`
}

// ResolvedSlot is a canonical slot joined with its current assignment.
// Breaks and unassigned slots carry a nil assignment.
type ResolvedSlot struct {
	Slot
	Assignment *ResolvedAssignment `json:"assignment,omitempty"`
}

// UpcomingSlot describes the next slot that has not started yet.
type UpcomingSlot struct {
	Slot         ResolvedSlot `json:"slot"`
	Index        int          `json:"index"`
	MinutesUntil int          `json:"minutes_until"`
}
