package models

// SlotKind classifies a segment of the daily schedule.
type SlotKind string

const (
	SlotKindCourse     SlotKind = "COURSE"
	SlotKindShortBreak SlotKind = "SHORT_BREAK"
	SlotKindLunchBreak SlotKind = "LUNCH_BREAK"
	SlotKindLibrary    SlotKind = "LIBRARY"
	SlotKindMentor     SlotKind = "MENTOR"
	SlotKindFree       SlotKind = "FREE"
)

// KindCapability describes what a slot kind allows.
type KindCapability struct {
	Label      string
	IsBreak    bool
	Assignable bool
}

// KindConfig resolves per-kind capabilities in one place instead of
// scattering kind conditionals across call sites.
var KindConfig = map[SlotKind]KindCapability{
	SlotKindCourse:     {Label: "Period", IsBreak: false, Assignable: true},
	SlotKindShortBreak: {Label: "Short Break", IsBreak: true, Assignable: false},
	SlotKindLunchBreak: {Label: "Lunch Break", IsBreak: true, Assignable: false},
	SlotKindLibrary:    {Label: "Library", IsBreak: false, Assignable: true},
	SlotKindMentor:     {Label: "Mentor", IsBreak: false, Assignable: true},
	SlotKindFree:       {Label: "Free", IsBreak: false, Assignable: true},
}

// Valid reports whether the kind is one of the known slot kinds.
func (k SlotKind) Valid() bool {
	_, ok := KindConfig[k]
	return ok
}

// IsBreak reports whether the kind is a fixed break kind.
func (k SlotKind) IsBreak() bool {
	return KindConfig[k].IsBreak
}

// Assignable reports whether a slot of this kind may carry an assignment.
func (k SlotKind) Assignable() bool {
	return KindConfig[k].Assignable
}

// Slot is one fixed segment of the canonical daily schedule. Times are
// 24-hour "HH:MM" strings, matching the persisted snapshot format.
type Slot struct {
	ID        string   `json:"id"`
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Kind      SlotKind `json:"kind"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	IsBreak   bool     `json:"is_break"`
}
