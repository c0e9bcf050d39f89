// Package schedule holds the slot-schedule core: validation of the canonical
// daily slot structure, the per-day assignment set, and the time-aware day
// resolver. Everything here is pure in-memory logic; persistence lives in
// internal/store.
package schedule

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/timeutil"
)

// Reason codes for slot validation failures.
const (
	ReasonInvalidFormat  = "INVALID_FORMAT"
	ReasonEndBeforeStart = "END_BEFORE_START"
	ReasonOverlapsNext   = "OVERLAPS_NEXT"
)

// SlotInput is one candidate slot as proposed by the setup form.
type SlotInput struct {
	ID        string          `json:"id"`
	Index     int             `json:"index"`
	Name      string          `json:"name"`
	Kind      models.SlotKind `json:"kind"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
}

// SlotError describes why one slot was rejected.
type SlotError struct {
	Position     int    `json:"position"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	OverlapsWith string `json:"overlaps_with,omitempty"`
}

// ValidationErrors maps 1-based slot positions to their rejection reason.
// Validation is exhaustive: every offending slot gets an entry.
type ValidationErrors map[int]SlotError

// Error implements the error interface so a full report can travel as one
// wrapped error.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no slot errors"
	}
	positions := make([]int, 0, len(v))
	for pos := range v {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return fmt.Sprintf("%d invalid slot(s), first at position %d: %s", len(v), positions[0], v[positions[0]].Message)
}

// ValidateSlots checks a proposed slot list for well-formedness: both times
// parse as 24-hour HH:MM, start precedes end, and no slot runs past the
// start of its immediate successor. One error is recorded per offending
// slot (the first failing check wins) and all offenders are reported in a
// single pass. A clean list is returned as the canonical schedule with
// IsBreak derived from the kind table and ids minted where missing; no
// auto-correction is applied.
func ValidateSlots(input []SlotInput) ([]models.Slot, ValidationErrors) {
	errs := make(ValidationErrors)

	for i, slot := range input {
		position := i + 1

		start, startErr := timeutil.ParseClock(slot.StartTime)
		if startErr != nil {
			errs[position] = SlotError{Position: position, Reason: ReasonInvalidFormat, Message: "invalid start time format"}
			continue
		}
		end, endErr := timeutil.ParseClock(slot.EndTime)
		if endErr != nil {
			errs[position] = SlotError{Position: position, Reason: ReasonInvalidFormat, Message: "invalid end time format"}
			continue
		}
		if start >= end {
			errs[position] = SlotError{Position: position, Reason: ReasonEndBeforeStart, Message: "end time must be after start time"}
			continue
		}
		if i < len(input)-1 {
			next := input[i+1]
			nextStart, err := timeutil.ParseClock(next.StartTime)
			if err == nil && end > nextStart {
				errs[position] = SlotError{
					Position:     position,
					Reason:       ReasonOverlapsNext,
					Message:      fmt.Sprintf("overlaps with %s", next.Name),
					OverlapsWith: next.Name,
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	canonical := make([]models.Slot, len(input))
	for i, slot := range input {
		id := slot.ID
		if id == "" {
			id = uuid.NewString()
		}
		canonical[i] = models.Slot{
			ID:        id,
			Index:     slot.Index,
			Name:      slot.Name,
			Kind:      slot.Kind,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			IsBreak:   slot.Kind.IsBreak(),
		}
	}
	return canonical, nil
}
