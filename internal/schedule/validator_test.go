package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
)

func slotInput(index int, name string, kind models.SlotKind, start, end string) SlotInput {
	return SlotInput{Index: index, Name: name, Kind: kind, StartTime: start, EndTime: end}
}

func TestValidateSlotsAcceptsCleanSchedule(t *testing.T) {
	input := []SlotInput{
		slotInput(1, "Period 1", models.SlotKindCourse, "08:00", "08:45"),
		slotInput(2, "Short Break", models.SlotKindShortBreak, "08:45", "09:00"),
		slotInput(3, "Period 2", models.SlotKindCourse, "09:00", "09:45"),
	}

	slots, errs := ValidateSlots(input)
	require.Nil(t, errs)
	require.Len(t, slots, 3)

	for i, slot := range slots {
		assert.NotEmpty(t, slot.ID, "position %d", i+1)
		assert.Equal(t, input[i].Name, slot.Name)
	}
	assert.False(t, slots[0].IsBreak)
	assert.True(t, slots[1].IsBreak)
}

func TestValidateSlotsKeepsProvidedIDs(t *testing.T) {
	input := []SlotInput{
		{ID: "slot-1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"},
	}
	slots, errs := ValidateSlots(input)
	require.Nil(t, errs)
	assert.Equal(t, "slot-1", slots[0].ID)
}

func TestValidateSlotsReportsAllOffenders(t *testing.T) {
	input := []SlotInput{
		slotInput(1, "Period 1", models.SlotKindCourse, "8am", "08:45"),
		slotInput(2, "Period 2", models.SlotKindCourse, "09:00", "08:30"),
		slotInput(3, "Period 3", models.SlotKindCourse, "09:30", "10:30"),
		slotInput(4, "Period 4", models.SlotKindCourse, "10:15", "11:00"),
	}

	slots, errs := ValidateSlots(input)
	require.Nil(t, slots)
	require.Len(t, errs, 3)

	assert.Equal(t, ReasonInvalidFormat, errs[1].Reason)
	assert.Equal(t, ReasonEndBeforeStart, errs[2].Reason)
	assert.Equal(t, ReasonOverlapsNext, errs[3].Reason)
	assert.Equal(t, "Period 4", errs[3].OverlapsWith)

	_, clean := errs[4]
	assert.False(t, clean)
}

func TestValidateSlotsFirstFailingCheckWins(t *testing.T) {
	// Bad format and end-before-start on the same slot: only the format
	// error is reported.
	input := []SlotInput{
		slotInput(1, "Period 1", models.SlotKindCourse, "25:00", "08:00"),
	}
	_, errs := ValidateSlots(input)
	require.Len(t, errs, 1)
	assert.Equal(t, ReasonInvalidFormat, errs[1].Reason)
}

func TestValidateSlotsAllowsTouchingBoundaries(t *testing.T) {
	input := []SlotInput{
		slotInput(1, "Period 1", models.SlotKindCourse, "08:00", "08:45"),
		slotInput(2, "Period 2", models.SlotKindCourse, "08:45", "09:30"),
	}
	_, errs := ValidateSlots(input)
	assert.Nil(t, errs)
}

func TestValidateSlotsZeroLengthSlotRejected(t *testing.T) {
	input := []SlotInput{
		slotInput(1, "Period 1", models.SlotKindCourse, "08:00", "08:00"),
	}
	_, errs := ValidateSlots(input)
	require.Len(t, errs, 1)
	assert.Equal(t, ReasonEndBeforeStart, errs[1].Reason)
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		3: {Position: 3, Reason: ReasonOverlapsNext, Message: "overlaps with Period 4"},
		1: {Position: 1, Reason: ReasonInvalidFormat, Message: "invalid start time format"},
	}
	assert.Contains(t, errs.Error(), "2 invalid slot(s)")
	assert.Contains(t, errs.Error(), "position 1")
}
