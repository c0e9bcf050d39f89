package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

// eightSlotDay mirrors a typical school day: seven periods plus breaks.
func eightSlotDay() []models.Slot {
	return []models.Slot{
		{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"},
		{ID: "s2", Index: 2, Name: "Period 2", Kind: models.SlotKindCourse, StartTime: "08:45", EndTime: "09:30"},
		{ID: "b1", Index: 3, Name: "Short Break", Kind: models.SlotKindShortBreak, StartTime: "09:30", EndTime: "09:45", IsBreak: true},
		{ID: "s3", Index: 4, Name: "Period 3", Kind: models.SlotKindCourse, StartTime: "09:45", EndTime: "10:30"},
		{ID: "s4", Index: 5, Name: "Period 4", Kind: models.SlotKindCourse, StartTime: "10:30", EndTime: "11:15"},
		{ID: "l1", Index: 6, Name: "Lunch", Kind: models.SlotKindLunchBreak, StartTime: "11:15", EndTime: "12:00", IsBreak: true},
		{ID: "s5", Index: 7, Name: "Period 5", Kind: models.SlotKindCourse, StartTime: "12:00", EndTime: "12:45"},
		{ID: "s6", Index: 8, Name: "Period 6", Kind: models.SlotKindCourse, StartTime: "12:45", EndTime: "13:30"},
		{ID: "s7", Index: 9, Name: "Period 7", Kind: models.SlotKindCourse, StartTime: "13:30", EndTime: "14:15"},
		{ID: "s8", Index: 10, Name: "Period 8", Kind: models.SlotKindCourse, StartTime: "14:15", EndTime: "15:00"},
	}
}

func TestSetRejectsBreakAssignment(t *testing.T) {
	set := NewAssignmentSet()
	err := set.Set(models.Monday, "b1", models.SlotKindShortBreak, "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBreakNotAssignable.Code, appErrors.FromError(err).Code)
}

func TestSetRejectsCourseWithoutCourseID(t *testing.T) {
	set := NewAssignmentSet()
	err := set.Set(models.Monday, "s1", models.SlotKindCourse, "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingCourseRef.Code, appErrors.FromError(err).Code)
}

func TestSetUpsertsAssignment(t *testing.T) {
	set := NewAssignmentSet()
	slots := eightSlotDay()

	require.NoError(t, set.Set(models.Monday, "s1", models.SlotKindCourse, "math", ""))
	require.NoError(t, set.Set(models.Monday, "s1", models.SlotKindCourse, "physics", ""))

	assignments := set.Assignments(models.Monday, slots)
	require.Len(t, assignments, 1)
	assert.Equal(t, "physics", assignments[0].CourseID)
}

func TestIsDayCompleteExcludesBreaks(t *testing.T) {
	set := NewAssignmentSet()
	slots := eightSlotDay()

	// Seven course slots get courses, the eighth is a free period. Breaks
	// stay unassigned and must not block completeness.
	courseSlots := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"}
	for i, slotID := range courseSlots {
		require.NoError(t, set.Set(models.Monday, slotID, models.SlotKindCourse, "course-"+string(rune('a'+i)), ""))
	}
	assert.False(t, set.IsDayComplete(models.Monday, slots))

	require.NoError(t, set.Set(models.Monday, "s8", models.SlotKindFree, "", "Study hall"))
	assert.True(t, set.IsDayComplete(models.Monday, slots))
}

func TestIsDayCompleteEmptySchedule(t *testing.T) {
	set := NewAssignmentSet()
	assert.False(t, set.IsDayComplete(models.Monday, nil))
}

func TestIsDayCompleteIgnoresUnknownSlotAssignments(t *testing.T) {
	set := NewAssignmentSet()
	slots := []models.Slot{
		{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"},
	}
	require.NoError(t, set.Set(models.Monday, "ghost", models.SlotKindCourse, "math", ""))
	assert.False(t, set.IsDayComplete(models.Monday, slots))
}

func TestClearRemovesAssignment(t *testing.T) {
	set := NewAssignmentSet()
	slots := eightSlotDay()

	require.NoError(t, set.Set(models.Monday, "s1", models.SlotKindCourse, "math", ""))
	set.Clear(models.Monday, "s1")
	assert.Empty(t, set.Assignments(models.Monday, slots))
}

func TestOverallProgress(t *testing.T) {
	slots := []models.Slot{
		{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"},
	}

	set := NewAssignmentSet()
	assert.Equal(t, 0, set.OverallProgress(slots))

	require.NoError(t, set.Set(models.Monday, "s1", models.SlotKindCourse, "math", ""))
	assert.Equal(t, 20, set.OverallProgress(slots))

	require.NoError(t, set.Set(models.Tuesday, "s1", models.SlotKindCourse, "math", ""))
	require.NoError(t, set.Set(models.Wednesday, "s1", models.SlotKindCourse, "math", ""))
	assert.Equal(t, 60, set.OverallProgress(slots))

	require.NoError(t, set.Set(models.Thursday, "s1", models.SlotKindCourse, "math", ""))
	require.NoError(t, set.Set(models.Friday, "s1", models.SlotKindCourse, "math", ""))
	assert.Equal(t, 100, set.OverallProgress(slots))
}

func TestAssignmentSetRoundTripsThroughTimetable(t *testing.T) {
	slots := eightSlotDay()
	timetable := []models.DayTimetable{
		{Day: models.Monday, SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "s2", Kind: models.SlotKindLibrary, Label: "Reading"},
		}},
	}

	set := NewAssignmentSetFrom(timetable)
	assignments := set.Assignments(models.Monday, slots)
	require.Len(t, assignments, 2)
	assert.Equal(t, "s1", assignments[0].SlotID)
	assert.Equal(t, models.SlotKindLibrary, assignments[1].Kind)

	assert.True(t, IsTimetableDayComplete(models.DayTimetable{
		Day: models.Monday,
		SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "s2", Kind: models.SlotKindCourse, CourseID: "bio"},
			{SlotID: "s3", Kind: models.SlotKindCourse, CourseID: "chem"},
			{SlotID: "s4", Kind: models.SlotKindCourse, CourseID: "geo"},
			{SlotID: "s5", Kind: models.SlotKindCourse, CourseID: "hist"},
			{SlotID: "s6", Kind: models.SlotKindCourse, CourseID: "eng"},
			{SlotID: "s7", Kind: models.SlotKindMentor, Label: "Mentor hour"},
			{SlotID: "s8", Kind: models.SlotKindFree, Label: "Study hall"},
		},
	}, slots))
}
