package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

func trackerSlots() []models.Slot {
	return []models.Slot{
		{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"},
		{ID: "b1", Index: 2, Name: "Short Break", Kind: models.SlotKindShortBreak, StartTime: "08:45", EndTime: "09:00", IsBreak: true},
		{ID: "s2", Index: 3, Name: "Period 2", Kind: models.SlotKindCourse, StartTime: "09:00", EndTime: "09:45"},
	}
}

func fullWeekRequest() ReplaceTimetableRequest {
	days := make([]DayAssignmentsRequest, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		days = append(days, DayAssignmentsRequest{Day: day, Assignments: []AssignmentRequest{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "s2", Kind: models.SlotKindFree, Label: "Study hall"},
		}})
	}
	return ReplaceTimetableRequest{Days: days}
}

func timetableStub() *stateStub {
	return &stateStub{
		slots:   trackerSlots(),
		courses: []models.Course{{ID: "math", Name: "Mathematics"}},
	}
}

func TestReplaceAllSavesCleanWeek(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)

	saved, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)
	require.Len(t, saved, 5)
	assert.Equal(t, models.Monday, saved[0].Day)
	assert.Len(t, saved[0].SlotAssignments, 2)
	assert.NotNil(t, stub.replacedTimetable)
}

func TestReplaceAllRequiresSlotSchedule(t *testing.T) {
	svc := NewTimetableService(&stateStub{}, nil, nil)
	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSetupIncomplete.Code, appErrors.FromError(err).Code)
}

func TestReplaceAllCollectsAllViolations(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)

	req := ReplaceTimetableRequest{Days: []DayAssignmentsRequest{
		{Day: "FUNDAY"},
		{Day: models.Monday, Assignments: []AssignmentRequest{
			{SlotID: "ghost", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "b1", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "s1", Kind: models.SlotKindCourse},
			{SlotID: "s2", Kind: models.SlotKindCourse, CourseID: "deleted"},
		}},
		{Day: models.Monday},
	}}

	_, err := svc.ReplaceAll(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	violations, ok := appErr.Details.(TimetableValidationError)
	require.True(t, ok)

	codes := map[string]int{}
	for _, v := range violations {
		codes[v.Code]++
	}
	assert.Equal(t, 1, codes[appErrors.ErrValidation.Code], "unknown weekday")
	assert.Equal(t, 1, codes[appErrors.ErrConflict.Code], "duplicate day")
	assert.Equal(t, 1, codes[appErrors.ErrNotFound.Code], "unknown slot")
	assert.Equal(t, 1, codes[appErrors.ErrBreakNotAssignable.Code], "break assignment")
	assert.Equal(t, 2, codes[appErrors.ErrMissingCourseRef.Code], "missing and dangling course")
	assert.Equal(t, 5, codes[appErrors.ErrIncompleteDay.Code], "all five days incomplete")

	// Nothing was saved.
	assert.Nil(t, stub.replacedTimetable)
}

func TestReplaceAllIncompleteDayRejected(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)

	req := fullWeekRequest()
	// Drop Friday's second assignment.
	req.Days[4].Assignments = req.Days[4].Assignments[:1]

	_, err := svc.ReplaceAll(context.Background(), req)
	require.Error(t, err)

	violations := appErrors.FromError(err).Details.(TimetableValidationError)
	require.Len(t, violations, 1)
	assert.Equal(t, models.Friday, violations[0].Day)
	assert.Equal(t, appErrors.ErrIncompleteDay.Code, violations[0].Code)
}

func TestDayRejectsUnknownWeekday(t *testing.T) {
	svc := NewTimetableService(timetableStub(), nil, nil)
	_, err := svc.Day("SUNDAY")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWeekResolvesAllDays(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)
	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)

	week := svc.Week()
	require.Len(t, week.Days, 5)
	for _, day := range week.Days {
		require.Len(t, day.Slots, 3)
		require.NotNil(t, day.Slots[0].Assignment)
		assert.Equal(t, "Mathematics", day.Slots[0].Assignment.Course.Name)
	}
}

func TestNowDuringSlot(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)
	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)

	// Wednesday 09:20, mid Period 2.
	svc.WithClock(func() time.Time { return time.Date(2026, 9, 2, 9, 20, 0, 0, time.UTC) })

	view := svc.Now()
	assert.Equal(t, models.Wednesday, view.Day)
	assert.False(t, view.IsWeekend)
	assert.Equal(t, "9:20 AM", view.Time)
	require.NotNil(t, view.CurrentIndex)
	assert.Equal(t, 2, *view.CurrentIndex)
	require.NotNil(t, view.Current)
	assert.Equal(t, "s2", view.Current.ID)
	assert.Nil(t, view.Next)
}

func TestNowBetweenSlots(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)
	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)

	// Monday 07:30, before the first slot.
	svc.WithClock(func() time.Time { return time.Date(2026, 8, 31, 7, 30, 0, 0, time.UTC) })

	view := svc.Now()
	assert.Nil(t, view.Current)
	require.NotNil(t, view.Next)
	assert.Equal(t, "s1", view.Next.Slot.ID)
	assert.Equal(t, 30, view.Next.MinutesUntil)
}

func TestNowOnWeekendFallsBackToMonday(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)
	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)

	// Saturday 2026-09-05.
	svc.WithClock(func() time.Time { return time.Date(2026, 9, 5, 9, 20, 0, 0, time.UTC) })

	view := svc.Now()
	assert.Equal(t, models.Monday, view.Day)
	assert.True(t, view.IsWeekend)
}

func TestProgress(t *testing.T) {
	stub := timetableStub()
	svc := NewTimetableService(stub, nil, nil)

	progress := svc.Progress()
	assert.Equal(t, 0, progress.Overall)
	require.Len(t, progress.Days, 5)
	assert.False(t, progress.Days[0].Complete)

	_, err := svc.ReplaceAll(context.Background(), fullWeekRequest())
	require.NoError(t, err)

	progress = svc.Progress()
	assert.Equal(t, 100, progress.Overall)
	for _, day := range progress.Days {
		assert.True(t, day.Complete)
	}
}
