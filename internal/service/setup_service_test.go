package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

func TestSetupStatusFreshState(t *testing.T) {
	svc := NewSetupService(&stateStub{}, nil)
	status := svc.Status()
	assert.False(t, status.SetupComplete)
	assert.False(t, status.HasCourses)
	assert.False(t, status.HasSlots)
	assert.Equal(t, 0, status.Progress)
}

func TestCompleteRequiresSlots(t *testing.T) {
	svc := NewSetupService(&stateStub{}, nil)
	err := svc.Complete(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSetupIncomplete.Code, appErrors.FromError(err).Code)
}

func TestCompleteReportsIncompleteDays(t *testing.T) {
	stub := &stateStub{
		slots: trackerSlots(),
		timetable: []models.DayTimetable{
			{Day: models.Monday, SlotAssignments: []models.SlotAssignment{
				{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: "math"},
				{SlotID: "s2", Kind: models.SlotKindFree, Label: "Study hall"},
			}},
		},
	}
	svc := NewSetupService(stub, nil)

	err := svc.Complete(context.Background())
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSetupIncomplete.Code, appErr.Code)
	incomplete, ok := appErr.Details.([]models.Weekday)
	require.True(t, ok)
	assert.Equal(t, []models.Weekday{models.Tuesday, models.Wednesday, models.Thursday, models.Friday}, incomplete)
	assert.False(t, stub.setupComplete)
}

func TestCompleteFullWeek(t *testing.T) {
	timetable := make([]models.DayTimetable, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		timetable = append(timetable, models.DayTimetable{Day: day, SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: "math"},
			{SlotID: "s2", Kind: models.SlotKindFree, Label: "Study hall"},
		}})
	}
	stub := &stateStub{slots: trackerSlots(), timetable: timetable}
	svc := NewSetupService(stub, nil)

	require.NoError(t, svc.Complete(context.Background()))
	assert.True(t, stub.setupComplete)
	assert.Equal(t, 100, svc.Status().Progress)
}

func TestResetDropsEverything(t *testing.T) {
	stub := &stateStub{slots: trackerSlots(), setupComplete: true}
	svc := NewSetupService(stub, nil)

	require.NoError(t, svc.Reset(context.Background()))
	assert.False(t, stub.setupComplete)
	assert.Empty(t, stub.slots)
}
