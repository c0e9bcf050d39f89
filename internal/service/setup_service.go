package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/schedule"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

type setupStore interface {
	Slots() []models.Slot
	Timetable() []models.DayTimetable
	Courses() []models.Course
	SetupComplete() bool
	CompleteSetup(ctx context.Context) error
	Reset(ctx context.Context) error
}

// SetupStatus reports where the guided setup stands.
type SetupStatus struct {
	SetupComplete bool `json:"setup_complete"`
	HasCourses    bool `json:"has_courses"`
	HasSlots      bool `json:"has_slots"`
	Progress      int  `json:"progress"`
}

// SetupService drives the one-time guided setup flow.
type SetupService struct {
	store  setupStore
	logger *zap.Logger
}

// NewSetupService instantiates SetupService.
func NewSetupService(store setupStore, logger *zap.Logger) *SetupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetupService{store: store, logger: logger}
}

// Status returns the current setup state and overall timetable progress.
func (s *SetupService) Status() SetupStatus {
	slots := s.store.Slots()
	draft := schedule.NewAssignmentSetFrom(s.store.Timetable())
	return SetupStatus{
		SetupComplete: s.store.SetupComplete(),
		HasCourses:    len(s.store.Courses()) > 0,
		HasSlots:      len(slots) > 0,
		Progress:      draft.OverallProgress(slots),
	}
}

// Complete marks setup as finished. It refuses until a slot schedule exists
// and every weekday is complete.
func (s *SetupService) Complete(ctx context.Context) error {
	slots := s.store.Slots()
	if len(slots) == 0 {
		return appErrors.Clone(appErrors.ErrSetupIncomplete, "no slot schedule has been saved yet")
	}
	draft := schedule.NewAssignmentSetFrom(s.store.Timetable())
	var incomplete []models.Weekday
	for _, day := range models.Weekdays {
		if !draft.IsDayComplete(day, slots) {
			incomplete = append(incomplete, day)
		}
	}
	if len(incomplete) > 0 {
		return appErrors.Clone(appErrors.ErrSetupIncomplete, "some days still have unassigned slots").WithDetails(incomplete)
	}
	if err := s.store.CompleteSetup(ctx); err != nil {
		return err
	}
	s.logger.Info("setup completed")
	return nil
}

// Reset wipes all persisted state, returning the app to first-run setup.
func (s *SetupService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.logger.Info("state reset")
	return nil
}
