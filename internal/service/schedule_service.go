package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/schedule"
	"github.com/noah-isme/timetable-tracker-api/internal/timeutil"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

type slotStore interface {
	Slots() []models.Slot
	ReplaceSlots(ctx context.Context, slots []models.Slot) error
}

// SlotEntry is one proposed slot in a schedule replacement.
type SlotEntry struct {
	ID        string          `json:"id"`
	Index     int             `json:"index" validate:"required,min=1"`
	Name      string          `json:"name" validate:"required"`
	Kind      models.SlotKind `json:"kind" validate:"required"`
	StartTime string          `json:"start_time" validate:"required"`
	EndTime   string          `json:"end_time" validate:"required"`
}

// ReplaceSlotsRequest replaces the canonical schedule wholesale.
type ReplaceSlotsRequest struct {
	Slots []SlotEntry `json:"slots" validate:"required,min=1,dive"`
}

// ScheduleSummary aggregates display stats over the canonical schedule.
type ScheduleSummary struct {
	Periods       int    `json:"periods"`
	Breaks        int    `json:"breaks"`
	TotalDuration string `json:"total_duration"`
}

// ScheduleService manages the canonical daily slot schedule.
type ScheduleService struct {
	store     slotStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(store slotStore, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{store: store, validator: validate, logger: logger}
}

// Get returns the canonical slot schedule in index order.
func (s *ScheduleService) Get() []models.Slot {
	return s.store.Slots()
}

// Replace validates the proposed slots and swaps the canonical schedule
// atomically. Every offending slot is reported in a single pass; nothing is
// saved when any slot is rejected.
func (s *ScheduleService) Replace(ctx context.Context, req ReplaceSlotsRequest) ([]models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slots payload")
	}

	input := make([]schedule.SlotInput, len(req.Slots))
	for i, entry := range req.Slots {
		if !entry.Kind.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown slot kind "+string(entry.Kind))
		}
		input[i] = schedule.SlotInput{
			ID:        entry.ID,
			Index:     entry.Index,
			Name:      entry.Name,
			Kind:      entry.Kind,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}
	}

	canonical, validationErrs := schedule.ValidateSlots(input)
	if len(validationErrs) > 0 {
		s.logger.Info("slot schedule rejected", zap.Int("invalid_slots", len(validationErrs)))
		return nil, appErrors.Wrap(validationErrs, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "slot schedule is not well-formed").WithDetails(validationErrs)
	}

	if err := s.store.ReplaceSlots(ctx, canonical); err != nil {
		return nil, err
	}
	s.logger.Info("slot schedule replaced", zap.Int("slots", len(canonical)))
	return canonical, nil
}

// Summary computes period/break counts and the first-start to last-end span.
func (s *ScheduleService) Summary() ScheduleSummary {
	slots := s.store.Slots()
	summary := ScheduleSummary{TotalDuration: "0m"}
	for _, slot := range slots {
		if slot.IsBreak {
			summary.Breaks++
		} else {
			summary.Periods++
		}
	}
	if len(slots) > 0 {
		first, errFirst := timeutil.ParseClock(slots[0].StartTime)
		last, errLast := timeutil.ParseClock(slots[len(slots)-1].EndTime)
		if errFirst == nil && errLast == nil && last > first {
			summary.TotalDuration = timeutil.FormatDuration(last - first)
		}
	}
	return summary
}
