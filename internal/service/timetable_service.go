package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/schedule"
	"github.com/noah-isme/timetable-tracker-api/internal/timeutil"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

type timetableStore interface {
	Slots() []models.Slot
	Timetable() []models.DayTimetable
	ReplaceTimetable(ctx context.Context, timetable []models.DayTimetable) error
	Courses() []models.Course
	CourseByID(id string) (models.Course, bool)
}

// AssignmentRequest binds one slot to a course or labeled activity.
type AssignmentRequest struct {
	SlotID   string          `json:"slot_id" validate:"required"`
	Kind     models.SlotKind `json:"kind" validate:"required"`
	CourseID string          `json:"course_id"`
	Label    string          `json:"label"`
}

// DayAssignmentsRequest carries one weekday's assignments.
type DayAssignmentsRequest struct {
	Day         models.Weekday      `json:"day" validate:"required"`
	Assignments []AssignmentRequest `json:"assignments" validate:"dive"`
}

// ReplaceTimetableRequest replaces the full five-day timetable wholesale.
type ReplaceTimetableRequest struct {
	Days []DayAssignmentsRequest `json:"days" validate:"required,min=1,dive"`
}

// TimetableViolation is one reason a timetable replacement was rejected.
type TimetableViolation struct {
	Day     models.Weekday `json:"day"`
	SlotID  string         `json:"slot_id,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
}

// TimetableValidationError collects every violation found in one pass so a
// caller can present the complete report at once.
type TimetableValidationError []TimetableViolation

// Error implements the error interface.
func (e TimetableValidationError) Error() string {
	if len(e) == 0 {
		return "no timetable violations"
	}
	return fmt.Sprintf("%d timetable violation(s), first: %s (%s)", len(e), e[0].Message, e[0].Day)
}

// DayProgress reports completeness for one weekday.
type DayProgress struct {
	Day      models.Weekday `json:"day"`
	Complete bool           `json:"complete"`
}

// TimetableProgress reports completeness over the whole week.
type TimetableProgress struct {
	Days    []DayProgress `json:"days"`
	Overall int           `json:"overall"`
}

// NowView is the time-aware snapshot of today's schedule.
type NowView struct {
	Day          models.Weekday       `json:"day"`
	IsWeekend    bool                 `json:"is_weekend"`
	Time         string               `json:"time"`
	CurrentIndex *int                 `json:"current_index,omitempty"`
	Current      *models.ResolvedSlot `json:"current,omitempty"`
	Next         *models.UpcomingSlot `json:"next,omitempty"`
}

// WeekView is the fully resolved five-day timetable.
type WeekView struct {
	Days []DayView `json:"days"`
}

// DayView is one weekday's resolved schedule.
type DayView struct {
	Day   models.Weekday        `json:"day"`
	Slots []models.ResolvedSlot `json:"slots"`
}

// TimetableService joins the canonical slots, the weekly assignments and the
// course registry into display-ready views, and validates replacements.
type TimetableService struct {
	store     timetableStore
	validator *validator.Validate
	logger    *zap.Logger
	clock     func() time.Time
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(store timetableStore, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{store: store, validator: validate, logger: logger, clock: time.Now}
}

// WithClock overrides the wall clock, for tests and previews.
func (s *TimetableService) WithClock(clock func() time.Time) *TimetableService {
	s.clock = clock
	return s
}

// ReplaceAll validates the whole week against the canonical schedule and
// saves it atomically. Violations are batched: every incomplete day and
// every bad assignment is reported together, and nothing is saved unless
// the week is clean.
func (s *TimetableService) ReplaceAll(ctx context.Context, req ReplaceTimetableRequest) ([]models.DayTimetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	canonicalSlots := s.store.Slots()
	if len(canonicalSlots) == 0 {
		return nil, appErrors.Clone(appErrors.ErrSetupIncomplete, "no slot schedule has been saved yet")
	}
	slotByID := make(map[string]models.Slot, len(canonicalSlots))
	for _, slot := range canonicalSlots {
		slotByID[slot.ID] = slot
	}

	var violations TimetableValidationError
	seen := make(map[models.Weekday]bool)
	draft := schedule.NewAssignmentSet()

	for _, day := range req.Days {
		if !day.Day.Valid() {
			violations = append(violations, TimetableViolation{Day: day.Day, Code: appErrors.ErrValidation.Code, Message: "unknown weekday"})
			continue
		}
		if seen[day.Day] {
			violations = append(violations, TimetableViolation{Day: day.Day, Code: appErrors.ErrConflict.Code, Message: "duplicate day in payload"})
			continue
		}
		seen[day.Day] = true

		for _, assignment := range day.Assignments {
			slot, ok := slotByID[assignment.SlotID]
			if !ok {
				violations = append(violations, TimetableViolation{Day: day.Day, SlotID: assignment.SlotID, Code: appErrors.ErrNotFound.Code, Message: "assignment references an unknown slot"})
				continue
			}
			if slot.IsBreak {
				violations = append(violations, TimetableViolation{Day: day.Day, SlotID: assignment.SlotID, Code: appErrors.ErrBreakNotAssignable.Code, Message: fmt.Sprintf("%s is a break and cannot be assigned", slot.Name)})
				continue
			}
			if assignment.Kind == models.SlotKindCourse {
				if assignment.CourseID == "" {
					violations = append(violations, TimetableViolation{Day: day.Day, SlotID: assignment.SlotID, Code: appErrors.ErrMissingCourseRef.Code, Message: "course assignment is missing a course id"})
					continue
				}
				if _, ok := s.store.CourseByID(assignment.CourseID); !ok {
					violations = append(violations, TimetableViolation{Day: day.Day, SlotID: assignment.SlotID, Code: appErrors.ErrMissingCourseRef.Code, Message: "course assignment references a course that does not exist"})
					continue
				}
			}
			if err := draft.Set(day.Day, assignment.SlotID, assignment.Kind, assignment.CourseID, assignment.Label); err != nil {
				violations = append(violations, TimetableViolation{Day: day.Day, SlotID: assignment.SlotID, Code: appErrors.FromError(err).Code, Message: appErrors.FromError(err).Message})
			}
		}
	}

	for _, day := range models.Weekdays {
		if !draft.IsDayComplete(day, canonicalSlots) {
			violations = append(violations, TimetableViolation{Day: day, Code: appErrors.ErrIncompleteDay.Code, Message: "day has unassigned non-break slots"})
		}
	}

	if len(violations) > 0 {
		s.logger.Info("timetable rejected", zap.Int("violations", len(violations)))
		return nil, appErrors.Wrap(violations, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "timetable is incomplete or invalid").WithDetails(violations)
	}

	timetable := make([]models.DayTimetable, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		timetable = append(timetable, models.DayTimetable{
			Day:             day,
			SlotAssignments: draft.Assignments(day, canonicalSlots),
		})
	}

	if err := s.store.ReplaceTimetable(ctx, timetable); err != nil {
		return nil, err
	}
	s.logger.Info("timetable replaced")
	return timetable, nil
}

// Day returns the resolved schedule for a specific weekday.
func (s *TimetableService) Day(day models.Weekday) (DayView, error) {
	if !day.Valid() {
		return DayView{}, appErrors.Clone(appErrors.ErrValidation, "unknown weekday "+string(day))
	}
	resolved := schedule.ResolveDay(day, s.store.Slots(), s.store.Timetable(), s.store.Courses())
	return DayView{Day: day, Slots: resolved}, nil
}

// Today resolves the current schedule day (weekends fall back to Monday).
func (s *TimetableService) Today() DayView {
	day := timeutil.CurrentWeekday(s.clock())
	view, _ := s.Day(day)
	return view
}

// Week resolves all five weekdays in order.
func (s *TimetableService) Week() WeekView {
	slots := s.store.Slots()
	timetable := s.store.Timetable()
	courses := s.store.Courses()

	days := make([]DayView, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		days = append(days, DayView{Day: day, Slots: schedule.ResolveDay(day, slots, timetable, courses)})
	}
	return WeekView{Days: days}
}

// Now computes the time-aware view: which slot is active and which comes
// next, with a countdown. The resolver itself never special-cases weekends;
// IsWeekend tells the caller to suppress the current/next display.
func (s *TimetableService) Now() NowView {
	now := s.clock()
	nowMinutes := timeutil.MinuteOfDay(now)
	today := s.Today()

	view := NowView{
		Day:       today.Day,
		IsWeekend: timeutil.IsWeekend(now),
		Time:      timeutil.Format12Hour(nowMinutes),
	}
	if index, ok := schedule.CurrentSlotIndex(today.Slots, nowMinutes); ok {
		view.CurrentIndex = &index
		current := today.Slots[index]
		view.Current = &current
	}
	if next, ok := schedule.NextUpcomingSlot(today.Slots, nowMinutes); ok {
		view.Next = next
	}
	return view
}

// Progress reports per-day completeness and the overall percentage.
func (s *TimetableService) Progress() TimetableProgress {
	canonicalSlots := s.store.Slots()
	draft := schedule.NewAssignmentSetFrom(s.store.Timetable())

	progress := TimetableProgress{Days: make([]DayProgress, 0, len(models.Weekdays))}
	for _, day := range models.Weekdays {
		progress.Days = append(progress.Days, DayProgress{Day: day, Complete: draft.IsDayComplete(day, canonicalSlots)})
	}
	progress.Overall = draft.OverallProgress(canonicalSlots)
	return progress
}
