package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/internal/timeutil"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
	"github.com/noah-isme/timetable-tracker-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type timetableViewer interface {
	Week() WeekView
}

type courseViewer interface {
	Get(id string) (models.Course, error)
	Summary(id string) (CourseSummary, error)
}

// ExportService renders the weekly timetable and per-course reports as
// downloadable CSV or PDF tables.
type ExportService struct {
	timetables timetableViewer
	courses    courseViewer
	csv        *export.CSVRenderer
	pdf        *export.PDFRenderer
	logger     *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(timetables timetableViewer, courses courseViewer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetables: timetables,
		courses:    courses,
		csv:        export.NewCSVRenderer(),
		pdf:        export.NewPDFRenderer(),
		logger:     logger,
	}
}

// Timetable renders the full week as one table: a row per slot, a column
// per weekday.
func (s *ExportService) Timetable(format string) (*ExportFile, error) {
	week := s.timetables.Week()
	if len(week.Days) == 0 || len(week.Days[0].Slots) == 0 {
		return nil, appErrors.Clone(appErrors.ErrSetupIncomplete, "nothing to export yet")
	}

	columns := []string{"Time", "Slot"}
	for _, day := range week.Days {
		columns = append(columns, titleCase(string(day.Day)))
	}

	rows := make([][]string, 0, len(week.Days[0].Slots))
	for i, slot := range week.Days[0].Slots {
		row := []string{slotTimeRange(slot.Slot), slot.Name}
		for _, day := range week.Days {
			row = append(row, describeAssignment(day.Slots[i]))
		}
		rows = append(rows, row)
	}

	table := export.Table{Title: "Weekly Timetable", Columns: columns, Rows: rows}
	return s.render("timetable", format, table)
}

// Course renders one course's marks and tasks as a report table.
func (s *ExportService) Course(id, format string) (*ExportFile, error) {
	course, err := s.courses.Get(id)
	if err != nil {
		return nil, err
	}
	summary, err := s.courses.Summary(id)
	if err != nil {
		return nil, err
	}

	rows := [][]string{
		{"Course", course.Name, ""},
		{"Faculty", course.FacultyName, ""},
	}
	if course.CourseCode != "" {
		rows = append(rows, []string{"Code", course.CourseCode, ""})
	}
	if summary.AverageScore != nil {
		rows = append(rows, []string{"Average Score", fmt.Sprintf("%.1f%%", *summary.AverageScore), ""})
	}
	rows = append(rows, []string{"Progress", strconv.Itoa(summary.Progress) + "%", ""})
	for _, mark := range course.Marks {
		score := fmt.Sprintf("%g", mark.Score)
		if mark.MaxScore != nil {
			score = fmt.Sprintf("%g / %g", mark.Score, *mark.MaxScore)
		}
		rows = append(rows, []string{"Mark", mark.ExamName, score})
	}
	for _, task := range course.Tasks {
		status := "open"
		if task.Completed {
			status = "done"
		} else if task.Deadline != nil {
			status = "due " + task.Deadline.Format("2006-01-02")
		}
		rows = append(rows, []string{"Task", task.Name, status})
	}

	table := export.Table{
		Title:   course.Name,
		Columns: []string{"Kind", "Name", "Detail"},
		Rows:    rows,
	}
	return s.render("course-"+course.ID, format, table)
}

func (s *ExportService) render(name, format string, table export.Table) (*ExportFile, error) {
	stamp := time.Now().Format("20060102")
	switch strings.ToLower(format) {
	case FormatCSV, "":
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{Filename: fmt.Sprintf("%s-%s.csv", name, stamp), ContentType: "text/csv", Data: data}, nil
	case FormatPDF:
		data, err := s.pdf.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{Filename: fmt.Sprintf("%s-%s.pdf", name, stamp), ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
}

func slotTimeRange(slot models.Slot) string {
	start, errStart := timeutil.ParseClock(slot.StartTime)
	end, errEnd := timeutil.ParseClock(slot.EndTime)
	if errStart != nil || errEnd != nil {
		return slot.StartTime + " - " + slot.EndTime
	}
	return timeutil.Format12Hour(start) + " - " + timeutil.Format12Hour(end)
}

func describeAssignment(slot models.ResolvedSlot) string {
	if slot.IsBreak {
		return slot.Name
	}
	if slot.Assignment == nil {
		return "-"
	}
	if slot.Assignment.Course != nil {
		return slot.Assignment.Course.Name
	}
	if slot.Assignment.Label != "" {
		return slot.Assignment.Label
	}
	return models.KindConfig[slot.Assignment.Kind].Label
}

func titleCase(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + strings.ToLower(day[1:])
}
