package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	"github.com/noah-isme/timetable-tracker-api/pkg/blob"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

type blobStub struct {
	data    map[string][]byte
	setErr  map[string]error
	getErr  error
	deletes []string
}

func newBlobStub() *blobStub {
	return &blobStub{data: map[string][]byte{}, setErr: map[string]error{}}
}

func (b *blobStub) Get(_ context.Context, key string) ([]byte, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	value, ok := b.data[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return value, nil
}

func (b *blobStub) Set(_ context.Context, key string, value []byte) error {
	if err := b.setErr[key]; err != nil {
		return err
	}
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func (b *blobStub) Delete(_ context.Context, key string) error {
	b.deletes = append(b.deletes, key)
	delete(b.data, key)
	return nil
}

func TestLoadEmptyBackendBootsZeroState(t *testing.T) {
	st := New(newBlobStub(), nil)
	require.NoError(t, st.Load(context.Background()))

	assert.Empty(t, st.Courses())
	assert.Empty(t, st.Slots())
	assert.Empty(t, st.Timetable())
	assert.False(t, st.SetupComplete())
}

func TestLoadReadsSnapshots(t *testing.T) {
	stub := newBlobStub()
	courses, _ := json.Marshal([]models.Course{{ID: "math", Name: "Mathematics"}})
	stub.data[blob.KeyCourses] = courses
	stub.data[blob.KeySetupComplete] = []byte("true")

	st := New(stub, nil)
	require.NoError(t, st.Load(context.Background()))

	require.Len(t, st.Courses(), 1)
	assert.Equal(t, "Mathematics", st.Courses()[0].Name)
	assert.True(t, st.SetupComplete())
}

func TestLoadCorruptSnapshotFails(t *testing.T) {
	stub := newBlobStub()
	stub.data[blob.KeyCourses] = []byte("{not json")

	st := New(stub, nil)
	err := st.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPersistence.Code, appErrors.FromError(err).Code)
}

func TestReplaceSlotsPersists(t *testing.T) {
	stub := newBlobStub()
	st := New(stub, nil)

	slots := []models.Slot{{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"}}
	require.NoError(t, st.ReplaceSlots(context.Background(), slots))

	assert.Len(t, st.Slots(), 1)
	assert.Contains(t, stub.data, blob.KeySlots)
}

func TestReplaceSlotsRollsBackOnSaveFailure(t *testing.T) {
	stub := newBlobStub()
	st := New(stub, nil)

	original := []models.Slot{{ID: "s1", Index: 1, Name: "Period 1", Kind: models.SlotKindCourse, StartTime: "08:00", EndTime: "08:45"}}
	require.NoError(t, st.ReplaceSlots(context.Background(), original))

	stub.setErr[blob.KeySlots] = errors.New("disk full")
	next := []models.Slot{{ID: "s2", Index: 1, Name: "Period A", Kind: models.SlotKindCourse, StartTime: "09:00", EndTime: "09:45"}}
	err := st.ReplaceSlots(context.Background(), next)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPersistence.Code, appErrors.FromError(err).Code)

	require.Len(t, st.Slots(), 1)
	assert.Equal(t, "s1", st.Slots()[0].ID)
}

func TestAddCourseMintsIdentityAndTimestamps(t *testing.T) {
	st := New(newBlobStub(), nil)

	created, err := st.AddCourse(context.Background(), models.Course{Name: "Biology", FacultyName: "Dr. Ada", Color: "#00FF00"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NotNil(t, created.Marks)
	assert.NotNil(t, created.Tasks)
	assert.NotNil(t, created.Notes)

	got, ok := st.CourseByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Biology", got.Name)
}

func TestSaveCourseUnknownID(t *testing.T) {
	st := New(newBlobStub(), nil)
	_, err := st.SaveCourse(context.Background(), models.Course{ID: "ghost"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseByIDReturnsCopy(t *testing.T) {
	st := New(newBlobStub(), nil)
	created, err := st.AddCourse(context.Background(), models.Course{Name: "Biology"})
	require.NoError(t, err)

	got, ok := st.CourseByID(created.ID)
	require.True(t, ok)
	got.Name = "mutated"
	got.Marks = append(got.Marks, models.Mark{ID: "m1"})

	fresh, _ := st.CourseByID(created.ID)
	assert.Equal(t, "Biology", fresh.Name)
	assert.Empty(t, fresh.Marks)
}

func TestDeleteCourseScrubsTimetable(t *testing.T) {
	stub := newBlobStub()
	st := New(stub, nil)

	created, err := st.AddCourse(context.Background(), models.Course{Name: "Biology"})
	require.NoError(t, err)

	timetable := []models.DayTimetable{
		{Day: models.Monday, SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: created.ID},
			{SlotID: "s2", Kind: models.SlotKindLibrary, Label: "Reading"},
		}},
		{Day: models.Tuesday, SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: created.ID},
		}},
	}
	require.NoError(t, st.ReplaceTimetable(context.Background(), timetable))

	require.NoError(t, st.DeleteCourse(context.Background(), created.ID))

	_, ok := st.CourseByID(created.ID)
	assert.False(t, ok)

	after := st.Timetable()
	require.Len(t, after, 2)
	require.Len(t, after[0].SlotAssignments, 1)
	assert.Equal(t, models.SlotKindLibrary, after[0].SlotAssignments[0].Kind)
	assert.Empty(t, after[1].SlotAssignments)
}

func TestDeleteCourseRollsBackBothSnapshots(t *testing.T) {
	stub := newBlobStub()
	st := New(stub, nil)

	created, err := st.AddCourse(context.Background(), models.Course{Name: "Biology"})
	require.NoError(t, err)
	require.NoError(t, st.ReplaceTimetable(context.Background(), []models.DayTimetable{
		{Day: models.Monday, SlotAssignments: []models.SlotAssignment{
			{SlotID: "s1", Kind: models.SlotKindCourse, CourseID: created.ID},
		}},
	}))

	stub.setErr[blob.KeyTimetable] = errors.New("disk full")
	err = st.DeleteCourse(context.Background(), created.ID)
	require.Error(t, err)

	// Both the course and its assignment are still there.
	_, ok := st.CourseByID(created.ID)
	assert.True(t, ok)
	require.Len(t, st.Timetable(), 1)
	assert.Len(t, st.Timetable()[0].SlotAssignments, 1)
}

func TestDeleteCourseUnknownID(t *testing.T) {
	st := New(newBlobStub(), nil)
	err := st.DeleteCourse(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCompleteSetupAndReset(t *testing.T) {
	stub := newBlobStub()
	st := New(stub, nil)

	require.NoError(t, st.CompleteSetup(context.Background()))
	assert.True(t, st.SetupComplete())

	_, err := st.AddCourse(context.Background(), models.Course{Name: "Biology"})
	require.NoError(t, err)

	require.NoError(t, st.Reset(context.Background()))
	assert.False(t, st.SetupComplete())
	assert.Empty(t, st.Courses())
	assert.ElementsMatch(t, stub.deletes, []string{blob.KeySetupComplete, blob.KeyCourses, blob.KeySlots, blob.KeyTimetable})
}
