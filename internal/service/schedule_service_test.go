package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
)

func slot(id, start, end string) models.LessonSlot {
	return models.LessonSlot{ID: id, Start: start, End: end}
}

func bookedSlot(id, start, end, studentID string) models.LessonSlot {
	s := slot(id, start, end)
	s.StudentID = &studentID
	return s
}

func TestFindGapsEmptyDay(t *testing.T) {
	gaps := FindGaps(nil)
	require.Len(t, gaps, 9)
	assert.Equal(t, "15:00", gaps[0])
	assert.Equal(t, "20:20", gaps[8])
}

func TestFindGapsMorningSlotsDoNotBlockWindow(t *testing.T) {
	slots := []models.LessonSlot{
		slot("a", "09:00", "09:40"),
		slot("b", "10:20", "11:00"),
	}
	gaps := FindGaps(slots)
	require.Len(t, gaps, 9)
	assert.Equal(t, []string{"15:00", "15:40", "16:20", "17:00", "17:40", "18:20", "19:00", "19:40", "20:20"}, gaps)
}

func TestFindGapsAroundBookedSlot(t *testing.T) {
	slots := []models.LessonSlot{
		slot("a", "16:00", "17:00"),
	}
	gaps := FindGaps(slots)
	assert.Equal(t, []string{"15:00", "17:00", "17:40", "18:20", "19:00", "19:40", "20:20"}, gaps)
}

func TestFindGapsCursorNeverMovesBackward(t *testing.T) {
	// An earlier-ending slot after a long one must not reopen covered time.
	slots := []models.LessonSlot{
		slot("long", "15:00", "18:00"),
		slot("inner", "15:30", "16:10"),
	}
	gaps := FindGaps(slots)
	assert.Equal(t, []string{"18:00", "18:40", "19:20", "20:00"}, gaps)
}

func TestSortSlotsStableOnDuplicateStarts(t *testing.T) {
	slots := []models.LessonSlot{
		slot("b", "16:00", "16:40"),
		slot("a", "15:00", "15:40"),
		slot("c", "16:00", "16:40"),
	}
	models.SortSlots(slots)
	assert.Equal(t, "a", slots[0].ID)
	assert.Equal(t, "b", slots[1].ID)
	assert.Equal(t, "c", slots[2].ID)
}

func newScheduleFixture(t *testing.T) (*ScheduleService, *StateService) {
	t.Helper()
	state := models.NewAppState()
	state.Teachers = []string{"Ayşe"}
	state.CurrentTeacher = "Ayşe"
	state.Students["s1"] = &models.Student{ID: "s1", Name: "Deniz", IsActive: true, History: []models.Transaction{}}
	stateSvc := newLoadedStateService(newMockStateRepo(), newMockStateFeed(), "owner-1", state)
	return NewScheduleService(stateSvc, nil, zap.NewNop()), stateSvc
}

func TestScheduleServiceAddAndDeleteSlot(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)

	require.NoError(t, svc.AddSlot("owner-1", AddSlotRequest{Day: "Pazartesi", Start: "15:00", End: "15:40"}))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	bucket := state.Schedule.Bucket("Ayşe", "Pazartesi")
	require.Len(t, bucket, 1)
	slotID := bucket[0].ID

	require.NoError(t, svc.DeleteSlot("owner-1", "Pazartesi", slotID))
	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Empty(t, state.Schedule.Bucket("Ayşe", "Pazartesi"))
}

func TestScheduleServiceBookAndCancel(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)
	require.NoError(t, svc.AddSlot("owner-1", AddSlotRequest{Day: "Salı", Start: "16:00", End: "16:40"}))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	slotID := state.Schedule.Bucket("Ayşe", "Salı")[0].ID

	require.NoError(t, svc.BookSlot("owner-1", BookSlotRequest{Day: "Salı", SlotID: slotID, StudentID: "s1", Label: models.LabelMakeup}))
	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	booked := state.Schedule.Bucket("Ayşe", "Salı")[0]
	require.NotNil(t, booked.StudentID)
	assert.Equal(t, "s1", *booked.StudentID)
	assert.Equal(t, models.LabelMakeup, booked.Label)

	require.NoError(t, svc.CancelSlot("owner-1", "Salı", slotID))
	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	cancelled := state.Schedule.Bucket("Ayşe", "Salı")[0]
	assert.Nil(t, cancelled.StudentID)
	assert.Empty(t, cancelled.Label)
}

func TestScheduleServiceBookByNameCreatesStudent(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)
	require.NoError(t, svc.AddSlot("owner-1", AddSlotRequest{Day: "Salı", Start: "16:00", End: "16:40"}))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	slotID := state.Schedule.Bucket("Ayşe", "Salı")[0].ID

	require.NoError(t, svc.BookSlot("owner-1", BookSlotRequest{Day: "Salı", SlotID: slotID, StudentName: "Yeni Öğrenci"}))

	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	booked := state.Schedule.Bucket("Ayşe", "Salı")[0]
	require.NotNil(t, booked.StudentID)
	created := state.Students[*booked.StudentID]
	require.NotNil(t, created)
	assert.Equal(t, "Yeni Öğrenci", created.Name)
	assert.True(t, created.IsActive)
}

func TestScheduleServiceBookByNameReusesExisting(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)
	require.NoError(t, svc.AddSlot("owner-1", AddSlotRequest{Day: "Salı", Start: "16:00", End: "16:40"}))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	slotID := state.Schedule.Bucket("Ayşe", "Salı")[0].ID

	require.NoError(t, svc.BookSlot("owner-1", BookSlotRequest{Day: "Salı", SlotID: slotID, StudentName: "Deniz"}))

	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	booked := state.Schedule.Bucket("Ayşe", "Salı")[0]
	require.NotNil(t, booked.StudentID)
	assert.Equal(t, "s1", *booked.StudentID)
	assert.Len(t, state.Students, 1)
}

func TestScheduleServiceMoveOverwritesMatchingStart(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)
	require.NoError(t, stateSvc.Mutate("owner-1", func(s *models.AppState) bool {
		s.Schedule.SetBucket("Ayşe", "Çarşamba", []models.LessonSlot{bookedSlot("src", "15:00", "15:40", "s1")})
		s.Schedule.SetBucket("Ayşe", "Perşembe", []models.LessonSlot{slot("dst", "17:00", "17:40")})
		return true
	}))

	require.NoError(t, svc.MoveStudent("owner-1", MoveStudentRequest{
		StudentID: "s1", FromDay: "Çarşamba", FromSlotID: "src", ToDay: "Perşembe", NewStart: "17:00",
	}))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	src := state.Schedule.Bucket("Ayşe", "Çarşamba")[0]
	assert.Nil(t, src.StudentID)
	dst := state.Schedule.Bucket("Ayşe", "Perşembe")[0]
	assert.Equal(t, "dst", dst.ID)
	require.NotNil(t, dst.StudentID)
	assert.Equal(t, "s1", *dst.StudentID)
}

func TestScheduleServiceMoveSynthesizesDefaultSpanSlot(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)
	require.NoError(t, stateSvc.Mutate("owner-1", func(s *models.AppState) bool {
		s.Schedule.SetBucket("Ayşe", "Çarşamba", []models.LessonSlot{bookedSlot("src", "15:00", "15:40", "s1")})
		s.Schedule.SetBucket("Ayşe", "Perşembe", []models.LessonSlot{slot("other", "19:00", "19:40")})
		return true
	}))

	require.NoError(t, svc.MoveStudent("owner-1", MoveStudentRequest{
		StudentID: "s1", FromDay: "Çarşamba", FromSlotID: "src", ToDay: "Perşembe", NewStart: "17:30",
	}))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	bucket := state.Schedule.Bucket("Ayşe", "Perşembe")
	require.Len(t, bucket, 2)
	synthesized := bucket[0]
	assert.Equal(t, "17:30", synthesized.Start)
	assert.Equal(t, "18:10", synthesized.End)
	require.NotNil(t, synthesized.StudentID)
	assert.Equal(t, "s1", *synthesized.StudentID)
	assert.Equal(t, "other", bucket[1].ID)
}

func TestScheduleServiceMoveUnknownSourceIsNoOp(t *testing.T) {
	svc, stateSvc := newScheduleFixture(t)

	require.NoError(t, svc.MoveStudent("owner-1", MoveStudentRequest{
		StudentID: "s1", FromDay: "Çarşamba", FromSlotID: "ghost", ToDay: "Perşembe", NewStart: "17:00",
	}))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Empty(t, state.Schedule.Bucket("Ayşe", "Perşembe"))
}

func TestWeekForResolvesNamesAndOrphans(t *testing.T) {
	state := models.NewAppState()
	state.Students["s1"] = &models.Student{ID: "s1", Name: "Deniz", IsActive: true}
	state.Schedule.SetBucket("Ayşe", "Pazartesi", []models.LessonSlot{
		bookedSlot("b", "16:00", "16:40", "ghost"),
		bookedSlot("a", "15:00", "15:40", "s1"),
	})

	week := WeekFor(state, "Ayşe")
	require.Len(t, week, 7)
	assert.Equal(t, "Pazartesi", week[0].Day)
	require.Len(t, week[0].Slots, 2)
	assert.Equal(t, "a", week[0].Slots[0].ID)
	assert.Equal(t, "Deniz", week[0].Slots[0].StudentName)
	assert.Empty(t, week[0].Slots[1].StudentName)
}
