package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
)

func newStudentFixture(t *testing.T) (*StudentService, *StateService) {
	t.Helper()
	state := models.NewAppState()
	state.Teachers = []string{"Ayşe"}
	state.CurrentTeacher = "Ayşe"
	stateSvc := newLoadedStateService(newMockStateRepo(), newMockStateFeed(), "owner-1", state)
	views := NewViewsService(stateSvc, zap.NewNop())
	return NewStudentService(stateSvc, views, nil, zap.NewNop()), stateSvc
}

func TestStudentServiceCreateParsesLocaleFee(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)

	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Deniz", Fee: "1.500,50"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	student := state.Students[id]
	require.NotNil(t, student)
	assert.Equal(t, "Deniz", student.Name)
	assert.Equal(t, 1500.50, student.Fee)
	assert.True(t, student.IsActive)
	assert.False(t, student.RegistrationDate.IsZero())
	assert.NotNil(t, student.History)
}

func TestStudentServiceCreateGarbageFeeFallsBackToZero(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)

	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Ece", Fee: "bedava"})
	require.NoError(t, err)

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Zero(t, state.Students[id].Fee)
}

func TestStudentServiceUpdate(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)
	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Deniz", Fee: "500"})
	require.NoError(t, err)

	makeup := 2
	require.NoError(t, svc.Update("owner-1", id, UpdateStudentRequest{
		Name:           "Deniz K.",
		Fee:            "600",
		NextLessonNote: "Türev tekrar",
		MakeupCredit:   &makeup,
	}))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	student := state.Students[id]
	assert.Equal(t, "Deniz K.", student.Name)
	assert.Equal(t, 600.0, student.Fee)
	assert.Equal(t, "Türev tekrar", student.NextLessonNote)
	assert.Equal(t, 2, student.MakeupCredit)
}

func TestStudentServiceUpdateUnknownIsNoOp(t *testing.T) {
	svc, _ := newStudentFixture(t)
	require.NoError(t, svc.Update("owner-1", "ghost", UpdateStudentRequest{Name: "X"}))
}

func TestStudentServiceToggleActiveAndDelete(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)
	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Deniz"})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleActive("owner-1", id))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.False(t, state.Students[id].IsActive)

	require.NoError(t, svc.Delete("owner-1", id))
	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.NotContains(t, state.Students, id)
}

func TestStudentServiceDeleteLeavesScheduleReference(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)
	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Deniz"})
	require.NoError(t, err)
	require.NoError(t, stateSvc.Mutate("owner-1", func(s *models.AppState) bool {
		s.Schedule.SetBucket("Ayşe", "Pazartesi", []models.LessonSlot{bookedSlot("a", "15:00", "15:40", id)})
		return true
	}))

	require.NoError(t, svc.Delete("owner-1", id))

	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	bucket := state.Schedule.Bucket("Ayşe", "Pazartesi")
	require.Len(t, bucket, 1)
	require.NotNil(t, bucket[0].StudentID)
	assert.Equal(t, id, *bucket[0].StudentID)
}

func TestStudentServiceAddTeacherUniqueAndFirstBecomesCurrent(t *testing.T) {
	state := models.NewAppState()
	stateSvc := newLoadedStateService(newMockStateRepo(), newMockStateFeed(), "owner-1", state)
	svc := NewStudentService(stateSvc, NewViewsService(stateSvc, zap.NewNop()), nil, zap.NewNop())

	require.NoError(t, svc.AddTeacher("owner-1", "Ayşe"))
	require.NoError(t, svc.AddTeacher("owner-1", "Mehmet"))
	require.NoError(t, svc.AddTeacher("owner-1", "Ayşe"))

	got, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ayşe", "Mehmet"}, got.Teachers)
	assert.Equal(t, "Ayşe", got.CurrentTeacher)

	err = svc.AddTeacher("owner-1", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceSetCurrentTeacher(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)
	require.NoError(t, svc.AddTeacher("owner-1", "Mehmet"))

	require.NoError(t, svc.SetCurrentTeacher("owner-1", "Mehmet"))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Mehmet", state.CurrentTeacher)

	// Unknown names leave the selection untouched.
	require.NoError(t, svc.SetCurrentTeacher("owner-1", "Kimse"))
	state, err = stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Mehmet", state.CurrentTeacher)
}

func TestStudentServiceSetAutoProcessing(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)

	require.NoError(t, svc.SetAutoProcessing("owner-1", false))
	state, err := stateSvc.Get("owner-1")
	require.NoError(t, err)
	assert.False(t, state.AutoLessonProcessing)
}

func TestStudentServiceListAttachesDerivedFields(t *testing.T) {
	svc, stateSvc := newStudentFixture(t)
	id, err := svc.Create("owner-1", CreateStudentRequest{Name: "Deniz", Fee: "500"})
	require.NoError(t, err)
	require.NoError(t, stateSvc.Mutate("owner-1", func(s *models.AppState) bool {
		s.Schedule.SetBucket("Ayşe", "Pazartesi", []models.LessonSlot{bookedSlot("a", "15:00", "15:40", id)})
		return true
	}))

	summaries, err := svc.List("owner-1", monday("10:00"))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, models.PaymentStatusUnpaid, summaries[0].PaymentStatus)
	require.NotNil(t, summaries[0].NextLesson)
	assert.Equal(t, "Pazartesi", summaries[0].NextLesson.Day)
}

func TestStudentServiceGetUnknown(t *testing.T) {
	svc, _ := newStudentFixture(t)

	_, err := svc.Get("owner-1", "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
