package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// 2026-03-02 is a Monday ("Pazartesi").
func monday(clock string) time.Time {
	ref := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	return timeutil.At(ref, clock)
}

func newProcessFixture(label models.SlotLabel) *models.AppState {
	state := models.NewAppState()
	state.Students["s1"] = &models.Student{
		ID:       "s1",
		Name:     "Deniz",
		Fee:      500,
		History:  []models.Transaction{},
		IsActive: true,
	}
	booked := bookedSlot("slot-1", "15:00", "15:40", "s1")
	booked.Label = label
	state.Schedule.SetBucket("Ayşe", "Pazartesi", []models.LessonSlot{booked})
	return state
}

func TestAutoProcessCreatesDebitForElapsedSlot(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	now := monday("16:00")

	changed := svc.Process("owner-1", state, now)

	require.True(t, changed)
	student := state.Students["s1"]
	require.Len(t, student.History, 1)
	tx := student.History[0]
	assert.Equal(t, "1. Ders İşlendi", tx.Note)
	assert.True(t, tx.IsDebt)
	assert.Zero(t, tx.Amount)
	assert.Equal(t, models.KindLesson, tx.Kind)
	assert.Equal(t, monday("15:40"), tx.Date)
	assert.Equal(t, 1, student.DebtLessonCount)
}

func TestAutoProcessIsIdempotentPerDay(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	now := monday("16:00")

	require.True(t, svc.Process("owner-1", state, now))
	assert.False(t, svc.Process("owner-1", state, now))
	assert.False(t, svc.Process("owner-1", state, monday("20:00")))
	assert.Len(t, state.Students["s1"].History, 1)
}

func TestAutoProcessSkipsFutureSlot(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")

	assert.False(t, svc.Process("owner-1", state, monday("15:20")))
	assert.Empty(t, state.Students["s1"].History)
}

func TestAutoProcessSkipsOpenSlot(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := models.NewAppState()
	state.Schedule.SetBucket("Ayşe", "Pazartesi", []models.LessonSlot{slot("open", "15:00", "15:40")})

	assert.False(t, svc.Process("owner-1", state, monday("16:00")))
}

func TestAutoProcessSkipsInactiveStudent(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	state.Students["s1"].IsActive = false

	assert.False(t, svc.Process("owner-1", state, monday("16:00")))
	assert.Empty(t, state.Students["s1"].History)
}

func TestAutoProcessSkipsUnknownStudentReference(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	delete(state.Students, "s1")

	assert.False(t, svc.Process("owner-1", state, monday("16:00")))
}

func TestAutoProcessHonorsSuppressionGuard(t *testing.T) {
	guard := NewSuppressionGuard()
	svc := NewAutoProcessService(guard, nil, zap.NewNop())
	state := newProcessFixture("")
	now := monday("16:00")

	guard.Suppress("owner-1", "s1", now)
	assert.False(t, svc.Process("owner-1", state, now))

	// The guard is keyed by calendar day, not forever.
	guard2 := NewSuppressionGuard()
	svc2 := NewAutoProcessService(guard2, nil, zap.NewNop())
	guard2.Suppress("owner-1", "s1", now.AddDate(0, 0, -1))
	assert.True(t, svc2.Process("owner-1", state, now))
}

func TestAutoProcessRespectsDisabledFlag(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	state.AutoLessonProcessing = false

	assert.False(t, svc.Process("owner-1", state, monday("16:00")))
}

func TestAutoProcessMakeupAndTrialNotes(t *testing.T) {
	cases := []struct {
		label    models.SlotLabel
		wantNote string
		wantKind models.TransactionKind
	}{
		{models.LabelMakeup, "Telafi Dersi (Tamamlandı)", models.KindMakeupDone},
		{models.LabelTrial, "Deneme Dersi (Tamamlandı)", models.KindTrial},
	}
	for _, tc := range cases {
		svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
		state := newProcessFixture(tc.label)

		require.True(t, svc.Process("owner-1", state, monday("16:00")))
		tx := state.Students["s1"].History[0]
		assert.Equal(t, tc.wantNote, tx.Note)
		assert.Equal(t, tc.wantKind, tx.Kind)
	}
}

func TestAutoProcessScansAllTeachersForTheDay(t *testing.T) {
	svc := NewAutoProcessService(NewSuppressionGuard(), nil, zap.NewNop())
	state := newProcessFixture("")
	state.Students["s2"] = &models.Student{ID: "s2", Name: "Ece", History: []models.Transaction{}, IsActive: true}
	state.Schedule.SetBucket("Mehmet", "Pazartesi", []models.LessonSlot{bookedSlot("slot-2", "14:00", "14:40", "s2")})

	require.True(t, svc.Process("owner-1", state, monday("16:00")))
	assert.Len(t, state.Students["s1"].History, 1)
	assert.Len(t, state.Students["s2"].History, 1)
}
