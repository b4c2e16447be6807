package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// AutoProcessService converts elapsed scheduled lessons into ledger debits,
// exactly once per slot per day, while staying safe under manual overrides.
// It is an at-least-once best-effort reconciliation step, not a precise
// scheduler; the caller drives it from snapshot arrivals and a once-a-minute
// tick.
type AutoProcessService struct {
	guard   *SuppressionGuard
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAutoProcessService constructs the engine.
func NewAutoProcessService(guard *SuppressionGuard, metrics *MetricsService, logger *zap.Logger) *AutoProcessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoProcessService{guard: guard, metrics: metrics, logger: logger}
}

// Process scans today's buckets across all teachers and appends a synthetic
// lesson debit for every booked, active, elapsed, not-yet-billed slot. It
// mutates state in place and reports whether anything changed so callers can
// skip a redundant save. Bad data on one slot never aborts the rest of the
// scan.
func (s *AutoProcessService) Process(ownerID string, state *models.AppState, now time.Time) bool {
	if state == nil || !state.AutoLessonProcessing {
		return false
	}

	day := timeutil.DayName(now)
	changed := false
	for _, bucket := range state.Schedule.DayBuckets(day) {
		for _, slot := range bucket.Slots {
			if s.processSlot(ownerID, state, slot, now) {
				changed = true
			}
		}
	}
	return changed
}

func (s *AutoProcessService) processSlot(ownerID string, state *models.AppState, slot models.LessonSlot, now time.Time) (processed bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("auto-processing skipped slot after panic",
				zap.String("owner_id", ownerID), zap.String("slot_id", slot.ID), zap.Any("panic", r))
			processed = false
		}
	}()

	if slot.StudentID == nil {
		return false
	}
	studentID := *slot.StudentID

	if s.guard != nil && s.guard.Suppressed(ownerID, studentID, now) {
		return false
	}

	end := timeutil.At(now, slot.End)
	if end.After(now) {
		return false
	}

	student, ok := state.Students[studentID]
	if !ok || student == nil || !student.IsActive {
		return false
	}

	if HasDebitOn(student.History, now) {
		return false
	}

	n := NextLessonNumber(student.History)
	tx := models.Transaction{
		ID:     uuid.NewString(),
		Date:   end,
		IsDebt: true,
		Amount: 0,
	}
	switch slot.Label {
	case models.LabelMakeup:
		tx.Note = "Telafi Dersi (Tamamlandı)"
		tx.Kind = models.KindMakeupDone
	case models.LabelTrial:
		tx.Note = "Deneme Dersi (Tamamlandı)"
		tx.Kind = models.KindTrial
	default:
		tx.Note = LessonNote(n)
		tx.Kind = models.KindLesson
	}

	student.History = append([]models.Transaction{tx}, student.History...)
	student.DebtLessonCount = n

	if s.metrics != nil {
		s.metrics.ObserveLessonProcessed()
	}
	s.logger.Info("auto-processed lesson",
		zap.String("owner_id", ownerID),
		zap.String("student_id", studentID),
		zap.String("slot_id", slot.ID),
		zap.String("note", tx.Note))
	return true
}
