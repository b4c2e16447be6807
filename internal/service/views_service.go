package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// ViewsService computes the read-only projections: next lessons, billing
// periods, teacher aggregates, and the parent/teacher share views. Nothing
// here is ever stored.
type ViewsService struct {
	state  *StateService
	logger *zap.Logger
}

// NewViewsService constructs a ViewsService.
func NewViewsService(state *StateService, logger *zap.Logger) *ViewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewsService{state: state, logger: logger}
}

// NextLessonFor scans the next seven calendar days across all teachers for a
// slot assigned to the student and takes the first match. When the student's
// registration date is later than the naive occurrence, the date rolls
// forward in 7-day steps (bounded) until it is on or after registration.
func NextLessonFor(state *models.AppState, studentID string, now time.Time) *models.NextLesson {
	student := state.Students[studentID]
	for offset := 0; offset < 7; offset++ {
		date := now.AddDate(0, 0, offset)
		day := timeutil.DayName(date)
		for _, bucket := range state.Schedule.DayBuckets(day) {
			slots := append([]models.LessonSlot(nil), bucket.Slots...)
			models.SortSlots(slots)
			for _, slot := range slots {
				if slot.StudentID == nil || *slot.StudentID != studentID {
					continue
				}
				occurrence := timeutil.At(date, slot.Start)
				if student != nil {
					for i := 0; i < 52 && occurrence.Before(student.RegistrationDate); i++ {
						occurrence = occurrence.AddDate(0, 0, 7)
					}
				}
				return &models.NextLesson{
					Teacher: bucket.Teacher,
					Day:     day,
					Start:   slot.Start,
					End:     slot.End,
					Date:    occurrence,
					Label:   slot.Label,
				}
			}
		}
	}
	return nil
}

// TeacherStatsFor aggregates a teacher's roster: how many distinct active
// students are booked in that teacher's buckets and the sum of their monthly
// fees as projected earnings.
func TeacherStatsFor(state *models.AppState, teacher string) models.TeacherStats {
	seen := make(map[string]struct{})
	stats := models.TeacherStats{Teacher: teacher}
	for _, slots := range state.Schedule[teacher] {
		for _, slot := range slots {
			if slot.StudentID == nil {
				continue
			}
			id := *slot.StudentID
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			student, ok := state.Students[id]
			if !ok || !student.IsActive {
				continue
			}
			stats.StudentCount++
			stats.ProjectedMonthly += student.Fee
		}
	}
	return stats
}

// TeacherStats computes aggregates for every registered teacher.
func (s *ViewsService) TeacherStats(ownerID string) ([]models.TeacherStats, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, err
	}
	stats := make([]models.TeacherStats, 0, len(state.Teachers))
	for _, teacher := range state.Teachers {
		stats = append(stats, TeacherStatsFor(state, teacher))
	}
	return stats, nil
}

// ParentView builds the unauthenticated single-student share projection from
// a one-shot read. It never writes.
func (s *ViewsService) ParentView(ctx context.Context, ownerID, studentID string, now time.Time) (*models.ParentView, error) {
	state, err := s.state.GetShared(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	period := CurrentPeriod(student.History)
	return &models.ParentView{
		SchoolName:    state.SchoolName,
		StudentName:   student.Name,
		Color:         student.Color,
		NextLesson:    NextLessonFor(state, studentID, now),
		NextNote:      student.NextLessonNote,
		PaymentStatus: PaymentStatusFor(student, now),
		MakeupCredit:  student.MakeupCredit,
		Period:        period,
		Lessons:       LessonNumbering(period),
		Resources:     student.Resources,
	}, nil
}

// TeacherView builds the unauthenticated weekly-grid share projection for a
// teacher display name from a one-shot read.
func (s *ViewsService) TeacherView(ctx context.Context, ownerID, teacher string) (*models.TeacherView, error) {
	state, err := s.state.GetShared(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !state.HasTeacher(teacher) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return &models.TeacherView{
		SchoolName: state.SchoolName,
		Teacher:    teacher,
		Week:       WeekFor(state, teacher),
		Stats:      TeacherStatsFor(state, teacher),
	}, nil
}

// CurrentPeriodFor returns the current billing period slice for a student in
// the live session state.
func (s *ViewsService) CurrentPeriodFor(ownerID, studentID string) ([]models.Transaction, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return CurrentPeriod(student.History), nil
}
