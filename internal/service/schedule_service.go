package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// Gap-finder scan window and step. Suggestions start no earlier than 15:00,
// end before 21:00, and advance in default-lesson steps.
const (
	gapScanStartMinutes = 15 * 60
	gapScanEndMinutes   = 21 * 60
)

// AddSlotRequest creates an open slot on the current teacher's day.
type AddSlotRequest struct {
	Day   string `json:"day" validate:"required"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// BookSlotRequest assigns a student to a slot. Exactly one of StudentID and
// StudentName is used: a name books-and-creates in a single action.
type BookSlotRequest struct {
	Day         string           `json:"day" validate:"required"`
	SlotID      string           `json:"slot_id" validate:"required"`
	StudentID   string           `json:"student_id,omitempty"`
	StudentName string           `json:"student_name,omitempty"`
	Label       models.SlotLabel `json:"label,omitempty"`
}

// MoveStudentRequest relocates a booking to another day/time.
type MoveStudentRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	FromDay    string `json:"from_day" validate:"required"`
	FromSlotID string `json:"from_slot_id" validate:"required"`
	ToDay      string `json:"to_day" validate:"required"`
	NewStart   string `json:"new_start" validate:"required"`
}

// ScheduleService owns the weekly slot grid. All operations are total over
// the in-memory state: a missing day, slot or student is a silent no-op, so
// overlapping UI actions can never fail a mutation.
type ScheduleService struct {
	state     *StateService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(state *StateService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{state: state, validator: validate, logger: logger}
}

// AddSlot appends an open slot to the current teacher's bucket for the day.
// Overlap is not validated; avoiding it is the gap-finder's job.
func (s *ScheduleService) AddSlot(ownerID string, req AddSlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		slot := models.LessonSlot{
			ID:    uuid.NewString(),
			Start: req.Start,
			End:   req.End,
		}
		bucket := append(state.Schedule.Bucket(state.CurrentTeacher, req.Day), slot)
		state.Schedule.SetBucket(state.CurrentTeacher, req.Day, bucket)
		return true
	})
}

// DeleteSlot removes a slot unconditionally, booked or not.
func (s *ScheduleService) DeleteSlot(ownerID, day, slotID string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		bucket := state.Schedule.Bucket(state.CurrentTeacher, day)
		for i := range bucket {
			if bucket[i].ID == slotID {
				state.Schedule.SetBucket(state.CurrentTeacher, day, append(bucket[:i], bucket[i+1:]...))
				return true
			}
		}
		return false
	})
}

// BookSlot sets the student and label on a slot. When StudentName is given
// instead of an id, the student is created first; the find-or-create plus
// book still lands as a single state change, matching the one-action UI flow.
// Double-booking elsewhere is not validated.
func (s *ScheduleService) BookSlot(ownerID string, req BookSlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		studentID := req.StudentID
		if studentID == "" && req.StudentName != "" {
			studentID = findOrCreateStudent(state, req.StudentName)
		}
		if studentID == "" {
			return false
		}
		bucket := state.Schedule.Bucket(state.CurrentTeacher, req.Day)
		for i := range bucket {
			if bucket[i].ID == req.SlotID {
				bucket[i].StudentID = &studentID
				bucket[i].Label = req.Label
				return true
			}
		}
		return false
	})
}

// CancelSlot clears the booking but keeps the slot in place, returning it to
// open. Distinct from DeleteSlot.
func (s *ScheduleService) CancelSlot(ownerID, day, slotID string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		bucket := state.Schedule.Bucket(state.CurrentTeacher, day)
		for i := range bucket {
			if bucket[i].ID == slotID {
				bucket[i].StudentID = nil
				bucket[i].Label = ""
				return true
			}
		}
		return false
	})
}

// MoveStudent clears the source booking and re-books at the destination: an
// existing slot with the same start time is overwritten, otherwise a new
// slot with the default 40-minute span is synthesized and the day re-sorted.
func (s *ScheduleService) MoveStudent(ownerID string, req MoveStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		teacher := state.CurrentTeacher

		var movedLabel models.SlotLabel
		found := false
		fromBucket := state.Schedule.Bucket(teacher, req.FromDay)
		for i := range fromBucket {
			if fromBucket[i].ID == req.FromSlotID && fromBucket[i].StudentID != nil && *fromBucket[i].StudentID == req.StudentID {
				movedLabel = fromBucket[i].Label
				fromBucket[i].StudentID = nil
				fromBucket[i].Label = ""
				found = true
				break
			}
		}
		if !found {
			return false
		}

		studentID := req.StudentID
		toBucket := state.Schedule.Bucket(teacher, req.ToDay)
		for i := range toBucket {
			if toBucket[i].Start == req.NewStart {
				toBucket[i].StudentID = &studentID
				toBucket[i].Label = movedLabel
				return true
			}
		}

		endMinutes := timeutil.MinutesFromClock(req.NewStart) + models.DefaultLessonMinutes
		toBucket = append(toBucket, models.LessonSlot{
			ID:        uuid.NewString(),
			Start:     req.NewStart,
			End:       timeutil.ClockFromMinutes(endMinutes),
			StudentID: &studentID,
			Label:     movedLabel,
		})
		models.SortSlots(toBucket)
		state.Schedule.SetBucket(teacher, req.ToDay, toBucket)
		return true
	})
}

// Gaps proposes open start times for a day. See FindGaps.
func (s *ScheduleService) Gaps(ownerID, day string) ([]string, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, err
	}
	return FindGaps(state.Schedule.Bucket(state.CurrentTeacher, day)), nil
}

// FindGaps walks the day's slots sorted by start time with a forward-only
// cursor from the scan start, emitting candidate starts spaced by the default
// lesson span inside every free interval wide enough, and keeps emitting
// after the last slot up to the end boundary (exclusive of a partial slot).
// Suggestions always assume the default duration.
func FindGaps(slots []models.LessonSlot) []string {
	sorted := append([]models.LessonSlot(nil), slots...)
	models.SortSlots(sorted)

	suggestions := []string{}
	cursor := gapScanStartMinutes
	for _, slot := range sorted {
		start := slot.StartMinutes()
		for cursor+models.DefaultLessonMinutes <= start {
			suggestions = append(suggestions, timeutil.ClockFromMinutes(cursor))
			cursor += models.DefaultLessonMinutes
		}
		// The cursor never moves backward past a slot already scanned.
		if end := slot.EndMinutes(); end > cursor {
			cursor = end
		}
	}
	for cursor+models.DefaultLessonMinutes <= gapScanEndMinutes {
		suggestions = append(suggestions, timeutil.ClockFromMinutes(cursor))
		cursor += models.DefaultLessonMinutes
	}
	return suggestions
}

// WeekFor resolves the sorted weekly grid for one teacher with student names
// attached; orphan student references render as unassigned.
func WeekFor(state *models.AppState, teacher string) []models.TeacherDaySlots {
	week := make([]models.TeacherDaySlots, 0, 7)
	for _, day := range timeutil.DayNames() {
		slots := append([]models.LessonSlot(nil), state.Schedule.Bucket(teacher, day)...)
		models.SortSlots(slots)
		booked := make([]models.BookedSlot, len(slots))
		for i, slot := range slots {
			booked[i] = models.BookedSlot{LessonSlot: slot}
			if slot.StudentID != nil {
				if student, ok := state.Students[*slot.StudentID]; ok {
					booked[i].StudentName = student.Name
				}
			}
		}
		week = append(week, models.TeacherDaySlots{Day: day, Slots: booked})
	}
	return week
}

func findOrCreateStudent(state *models.AppState, name string) string {
	for id, student := range state.Students {
		if student.Name == name {
			return id
		}
	}
	id := uuid.NewString()
	state.Students[id] = &models.Student{
		ID:               id,
		Name:             name,
		RegistrationDate: time.Now(),
		History:          []models.Transaction{},
		IsActive:         true,
	}
	return id
}
