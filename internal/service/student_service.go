package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/numparse"
)

// CreateStudentRequest registers a student directly (bookings can also
// create one implicitly, see ScheduleService.BookSlot).
type CreateStudentRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
	Fee   string `json:"fee,omitempty"`
	Color string `json:"color,omitempty"`
}

// UpdateStudentRequest edits student master data.
type UpdateStudentRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone,omitempty"`
	Fee            string `json:"fee,omitempty"`
	Color          string `json:"color,omitempty"`
	NextLessonNote string `json:"next_lesson_note,omitempty"`
	MakeupCredit   *int   `json:"makeup_credit,omitempty"`
}

// StudentService owns student lifecycle and the school-level toggles.
type StudentService struct {
	state     *StateService
	views     *ViewsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(state *StateService, views *ViewsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{state: state, views: views, validator: validate, logger: logger}
}

// Create registers a new student. The fee accepts locale-formatted input and
// falls back to 0 on garbage.
func (s *StudentService) Create(ownerID string, req CreateStudentRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	id := uuid.NewString()
	err := s.state.Mutate(ownerID, func(state *models.AppState) bool {
		state.Students[id] = &models.Student{
			ID:               id,
			Name:             req.Name,
			Phone:            req.Phone,
			Fee:              numparse.Amount(req.Fee),
			Color:            req.Color,
			RegistrationDate: time.Now(),
			History:          []models.Transaction{},
			IsActive:         true,
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update edits master data for an existing student; a missing id is a silent
// no-op.
func (s *StudentService) Update(ownerID, studentID string, req UpdateStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[studentID]
		if !ok {
			return false
		}
		student.Name = req.Name
		student.Phone = req.Phone
		if req.Fee != "" {
			student.Fee = numparse.Amount(req.Fee)
		}
		if req.Color != "" {
			student.Color = req.Color
		}
		student.NextLessonNote = req.NextLessonNote
		if req.MakeupCredit != nil && *req.MakeupCredit >= 0 {
			student.MakeupCredit = *req.MakeupCredit
		}
		return true
	})
}

// ToggleActive flips the active flag; inactive students are skipped by
// auto-processing.
func (s *StudentService) ToggleActive(ownerID, studentID string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[studentID]
		if !ok {
			return false
		}
		student.IsActive = !student.IsActive
		return true
	})
}

// Delete hard-deletes a student. Schedule slots keeping the id are left
// alone; consumers treat the orphan reference as unassigned.
func (s *StudentService) Delete(ownerID, studentID string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		if _, ok := state.Students[studentID]; !ok {
			return false
		}
		delete(state.Students, studentID)
		return true
	})
}

// AddTeacher registers a teacher name, enforcing uniqueness.
func (s *StudentService) AddTeacher(ownerID, name string) error {
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher name required")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		if state.HasTeacher(name) {
			return false
		}
		state.Teachers = append(state.Teachers, name)
		if state.CurrentTeacher == "" {
			state.CurrentTeacher = name
		}
		return true
	})
}

// SetCurrentTeacher switches the active teacher; unknown names are a no-op.
func (s *StudentService) SetCurrentTeacher(ownerID, name string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		if !state.HasTeacher(name) || state.CurrentTeacher == name {
			return false
		}
		state.CurrentTeacher = name
		return true
	})
}

// SetAutoProcessing flips the account-level auto lesson processing flag.
func (s *StudentService) SetAutoProcessing(ownerID string, enabled bool) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		if state.AutoLessonProcessing == enabled {
			return false
		}
		state.AutoLessonProcessing = enabled
		return true
	})
}

// List returns roster rows for every student with this month's payment
// status and the derived next lesson attached.
func (s *StudentService) List(ownerID string, now time.Time) ([]models.StudentSummary, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.StudentSummary, 0, len(state.Students))
	for _, student := range state.Students {
		summary := models.StudentSummary{
			ID:              student.ID,
			Name:            student.Name,
			Color:           student.Color,
			Fee:             student.Fee,
			DebtLessonCount: student.DebtLessonCount,
			MakeupCredit:    student.MakeupCredit,
			IsActive:        student.IsActive,
			PaymentStatus:   PaymentStatusFor(student, now),
		}
		if next := NextLessonFor(state, student.ID, now); next != nil {
			summary.NextLesson = next
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Get returns a deep copy of one student, or a not-found error for reads
// (reads are not mutation no-ops).
func (s *StudentService) Get(ownerID, studentID string) (*models.Student, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}
