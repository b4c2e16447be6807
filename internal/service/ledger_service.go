package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// TransactionType selects what AddTransaction creates.
type TransactionType string

const (
	TransactionTypeLesson  TransactionType = "LESSON"
	TransactionTypePayment TransactionType = "PAYMENT"
)

// AddTransactionRequest describes a manual ledger entry.
type AddTransactionRequest struct {
	StudentID string          `json:"student_id" validate:"required"`
	Type      TransactionType `json:"type" validate:"required,oneof=LESSON PAYMENT"`
	Date      *time.Time      `json:"date,omitempty"`
	Amount    *float64        `json:"amount,omitempty"`
}

// UpdateTransactionRequest replaces an entry's note and optionally its date.
type UpdateTransactionRequest struct {
	StudentID     string     `json:"student_id" validate:"required"`
	TransactionID string     `json:"transaction_id" validate:"required"`
	Note          string     `json:"note" validate:"required"`
	Date          *time.Time `json:"date,omitempty"`
}

// LedgerService owns per-student transaction history mutations.
type LedgerService struct {
	state     *StateService
	guard     *SuppressionGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(state *StateService, guard *SuppressionGuard, validate *validator.Validate, logger *zap.Logger) *LedgerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{state: state, guard: guard, validator: validate, logger: logger}
}

// AddTransaction appends a manual lesson debit or payment credit. Lesson
// debits carry amount 0; the fee stays implicit. Payment credits default to
// the student's configured fee.
func (s *LedgerService) AddTransaction(ownerID string, req AddTransactionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transaction payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[req.StudentID]
		if !ok {
			return false
		}
		date := time.Now()
		if req.Date != nil {
			date = *req.Date
		}

		var tx models.Transaction
		switch req.Type {
		case TransactionTypeLesson:
			n := NextLessonNumber(student.History)
			tx = models.Transaction{
				ID:     uuid.NewString(),
				Note:   LessonNote(n),
				Date:   date,
				IsDebt: true,
				Amount: 0,
				Kind:   models.KindLesson,
			}
			student.DebtLessonCount = n
		case TransactionTypePayment:
			amount := student.Fee
			if req.Amount != nil {
				amount = *req.Amount
			}
			tx = models.Transaction{
				ID:     uuid.NewString(),
				Note:   "Ödeme Alındı",
				Date:   date,
				IsDebt: false,
				Amount: amount,
				Kind:   models.KindPayment,
			}
		}
		student.History = append([]models.Transaction{tx}, student.History...)
		return true
	})
}

// UpdateTransaction replaces note text (and thus semantic classification) and
// optionally the date; other fields stay untouched. The explicit kind tag is
// re-derived so it cannot contradict the rewritten note.
func (s *LedgerService) UpdateTransaction(ownerID string, req UpdateTransactionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transaction payload")
	}
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[req.StudentID]
		if !ok {
			return false
		}
		for i := range student.History {
			if student.History[i].ID != req.TransactionID {
				continue
			}
			student.History[i].Note = req.Note
			if req.Date != nil {
				student.History[i].Date = *req.Date
			}
			student.History[i].Kind = models.ClassifyNote(req.Note, student.History[i].IsDebt)
			return true
		}
		return false
	})
}

// DeleteTransaction removes an entry and decrements the cached debt counter,
// floored at zero. Deleting a debit registers the same-day suppression guard
// so auto-processing does not immediately recreate it.
func (s *LedgerService) DeleteTransaction(ownerID, studentID, transactionID string) error {
	return s.state.Mutate(ownerID, func(state *models.AppState) bool {
		student, ok := state.Students[studentID]
		if !ok {
			return false
		}
		for i := range student.History {
			if student.History[i].ID != transactionID {
				continue
			}
			deleted := student.History[i]
			student.History = append(student.History[:i], student.History[i+1:]...)
			if student.DebtLessonCount > 0 {
				student.DebtLessonCount--
			}
			if deleted.IsDebt && s.guard != nil {
				s.guard.Suppress(ownerID, studentID, deleted.Date)
			}
			return true
		}
		return false
	})
}

// LessonNote renders the canonical numbered lesson note.
func LessonNote(n int) string {
	return fmt.Sprintf("%d. Ders İşlendi", n)
}

// NextLessonNumber counts the streak of valid lesson debits from the newest
// entry down and returns the next number. The scan stops at the first
// non-debit entry even when more valid debits exist further back, which
// under-counts after a payment has been recorded; callers rely on that exact
// behavior for parity with existing documents.
func NextLessonNumber(history []models.Transaction) int {
	sorted := append([]models.Transaction(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	count := 0
	for _, tx := range sorted {
		if !tx.IsDebt {
			break
		}
		if tx.NoteContainsAny(models.NoteTokenCancelled, models.NoteTokenNoShow, models.NoteTokenMakeup) {
			break
		}
		count++
	}
	return count + 1
}

// LessonNumbering assigns sequential display numbers to countable lesson
// debits, oldest first. Entries whose note marks them as missed, cancelled or
// still awaiting a make-up are excluded. Numbers are recomputed fresh on
// every call and can shift retroactively when earlier history changes.
func LessonNumbering(history []models.Transaction) []models.NumberedLesson {
	countable := make([]models.Transaction, 0, len(history))
	for _, tx := range history {
		if !tx.IsDebt {
			continue
		}
		if tx.NoteContainsAny(models.NoteTokenNoShow, models.NoteTokenAbsent, models.NoteTokenCancelled, "telafi bekliyor") {
			continue
		}
		countable = append(countable, tx)
	}
	sort.SliceStable(countable, func(i, j int) bool {
		return countable[i].Date.Before(countable[j].Date)
	})

	numbered := make([]models.NumberedLesson, len(countable))
	for i, tx := range countable {
		numbered[i] = models.NumberedLesson{Number: i + 1, Transaction: tx}
	}
	return numbered
}

// PaymentStatusFor classifies a student's credits within the month containing
// ref against their monthly fee.
func PaymentStatusFor(student *models.Student, ref time.Time) models.PaymentStatus {
	if student == nil {
		return models.PaymentStatusUnpaid
	}
	if student.Fee <= 0 {
		return models.PaymentStatusPaid
	}
	var sum float64
	for _, tx := range student.History {
		if tx.IsDebt {
			continue
		}
		if tx.Date.Year() == ref.Year() && tx.Date.Month() == ref.Month() {
			sum += tx.Amount
		}
	}
	switch {
	case sum >= student.Fee:
		return models.PaymentStatusPaid
	case sum == 0:
		return models.PaymentStatusUnpaid
	default:
		return models.PaymentStatusPartial
	}
}

// HasDebitOn reports whether the history already contains a debit dated the
// same calendar day as ref.
func HasDebitOn(history []models.Transaction, ref time.Time) bool {
	for _, tx := range history {
		if tx.IsDebt && timeutil.SameDay(tx.Date, ref) {
			return true
		}
	}
	return false
}

// CurrentPeriod returns the slice of history from the most recent genuine
// payment (a credit whose note mentions none of the lesson words) back to the
// newest entry, inclusive. Without such a payment the whole history is the
// current period. History is treated newest-first.
func CurrentPeriod(history []models.Transaction) []models.Transaction {
	sorted := append([]models.Transaction(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	for i, tx := range sorted {
		if tx.IsDebt {
			continue
		}
		if tx.NoteContainsAny("telafi", "deneme", "ders") {
			continue
		}
		return sorted[:i+1]
	}
	return sorted
}
