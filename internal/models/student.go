package models

import "time"

// Student is a learner tracked by the tutoring business. History holds the
// full ledger, newest-first by convention; callers sort explicitly where
// order matters.
type Student struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	Fee              float64       `json:"fee"`
	RegistrationDate time.Time     `json:"registrationDate"`
	DebtLessonCount  int           `json:"debtLessonCount"`
	MakeupCredit     int           `json:"makeupCredit"`
	History          []Transaction `json:"history"`
	Resources        []Resource    `json:"resources,omitempty"`
	Color            string        `json:"color,omitempty"`
	NextLessonNote   string        `json:"nextLessonNote,omitempty"`
	IsActive         bool          `json:"isActive"`
}

// Clone returns a deep copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}
	copied := *s
	copied.History = append([]Transaction(nil), s.History...)
	copied.Resources = append([]Resource(nil), s.Resources...)
	return &copied
}

// Resource is an ad-hoc link or uploaded file shared with a student. File
// resources carry a ContentID referencing the blob store; link resources
// carry only a URL.
type Resource struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	ContentID string    `json:"contentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentStatus classifies a student's payments for a given month against
// their monthly fee.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
)

// Pagination carries list paging metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
