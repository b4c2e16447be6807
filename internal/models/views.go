package models

import "time"

// NextLesson is the derived next occurrence of a student's scheduled slot.
type NextLesson struct {
	Teacher string    `json:"teacher"`
	Day     string    `json:"day"`
	Start   string    `json:"start"`
	End     string    `json:"end"`
	Date    time.Time `json:"date"`
	Label   SlotLabel `json:"label,omitempty"`
}

// NumberedLesson is a display-numbered debit entry within a period. The
// numbering is recomputed on every query and never stored.
type NumberedLesson struct {
	Number      int         `json:"number"`
	Transaction Transaction `json:"transaction"`
}

// TeacherStats aggregates a teacher's roster for list views.
type TeacherStats struct {
	Teacher          string  `json:"teacher"`
	StudentCount     int     `json:"student_count"`
	ProjectedMonthly float64 `json:"projected_monthly"`
}

// StudentSummary is the roster row for the current teacher's list view.
type StudentSummary struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Color           string        `json:"color,omitempty"`
	Fee             float64       `json:"fee"`
	DebtLessonCount int           `json:"debt_lesson_count"`
	MakeupCredit    int           `json:"makeup_credit"`
	IsActive        bool          `json:"is_active"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	NextLesson      *NextLesson   `json:"next_lesson,omitempty"`
}

// ParentView is the read-only single-student projection behind a share link.
type ParentView struct {
	SchoolName    string           `json:"school_name,omitempty"`
	StudentName   string           `json:"student_name"`
	Color         string           `json:"color,omitempty"`
	NextLesson    *NextLesson      `json:"next_lesson,omitempty"`
	NextNote      string           `json:"next_note,omitempty"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	MakeupCredit  int              `json:"makeup_credit"`
	Period        []Transaction    `json:"period"`
	Lessons       []NumberedLesson `json:"lessons"`
	Resources     []Resource       `json:"resources,omitempty"`
}

// TeacherDaySlots is one weekly-grid column in the teacher share view.
type TeacherDaySlots struct {
	Day   string       `json:"day"`
	Slots []BookedSlot `json:"slots"`
}

// BookedSlot decorates a slot with the resolved student name for display.
// Orphan references render as unassigned, never as errors.
type BookedSlot struct {
	LessonSlot
	StudentName string `json:"student_name,omitempty"`
}

// TeacherView is the read-only weekly grid behind a teacher share link.
type TeacherView struct {
	SchoolName string            `json:"school_name,omitempty"`
	Teacher    string            `json:"teacher"`
	Week       []TeacherDaySlots `json:"week"`
	Stats      TeacherStats      `json:"stats"`
}
