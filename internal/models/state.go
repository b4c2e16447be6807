package models

import "time"

// AppState is the whole per-account document: the unit of persistence and
// synchronization. Saves replace the document atomically; there is no
// field-level transaction concept.
type AppState struct {
	SchoolName           string              `json:"schoolName,omitempty"`
	CurrentTeacher       string              `json:"currentTeacher,omitempty"`
	Teachers             []string            `json:"teachers"`
	Students             map[string]*Student `json:"students"`
	Schedule             Schedule            `json:"schedule"`
	UpdatedAt            time.Time           `json:"updatedAt"`
	AutoLessonProcessing bool                `json:"autoLessonProcessing"`
}

// NewAppState returns an empty initialised document.
func NewAppState() *AppState {
	return &AppState{
		Teachers:             []string{},
		Students:             make(map[string]*Student),
		Schedule:             make(Schedule),
		AutoLessonProcessing: true,
	}
}

// Normalize fills nil collections after deserialization so state transforms
// never have to nil-check maps.
func (a *AppState) Normalize() {
	if a.Teachers == nil {
		a.Teachers = []string{}
	}
	if a.Students == nil {
		a.Students = make(map[string]*Student)
	}
	if a.Schedule == nil {
		a.Schedule = make(Schedule)
	}
}

// Clone returns a deep copy of the document.
func (a *AppState) Clone() *AppState {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Teachers = append([]string(nil), a.Teachers...)
	copied.Students = make(map[string]*Student, len(a.Students))
	for id, student := range a.Students {
		copied.Students[id] = student.Clone()
	}
	copied.Schedule = a.Schedule.Clone()
	return &copied
}

// HasTeacher reports whether the teacher name is already registered.
func (a *AppState) HasTeacher(name string) bool {
	for _, t := range a.Teachers {
		if t == name {
			return true
		}
	}
	return false
}
