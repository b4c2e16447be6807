package models

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// SlotLabel tags a booked slot; it is meaningful only while a student is
// assigned.
type SlotLabel string

const (
	LabelRegular SlotLabel = "REGULAR"
	LabelMakeup  SlotLabel = "MAKEUP"
	LabelTrial   SlotLabel = "TRIAL"
)

// DefaultLessonMinutes is the assumed lesson span when synthesizing slots.
const DefaultLessonMinutes = 40

// LessonSlot is a fixed interval in the weekly timetable. A nil StudentID
// means the slot is open.
type LessonSlot struct {
	ID        string    `json:"id"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	StudentID *string   `json:"studentId"`
	Label     SlotLabel `json:"label,omitempty"`
}

// StartMinutes returns the slot start as minutes past midnight.
func (s LessonSlot) StartMinutes() int {
	return timeutil.MinutesFromClock(s.Start)
}

// EndMinutes returns the slot end as minutes past midnight.
func (s LessonSlot) EndMinutes() int {
	return timeutil.MinutesFromClock(s.End)
}

// Schedule is the weekly slot grid, teacher name → day name → slots. The
// persisted document keeps the legacy flat "teacher|day" keys, so the map
// round-trips through custom JSON below; consumers never see the composite
// key form.
type Schedule map[string]map[string][]LessonSlot

// Bucket returns the slot list for a (teacher, day) pair, nil when absent.
func (s Schedule) Bucket(teacher, day string) []LessonSlot {
	days, ok := s[teacher]
	if !ok {
		return nil
	}
	return days[day]
}

// SetBucket replaces the slot list for a (teacher, day) pair, creating the
// teacher level as needed.
func (s Schedule) SetBucket(teacher, day string, slots []LessonSlot) {
	days, ok := s[teacher]
	if !ok {
		days = make(map[string][]LessonSlot)
		s[teacher] = days
	}
	days[day] = slots
}

// DayBucket pairs a teacher with that teacher's slots for one day.
type DayBucket struct {
	Teacher string
	Slots   []LessonSlot
}

// DayBuckets collects every teacher's bucket for the given day in stable
// teacher-name order. The auto-processing scan deliberately crosses all
// teachers sharing the day.
func (s Schedule) DayBuckets(day string) []DayBucket {
	teachers := make([]string, 0, len(s))
	for teacher := range s {
		teachers = append(teachers, teacher)
	}
	sort.Strings(teachers)

	buckets := make([]DayBucket, 0, len(teachers))
	for _, teacher := range teachers {
		if slots, ok := s[teacher][day]; ok && len(slots) > 0 {
			buckets = append(buckets, DayBucket{Teacher: teacher, Slots: slots})
		}
	}
	return buckets
}

// SortSlots orders slots by start time in minutes. The sort is stable so
// duplicate start times keep their insertion order.
func SortSlots(slots []LessonSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartMinutes() < slots[j].StartMinutes()
	})
}

// MarshalJSON flattens the two-level map back to the legacy "teacher|day"
// wire keys.
func (s Schedule) MarshalJSON() ([]byte, error) {
	flat := make(map[string][]LessonSlot, len(s))
	for teacher, days := range s {
		for day, slots := range days {
			flat[teacher+"|"+day] = slots
		}
	}
	return json.Marshal(flat)
}

// UnmarshalJSON expands legacy "teacher|day" keys into the two-level map.
// Keys without the separator are dropped.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var flat map[string][]LessonSlot
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	out := make(Schedule, len(flat))
	for key, slots := range flat {
		teacher, day, ok := strings.Cut(key, "|")
		if !ok {
			continue
		}
		out.SetBucket(teacher, day, slots)
	}
	*s = out
	return nil
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for teacher, days := range s {
		copiedDays := make(map[string][]LessonSlot, len(days))
		for day, slots := range days {
			copiedSlots := make([]LessonSlot, len(slots))
			for i, slot := range slots {
				copiedSlots[i] = slot
				if slot.StudentID != nil {
					id := *slot.StudentID
					copiedSlots[i].StudentID = &id
				}
			}
			copiedDays[day] = copiedSlots
		}
		out[teacher] = copiedDays
	}
	return out
}
