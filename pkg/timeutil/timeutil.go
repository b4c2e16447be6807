package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day names double as schedule day keys; the persisted document format uses
// the Turkish names, so they are canonical here.
var dayNames = [7]string{"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi"}

// DayNames returns the schedule day keys in Monday-first display order.
func DayNames() []string {
	return []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"}
}

// DayName maps a timestamp to its schedule day key.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// MinutesFromClock converts an "HH:MM" string to minutes past midnight.
// Malformed input yields 0.
func MinutesFromClock(clock string) int {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// ClockFromMinutes renders minutes past midnight as a zero-padded "HH:MM".
func ClockFromMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// At resolves a clock string to a concrete timestamp on the same calendar day
// as the reference time.
func At(ref time.Time, clock string) time.Time {
	minutes := MinutesFromClock(clock)
	return time.Date(ref.Year(), ref.Month(), ref.Day(), minutes/60, minutes%60, 0, 0, ref.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey renders a timestamp as a "YYYY-MM-DD" calendar-day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
