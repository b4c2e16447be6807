package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesFromClock(t *testing.T) {
	assert.Equal(t, 0, MinutesFromClock("00:00"))
	assert.Equal(t, 555, MinutesFromClock("09:15"))
	assert.Equal(t, 1260, MinutesFromClock("21:00"))
	assert.Equal(t, 900, MinutesFromClock(" 15:00 "))
	assert.Equal(t, 0, MinutesFromClock("garbage"))
	assert.Equal(t, 0, MinutesFromClock(""))
}

func TestClockFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", ClockFromMinutes(0))
	assert.Equal(t, "09:15", ClockFromMinutes(555))
	assert.Equal(t, "21:00", ClockFromMinutes(1260))
	assert.Equal(t, "00:00", ClockFromMinutes(-10))
}

func TestDayName(t *testing.T) {
	// 2024-01-01 was a Monday.
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Pazartesi", DayName(monday))
	assert.Equal(t, "Pazar", DayName(monday.AddDate(0, 0, 6)))
}

func TestAt(t *testing.T) {
	ref := time.Date(2024, 3, 14, 18, 30, 0, 0, time.UTC)
	end := At(ref, "09:40")
	assert.Equal(t, 9, end.Hour())
	assert.Equal(t, 40, end.Minute())
	assert.True(t, SameDay(ref, end))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2024-03-14", DayKey(time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC)))
}
