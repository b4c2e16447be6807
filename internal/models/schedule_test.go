package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleMarshalFlattensToCompositeKeys(t *testing.T) {
	s := make(Schedule)
	s.SetBucket("Ayşe", "Pazartesi", []LessonSlot{{ID: "a", Start: "15:00", End: "15:40"}})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var flat map[string][]LessonSlot
	require.NoError(t, json.Unmarshal(data, &flat))
	require.Contains(t, flat, "Ayşe|Pazartesi")
	assert.Equal(t, "a", flat["Ayşe|Pazartesi"][0].ID)
}

func TestScheduleUnmarshalExpandsCompositeKeys(t *testing.T) {
	raw := `{"Ayşe|Pazartesi":[{"id":"a","start":"15:00","end":"15:40","studentId":"s1"}],"bozuk":[{"id":"x","start":"10:00","end":"10:40","studentId":null}]}`

	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	bucket := s.Bucket("Ayşe", "Pazartesi")
	require.Len(t, bucket, 1)
	require.NotNil(t, bucket[0].StudentID)
	assert.Equal(t, "s1", *bucket[0].StudentID)
	// Keys without the separator are dropped, not surfaced as errors.
	assert.Len(t, s, 1)
}

func TestScheduleRoundTrip(t *testing.T) {
	studentID := "s1"
	s := make(Schedule)
	s.SetBucket("Ayşe", "Salı", []LessonSlot{
		{ID: "a", Start: "15:00", End: "15:40", StudentID: &studentID, Label: LabelMakeup},
		{ID: "b", Start: "16:00", End: "16:40"},
	})
	s.SetBucket("Mehmet", "Salı", []LessonSlot{{ID: "c", Start: "17:00", End: "17:40"}})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var back Schedule
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, s, back)
}

func TestScheduleCloneIsDeep(t *testing.T) {
	studentID := "s1"
	s := make(Schedule)
	s.SetBucket("Ayşe", "Salı", []LessonSlot{{ID: "a", Start: "15:00", End: "15:40", StudentID: &studentID}})

	clone := s.Clone()
	*clone["Ayşe"]["Salı"][0].StudentID = "tampered"
	clone["Ayşe"]["Salı"][0].Start = "00:00"

	assert.Equal(t, "s1", *s["Ayşe"]["Salı"][0].StudentID)
	assert.Equal(t, "15:00", s["Ayşe"]["Salı"][0].Start)
}

func TestDayBucketsStableTeacherOrder(t *testing.T) {
	s := make(Schedule)
	s.SetBucket("Zeynep", "Salı", []LessonSlot{{ID: "z", Start: "15:00", End: "15:40"}})
	s.SetBucket("Ayşe", "Salı", []LessonSlot{{ID: "a", Start: "16:00", End: "16:40"}})
	s.SetBucket("Ayşe", "Çarşamba", []LessonSlot{{ID: "w", Start: "16:00", End: "16:40"}})

	buckets := s.DayBuckets("Salı")
	require.Len(t, buckets, 2)
	assert.Equal(t, "Ayşe", buckets[0].Teacher)
	assert.Equal(t, "Zeynep", buckets[1].Teacher)
}
