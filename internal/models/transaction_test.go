package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNote(t *testing.T) {
	cases := []struct {
		note   string
		isDebt bool
		want   TransactionKind
	}{
		{"Telafi Bekliyor", true, KindMakeupPending},
		{"Telafi Dersi (Tamamlandı)", true, KindMakeupDone},
		{"Ders İptal Edildi", true, KindAbsence},
		{"Gelmedi", true, KindAbsence},
		{"Katılım Yok", true, KindAbsence},
		{"Deneme Dersi (Tamamlandı)", true, KindTrial},
		{"3. Ders İşlendi", true, KindLesson},
		{"Ödeme Alındı", false, KindPayment},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyNote(tc.note, tc.isDebt), "note %q", tc.note)
	}
}

func TestEffectiveKindPrefersExplicitTag(t *testing.T) {
	tx := Transaction{Note: "Gelmedi", IsDebt: true, Kind: KindLesson}
	assert.Equal(t, KindLesson, tx.EffectiveKind())

	legacy := Transaction{Note: "Gelmedi", IsDebt: true}
	assert.Equal(t, KindAbsence, legacy.EffectiveKind())
}

func TestNoteContainsAnyIsCaseInsensitive(t *testing.T) {
	tx := Transaction{Note: "DERS İPTAL"}
	assert.True(t, tx.NoteContainsAny("iptal"))
	assert.False(t, tx.NoteContainsAny("telafi", "deneme"))
}
