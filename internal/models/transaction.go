package models

import (
	"strings"
	"time"
)

// TransactionKind is the explicit classification of a ledger entry. Legacy
// documents carry only free-text notes, so the kind field is optional on the
// wire and note parsing remains the fallback.
type TransactionKind string

const (
	KindLesson        TransactionKind = "LESSON"
	KindPayment       TransactionKind = "PAYMENT"
	KindAbsence       TransactionKind = "ABSENCE"
	KindMakeupPending TransactionKind = "MAKEUP_PENDING"
	KindMakeupDone    TransactionKind = "MAKEUP_DONE"
	KindTrial         TransactionKind = "TRIAL"
)

// Note tokens the legacy documents use to encode entry semantics. Matching is
// case-insensitive substring search and must stay that way: the store format
// is shared with existing data.
const (
	NoteTokenCancelled = "iptal"
	NoteTokenNoShow    = "gelmedi"
	NoteTokenAbsent    = "katılım yok"
	NoteTokenMakeup    = "telafi"
	NoteTokenPending   = "bekliyor"
	NoteTokenTrial     = "deneme"
)

// Transaction is a single ledger entry in a student's history. Monetary
// meaning is fully determined by IsDebt + Amount; display classification
// comes from the note text (or the explicit kind tag when present).
type Transaction struct {
	ID     string          `json:"id"`
	Note   string          `json:"note"`
	Date   time.Time       `json:"date"`
	IsDebt bool            `json:"isDebt"`
	Amount float64         `json:"amount"`
	Kind   TransactionKind `json:"kind,omitempty"`
}

// ClassifyNote infers the entry kind from legacy free-text note content.
func ClassifyNote(note string, isDebt bool) TransactionKind {
	lower := strings.ToLower(note)
	hasMakeup := strings.Contains(lower, NoteTokenMakeup)
	switch {
	case hasMakeup && strings.Contains(lower, NoteTokenPending):
		return KindMakeupPending
	case hasMakeup:
		return KindMakeupDone
	case strings.Contains(lower, NoteTokenCancelled),
		strings.Contains(lower, NoteTokenNoShow),
		strings.Contains(lower, NoteTokenAbsent):
		return KindAbsence
	case strings.Contains(lower, NoteTokenTrial):
		return KindTrial
	case isDebt:
		return KindLesson
	default:
		return KindPayment
	}
}

// EffectiveKind prefers the explicit tag and falls back to note parsing for
// legacy entries.
func (t Transaction) EffectiveKind() TransactionKind {
	if t.Kind != "" {
		return t.Kind
	}
	return ClassifyNote(t.Note, t.IsDebt)
}

// NoteContainsAny reports whether the note contains any of the tokens,
// case-insensitively.
func (t Transaction) NoteContainsAny(tokens ...string) bool {
	lower := strings.ToLower(t.Note)
	for _, token := range tokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
