package service

import (
	"sync"
	"time"

	"github.com/noah-isme/tutortrack-api/pkg/timeutil"
)

// SuppressionGuard remembers (student, calendar day) pairs whose lesson debit
// was manually deleted so auto-processing does not recreate it the same day.
// The set is process-local and lost on restart; that lifetime is intentional.
type SuppressionGuard struct {
	mu    sync.Mutex
	byOwn map[string]map[string]struct{}
}

// NewSuppressionGuard constructs an empty guard.
func NewSuppressionGuard() *SuppressionGuard {
	return &SuppressionGuard{byOwn: make(map[string]map[string]struct{})}
}

func guardKey(studentID string, date time.Time) string {
	return studentID + "|" + timeutil.DayKey(date)
}

// Suppress records that a debit for the student on the given day must not be
// auto-recreated.
func (g *SuppressionGuard) Suppress(ownerID, studentID string, date time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.byOwn[ownerID]
	if !ok {
		set = make(map[string]struct{})
		g.byOwn[ownerID] = set
	}
	set[guardKey(studentID, date)] = struct{}{}
}

// Suppressed reports whether the (student, day) pair is guarded.
func (g *SuppressionGuard) Suppressed(ownerID, studentID string, date time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.byOwn[ownerID]
	if !ok {
		return false
	}
	_, hit := set[guardKey(studentID, date)]
	return hit
}

// Clear drops all guards for an owner, used when the owning identity detaches.
func (g *SuppressionGuard) Clear(ownerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.byOwn, ownerID)
}
