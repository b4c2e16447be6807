package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/config"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/jobs"
)

type stateRepository interface {
	Save(ctx context.Context, ownerID string, state *models.AppState) error
	GetOnce(ctx context.Context, ownerID string) (*models.AppState, error)
}

type stateFeed interface {
	Publish(ctx context.Context, ownerID string, state *models.AppState) error
	Subscribe(ctx context.Context, ownerID string) (<-chan *models.AppState, func())
}

type autoProcessor interface {
	Process(ownerID string, state *models.AppState, now time.Time) bool
}

// session is the per-owner authoritative in-memory document plus the plumbing
// that keeps it converged with the remote store.
type session struct {
	mu          sync.Mutex
	state       *models.AppState
	loaded      bool
	savePending atomic.Bool

	cancel   context.CancelFunc
	stopFeed func()
	ticker   *jobs.Ticker
}

// StateService owns the authoritative AppState per account, subscribes to
// remote updates, re-runs auto-processing against fresh snapshots, and
// exposes the mutation façade every other service goes through. Local writes
// are optimistic; the remote store is the source of truth in steady state and
// the last snapshot observed always wins.
type StateService struct {
	repo      stateRepository
	feed      stateFeed
	processor autoProcessor
	metrics   *MetricsService
	cfg       config.AutoProcessConfig
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewStateService constructs the orchestrator.
func NewStateService(repo stateRepository, feed stateFeed, processor autoProcessor, metrics *MetricsService, cfg config.AutoProcessConfig, logger *zap.Logger) *StateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateService{
		repo:      repo,
		feed:      feed,
		processor: processor,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// Attach opens (or reuses) the session for an owner: an initial fetch, a
// change-feed subscription, the auto-processing ticker, and a load-timeout
// fallback so a slow first snapshot never blocks consumers indefinitely.
func (s *StateService) Attach(ctx context.Context, ownerID string) {
	s.mu.Lock()
	if _, ok := s.sessions[ownerID]; ok {
		s.mu.Unlock()
		return
	}
	sess := &session{state: models.NewAppState()}
	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess.cancel = cancel
	s.sessions[ownerID] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}

	snapshots, stopFeed := s.feed.Subscribe(sessCtx, ownerID)
	sess.stopFeed = stopFeed

	go func() {
		for snapshot := range snapshots {
			s.adoptSnapshot(sessCtx, ownerID, sess, snapshot)
		}
	}()

	go func() {
		timer := time.NewTimer(s.cfg.LoadTimeout)
		defer timer.Stop()
		select {
		case <-sessCtx.Done():
		case <-timer.C:
			sess.mu.Lock()
			if !sess.loaded {
				sess.loaded = true
				s.logger.Warn("state load timed out, starting from empty document",
					zap.String("owner_id", ownerID))
			}
			sess.mu.Unlock()
		}
	}()

	go func() {
		initial, err := s.repo.GetOnce(sessCtx, ownerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				initial = models.NewAppState()
			} else {
				s.logger.Error("initial state fetch failed",
					zap.String("owner_id", ownerID), zap.Error(err))
				return
			}
		}
		s.adoptSnapshot(sessCtx, ownerID, sess, initial)
	}()

	if s.cfg.Enabled {
		sess.ticker = jobs.NewTicker("auto-process:"+ownerID, s.cfg.Interval, func(tickCtx context.Context, now time.Time) {
			s.tick(tickCtx, ownerID, sess, now)
		}, s.logger)
		sess.ticker.Start(sessCtx)
	}
}

// Detach tears down the owner's subscription and timer. An in-flight remote
// write is allowed to complete.
func (s *StateService) Detach(ownerID string) {
	s.mu.Lock()
	sess, ok := s.sessions[ownerID]
	if ok {
		delete(s.sessions, ownerID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	if sess.ticker != nil {
		sess.ticker.Stop()
	}
	if sess.stopFeed != nil {
		sess.stopFeed()
	}
	sess.cancel()
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// adoptSnapshot handles a pushed (or initially fetched) remote snapshot:
// re-run auto-processing against it, persist write-after-read when the engine
// produced debits, then adopt it as local state and mark loaded.
func (s *StateService) adoptSnapshot(ctx context.Context, ownerID string, sess *session, snapshot *models.AppState) {
	if snapshot == nil {
		return
	}
	snapshot.Normalize()

	if s.processor != nil && s.processor.Process(ownerID, snapshot, time.Now()) {
		if err := s.repo.Save(ctx, ownerID, snapshot); err != nil {
			s.logger.Error("write-after-read save failed",
				zap.String("owner_id", ownerID), zap.Error(err))
		}
	}

	sess.mu.Lock()
	sess.state = snapshot
	sess.loaded = true
	sess.mu.Unlock()
}

// tick runs one timer-driven reconciliation pass. A pass whose save is still
// outstanding suppresses the next tick entirely; nothing is queued.
func (s *StateService) tick(ctx context.Context, ownerID string, sess *session, now time.Time) {
	if sess.savePending.Load() {
		return
	}
	sess.mu.Lock()
	if !sess.loaded {
		sess.mu.Unlock()
		return
	}
	changed := s.processor != nil && s.processor.Process(ownerID, sess.state, now)
	var snapshot *models.AppState
	if changed {
		sess.state.UpdatedAt = now
		snapshot = sess.state.Clone()
	}
	sess.mu.Unlock()

	if changed {
		s.persist(ctx, ownerID, sess, snapshot)
	}
}

// Mutate applies a pure transform to the owner's state. When the transform
// reports a change the document is stamped and persisted fire-and-forget;
// local state is updated immediately and never rolled back on save failure.
func (s *StateService) Mutate(ownerID string, fn func(*models.AppState) bool) error {
	sess := s.session(ownerID)
	if sess == nil {
		return appErrors.Clone(appErrors.ErrStateUnavailable, "no active session for account")
	}

	sess.mu.Lock()
	if !sess.loaded {
		sess.mu.Unlock()
		return appErrors.Clone(appErrors.ErrStateUnavailable, "account state not loaded yet")
	}
	changed := fn(sess.state)
	var snapshot *models.AppState
	if changed {
		sess.state.UpdatedAt = time.Now()
		snapshot = sess.state.Clone()
	}
	sess.mu.Unlock()

	if changed {
		s.persist(context.Background(), ownerID, sess, snapshot)
	}
	return nil
}

// Get returns a deep copy of the owner's current state.
func (s *StateService) Get(ownerID string) (*models.AppState, error) {
	sess := s.session(ownerID)
	if sess == nil {
		return nil, appErrors.Clone(appErrors.ErrStateUnavailable, "no active session for account")
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.loaded {
		return nil, appErrors.Clone(appErrors.ErrStateUnavailable, "account state not loaded yet")
	}
	return sess.state.Clone(), nil
}

// GetShared performs a one-shot read for the unauthenticated share views. It
// bypasses sessions entirely and never writes.
func (s *StateService) GetShared(ctx context.Context, ownerID string) (*models.AppState, error) {
	state, err := s.repo.GetOnce(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read shared state")
	}
	return state, nil
}

func (s *StateService) session(ownerID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[ownerID]
}

// persist writes the snapshot to the remote store and echoes it on the change
// feed so other connected clients converge. Failures are logged, not retried
// here; retry policy belongs to the storage layer.
func (s *StateService) persist(ctx context.Context, ownerID string, sess *session, snapshot *models.AppState) {
	sess.savePending.Store(true)
	go func() {
		defer sess.savePending.Store(false)
		if err := s.repo.Save(ctx, ownerID, snapshot); err != nil {
			s.logger.Error("state save failed",
				zap.String("owner_id", ownerID), zap.Error(err))
			return
		}
		if err := s.feed.Publish(ctx, ownerID, snapshot); err != nil {
			s.logger.Warn("state publish failed",
				zap.String("owner_id", ownerID), zap.Error(err))
		}
	}()
}
