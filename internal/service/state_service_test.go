package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	"github.com/noah-isme/tutortrack-api/pkg/config"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
)

type mockStateRepo struct {
	mu     sync.Mutex
	stored map[string]*models.AppState
	getErr error
	saves  int
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{stored: make(map[string]*models.AppState)}
}

func (m *mockStateRepo) Save(ctx context.Context, ownerID string, state *models.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored[ownerID] = state.Clone()
	m.saves++
	return nil
}

func (m *mockStateRepo) GetOnce(ctx context.Context, ownerID string) (*models.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if state, ok := m.stored[ownerID]; ok {
		return state.Clone(), nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStateRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type mockStateFeed struct {
	mu        sync.Mutex
	published []*models.AppState
	snapshots chan *models.AppState
	stopOnce  sync.Once
}

func newMockStateFeed() *mockStateFeed {
	return &mockStateFeed{snapshots: make(chan *models.AppState, 4)}
}

func (m *mockStateFeed) Publish(ctx context.Context, ownerID string, state *models.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, state.Clone())
	return nil
}

func (m *mockStateFeed) Subscribe(ctx context.Context, ownerID string) (<-chan *models.AppState, func()) {
	return m.snapshots, func() {
		m.stopOnce.Do(func() { close(m.snapshots) })
	}
}

func (m *mockStateFeed) publishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

type mockProcessor struct {
	mu      sync.Mutex
	changed bool
	calls   int
}

func (m *mockProcessor) Process(ownerID string, state *models.AppState, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.changed
}

func (m *mockProcessor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// newLoadedStateService seeds a session that is already loaded so mutation
// tests stay deterministic.
func newLoadedStateService(repo *mockStateRepo, feed *mockStateFeed, ownerID string, state *models.AppState) *StateService {
	svc := NewStateService(repo, feed, nil, nil, config.AutoProcessConfig{LoadTimeout: time.Second}, zap.NewNop())
	_, cancel := context.WithCancel(context.Background())
	svc.sessions[ownerID] = &session{state: state, loaded: true, cancel: cancel}
	return svc
}

func TestStateServiceMutatePersistsAndPublishes(t *testing.T) {
	repo := newMockStateRepo()
	feed := newMockStateFeed()
	svc := newLoadedStateService(repo, feed, "owner-1", models.NewAppState())

	err := svc.Mutate("owner-1", func(state *models.AppState) bool {
		state.SchoolName = "Atölye"
		return true
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.saveCount() == 1 && feed.publishedCount() == 1
	}, time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	saved := repo.stored["owner-1"]
	repo.mu.Unlock()
	assert.Equal(t, "Atölye", saved.SchoolName)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestStateServiceMutateNoChangeSkipsSave(t *testing.T) {
	repo := newMockStateRepo()
	feed := newMockStateFeed()
	svc := newLoadedStateService(repo, feed, "owner-1", models.NewAppState())

	err := svc.Mutate("owner-1", func(state *models.AppState) bool { return false })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, repo.saveCount())
	assert.Zero(t, feed.publishedCount())
}

func TestStateServiceMutateWithoutSession(t *testing.T) {
	svc := NewStateService(newMockStateRepo(), newMockStateFeed(), nil, nil, config.AutoProcessConfig{}, zap.NewNop())

	err := svc.Mutate("nobody", func(state *models.AppState) bool { return true })
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStateUnavailable.Code, appErr.Code)
}

func TestStateServiceGetReturnsClone(t *testing.T) {
	state := models.NewAppState()
	state.Students["s1"] = &models.Student{ID: "s1", Name: "Deniz", IsActive: true}
	svc := newLoadedStateService(newMockStateRepo(), newMockStateFeed(), "owner-1", state)

	got, err := svc.Get("owner-1")
	require.NoError(t, err)
	got.Students["s1"].Name = "tampered"

	again, err := svc.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Deniz", again.Students["s1"].Name)
}

func TestStateServiceAttachLoadsInitialState(t *testing.T) {
	repo := newMockStateRepo()
	seed := models.NewAppState()
	seed.SchoolName = "Atölye"
	repo.stored["owner-1"] = seed
	feed := newMockStateFeed()
	svc := NewStateService(repo, feed, nil, nil, config.AutoProcessConfig{LoadTimeout: time.Second}, zap.NewNop())

	svc.Attach(context.Background(), "owner-1")
	defer svc.Detach("owner-1")

	require.Eventually(t, func() bool {
		state, err := svc.Get("owner-1")
		return err == nil && state.SchoolName == "Atölye"
	}, time.Second, 10*time.Millisecond)
}

func TestStateServiceAttachMissingRowStartsEmpty(t *testing.T) {
	repo := newMockStateRepo()
	feed := newMockStateFeed()
	svc := NewStateService(repo, feed, nil, nil, config.AutoProcessConfig{LoadTimeout: time.Second}, zap.NewNop())

	svc.Attach(context.Background(), "fresh-owner")
	defer svc.Detach("fresh-owner")

	require.Eventually(t, func() bool {
		state, err := svc.Get("fresh-owner")
		return err == nil && state.AutoLessonProcessing && len(state.Students) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestStateServiceSnapshotTriggersWriteAfterRead(t *testing.T) {
	repo := newMockStateRepo()
	feed := newMockStateFeed()
	processor := &mockProcessor{changed: true}
	svc := NewStateService(repo, feed, processor, nil, config.AutoProcessConfig{LoadTimeout: time.Second}, zap.NewNop())

	svc.Attach(context.Background(), "owner-1")
	defer svc.Detach("owner-1")

	snapshot := models.NewAppState()
	snapshot.SchoolName = "Pushed"
	feed.snapshots <- snapshot

	require.Eventually(t, func() bool {
		state, err := svc.Get("owner-1")
		return err == nil && state.SchoolName == "Pushed" && repo.saveCount() >= 1
	}, time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, processor.callCount(), 1)
}

func TestStateServiceGetShared(t *testing.T) {
	repo := newMockStateRepo()
	seed := models.NewAppState()
	seed.SchoolName = "Atölye"
	repo.stored["owner-1"] = seed
	svc := NewStateService(repo, newMockStateFeed(), nil, nil, config.AutoProcessConfig{}, zap.NewNop())

	state, err := svc.GetShared(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Atölye", state.SchoolName)

	_, err = svc.GetShared(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStateServiceTickSkipsWhileSavePending(t *testing.T) {
	repo := newMockStateRepo()
	feed := newMockStateFeed()
	processor := &mockProcessor{changed: true}
	svc := NewStateService(repo, feed, processor, nil, config.AutoProcessConfig{}, zap.NewNop())
	_, cancel := context.WithCancel(context.Background())
	sess := &session{state: models.NewAppState(), loaded: true, cancel: cancel}
	svc.sessions["owner-1"] = sess

	sess.savePending.Store(true)
	svc.tick(context.Background(), "owner-1", sess, time.Now())
	assert.Zero(t, processor.callCount())

	sess.savePending.Store(false)
	svc.tick(context.Background(), "owner-1", sess, time.Now())
	assert.Equal(t, 1, processor.callCount())
	require.Eventually(t, func() bool { return repo.saveCount() == 1 }, time.Second, 10*time.Millisecond)
}
