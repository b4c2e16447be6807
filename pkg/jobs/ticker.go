package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// TickFunc runs one reconciliation pass.
type TickFunc func(context.Context, time.Time)

// Ticker drives a periodic task with single-flight semantics: when a pass is
// still in flight, the next tick is dropped rather than queued.
type Ticker struct {
	name     string
	interval time.Duration
	fn       TickFunc
	logger   *zap.Logger

	inFlight atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
}

// NewTicker builds a ticker around fn.
func NewTicker(name string, interval time.Duration, fn TickFunc, logger *zap.Logger) *Ticker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ticker{name: name, interval: interval, fn: fn, logger: logger}
}

// Start begins ticking. Safe to call once.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.loop()
	t.started = true
	t.logger.Sugar().Infow("ticker started", "ticker", t.name, "interval", t.interval)
}

// Stop cancels the loop and waits for an in-flight pass to finish.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.cancel()
	t.mu.Unlock()
	t.wg.Wait()
	t.logger.Sugar().Infow("ticker stopped", "ticker", t.name)
}

func (t *Ticker) loop() {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case now := <-ticker.C:
			t.Fire(now)
		}
	}
}

// Fire runs one pass immediately unless another is still in flight, in which
// case the call is dropped.
func (t *Ticker) Fire(now time.Time) {
	if !t.inFlight.CompareAndSwap(false, true) {
		t.logger.Sugar().Debugw("tick dropped, previous pass in flight", "ticker", t.name)
		return
	}
	defer t.inFlight.Store(false)
	t.fn(t.ctx, now)
}
