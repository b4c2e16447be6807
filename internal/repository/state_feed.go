package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
)

// StateFeed fans saved documents out to subscribed processes over Redis
// pub/sub. Each owner has a dedicated channel; the whole document travels in
// the message, so subscribers never read back from Postgres on a push.
type StateFeed struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStateFeed constructs the feed.
func NewStateFeed(client *redis.Client, logger *zap.Logger) *StateFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateFeed{client: client, logger: logger}
}

func channelFor(ownerID string) string {
	return "tutortrack:state:" + ownerID
}

// Publish pushes a document snapshot to the owner's channel.
func (f *StateFeed) Publish(ctx context.Context, ownerID string, state *models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state snapshot: %w", err)
	}
	if err := f.client.Publish(ctx, channelFor(ownerID), payload).Err(); err != nil {
		return fmt.Errorf("publish state snapshot: %w", err)
	}
	return nil
}

// Subscribe streams document snapshots for an owner until the returned stop
// function is called or the context ends. Malformed messages are logged and
// skipped.
func (f *StateFeed) Subscribe(ctx context.Context, ownerID string) (<-chan *models.AppState, func()) {
	sub := f.client.Subscribe(ctx, channelFor(ownerID))
	out := make(chan *models.AppState)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				state := &models.AppState{}
				if err := json.Unmarshal([]byte(msg.Payload), state); err != nil {
					f.logger.Warn("dropping malformed state snapshot",
						zap.String("owner_id", ownerID), zap.Error(err))
					continue
				}
				state.Normalize()
				select {
				case out <- state:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var stopped bool
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		close(done)
		_ = sub.Close()
	}
	return out, stop
}
