package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/events"
)

// ActivityEntry is one item of an owner's recent activity feed.
type ActivityEntry struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// ActivityService consumes domain events and keeps a bounded per-owner
// activity feed in Redis. If Redis is unreachable the feed degrades to
// log-only; task operations are never failed by it.
type ActivityService struct {
	dispatcher events.Dispatcher
	client     *redis.Client
	logger     *zap.Logger
	feedLimit  int
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, client *redis.Client, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	limit := cfg.FeedLimit
	if limit <= 0 {
		limit = 50
	}
	return &ActivityService{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		feedLimit:  limit,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTaskCreated, a.record)
	a.dispatcher.Subscribe(events.EventTaskUpdated, a.record)
	a.dispatcher.Subscribe(events.EventTaskDeleted, a.record)
	a.dispatcher.Subscribe(events.EventUserRegistered, a.record)
}

// ListRecent returns the newest feed entries for an owner, newest first.
func (a *ActivityService) ListRecent(ctx context.Context, ownerID string) ([]ActivityEntry, error) {
	if a.client == nil {
		return []ActivityEntry{}, nil
	}
	raw, err := a.client.LRange(ctx, feedKey(ownerID), 0, int64(a.feedLimit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]ActivityEntry, 0, len(raw))
	for _, item := range raw {
		var entry ActivityEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			a.logger.Warn("skipping malformed activity entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event_type", string(event.Type)),
		zap.String("owner_id", event.OwnerID),
		zap.Any("payload", event.Payload))

	if a.client == nil {
		return nil
	}

	entry := ActivityEntry{
		EventID:    event.ID,
		Type:       string(event.Type),
		OccurredAt: event.Timestamp,
		Payload:    event.Payload,
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := feedKey(event.OwnerID)
	pipe := a.client.TxPipeline()
	pipe.LPush(ctx, key, encoded)
	pipe.LTrim(ctx, key, 0, int64(a.feedLimit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		a.logger.Warn("activity feed write failed", zap.Error(err))
	}
	return nil
}

func feedKey(ownerID string) string {
	return "activity:" + ownerID
}
