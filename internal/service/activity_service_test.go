package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/events"
)

func TestActivityService_WithoutRedis(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewActivityService(dispatcher, nil, zap.NewNop(), config.ActivityConfig{FeedLimit: 10})
	svc.RegisterHandlers()

	// publishing must not fail when the feed store is absent
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-1",
		Type:    events.EventTaskCreated,
		OwnerID: "owner-a",
		Payload: events.TaskCreatedPayload{TaskID: "task-1", Title: "Buy milk"},
	}))

	entries, err := svc.ListRecent(context.Background(), "owner-a")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestActivityService_DefaultFeedLimit(t *testing.T) {
	svc := NewActivityService(nil, nil, zap.NewNop(), config.ActivityConfig{})
	assert.Equal(t, 50, svc.feedLimit)
}
