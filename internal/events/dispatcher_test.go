package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventTaskCreated, func(ctx context.Context, event Event) error {
		seen = append(seen, event.OwnerID)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTaskCreated, OwnerID: "owner-a"}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTaskDeleted, OwnerID: "owner-b"}))

	assert.Equal(t, []string{"owner-a"}, seen)
}

func TestDispatcher_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondRan bool
	d.Subscribe(EventTaskUpdated, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTaskUpdated, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTaskUpdated}))
	assert.True(t, secondRan)
}
