package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/internal/domain"
)

func TestPublisher_EmitStampsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	ctx := context.Background()

	require.NoError(t, pub.Emit(ctx, Event{ZipCode: "90210", Coverage: "full_coverage", Total: 7}))

	events, err := pub.List(ctx, "90210")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, 7, events[0].Total)
}

func TestPublisher_EmitKeepsExplicitTimestamp(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	stamp := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, pub.Emit(context.Background(), Event{ZipCode: "10001", Timestamp: stamp}))

	events, err := store.ListByZip(context.Background(), "10001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stamp, events[0].Timestamp)
}

func TestMemoryStore_ListFiltersByZip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{ZipCode: "90210"}))
	require.NoError(t, store.Append(ctx, Event{ZipCode: "10001"}))
	require.NoError(t, store.Append(ctx, Event{ZipCode: "90210", Partial: true, FailedTiers: []domain.Level{domain.LevelLocal}}))

	events, err := store.ListByZip(ctx, "90210")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[1].Partial)
	assert.Equal(t, 3, store.Len())
}

func TestWorker_DrainsInbox(t *testing.T) {
	store := NewMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{ZipCode: "60601"}
	inbox <- Event{ZipCode: "60601", CacheHit: true}

	assert.Eventually(t, func() bool {
		return store.Len() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
