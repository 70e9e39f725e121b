package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestPublishAndSubscribe(t *testing.T) {
	rdb := newTestRedis(t)
	publisher := NewPublisher(rdb, zap.NewNop())
	subscriber := NewSubscriber(rdb, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := subscriber.Subscribe(ctx)
	// give the subscriber goroutine a moment to attach
	time.Sleep(50 * time.Millisecond)

	want := CandidateEvent{
		CandidateID:  7,
		Name:         "Ada",
		Status:       models.StatusTerminated,
		CurrentRound: 2,
		Reason:       models.BreachFullscreen,
	}
	require.NoError(t, publisher.PublishCandidateUpdate(ctx, want))

	select {
	case got := <-updates:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestSubscribeSkipsMalformedPayloads(t *testing.T) {
	rdb := newTestRedis(t)
	publisher := NewPublisher(rdb, zap.NewNop())
	subscriber := NewSubscriber(rdb, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := subscriber.Subscribe(ctx)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, rdb.Publish(ctx, ChannelCandidateUpdated, "not json").Err())
	want := CandidateEvent{CandidateID: 1, Name: "ok", Status: models.StatusActive}
	require.NoError(t, publisher.PublishCandidateUpdate(ctx, want))

	select {
	case got := <-updates:
		require.Equal(t, uint(1), got.CandidateID, "the well-formed event should arrive")
	case <-time.After(2 * time.Second):
		t.Fatal("malformed payload stalled the subscriber")
	}
}

func TestSubscribeStopsOnContextCancel(t *testing.T) {
	rdb := newTestRedis(t)
	subscriber := NewSubscriber(rdb, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	updates := subscriber.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-updates:
		require.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
