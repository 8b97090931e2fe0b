package keyspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/keyspace"
)

const key = "history:1:1700000000000000000"

func receive(t *testing.T, sub keyspace.Subscription) keyspace.Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "no event received")
	}
	return keyspace.Event{}
}

func TestMemoryNotifier(t *testing.T) {
	t.Parallel()

	t.Run("delivers events for the exact key only", func(t *testing.T) {
		t.Parallel()
		n := keyspace.NewMemoryNotifier(4)
		defer n.Close()

		sub, err := n.Subscribe(context.Background(), key)
		require.NoError(t, err)
		defer sub.Close()

		n.Publish(keyspace.Event{Key: "history:2:1700000000000000000", Op: keyspace.OpSet})
		n.Publish(keyspace.Event{Key: key, Op: keyspace.OpSet})

		assert.Equal(t, keyspace.Event{Key: key, Op: keyspace.OpSet}, receive(t, sub))
		select {
		case ev := <-sub.Events():
			t.Fatalf("unexpected event %+v", ev)
		default:
		}
	})

	t.Run("independent subscribers of one key", func(t *testing.T) {
		t.Parallel()
		n := keyspace.NewMemoryNotifier(4)
		defer n.Close()

		first, err := n.Subscribe(context.Background(), key)
		require.NoError(t, err)
		second, err := n.Subscribe(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 2, n.Subscribers(key))

		require.NoError(t, first.Close())
		require.NoError(t, first.Close())
		assert.Equal(t, 1, n.Subscribers(key))

		n.Publish(keyspace.Event{Key: key, Op: keyspace.OpSet})
		assert.Equal(t, keyspace.OpSet, receive(t, second).Op)

		_, open := <-first.Events()
		assert.False(t, open)
		require.NoError(t, second.Close())
		assert.Zero(t, n.Subscribers(key))
	})

	t.Run("context cancellation releases the subscription", func(t *testing.T) {
		t.Parallel()
		n := keyspace.NewMemoryNotifier(1)
		defer n.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub, err := n.Subscribe(ctx, key)
		require.NoError(t, err)

		cancel()
		assert.Eventually(t, func() bool { return n.Subscribers(key) == 0 }, time.Second, 5*time.Millisecond)
		_, open := <-sub.Events()
		assert.False(t, open)
	})

	t.Run("slow subscriber drops instead of blocking", func(t *testing.T) {
		t.Parallel()
		n := keyspace.NewMemoryNotifier(1)
		defer n.Close()

		sub, err := n.Subscribe(context.Background(), key)
		require.NoError(t, err)
		defer sub.Close()

		n.Publish(keyspace.Event{Key: key, Op: keyspace.OpSet})
		n.Publish(keyspace.Event{Key: key, Op: keyspace.OpDel})
		assert.Equal(t, keyspace.OpSet, receive(t, sub).Op)
	})

	t.Run("closed notifier", func(t *testing.T) {
		t.Parallel()
		n := keyspace.NewMemoryNotifier(1)
		sub, err := n.Subscribe(context.Background(), key)
		require.NoError(t, err)

		require.NoError(t, n.Close())
		require.NoError(t, n.Close())

		_, open := <-sub.Events()
		assert.False(t, open)

		_, err = n.Subscribe(context.Background(), key)
		assert.ErrorIs(t, err, keyspace.ErrNotifierClosed)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		_, err := keyspace.NewMemoryNotifier(1).Subscribe(context.Background(), "")
		assert.ErrorIs(t, err, keyspace.ErrEmptyKey)
	})
}
