package tracker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/keyspace"
	"github.com/dmitrymomot/dispatch/pkg/tracker"
)

const key = "history:7:1700000000000000001"

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memStore) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = []byte(value)
}

func setup(t *testing.T) (*tracker.Tracker, *keyspace.MemoryNotifier, *memStore) {
	t.Helper()
	n := keyspace.NewMemoryNotifier(16)
	t.Cleanup(func() { _ = n.Close() })
	store := &memStore{data: map[string][]byte{key: []byte(`{"text":"hi","recipients":[]}`)}}
	return tracker.New(n, store), n, store
}

// touch waits for want subscribers and then publishes count writes.
func touch(t *testing.T, n *keyspace.MemoryNotifier, want, count int) {
	t.Helper()
	require.Eventually(t, func() bool { return n.Subscribers(key) == want }, time.Second, time.Millisecond)
	for range count {
		n.Publish(keyspace.Event{Key: key, Op: keyspace.OpSet})
	}
}

func TestTrack(t *testing.T) {
	t.Parallel()

	t.Run("peek mode reads without subscribing", func(t *testing.T) {
		t.Parallel()
		tr, n, _ := setup(t)

		res, err := tr.Track(context.Background(), key, 1, 0)
		require.NoError(t, err)
		assert.False(t, res.TimedOut)
		assert.JSONEq(t, `{"text":"hi","recipients":[]}`, string(res.Record))
		assert.Zero(t, n.Subscribers(key))
	})

	t.Run("returns once the touch target is reached", func(t *testing.T) {
		t.Parallel()
		tr, n, store := setup(t)

		done := make(chan tracker.Result, 1)
		go func() {
			res, err := tr.Track(context.Background(), key, 2, 5*time.Second)
			assert.NoError(t, err)
			done <- res
		}()

		touch(t, n, 1, 2)
		store.set(key, `{"text":"hi","recipients":[{"receivedIn":["sms"]}]}`)
		touch(t, n, 1, 1)

		select {
		case res := <-done:
			assert.False(t, res.TimedOut)
			assert.JSONEq(t, `{"text":"hi","recipients":[{"receivedIn":["sms"]}]}`, string(res.Record))
		case <-time.After(2 * time.Second):
			t.Fatal("tracker did not return after the touch target")
		}
		assert.Eventually(t, func() bool { return n.Subscribers(key) == 0 }, time.Second, time.Millisecond)
	})

	t.Run("non-write events are ignored", func(t *testing.T) {
		t.Parallel()
		tr, n, _ := setup(t)

		go func() {
			touch(t, n, 1, 1)
			n.Publish(keyspace.Event{Key: key, Op: keyspace.OpExpire})
			n.Publish(keyspace.Event{Key: key, Op: keyspace.OpDel})
		}()

		res, err := tr.Track(context.Background(), key, 1, 100*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, res.TimedOut)
	})

	t.Run("timeout returns the current record", func(t *testing.T) {
		t.Parallel()
		tr, n, _ := setup(t)

		go touch(t, n, 1, 2)

		start := time.Now()
		res, err := tr.Track(context.Background(), key, 2, 150*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, res.TimedOut)
		assert.NotEmpty(t, res.Record)
		assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
		assert.Zero(t, n.Subscribers(key))
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()
		tr, _, _ := setup(t)

		_, err := tr.Track(context.Background(), "history:7:1700000000000000002", 1, 0)
		assert.ErrorIs(t, err, tracker.ErrHistoryKeyNotFound)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		t.Parallel()
		tr, _, store := setup(t)
		store.err = errors.New("connection reset")

		_, err := tr.Track(context.Background(), key, 1, 0)
		assert.EqualError(t, err, "connection reset")
	})

	t.Run("parent cancellation is an error", func(t *testing.T) {
		t.Parallel()
		tr, n, _ := setup(t)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			touch(t, n, 1, 0)
			cancel()
		}()

		_, err := tr.Track(ctx, key, 3, 5*time.Second)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Eventually(t, func() bool { return n.Subscribers(key) == 0 }, time.Second, time.Millisecond)
	})

	t.Run("bounds", func(t *testing.T) {
		t.Parallel()
		tr, _, _ := setup(t)

		_, err := tr.Track(context.Background(), key, 0, 0)
		assert.ErrorIs(t, err, tracker.ErrInvalidTouchCount)
		_, err = tr.Track(context.Background(), key, 17, 0)
		assert.ErrorIs(t, err, tracker.ErrInvalidTouchCount)
		_, err = tr.Track(context.Background(), key, 1, 11*time.Second)
		assert.ErrorIs(t, err, tracker.ErrInvalidTimeout)
		_, err = tr.Track(context.Background(), key, 1, -time.Second)
		assert.ErrorIs(t, err, tracker.ErrInvalidTimeout)
	})
}

func TestTrackConcurrentWatchers(t *testing.T) {
	t.Parallel()
	tr, n, store := setup(t)

	var wg sync.WaitGroup
	results := make([]tracker.Result, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := tr.Track(context.Background(), key, 1, 3*time.Second)
			assert.NoError(t, err)
			results[i] = res
		}()
	}

	touch(t, n, len(results), 2)
	wg.Wait()

	for _, res := range results {
		assert.False(t, res.TimedOut)
		assert.JSONEq(t, `{"text":"hi","recipients":[]}`, string(res.Record))
	}
	assert.Zero(t, n.Subscribers(key))

	raw, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi","recipients":[]}`, string(raw))
}
