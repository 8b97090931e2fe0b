package keyspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier subscribes to Redis keyspace notifications.
type RedisNotifier struct {
	client     redis.UniversalClient
	db         int
	bufferSize int
}

// RedisOption configures a RedisNotifier.
type RedisOption func(*RedisNotifier)

// WithBufferSize sets the per-subscription event buffer.
func WithBufferSize(n int) RedisOption {
	return func(r *RedisNotifier) {
		r.bufferSize = max(n, 1)
	}
}

// NewRedisNotifier watches keys of database db through client.
func NewRedisNotifier(client redis.UniversalClient, db int, opts ...RedisOption) *RedisNotifier {
	n := &RedisNotifier{
		client:     client,
		db:         db,
		bufferSize: 16,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Channel returns the keyspace channel of key in database db.
func Channel(db int, key string) string {
	return fmt.Sprintf("__keyspace@%d__:%s", db, key)
}

// Subscribe waits for the server to confirm the subscription before
// returning, so no event published afterwards is missed.
func (n *RedisNotifier) Subscribe(ctx context.Context, key string) (Subscription, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	ps := n.client.Subscribe(ctx, Channel(n.db, key))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	sub := &redisSubscription{
		ps:     ps,
		key:    key,
		events: make(chan Event, n.bufferSize),
		done:   make(chan struct{}),
	}
	go sub.pump(ctx)
	return sub, nil
}

type redisSubscription struct {
	ps     *redis.PubSub
	key    string
	events chan Event
	done   chan struct{}

	once sync.Once
	err  error
}

func (s *redisSubscription) Events() <-chan Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.err = s.ps.Close()
	})
	return s.err
}

func (s *redisSubscription) pump(ctx context.Context) {
	defer close(s.events)

	msgs := s.ps.Channel()
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			select {
			case s.events <- Event{Key: s.key, Op: Op(msg.Payload)}:
			case <-s.done:
				return
			case <-ctx.Done():
				_ = s.Close()
				return
			}
		case <-s.done:
			return
		case <-ctx.Done():
			_ = s.Close()
			return
		}
	}
}
