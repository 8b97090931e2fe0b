package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reader is the read-only command subset Storage needs. It is satisfied by
// *redis.Client as well as by *redis.Tx inside a WATCH callback.
type Reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// Storage is a thin key-value view over a Redis connection or transaction.
type Storage struct {
	db Reader
}

func NewStorage(db Reader) *Storage {
	return &Storage{db: db}
}

// Get returns nil for empty keys and missing values (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// TTL returns the remaining time to live of a key. Following Redis, -1
// means the key has no expiry and -2 that the key does not exist; both are
// returned as those raw nanosecond values by go-redis.
func (s *Storage) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.db.TTL(ctx, key).Result()
}
