package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect establishes a connection to a Redis server using the provided configuration.
// It attempts to connect multiple times based on the RetryAttempts config value,
// with a delay between attempts specified by RetryInterval.
//
// Returns ErrFailedToParseRedisConnString if the connection URL is invalid and
// ErrRedisNotReady if all connection attempts fail.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		client := redis.NewClient(opts)

		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		_ = client.Close()

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// EnableKeyspaceEvents turns on the keyspace notifications the delivery
// queue relies on. Managed Redis offerings often forbid CONFIG SET; callers
// usually log ErrKeyspaceEventsRejected and continue, expecting the flags
// to be configured in redis.conf instead.
func EnableKeyspaceEvents(ctx context.Context, client redis.UniversalClient, flags string) error {
	if flags == "" {
		return nil
	}
	if err := client.ConfigSet(ctx, "notify-keyspace-events", flags).Err(); err != nil {
		return errors.Join(ErrKeyspaceEventsRejected, err)
	}
	return nil
}
