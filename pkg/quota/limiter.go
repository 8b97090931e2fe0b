package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/dispatch/pkg/historykey"
)

// DefaultWindow is the lifetime of a fresh counter.
const DefaultWindow = 24 * time.Hour

// Store reads the counter. Get returns nil, nil for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Ticket is an admitted send waiting to be committed with Advance.
type Ticket struct {
	UserID     int64
	Key        string
	SentBefore int64
	Cap        int
}

// Fresh reports whether the send opens a new window.
func (t Ticket) Fresh() bool { return t.SentBefore == 0 }

// Status is the current counter state of a user. TTL is in whole seconds,
// -1 meaning there is no active window.
type Status struct {
	Value int64 `json:"value"`
	TTL   int64 `json:"ttl"`
	Daily int   `json:"daily"`
}

// Limiter checks and advances daily counters.
type Limiter struct {
	store  Store
	table  Table
	window time.Duration
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindow overrides DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

func NewLimiter(store Store, table Table, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		table:  table,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cap resolves the daily cap of a role.
func (l *Limiter) Cap(role string) (int, error) {
	return l.table.Cap(role)
}

// Check admits a send when the counter is below the role cap.
func (l *Limiter) Check(ctx context.Context, userID int64, role string) (Ticket, error) {
	limit, err := l.table.Cap(role)
	if err != nil {
		return Ticket{}, err
	}
	return l.admit(ctx, l.store, Ticket{UserID: userID, Key: historykey.Rate(userID), Cap: limit})
}

// Recheck repeats the admission for a ticket against store, typically a
// WATCH transaction view, refreshing SentBefore.
func (l *Limiter) Recheck(ctx context.Context, store Store, t Ticket) (Ticket, error) {
	return l.admit(ctx, store, t)
}

func (l *Limiter) admit(ctx context.Context, store Store, t Ticket) (Ticket, error) {
	count, err := readCount(ctx, store, t.Key)
	if err != nil {
		return Ticket{}, err
	}
	if count >= int64(t.Cap) {
		ttl, err := store.TTL(ctx, t.Key)
		if err != nil {
			return Ticket{}, fmt.Errorf("quota: ttl of %s: %w", t.Key, err)
		}
		return Ticket{}, &LimitExceededError{UserID: t.UserID, Cap: t.Cap, RetryAfter: l.retryAfter(ttl)}
	}
	t.SentBefore = count
	return t, nil
}

func (l *Limiter) retryAfter(ttl time.Duration) time.Duration {
	switch {
	case ttl > 0:
		return ttl
	case ttl == -1:
		// Counter without expiry; the window length is the best estimate.
		return l.window
	default:
		return time.Second
	}
}

// Advance queues the counter increment into an open transaction. The window
// TTL is attached only when the ticket opens a fresh window.
func (l *Limiter) Advance(ctx context.Context, pipe redis.Pipeliner, t Ticket) {
	pipe.Incr(ctx, t.Key)
	if t.Fresh() {
		pipe.Expire(ctx, t.Key, l.window)
	}
}

// Status reports the counter of a user. A counter whose TTL has already
// reached zero (or vanished) between the two reads is reported as
// value 0, ttl -1.
func (l *Limiter) Status(ctx context.Context, userID int64, role string) (Status, error) {
	limit, err := l.table.Cap(role)
	if err != nil {
		return Status{}, err
	}

	key := historykey.Rate(userID)
	value, err := readCount(ctx, l.store, key)
	if err != nil {
		return Status{}, err
	}

	ttl := int64(-1)
	if value > 0 {
		raw, err := l.store.TTL(ctx, key)
		if err != nil {
			return Status{}, fmt.Errorf("quota: ttl of %s: %w", key, err)
		}
		ttl = ttlSeconds(raw)
	}

	if ttl == 0 || ttl == -2 {
		value, ttl = 0, -1
	}

	return Status{Value: value, TTL: ttl, Daily: limit}, nil
}

// ttlSeconds converts go-redis TTL results, which keep -1/-2 as raw values.
func ttlSeconds(d time.Duration) int64 {
	if d < 0 {
		return int64(d)
	}
	return int64(d / time.Second)
}

func readCount(ctx context.Context, store Store, key string) (int64, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("quota: read %s: %w", key, err)
	}
	if raw == nil {
		return 0, nil
	}
	count, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quota: counter %s is not an integer: %w", key, err)
	}
	return max(count, 0), nil
}
