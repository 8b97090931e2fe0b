package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/dispatch/pkg/keyspace"
)

const (
	MinTouches = 1
	MaxTouches = 16
	MaxTimeout = 10 * time.Second
)

// Reader loads the stored record. Get returns nil, nil for a missing key.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Result is the record read after the wait. TimedOut is set only when a
// bounded wait ran out before the touch target was reached.
type Result struct {
	Record   json.RawMessage `json:"history"`
	TimedOut bool            `json:"timeouted"`
}

type Tracker struct {
	notifier keyspace.Notifier
	store    Reader
}

func New(notifier keyspace.Notifier, store Reader) *Tracker {
	return &Tracker{notifier: notifier, store: store}
}

// Track waits until touches writes to key have been observed after its
// creation, or until timeout elapses, then reads the record.
func (t *Tracker) Track(ctx context.Context, key string, touches int, timeout time.Duration) (Result, error) {
	if touches < MinTouches || touches > MaxTouches {
		return Result{}, ErrInvalidTouchCount
	}
	if timeout < 0 || timeout > MaxTimeout {
		return Result{}, ErrInvalidTimeout
	}

	var timedOut bool
	if timeout > 0 {
		var err error
		timedOut, err = t.wait(ctx, key, touches, timeout)
		if err != nil {
			return Result{}, err
		}
	}

	record, err := t.store.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if record == nil {
		return Result{}, ErrHistoryKeyNotFound
	}

	return Result{Record: record, TimedOut: timedOut}, nil
}

func (t *Tracker) wait(ctx context.Context, key string, touches int, timeout time.Duration) (bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sub, err := t.notifier.Subscribe(waitCtx, key)
	if err != nil {
		return false, err
	}
	defer sub.Close()

	seen := -1
	events := sub.Events()
	for seen < touches {
		select {
		case ev, ok := <-events:
			if !ok {
				// Closed stream: nothing more to count before the deadline.
				events = nil
				continue
			}
			if ev.Op == keyspace.OpSet {
				seen++
			}
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return false, err
			}
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
				return true, nil
			}
			return false, waitCtx.Err()
		}
	}
	return false, nil
}
