package keyspace

import "context"

// Op is the keyspace notification payload, i.e. the command name.
type Op string

const (
	OpSet     Op = "set"
	OpDel     Op = "del"
	OpExpire  Op = "expire"
	OpExpired Op = "expired"
)

// Event is one mutation of a watched key.
type Event struct {
	Key string
	Op  Op
}

// Subscription streams events for one key. Implementations must be safe
// for concurrent use.
type Subscription interface {
	// Events is closed after Close or when the subscribe context ends.
	Events() <-chan Event

	// Close releases the subscription. It is idempotent.
	Close() error
}

// Notifier subscribes to mutations of an exact key. The returned
// subscription is live once Subscribe returns: events happening after that
// point are delivered.
type Notifier interface {
	Subscribe(ctx context.Context, key string) (Subscription, error)
}
