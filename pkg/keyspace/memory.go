package keyspace

import (
	"context"
	"sync"
)

// MemoryNotifier is an in-process Notifier. Events for slow subscribers are
// dropped rather than blocking Publish. All methods are safe for
// concurrent use.
type MemoryNotifier struct {
	mu         sync.RWMutex
	subs       map[string]map[*memorySubscription]struct{}
	bufferSize int
	closed     bool
	cleanupWg  sync.WaitGroup
}

// NewMemoryNotifier creates a notifier whose subscriptions buffer up to
// bufferSize events (minimum 1).
func NewMemoryNotifier(bufferSize int) *MemoryNotifier {
	return &MemoryNotifier{
		subs:       make(map[string]map[*memorySubscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe registers a subscription for key. It is removed automatically
// when ctx is done.
func (n *MemoryNotifier) Subscribe(ctx context.Context, key string) (Subscription, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, ErrNotifierClosed
	}

	sub := &memorySubscription{
		ch:     make(chan Event, n.bufferSize),
		parent: n,
		key:    key,
	}
	if n.subs[key] == nil {
		n.subs[key] = make(map[*memorySubscription]struct{})
	}
	n.subs[key][sub] = struct{}{}

	if ctx.Done() != nil {
		sub.stop = make(chan struct{})
		n.cleanupWg.Add(1)
		go func() {
			defer n.cleanupWg.Done()
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.stop:
			}
		}()
	}

	return sub, nil
}

// Publish delivers ev to every subscription of ev.Key.
func (n *MemoryNotifier) Publish(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}
	for sub := range n.subs[ev.Key] {
		sub.send(ev)
	}
}

// Subscribers returns the number of live subscriptions for key.
func (n *MemoryNotifier) Subscribers(key string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[key])
}

// Close closes every subscription and rejects new ones.
func (n *MemoryNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true

	var all []*memorySubscription
	for _, set := range n.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	n.mu.Unlock()

	for _, sub := range all {
		_ = sub.Close()
	}
	n.cleanupWg.Wait()
	return nil
}

func (n *MemoryNotifier) remove(sub *memorySubscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	set := n.subs[sub.key]
	delete(set, sub)
	if len(set) == 0 {
		delete(n.subs, sub.key)
	}
}

type memorySubscription struct {
	ch     chan Event
	stop   chan struct{}
	parent *MemoryNotifier
	key    string

	mu     sync.RWMutex
	closed bool
}

func (s *memorySubscription) Events() <-chan Event {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	if s.stop != nil {
		close(s.stop)
	}
	s.mu.Unlock()

	s.parent.remove(s)
	return nil
}

func (s *memorySubscription) send(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
	}
}
