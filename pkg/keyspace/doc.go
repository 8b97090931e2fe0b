// Package keyspace exposes store mutation notifications for a single key.
//
// A Notifier hands out a Subscription scoped to one exact key; the
// subscription delivers an Event per mutation ("set", "expired", "del", ...)
// until it is closed. Two implementations are provided:
//
//   - RedisNotifier subscribes to the "__keyspace@<db>__:<key>" channel and
//     requires notify-keyspace-events to include at least "K$" (string
//     writes) or "Kx" (expiry).
//   - MemoryNotifier is an in-process fan-out fed by Publish, used in tests
//     and for single-process setups.
//
// Subscriptions are independent: several watchers of the same key each get
// their own stream and closing one never affects the others. Close is
// idempotent and must be called on every exit path:
//
//	sub, err := notifier.Subscribe(ctx, key)
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
//	for ev := range sub.Events() {
//	    if ev.Op == keyspace.OpSet { ... }
//	}
package keyspace
