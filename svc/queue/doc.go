// Package queue is the message queueing and tracking service.
//
// Enqueue validates a message, checks the sender's daily quota, resolves
// the delivery instant (moving messages out of quiet hours), looks up each
// recipient's groups and commits everything in one Redis transaction:
//
//   - the record at history:<sender>:<nanos>, without expiry;
//   - the tracking key delivery:<sender>:<nanos>, set and deleted in the same
//     transaction for immediate delivery, or left to expire at the delivery
//     instant when scheduled, so workers can react to its "expired" event;
//   - the sender's lim_send:<sender> counter, which gets its 24h TTL on the
//     first send of a window.
//
// The counter is watched during the transaction and re-checked inside it,
// so concurrent sends of one user never exceed the daily cap. Nothing is
// written when validation, the quota check or a directory lookup fails.
//
// Track waits for couriers to touch a record (see pkg/tracker) and returns
// it as stored.
package queue
