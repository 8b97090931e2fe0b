// Package historykey generates and derives the Redis keys used by the
// delivery queue.
//
// A history key identifies one message record and has the shape
//
//	history:<senderID>:<nanoseconds>
//
// where senderID has one to six digits and the timestamp is always
// rendered with nineteen digits. The tracking key of a record shares the
// history key suffix under the "delivery:" prefix, and the per-sender daily
// counter lives under "lim_send:<senderID>".
//
// # Usage
//
//	gen := historykey.NewGenerator()
//	key, err := gen.Generate(42)
//	if err != nil {
//	    // sender id out of range
//	}
//	tracking, _ := historykey.Tracking(key) // delivery:42:1718000000000000000
//
// Keys produced by a single Generator are unique even when the wall clock
// does not advance between calls: the nanosecond reading is bumped past the
// previously issued value.
package historykey
