// Package tracker waits for a bounded number of writes to a history record
// and returns the record as it stands afterwards.
//
// The first write observed on the key is the record's own creation and is
// counted as touch 0, so Track(ctx, key, 2, timeout) returns once two
// further writes (two courier touches) have been seen, or when the timeout
// elapses. A zero timeout skips the subscription and reads immediately.
//
// Reaching the timeout is a regular outcome reported through
// Result.TimedOut, not an error.
package tracker
