// Package quota enforces a per-sender daily send quota on top of an expiring
// Redis counter.
//
// The counter of a sender lives at "lim_send:<id>". Its first increment in a
// fresh window attaches a TTL of one day; once the key expires the window
// starts over. The cap depends on the sender role and comes from an
// immutable Table injected into the Limiter:
//
//	table, _ := quota.NewTable(map[string]int{"trainer": 4, "staff": 16})
//	limiter := quota.NewLimiter(redis.NewStorage(client), table)
//
//	ticket, err := limiter.Check(ctx, senderID, role)
//	switch {
//	case errors.Is(err, quota.ErrUnknownRole):
//	case errors.Is(err, quota.ErrDailyLimitExceeded):
//	    var lerr *quota.LimitExceededError
//	    errors.As(err, &lerr) // lerr.RetryAfter
//	}
//
//	_, err = client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
//	    // ... other writes of the same atomic unit
//	    limiter.Advance(ctx, pipe, ticket)
//	    return nil
//	})
//
// Check only reads. The increment is queued by Advance into the caller's
// transaction so the counter moves together with the message record.
package quota
