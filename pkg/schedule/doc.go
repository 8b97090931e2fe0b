// Package schedule resolves the instant a queued message becomes due.
//
// An explicit ISO-8601 timestamp marks the message as scheduled; without one
// the message is due now. Either way a quiet-hours window (00:00-07:00 local
// by default) pushes the instant to the end of the window on the same date,
// spread over a few minutes of random jitter so deferred messages do not
// all fire in the same second:
//
//	r, _ := schedule.NewResolver(schedule.DefaultConfig())
//	at, err := r.Resolve(&raw)
//	if errors.Is(err, schedule.ErrNonISODatetime) {
//	    // reject the request
//	}
//	at.ISO(), at.Unix(), at.Scheduled()
//
// The resolver deliberately does not compare explicit instants with the
// current time: a past instant outside quiet hours is passed through.
package schedule
