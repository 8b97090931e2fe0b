package schedule

import "errors"

var (
	// ErrNonISODatetime is returned when deliver_at is not ISO-8601.
	ErrNonISODatetime = errors.New("deliver_at is not an ISO-8601 datetime")

	ErrInvalidConfig = errors.New("invalid schedule configuration")
)
