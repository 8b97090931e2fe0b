package quota

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownRole is returned for roles missing from the Table.
	ErrUnknownRole = errors.New("unknown role")

	// ErrDailyLimitExceeded matches every *LimitExceededError.
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")

	ErrInvalidTable = errors.New("invalid quota table")
)

// LimitExceededError carries the retry hint of a rejected send.
type LimitExceededError struct {
	UserID     int64
	Cap        int
	RetryAfter time.Duration
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("daily limit of %d exceeded for user %d, retry after %s", e.Cap, e.UserID, e.RetryAfter)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrDailyLimitExceeded
}
