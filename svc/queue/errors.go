package queue

import (
	"errors"

	"github.com/dmitrymomot/dispatch/pkg/directory"
	"github.com/dmitrymomot/dispatch/pkg/quota"
	"github.com/dmitrymomot/dispatch/pkg/tracker"
)

var (
	// ErrValidation wraps validator.ValidationErrors describing bad input.
	ErrValidation = errors.New("invalid request")

	ErrUnknownRole        = quota.ErrUnknownRole
	ErrDailyLimitExceeded = quota.ErrDailyLimitExceeded
	ErrHistoryKeyNotFound = tracker.ErrHistoryKeyNotFound
	ErrUserNotFound       = directory.ErrUserNotFound

	// ErrConcurrentUpdate is returned when the quota counter kept changing
	// under every transaction attempt.
	ErrConcurrentUpdate = errors.New("quota counter changed concurrently, retry later")
)
