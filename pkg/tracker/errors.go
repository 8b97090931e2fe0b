package tracker

import "errors"

var (
	ErrHistoryKeyNotFound = errors.New("tracker: history key not found")
	ErrInvalidTouchCount  = errors.New("tracker: touch count out of range")
	ErrInvalidTimeout     = errors.New("tracker: timeout out of range")
)
