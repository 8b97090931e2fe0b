package keyspace

import "errors"

var (
	ErrNotifierClosed  = errors.New("keyspace: notifier is closed")
	ErrEmptyKey        = errors.New("keyspace: empty key")
	ErrSubscribeFailed = errors.New("keyspace: subscribe failed")
)
