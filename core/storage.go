package core

import "time"

// FileSigner turns a stored object key into a time-limited URL for display.
type FileSigner interface {
	SignURL(key string, ttl time.Duration) (string, error)
}
