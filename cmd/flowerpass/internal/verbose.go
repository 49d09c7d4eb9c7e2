package internal

import "sync/atomic"

var verbose atomic.Bool

// SetVerbose records whether verbose mode is enabled for this process.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose.Load()
}
