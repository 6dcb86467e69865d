//go:build !symaths_debug

package store

import "sync"

// mutex is a plain sync.Mutex in release builds: zero overhead, no
// deadlock detection.
type mutex = sync.Mutex
