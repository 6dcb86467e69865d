//go:build symaths_debug

package store

import deadlock "github.com/sasha-s/go-deadlock"

// mutex is a deadlock.Mutex in debug builds: it serializes arena mutation
// like sync.Mutex and additionally reports lock-order inversions and lock
// waits that exceed its timeout. Concurrent callers that merely contend
// are serialized, not reported.
type mutex = deadlock.Mutex
