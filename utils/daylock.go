package utils

import (
	"sync"
	"time"
)

// bookingLocks serializes check-then-insert booking sequences per local
// calendar day, closing the double-booking race between concurrent
// requests for overlapping slots.
var bookingLocks sync.Map

// LockDay acquires the mutex for the local day containing t and returns the
// matching unlock function.
func LockDay(t time.Time) func() {
	key := t.Format("2006-01-02")
	value, _ := bookingLocks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
