package placeholder

import "time"

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop prevents the callback from running. Stopping a timer that has
	// already fired or been stopped is a no-op.
	Stop()
}

// Scheduler runs f once after d. Implementations must invoke f on the same
// goroutine that drives the Animator; the Animator does no locking.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
