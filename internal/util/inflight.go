package util

import "sync"

// InFlight guards a single suspending operation against re-entry.
// The zero value is ready to use.
type InFlight struct {
	mu   sync.Mutex
	busy bool
}

// TryAcquire marks the operation as running. It reports false when the
// operation is already in flight.
func (f *InFlight) TryAcquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

// Release marks the operation as finished.
func (f *InFlight) Release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

// Busy reports whether the operation is running.
func (f *InFlight) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}
