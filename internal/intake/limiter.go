package intake

// limiter.go implements concurrency control for submission processing.
//
// The limiter uses a semaphore pattern to restrict parallel submissions to a
// configurable maximum, preventing resource exhaustion when many applicants
// submit at once. When all slots are occupied, new requests wait up to
// maxWait before failing with ErrTooManySubmissions.
//
// The limiter also supports graceful shutdown via WaitForDrain, which blocks
// until all in-flight submissions complete.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManySubmissions is returned when all submission slots are occupied
// and the wait timeout expires. Clients should retry after a short delay.
var ErrTooManySubmissions = errors.New("too many concurrent submissions, please try again later")

// DefaultMaxConcurrentSubmissions is the default limit for parallel submissions.
const DefaultMaxConcurrentSubmissions = 4

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// Limiter controls concurrent submission processing using a semaphore pattern.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewLimiter creates a limiter that allows at most maxConcurrent simultaneous
// submissions. Requests that cannot acquire a slot within maxWait receive
// ErrTooManySubmissions.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentSubmissions
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire attempts to acquire a submission slot.
// Returns nil on success, ErrTooManySubmissions if the timeout expires.
// The caller MUST call Release() when the submission completes (use defer).
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from slot wait timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManySubmissions

	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a previously acquired slot.
// Must be called exactly once for each successful Acquire.
func (l *Limiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of submissions currently in flight.
func (l *Limiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the maximum allowed concurrent submissions.
func (l *Limiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// Available returns the number of free slots.
func (l *Limiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all in-flight submissions complete or ctx is
// cancelled. Used for graceful shutdown so accepted submissions finish
// before the process exits.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}

// LimiterStatus is a snapshot of the limiter's current state.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *Limiter) Status() LimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return LimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
