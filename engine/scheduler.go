package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameFunc is a frame callback receiving the tick time
type FrameFunc func(now time.Time)

// Scheduler is the frame-scheduling capability the game consumes
type Scheduler interface {
	// ScheduleNextFrame arms cb for the next tick
	// Returns false if a callback is already pending
	ScheduleNextFrame(cb FrameFunc) bool
}

// FrameScheduler holds at most one outstanding frame callback and runs it on Tick
// The callback is detached before it runs so it can re-arm itself, and a Tick
// issued from inside a callback is refused, so frames never nest
type FrameScheduler struct {
	interval time.Duration
	clock    TimeProvider

	mu     sync.Mutex
	next   FrameFunc
	firing atomic.Bool
	frames atomic.Uint64
}

// NewFrameScheduler creates a scheduler ticking every interval
func NewFrameScheduler(interval time.Duration, clock TimeProvider) *FrameScheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &FrameScheduler{interval: interval, clock: clock}
}

// ScheduleNextFrame arms cb for the next tick
func (s *FrameScheduler) ScheduleNextFrame(cb FrameFunc) bool {
	if cb == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next != nil {
		return false
	}
	s.next = cb
	return true
}

// Tick runs the pending callback, returns false if none ran
func (s *FrameScheduler) Tick() bool {
	if !s.firing.CompareAndSwap(false, true) {
		return false
	}
	defer s.firing.Store(false)

	s.mu.Lock()
	cb := s.next
	s.next = nil
	s.mu.Unlock()

	if cb == nil {
		return false
	}

	cb(s.clock.Now())
	s.frames.Add(1)
	return true
}

// Pending reports whether a callback is armed
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next != nil
}

// Cancel drops the pending callback
func (s *FrameScheduler) Cancel() {
	s.mu.Lock()
	s.next = nil
	s.mu.Unlock()
}

// Frames returns the number of callbacks run
func (s *FrameScheduler) Frames() uint64 {
	return s.frames.Load()
}

// Interval returns the tick period
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}
