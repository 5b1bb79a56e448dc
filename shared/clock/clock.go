package clock

import (
	"hotel/shared/timezone"
	"sync"
	"time"
)

// Clock is the time source for everything that compares against deadlines.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

func (appClock) Now() time.Time {
	return timezone.Now()
}

// New returns the application clock, which reports time in the configured timezone.
func New() Clock {
	return appClock{}
}

// Frozen is a manually advanced clock.
type Frozen struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFrozen(now time.Time) *Frozen {
	return &Frozen{now: now}
}

func (f *Frozen) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.now
}

func (f *Frozen) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

func (f *Frozen) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = now
}
