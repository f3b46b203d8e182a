package clock

import (
	"sync"
	"time"
)

// Service is the source of wall clock time for import runs.
type Service interface {
	Now() time.Time
}

type clockService struct{}

func NewClockService() Service {
	return clockService{}
}

func (clockService) Now() time.Time {
	return time.Now().UTC()
}

// Mock is a Service that only moves when told to.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the clock forward by d and returns the new time.
func (m *Mock) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
