package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-lander/parameter"
)

// TimeProvider supplies wall-clock time to the frame loop and the input tracker
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FrameRate averages the interval of the last FrameRateWindow frames
type FrameRate struct {
	intervals [parameter.FrameRateWindow]time.Duration
	count     int
	next      int
	sum       time.Duration
	last      time.Time
}

// Mark records a frame presented at now
func (f *FrameRate) Mark(now time.Time) {
	if !f.last.IsZero() {
		d := now.Sub(f.last)
		if f.count == len(f.intervals) {
			f.sum -= f.intervals[f.next]
		} else {
			f.count++
		}
		f.intervals[f.next] = d
		f.sum += d
		f.next = (f.next + 1) % len(f.intervals)
	}
	f.last = now
}

// FPS returns frames per second over the window, 0 until two frames were marked
func (f *FrameRate) FPS() float64 {
	if f.count == 0 || f.sum <= 0 {
		return 0
	}
	return float64(f.count) / f.sum.Seconds()
}
