package constellation

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// FrameFunc runs one frame. now is the time the frame was started.
type FrameFunc func(now time.Time)

// Scheduler delivers frames, one per Schedule call, like a browser's
// animation frame callback.
type Scheduler interface {
	// Schedule arranges for fn to be called once. The returned cancel
	// function prevents the call if it has not started yet.
	Schedule(fn FrameFunc) (cancel func())
}

// DefaultFrameRate is the frame rate of the default scheduler.
const DefaultFrameRate = 60

// TickerScheduler paces frames with a token bucket so that a graph never
// runs faster than the configured rate. Each scheduled frame runs on its
// own goroutine.
type TickerScheduler struct {
	limiter *rate.Limiter
}

// NewTickerScheduler returns a scheduler running at most fps frames per
// second. Non-positive values select DefaultFrameRate.
func NewTickerScheduler(fps float64) *TickerScheduler {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &TickerScheduler{limiter: rate.NewLimiter(rate.Limit(fps), 1)}
}

// Schedule implements Scheduler.
func (s *TickerScheduler) Schedule(fn FrameFunc) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		fn(time.Now())
	}()
	return cancel
}

// ManualScheduler queues frames until Fire is called. It drives graphs
// deterministically in tests and offline renders.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  uint64
	pending []manualFrame
}

type manualFrame struct {
	id uint64
	fn FrameFunc
}

// NewManualScheduler returns an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(fn FrameFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.pending = append(m.pending, manualFrame{id: id, fn: fn})
	return func() { m.cancel(id) }
}

func (m *ManualScheduler) cancel(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.pending {
		if f.id == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued frames.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Fire runs the frames queued so far with the given time and returns how
// many ran. Frames scheduled by those callbacks wait for the next Fire.
func (m *ManualScheduler) Fire(now time.Time) int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, f := range batch {
		f.fn(now)
	}
	return len(batch)
}
