package anim

import "time"

// FrameFunc runs once on a display refresh.
type FrameFunc func(now time.Time)

// CancelFunc drops a pending frame. Calling it after the frame ran, or more
// than once, is a no-op.
type CancelFunc func()

// Scheduler requests display-refresh callbacks. Implementations must run
// every callback on the goroutine that owns the chart; the browser host
// uses requestAnimationFrame and exports use ManualScheduler.
type Scheduler interface {
	RequestFrame(fn FrameFunc) CancelFunc
}

// ManualScheduler runs frames only when advanced. It drives animations
// deterministically for rendering frame sequences and for tests.
type ManualScheduler struct {
	now     time.Time
	pending []manualFrame
	nextID  uint64
}

type manualFrame struct {
	id uint64
	fn FrameFunc
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// Pending returns the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// RequestFrame implements Scheduler.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) CancelFunc {
	s.nextID++
	id := s.nextID
	s.pending = append(s.pending, manualFrame{id: id, fn: fn})

	return func() {
		for i, f := range s.pending {
			if f.id == id {
				s.pending = append(s.pending[:i], s.pending[i+1:]...)
				return
			}
		}
	}
}

// Advance moves the clock forward by d and runs the frames that were
// pending before the call. It returns how many frames ran.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.now = s.now.Add(d)
	frames := s.pending
	s.pending = nil
	for _, f := range frames {
		f.fn(s.now)
	}
	return len(frames)
}

// RunUntilIdle advances by step until no frame is pending or max frames
// ran. It returns the number of frames run.
func (s *ManualScheduler) RunUntilIdle(step time.Duration, max int) int {
	ran := 0
	for len(s.pending) > 0 && ran < max {
		ran += s.Advance(step)
	}
	return ran
}
