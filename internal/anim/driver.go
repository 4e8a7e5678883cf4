package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultDuration is the length of the entrance sweep.
const DefaultDuration = 1000 * time.Millisecond

var ErrDetached = errors.New("driver detached")

// State is the driver's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateAnimating
	StateSettled
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateSettled:
		return "settled"
	case StateDetached:
		return "detached"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DrawFunc renders the chart at progress. final is true only for the
// settled pass, which is the only one that places labels.
type DrawFunc func(progress float64, final bool) error

// Options configures a Driver.
type Options struct {
	Duration time.Duration
	Easing   Easing
	Logger   *slog.Logger
	// OnSettled runs once after the final pass of an animation.
	OnSettled func()
}

// Driver runs one time-bounded easing pass, then a final full-progress pass.
//
// Every scheduled frame captures the epoch it was requested under; Stop and
// Start bump the epoch so frames from an earlier run do nothing.
type Driver struct {
	sched     Scheduler
	draw      DrawFunc
	duration  time.Duration
	easing    Easing
	logger    *slog.Logger
	onSettled func()

	state  State
	epoch  uint64
	start  time.Time
	cancel CancelFunc
	frames int
	err    error
}

// NewDriver creates an idle driver.
func NewDriver(sched Scheduler, draw DrawFunc, opts Options) *Driver {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Easing == "" {
		opts.Easing = DefaultEasing
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Driver{
		sched:     sched,
		draw:      draw,
		duration:  opts.Duration,
		easing:    opts.Easing,
		logger:    opts.Logger,
		onSettled: opts.OnSettled,
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Frames returns the number of animated (non-final) passes drawn so far.
func (d *Driver) Frames() int {
	return d.frames
}

// Err returns the error that aborted the last animation, if any.
func (d *Driver) Err() error {
	return d.err
}

// Start captures now as the start time and begins animating. Starting a
// running driver restarts the sweep.
func (d *Driver) Start(now time.Time) error {
	if d.state == StateDetached {
		return ErrDetached
	}
	d.cancelPending()
	d.epoch++
	d.start = now
	d.frames = 0
	d.err = nil
	d.state = StateAnimating
	d.schedule()
	return nil
}

// Skip jumps straight to the settled pass without animating.
func (d *Driver) Skip() error {
	if d.state == StateDetached {
		return ErrDetached
	}
	d.cancelPending()
	d.epoch++
	return d.settle()
}

// Redraw repeats the full-progress pass. It never restarts the animation;
// while animating it is a no-op because the final pass is still to come.
func (d *Driver) Redraw() error {
	switch d.state {
	case StateDetached:
		return ErrDetached
	case StateAnimating:
		return nil
	}
	if err := d.draw(1, true); err != nil {
		return fmt.Errorf("redraw: %w", err)
	}
	d.state = StateSettled
	return nil
}

// Stop cancels any pending frame and detaches the driver for good.
func (d *Driver) Stop() {
	if d.state == StateDetached {
		return
	}
	d.cancelPending()
	d.epoch++
	d.state = StateDetached
}

func (d *Driver) cancelPending() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Driver) schedule() {
	epoch := d.epoch
	d.cancel = d.sched.RequestFrame(func(now time.Time) {
		d.tick(epoch, now)
	})
}

func (d *Driver) tick(epoch uint64, now time.Time) {
	if epoch != d.epoch || d.state != StateAnimating {
		return
	}
	d.cancel = nil

	t := float64(now.Sub(d.start)) / float64(d.duration)
	if t >= 1 {
		if err := d.settle(); err != nil {
			d.logger.Error("final chart pass", "error", err)
		}
		return
	}

	if err := d.draw(d.easing.Apply(t), false); err != nil {
		d.err = err
		d.state = StateIdle
		d.logger.Error("animate chart", "error", err, "frame", d.frames)
		return
	}
	d.frames++
	d.schedule()
}

func (d *Driver) settle() error {
	if err := d.draw(1, true); err != nil {
		d.err = err
		d.state = StateIdle
		return fmt.Errorf("settle: %w", err)
	}
	wasAnimating := d.state == StateAnimating
	d.state = StateSettled
	if wasAnimating {
		d.logger.Debug("chart settled", "frames", d.frames)
	}
	if d.onSettled != nil {
		d.onSettled()
	}
	return nil
}
