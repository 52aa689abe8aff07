package snake

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FrameFunc receives a copy of the engine state after every processed event.
type FrameFunc func(State, Phase)

// Runner drives an engine from a single goroutine: intents arrive on a
// channel, ticks come from a timer the runner owns. It is the engine's
// Scheduler while Run is active.
type Runner struct {
	engine  *Engine
	intents chan core.Intent
	onFrame FrameFunc
	done    chan struct{}

	// Owned by the Run goroutine.
	timer    *time.Timer
	interval time.Duration
	armed    bool
}

// NewRunner attaches a runner to the engine. onFrame may be nil.
func NewRunner(e *Engine, onFrame FrameFunc) *Runner {
	r := &Runner{
		engine:  e,
		intents: make(chan core.Intent, 64),
		onFrame: onFrame,
		done:    make(chan struct{}),
	}
	e.SetScheduler(r)
	return r
}

// Send queues an intent. Returns false once the runner has stopped.
func (r *Runner) Send(in core.Intent) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.intents <- in:
		return true
	case <-r.done:
		return false
	}
}

// Run processes intents and ticks until ctx is cancelled. A live run is
// abandoned on exit and the timer is always stopped before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	defer r.Cancel()

	for {
		select {
		case <-ctx.Done():
			if p := r.engine.Phase(); p == PhaseRunning || p == PhasePaused {
				r.engine.Stop()
			}
			return ctx.Err()

		case in := <-r.intents:
			r.engine.Handle(in)
			r.emit()

		case <-r.timerC():
			r.timer = nil
			r.engine.Tick()
			// Periodic: re-arm unless the tick rescheduled or cancelled.
			if r.armed && r.timer == nil {
				r.timer = time.NewTimer(r.interval)
			}
			r.emit()
		}
	}
}

// Schedule implements Scheduler. The previous timer is stopped first so a
// replaced schedule can never fire.
func (r *Runner) Schedule(interval time.Duration) {
	r.stopTimer()
	r.interval = interval
	r.armed = true
	r.timer = time.NewTimer(interval)
}

// Cancel implements Scheduler.
func (r *Runner) Cancel() {
	r.stopTimer()
	r.armed = false
}

func (r *Runner) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// timerC returns the live timer channel, or nil (blocks forever) when disarmed.
func (r *Runner) timerC() <-chan time.Time {
	if r.timer == nil {
		return nil
	}
	return r.timer.C
}

func (r *Runner) emit() {
	if r.onFrame != nil {
		r.onFrame(r.engine.State(), r.engine.Phase())
	}
}
