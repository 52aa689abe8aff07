package snake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type frame struct {
	state State
	phase Phase
}

func fastSettings() Settings {
	s := DefaultSettings()
	s.InitialInterval = 2 * time.Millisecond
	s.SpeedStep = time.Millisecond
	s.MinInterval = time.Millisecond
	return s
}

func startRunner(t *testing.T, e *Engine) (*Runner, chan frame, context.CancelFunc, chan error) {
	t.Helper()
	frames := make(chan frame, 1024)
	r := NewRunner(e, func(s State, p Phase) {
		select {
		case frames <- frame{s, p}:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	return r, frames, cancel, errc
}

func TestRunnerPlaysUntilWall(t *testing.T) {
	rec := &fakeRecorder{authed: true}
	e := NewEngine(fastSettings(), rec, nil, 5)
	r, frames, cancel, errc := startRunner(t, e)
	defer cancel()

	if !r.Send(core.StartRun()) {
		t.Fatal("Send() refused while running")
	}

	deadline := time.After(5 * time.Second)
	for ended := false; !ended; {
		select {
		case f := <-frames:
			ended = f.phase == PhaseEnded
		case <-deadline:
			t.Fatal("run never hit the wall")
		}
	}

	// The timer is cancelled on game over, so no more frames arrive.
	select {
	case f := <-frames:
		t.Errorf("unexpected frame after game over: %v", f.phase)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if len(rec.runs) != 1 {
		t.Errorf("RecordRun calls = %v, expected one", rec.runs)
	}
	if r.timer != nil || r.armed {
		t.Error("runner left a timer armed")
	}
}

func TestRunnerPauseStopsTicks(t *testing.T) {
	e := NewEngine(DefaultSettings(), &fakeRecorder{authed: true}, nil, 5)
	r, frames, cancel, errc := startRunner(t, e)
	defer cancel()

	r.Send(core.StartRun())
	r.Send(core.TogglePause())

	deadline := time.After(5 * time.Second)
	for paused := false; !paused; {
		select {
		case f := <-frames:
			paused = f.phase == PhasePaused
		case <-deadline:
			t.Fatal("never paused")
		}
	}

	select {
	case f := <-frames:
		t.Errorf("tick delivered while paused: %v", f.phase)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	<-errc
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, expected idle after the runner is cancelled", e.Phase())
	}
}

func TestRunnerSendAfterStop(t *testing.T) {
	e := NewEngine(DefaultSettings(), &fakeRecorder{authed: true}, nil, 1)
	r, _, cancel, errc := startRunner(t, e)

	cancel()
	<-errc

	if r.Send(core.StartRun()) {
		t.Error("Send() should fail after Run returns")
	}
}

func TestRunnerAutopilotSteering(t *testing.T) {
	// Slow enough that every steer lands before the next tick.
	settings := DefaultSettings()
	settings.InitialInterval = 10 * time.Millisecond
	settings.SpeedStep = 0
	settings.MinInterval = 10 * time.Millisecond
	rec := &fakeRecorder{authed: true}
	e := NewEngine(settings, rec, nil, 21)
	r, frames, cancel, errc := startRunner(t, e)
	defer cancel()

	r.Send(core.StartRun())

	deadline := time.After(30 * time.Second)
	var last core.Cell
	for ended := false; !ended; {
		select {
		case f := <-frames:
			if f.phase == PhaseEnded {
				ended = true
				continue
			}
			if f.phase == PhaseRunning && f.state.Head() != last {
				last = f.state.Head()
				r.Send(core.Steer(Autopilot(f.state, settings.Grid)))
			}
		case <-deadline:
			t.Fatal("autopilot run never ended")
		}
	}

	cancel()
	<-errc
	if len(rec.runs) != 1 {
		t.Fatalf("RecordRun calls = %v, expected one", rec.runs)
	}
	if rec.runs[0] < FoodScore {
		t.Errorf("score = %d, expected the autopilot to eat at least once", rec.runs[0])
	}
}
