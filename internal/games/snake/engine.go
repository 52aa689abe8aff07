package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Phase is the lifecycle state of the engine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Settings holds the tunables of a run.
type Settings struct {
	Grid            core.Grid
	InitialInterval time.Duration // Tick interval at the start of a run
	SpeedStep       time.Duration // Interval reduction per food eaten
	MinInterval     time.Duration // Interval never drops below this
}

// DefaultSettings mirrors the classic browser game: 20×20 grid, 150ms ticks,
// 5ms faster per food, never faster than 50ms.
func DefaultSettings() Settings {
	return Settings{
		Grid:            core.NewGrid(core.DefaultGridCount),
		InitialInterval: 150 * time.Millisecond,
		SpeedStep:       5 * time.Millisecond,
		MinInterval:     50 * time.Millisecond,
	}
}

// RunOutcome is what the score collaborator reports for a finished run.
type RunOutcome struct {
	NewHighScore bool
}

// ScoreRecorder is the identity and score-record collaborator.
// The engine never reaches past this interface into storage.
type ScoreRecorder interface {
	// IsAuthenticated gates Start.
	IsAuthenticated() bool
	// RecordRun is called exactly once per completed run.
	RecordRun(score int) (RunOutcome, error)
}

// Scheduler drives Tick at a fixed interval.
// Schedule replaces any previous schedule; Cancel stops it. Implementations
// must guarantee a cancelled or replaced schedule never delivers another tick.
type Scheduler interface {
	Schedule(interval time.Duration)
	Cancel()
}

// RunResult describes how the last run ended.
type RunResult struct {
	Score        int
	NewHighScore bool
	BoardFull    bool  // Ended because no free cell was left for food
	Err          error // Recording failed; the score may not be persisted
}

// TickOutcome reports what a single tick did.
type TickOutcome struct {
	Moved bool
	Ate   bool
	Ended bool
}

// Engine is the tick-driven snake state machine.
// It is not safe for concurrent use; drivers serialize intents and ticks.
type Engine struct {
	settings Settings
	rng      *rand.Rand
	scores   ScoreRecorder
	sched    Scheduler

	state  State
	phase  Phase
	ticks  uint64
	result *RunResult
}

// NewEngine creates an idle engine.
func NewEngine(settings Settings, scores ScoreRecorder, sched Scheduler, seed int64) *Engine {
	e := &Engine{
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
		scores:   scores,
		sched:    sched,
	}
	e.state = NewState(settings.Grid, settings.InitialInterval)
	e.state.Food, _ = SpawnFood(e.rng, e.state.Snake, settings.Grid)
	return e
}

// SetScheduler swaps the scheduler. Used by drivers that own the timer and
// can only be built after the engine.
func (e *Engine) SetScheduler(s Scheduler) {
	e.sched = s
}

// Settings returns the engine settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Start begins a new run from idle or after a game over. It is refused when
// nobody is logged in and while a run is live, so a stray start key cannot
// discard an unrecorded run.
func (e *Engine) Start() bool {
	if e.phase == PhaseRunning || e.phase == PhasePaused {
		return false
	}
	if e.scores == nil || !e.scores.IsAuthenticated() {
		return false
	}

	e.cancelTimer()
	e.reset()
	e.phase = PhaseRunning
	e.state.Running = true
	e.schedule()
	return true
}

// reset reinitializes the run state without touching the timer.
func (e *Engine) reset() {
	e.state = NewState(e.settings.Grid, e.settings.InitialInterval)
	e.state.Food, _ = SpawnFood(e.rng, e.state.Snake, e.settings.Grid)
	e.ticks = 0
	e.result = nil
	e.phase = PhaseIdle
}

// TogglePause suspends or resumes the timer. No-op outside a run.
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhaseRunning:
		e.phase = PhasePaused
		e.state.Paused = true
		e.cancelTimer()
	case PhasePaused:
		e.phase = PhaseRunning
		e.state.Paused = false
		e.schedule()
	}
}

// SetDirection buffers a steering intent for the next tick.
func (e *Engine) SetDirection(d core.Direction) bool {
	if e.phase != PhaseRunning && e.phase != PhasePaused {
		return false
	}
	return SetPendingDirection(&e.state, d)
}

// Stop abandons the current run without recording it and returns to idle.
func (e *Engine) Stop() {
	e.cancelTimer()
	e.reset()
}

// Handle applies one intent. Unknown intents are ignored.
func (e *Engine) Handle(in core.Intent) {
	switch in.Kind {
	case core.IntentDirection:
		e.SetDirection(in.Dir)
	case core.IntentTogglePause:
		e.TogglePause()
	case core.IntentStart:
		e.Start()
	case core.IntentStop:
		e.Stop()
	}
}

// Tick advances the simulation by one step. Ticks outside a running phase are
// dropped.
func (e *Engine) Tick() TickOutcome {
	if e.phase != PhaseRunning {
		return TickOutcome{}
	}
	e.ticks++

	head := ProposeNextHead(&e.state)

	// The current tail counts as occupied even though it would vacate this tick.
	if !e.settings.Grid.InBounds(head) || e.state.Occupies(head) {
		e.end(false)
		return TickOutcome{Ended: true}
	}

	ate := core.CellsEqual(head, e.state.Food)
	Advance(&e.state, head, ate)

	if !ate {
		return TickOutcome{Moved: true}
	}

	if e.state.Interval > e.settings.MinInterval {
		e.state.Interval = max(e.state.Interval-e.settings.SpeedStep, e.settings.MinInterval)
		e.schedule()
	}

	food, ok := SpawnFood(e.rng, e.state.Snake, e.settings.Grid)
	if !ok {
		e.end(true)
		return TickOutcome{Moved: true, Ate: true, Ended: true}
	}
	e.state.Food = food

	return TickOutcome{Moved: true, Ate: true}
}

// end finishes the run and reports the score exactly once.
func (e *Engine) end(boardFull bool) {
	e.cancelTimer()
	e.phase = PhaseEnded
	e.state.Running = false
	e.state.Paused = false

	res := &RunResult{Score: e.state.Score, BoardFull: boardFull}
	outcome, err := e.scores.RecordRun(e.state.Score)
	res.NewHighScore = outcome.NewHighScore
	res.Err = err
	e.result = res
}

func (e *Engine) schedule() {
	if e.sched != nil {
		e.sched.Schedule(e.state.Interval)
	}
}

func (e *Engine) cancelTimer() {
	if e.sched != nil {
		e.sched.Cancel()
	}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.Clone()
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Ticks returns the number of ticks processed in the current run.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// LastResult returns the result of the most recently ended run, or nil.
func (e *Engine) LastResult() *RunResult {
	if e.result == nil {
		return nil
	}
	r := *e.result
	return &r
}
