package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the engine state for determinism testing and debugging.
type Snapshot struct {
	Tick       uint64
	Phase      Phase
	Score      int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        core.Direction
	FoodX      int
	FoodY      int
	IntervalMs int64
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	head := e.state.Head()
	return Snapshot{
		Tick:       e.ticks,
		Phase:      e.phase,
		Score:      e.state.Score,
		SnakeLen:   len(e.state.Snake),
		HeadX:      head.X,
		HeadY:      head.Y,
		Dir:        e.state.Direction,
		FoodX:      e.state.Food.X,
		FoodY:      e.state.Food.Y,
		IntervalMs: e.state.Interval.Milliseconds(),
	}
}

// DebugState returns a string representation of the engine state.
func (e *Engine) DebugState() string {
	s := e.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Phase: %s, Score: %d\n", s.Tick, s.Phase, s.Score)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Interval: %dms\n", s.SnakeLen, s.Dir, s.IntervalMs)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", s.HeadX, s.HeadY, s.FoodX, s.FoodY)
	return b.String()
}
