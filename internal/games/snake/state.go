// Package snake implements the classic single-player snake game: a fixed-tick
// grid simulation, its renderer, and the scheduling contract that drives it.
package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodScore is the score awarded for each food eaten.
const FoodScore = 10

// InitialLength is the body length of a freshly reset snake.
const InitialLength = 3

// State is the complete simulation state of one run.
type State struct {
	Snake     []core.Cell    // Head at index 0
	Direction core.Direction // Committed direction used by the last tick
	Pending   core.Direction // Latest accepted intent, committed on the next tick
	Food      core.Cell
	Score     int
	Interval  time.Duration // Current tick interval
	Running   bool
	Paused    bool
}

// NewState returns the reset layout: three horizontal cells with the head in
// the grid center, moving right.
func NewState(grid core.Grid, interval time.Duration) State {
	c := grid.Center()
	body := make([]core.Cell, InitialLength)
	for i := range body {
		body[i] = core.Cell{X: c.X - i, Y: c.Y}
	}
	return State{
		Snake:     body,
		Direction: core.DirRight,
		Pending:   core.DirRight,
		Interval:  interval,
	}
}

// Head returns the head cell.
func (s State) Head() core.Cell {
	return s.Snake[0]
}

// Occupies reports whether any body segment (tail included) is on c.
func (s State) Occupies(c core.Cell) bool {
	for _, seg := range s.Snake {
		if core.CellsEqual(seg, c) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to renderers and other goroutines.
func (s State) Clone() State {
	c := s
	c.Snake = append([]core.Cell(nil), s.Snake...)
	return c
}

// ProposeNextHead commits the pending direction and returns the cell the head
// would move into. It must be called exactly once per tick.
func ProposeNextHead(s *State) core.Cell {
	s.Direction = s.Pending
	dx, dy := s.Direction.Delta()
	return s.Head().Add(dx, dy)
}

// SetPendingDirection records a steering intent. An exact reversal of the
// committed direction is dropped, so a quick double-tap between ticks cannot
// queue a U-turn into the neck.
func SetPendingDirection(s *State, d core.Direction) bool {
	if !d.Valid() || d == s.Direction.Opposite() {
		return false
	}
	s.Pending = d
	return true
}

// Advance moves the snake onto newHead. The tail is dropped unless the snake
// ate this tick, in which case it grows by one and scores FoodScore.
func Advance(s *State, newHead core.Cell, ate bool) {
	s.Snake = append(s.Snake, core.Cell{})
	copy(s.Snake[1:], s.Snake)
	s.Snake[0] = newHead

	if ate {
		s.Score += FoodScore
		return
	}
	s.Snake = s.Snake[:len(s.Snake)-1]
}
