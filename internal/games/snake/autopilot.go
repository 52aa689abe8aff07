package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// autopilotOrder is the tie-break order after the current direction.
var autopilotOrder = [...]core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

// Autopilot picks a greedy direction toward the food that does not crash on
// the next tick. With no safe move it keeps the current direction.
func Autopilot(s State, grid core.Grid) core.Direction {
	best := s.Direction
	bestDist := -1

	try := func(d core.Direction) {
		if d == s.Direction.Opposite() {
			return
		}
		dx, dy := d.Delta()
		next := s.Head().Add(dx, dy)
		if !grid.InBounds(next) || s.Occupies(next) {
			return
		}
		dist := abs(next.X-s.Food.X) + abs(next.Y-s.Food.Y)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}

	try(s.Direction)
	for _, d := range autopilotOrder {
		try(d)
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
