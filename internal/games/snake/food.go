package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// spawnAttemptsPerCell bounds rejection sampling before falling back to an
// explicit scan of free cells.
const spawnAttemptsPerCell = 4

// SpawnFood picks a uniformly random cell not covered by the snake.
// It samples random cells first and, if that keeps hitting the body, scans for
// the remaining free cells. Returns false only when the snake fills the grid.
func SpawnFood(rng *rand.Rand, snake []core.Cell, grid core.Grid) (core.Cell, bool) {
	if grid.Count <= 0 {
		return core.Cell{}, false
	}

	occupied := make(map[core.Cell]struct{}, len(snake))
	for _, seg := range snake {
		occupied[seg] = struct{}{}
	}
	if len(occupied) >= grid.Cells() {
		return core.Cell{}, false
	}

	for n := grid.Cells() * spawnAttemptsPerCell; n > 0; n-- {
		c := core.Cell{X: rng.Intn(grid.Count), Y: rng.Intn(grid.Count)}
		if _, taken := occupied[c]; !taken {
			return c, true
		}
	}

	free := make([]core.Cell, 0, grid.Cells()-len(occupied))
	for y := 0; y < grid.Count; y++ {
		for x := 0; x < grid.Count; x++ {
			c := core.Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}
