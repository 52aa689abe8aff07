package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestAutopilot(t *testing.T) {
	grid := core.NewGrid(10)
	body := []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}

	tests := []struct {
		name string
		dir  core.Direction
		body []core.Cell
		food core.Cell
		want core.Direction
	}{
		{"straight to food", core.DirRight, body, core.Cell{X: 8, Y: 5}, core.DirRight},
		{"turn up", core.DirRight, body, core.Cell{X: 5, Y: 1}, core.DirUp},
		{"turn down", core.DirRight, body, core.Cell{X: 5, Y: 9}, core.DirDown},
		{"behind keeps heading", core.DirRight, body, core.Cell{X: 0, Y: 5}, core.DirRight},
		{"avoids wall", core.DirRight, []core.Cell{{X: 9, Y: 5}, {X: 8, Y: 5}, {X: 7, Y: 5}}, core.Cell{X: 9, Y: 9}, core.DirDown},
		{"avoids body", core.DirUp, []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4}}, core.Cell{X: 9, Y: 5}, core.DirUp},
		{"trapped keeps direction", core.DirRight, []core.Cell{{X: 9, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 1}, {X: 9, Y: 1}}, core.Cell{X: 0, Y: 9}, core.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Snake: tt.body, Direction: tt.dir, Pending: tt.dir, Food: tt.food}
			if got := Autopilot(s, grid); got != tt.want {
				t.Errorf("Autopilot() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotScoresOnOpenBoard(t *testing.T) {
	e := NewEngine(DefaultSettings(), &fakeRecorder{authed: true}, &fakeScheduler{}, 99)
	e.Start()
	for i := 0; i < 5000 && e.Phase() == PhaseRunning; i++ {
		e.SetDirection(Autopilot(e.State(), e.Settings().Grid))
		e.Tick()
	}
	if e.State().Score < 5*FoodScore {
		t.Errorf("Score = %d, expected the autopilot to eat at least five times", e.State().Score)
	}
}
