package snake

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderOrderAndOpacity(t *testing.T) {
	grid := core.NewGrid(20)
	s := NewState(grid, 150*time.Millisecond)
	s.Snake = []core.Cell{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}, {X: 7, Y: 10}}
	s.Food = core.Cell{X: 3, Y: 3}
	before := s.Clone()

	cmds := Render(s, grid)

	if !reflect.DeepEqual(s, before) {
		t.Error("Render mutated the state")
	}
	if cmds[0].Kind != DrawBackground {
		t.Errorf("first command = %v, expected background", cmds[0].Kind)
	}

	lines := 0
	for _, c := range cmds {
		if c.Kind == DrawGridLine {
			lines++
		}
	}
	if lines != 2*(grid.Count+1) {
		t.Errorf("grid lines = %d, expected %d", lines, 2*(grid.Count+1))
	}

	rest := cmds[1+lines:]
	if rest[0].Kind != DrawFood || rest[0].Cell != s.Food {
		t.Errorf("food command = %+v", rest[0])
	}
	head := rest[1]
	if head.Kind != DrawHead || head.Cell != s.Snake[0] || head.Dir != core.DirRight || head.Opacity != 1 {
		t.Errorf("head command = %+v", head)
	}

	wantOpacity := []float64{1 - 0.25*0.5, 1 - 0.5*0.5, 1 - 0.75*0.5}
	for i, c := range rest[2:] {
		if c.Kind != DrawBody || c.Cell != s.Snake[i+1] {
			t.Errorf("body %d = %+v", i, c)
		}
		if c.Opacity != wantOpacity[i] {
			t.Errorf("body %d opacity = %v, expected %v", i, c.Opacity, wantOpacity[i])
		}
	}
}

func TestPaintPlacesGlyphs(t *testing.T) {
	grid := core.NewGrid(5)
	s := NewState(grid, 150*time.Millisecond)
	s.Food = core.Cell{X: 4, Y: 0}
	w, h := BoardSize(grid)
	scr := core.NewScreen(w, h)

	Paint(scr, Render(s, grid), grid, 0, 0)

	// Head at center (2,2) maps to column 1+2*2, row 1+2.
	if got := scr.Get(5, 3); got != '▶' {
		t.Errorf("head glyph = %q, expected '▶'", got)
	}
	if got := scr.Get(3, 3); got != '●' {
		t.Errorf("body glyph = %q, expected '●'", got)
	}
	if got := scr.Get(9, 1); got != '◆' {
		t.Errorf("food glyph = %q, expected '◆'", got)
	}
	if scr.Get(0, 0) != '┌' || scr.Get(w-1, h-1) != '┘' {
		t.Errorf("frame corners = %q %q", scr.Get(0, 0), scr.Get(w-1, h-1))
	}
}

func TestComposeOverlays(t *testing.T) {
	grid := core.NewGrid(10)
	s := NewState(grid, 150*time.Millisecond)

	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"idle", Frame{State: s, Phase: PhaseIdle}, "Press Enter to start"},
		{"paused", Frame{State: s, Phase: PhasePaused}, "Paused"},
		{"game over", Frame{State: s, Phase: PhaseEnded, Result: &RunResult{}}, "Game Over"},
		{"record", Frame{State: s, Phase: PhaseEnded, Result: &RunResult{Score: 20, NewHighScore: true}}, "New record!"},
		{"zero is not a record", Frame{State: s, Phase: PhaseEnded, Result: &RunResult{NewHighScore: true}}, "Game Over"},
		{"board full", Frame{State: s, Phase: PhaseEnded, Result: &RunResult{BoardFull: true}}, "Board cleared!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := core.NewScreen(80, 24)
			Compose(scr, tt.frame, grid)
			if !strings.Contains(scr.String(), tt.want) {
				t.Errorf("screen missing %q:\n%s", tt.want, scr.String())
			}
		})
	}
}

func TestComposeHUD(t *testing.T) {
	grid := core.NewGrid(10)
	s := NewState(grid, 145*time.Millisecond)
	s.Score = 70
	scr := core.NewScreen(80, 24)

	Compose(scr, Frame{State: s, Phase: PhaseRunning, Player: "alice", HighScore: 120}, grid)

	hud := scr.Row(0) + scr.Row(1)
	for _, want := range []string{"alice", "Score: 70", "Best: 120", "145ms"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
}

func TestComposeTooSmall(t *testing.T) {
	scr := core.NewScreen(20, 8)
	Compose(scr, Frame{State: NewState(core.NewGrid(20), time.Second)}, core.NewGrid(20))

	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("expected resize hint on a small screen")
	}
}
