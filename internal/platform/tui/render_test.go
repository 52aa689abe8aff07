package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBrightYellow)
	s.DrawTextColored(0, 1, "xyz", core.ColorGray)

	out := ansi.Strip(RenderScreen(s))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	if lines[0] != "abcd  " {
		t.Errorf("row 0 = %q, expected %q", lines[0], "abcd  ")
	}
	if lines[1] != "xyz   " {
		t.Errorf("row 1 = %q, expected %q", lines[1], "xyz   ")
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	st := styleFor(core.Color(200))
	if got := st.Render("x"); ansi.Strip(got) != "x" {
		t.Errorf("Render() = %q", got)
	}
}
