package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DrawKind identifies a drawing command.
type DrawKind int

const (
	DrawBackground DrawKind = iota
	DrawGridLine
	DrawFood
	DrawHead
	DrawBody
)

// DrawCmd is one backend-neutral drawing instruction.
type DrawCmd struct {
	Kind     DrawKind
	Cell     core.Cell      // Food, Head, Body
	Dir      core.Direction // Head orientation
	Opacity  float64        // Body fade, 1.0 = fully opaque
	Vertical bool           // GridLine orientation
	Index    int            // GridLine position, 0..Count
}

// Render turns a state into drawing commands: background, grid lines, food,
// then the snake head-first. It never mutates the state.
func Render(s State, grid core.Grid) []DrawCmd {
	cmds := make([]DrawCmd, 0, 2+2*(grid.Count+1)+len(s.Snake))
	cmds = append(cmds, DrawCmd{Kind: DrawBackground})

	for i := 0; i <= grid.Count; i++ {
		cmds = append(cmds,
			DrawCmd{Kind: DrawGridLine, Vertical: true, Index: i},
			DrawCmd{Kind: DrawGridLine, Vertical: false, Index: i},
		)
	}

	cmds = append(cmds, DrawCmd{Kind: DrawFood, Cell: s.Food})

	n := len(s.Snake)
	for i, seg := range s.Snake {
		if i == 0 {
			cmds = append(cmds, DrawCmd{Kind: DrawHead, Cell: seg, Dir: s.Direction, Opacity: 1})
			continue
		}
		cmds = append(cmds, DrawCmd{
			Kind:    DrawBody,
			Cell:    seg,
			Opacity: 1 - (float64(i)/float64(n))*0.5,
		})
	}
	return cmds
}

// BoardSize returns the terminal footprint of the playfield including its frame.
// Each grid cell is two columns wide so the board looks square.
func BoardSize(grid core.Grid) (w, h int) {
	return 2*grid.Count + 1, grid.Count + 2
}

// Paint draws commands onto the screen with the board's top-left frame corner
// at (ox, oy).
func Paint(dst *core.Screen, cmds []DrawCmd, grid core.Grid, ox, oy int) {
	w, h := BoardSize(grid)
	cellX := func(c core.Cell) int { return ox + 1 + 2*c.X }
	cellY := func(c core.Cell) int { return oy + 1 + c.Y }

	for _, cmd := range cmds {
		switch cmd.Kind {
		case DrawBackground:
			dst.DrawRect(core.NewRect(ox, oy, w, h), ' ')
		case DrawGridLine:
			paintGridLine(dst, cmd, grid, ox, oy)
		case DrawFood:
			if grid.InBounds(cmd.Cell) {
				dst.SetColored(cellX(cmd.Cell), cellY(cmd.Cell), '◆', core.ColorBrightMagenta)
			}
		case DrawHead:
			dst.SetColored(cellX(cmd.Cell), cellY(cmd.Cell), headGlyph(cmd.Dir), core.ColorBrightCyan)
		case DrawBody:
			dst.SetColored(cellX(cmd.Cell), cellY(cmd.Cell), '●', bodyColor(cmd.Opacity))
		}
	}
}

func paintGridLine(dst *core.Screen, cmd DrawCmd, grid core.Grid, ox, oy int) {
	w, h := BoardSize(grid)
	switch {
	case cmd.Vertical && (cmd.Index == 0 || cmd.Index == grid.Count):
		x := ox + 2*cmd.Index
		for y := oy + 1; y < oy+h-1; y++ {
			dst.SetColored(x, y, '│', core.ColorGray)
		}
		dst.SetColored(x, oy, cornerRune(cmd.Index == 0, true), core.ColorGray)
		dst.SetColored(x, oy+h-1, cornerRune(cmd.Index == 0, false), core.ColorGray)
	case cmd.Vertical:
		// Inner lines become a faint dot between neighbouring cells.
		x := ox + 2*cmd.Index
		for y := oy + 1; y < oy+h-1; y++ {
			dst.SetColored(x, y, '·', core.ColorDimGray)
		}
	case cmd.Index == 0 || cmd.Index == grid.Count:
		y := oy
		if cmd.Index == grid.Count {
			y = oy + h - 1
		}
		for x := ox + 1; x < ox+w-1; x++ {
			dst.SetColored(x, y, '─', core.ColorGray)
		}
	}
	// Inner horizontal lines have no room at one row per cell.
}

func cornerRune(left, top bool) rune {
	switch {
	case left && top:
		return '┌'
	case top:
		return '┐'
	case left:
		return '└'
	default:
		return '┘'
	}
}

func headGlyph(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return '▲'
	case core.DirDown:
		return '▼'
	case core.DirLeft:
		return '◀'
	default:
		return '▶'
	}
}

// bodyColor buckets the fade into the terminal palette.
func bodyColor(opacity float64) core.Color {
	switch {
	case opacity >= 0.85:
		return core.ColorBrightCyan
	case opacity >= 0.7:
		return core.ColorCyan
	case opacity >= 0.6:
		return core.ColorTeal
	default:
		return core.ColorDarkTeal
	}
}

// Frame is everything the game view needs for one redraw.
type Frame struct {
	State     State
	Phase     Phase
	Result    *RunResult
	Player    string
	HighScore int
}

// hudHeight is the number of rows above the board.
const hudHeight = 2

// Compose draws the HUD, the board and any overlay. It is a pure function of
// the frame: collisions and phase changes were already decided by the engine.
func Compose(dst *core.Screen, f Frame, grid core.Grid) {
	dst.Clear()

	bw, bh := BoardSize(grid)
	if dst.Width() < bw || dst.Height() < bh+hudHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue", core.ColorGray)
		return
	}

	ox := (dst.Width() - bw) / 2
	oy := hudHeight + (dst.Height()-hudHeight-bh)/2

	paintHUD(dst, f, ox, bw)
	Paint(dst, Render(f.State, grid), grid, ox, oy)

	switch f.Phase {
	case PhaseIdle:
		paintOverlay(dst, "Press Enter to start", "Arrows/WASD steer, Space pauses")
	case PhasePaused:
		paintOverlay(dst, "Paused", "Press Space to continue")
	case PhaseEnded:
		title := "Game Over"
		if f.Result != nil && f.Result.BoardFull {
			title = "Board cleared!"
		}
		if f.Result != nil && f.Result.NewHighScore && f.Result.Score > 0 {
			title = "New record!"
		}
		sub := fmt.Sprintf("Score: %d  -  Enter to play again", f.State.Score)
		if f.Result != nil && f.Result.Err != nil {
			sub = fmt.Sprintf("Score: %d (not saved)", f.State.Score)
		}
		paintOverlay(dst, title, sub)
	}
}

func paintHUD(dst *core.Screen, f Frame, ox, bw int) {
	left := fmt.Sprintf("%s  Score: %d", f.Player, f.State.Score)
	right := fmt.Sprintf("Best: %d  Speed: %s", f.HighScore, f.State.Interval.Round(time.Millisecond))
	dst.DrawTextColored(ox, 0, left, core.ColorBrightWhite)

	// Narrow boards push the right half onto the second HUD row.
	y, rw := 0, len([]rune(right))
	if len([]rune(left))+2+rw > bw {
		y = 1
	}
	dst.DrawTextColored(max(ox+bw-rw, 0), y, right, core.ColorGray)
}

// paintOverlay draws a centered two-line message box.
func paintOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
