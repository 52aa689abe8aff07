package core

import "testing"

func TestGridInBounds(t *testing.T) {
	g := NewGrid(20)

	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"origin", Cell{0, 0}, true},
		{"center", Cell{10, 10}, true},
		{"last cell", Cell{19, 19}, true},
		{"left of grid", Cell{-1, 5}, false},
		{"above grid", Cell{5, -1}, false},
		{"right edge (exclusive)", Cell{20, 5}, false},
		{"bottom edge (exclusive)", Cell{5, 20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.InBounds(tc.cell); got != tc.expected {
				t.Errorf("InBounds(%v) = %v, expected %v", tc.cell, got, tc.expected)
			}
		})
	}
}

func TestCellsEqual(t *testing.T) {
	if !CellsEqual(Cell{3, 4}, Cell{3, 4}) {
		t.Error("identical cells should be equal")
	}
	if CellsEqual(Cell{3, 4}, Cell{4, 3}) {
		t.Error("swapped coordinates should not be equal")
	}
}

func TestGridCenter(t *testing.T) {
	tests := []struct {
		count    int
		expected Cell
	}{
		{20, Cell{10, 10}},
		{21, Cell{10, 10}},
		{5, Cell{2, 2}},
	}

	for _, tc := range tests {
		if got := NewGrid(tc.count).Center(); got != tc.expected {
			t.Errorf("Center() for %d = %v, expected %v", tc.count, got, tc.expected)
		}
	}

	if NewGrid(20).Cells() != 400 {
		t.Errorf("Cells() = %d, expected 400", NewGrid(20).Cells())
	}
}

func TestDirectionDeltaAndOpposite(t *testing.T) {
	tests := []struct {
		dir      Direction
		dx, dy   int
		opposite Direction
	}{
		{DirUp, 0, -1, DirDown},
		{DirDown, 0, 1, DirUp},
		{DirLeft, -1, 0, DirRight},
		{DirRight, 1, 0, DirLeft},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
			if tc.dir.Opposite() != tc.opposite {
				t.Errorf("Opposite() = %v, expected %v", tc.dir.Opposite(), tc.opposite)
			}
			if tc.dir.Opposite().Opposite() != tc.dir {
				t.Error("Opposite should be an involution")
			}
		})
	}

	if Direction(42).Valid() {
		t.Error("Direction(42) should not be valid")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestIntentString(t *testing.T) {
	if got := Steer(DirLeft).String(); got != "Direction(left)" {
		t.Errorf("Steer(DirLeft).String() = %q", got)
	}
	if got := TogglePause().String(); got != "TogglePause" {
		t.Errorf("TogglePause().String() = %q", got)
	}
	if got := (Intent{Kind: IntentKind(99)}).String(); got != "Unknown" {
		t.Errorf("unknown intent String() = %q", got)
	}
}
