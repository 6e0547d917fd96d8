package stonehenge

import (
	"errors"
	"fmt"
	"slices"
)

const (
	MinSideLength = 1
	MaxSideLength = 5
)

var ErrUnsupportedSideLength = errors.New("unsupported side length")

// Move is a cell identifier, a capital letter starting at 'A'.
type Move byte

// NoMove is returned for text that does not name a cell of the board.
const NoMove Move = 0

func (m Move) String() string {
	if m == NoMove {
		return ""
	}
	return string(rune(m))
}

func (m Move) index() int {
	return int(m - 'A')
}

// Line is a ley-line: an identifier and its member cells in board order.
type Line struct {
	ID    string
	Cells []Move
}

// Layout is the fixed topology of a board with a given side length.
type Layout struct {
	side  int
	rows  [][]Move
	lines []Line
	cells int
}

var layouts = func() [MaxSideLength + 1]*Layout {
	var all [MaxSideLength + 1]*Layout
	for side := MinSideLength; side <= MaxSideLength; side++ {
		all[side] = buildLayout(side)
	}
	return all
}()

// LayoutFor - returns the topology for sideLength.
func LayoutFor(sideLength int) (*Layout, error) {
	if sideLength < MinSideLength || sideLength > MaxSideLength {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSideLength, sideLength)
	}
	return layouts[sideLength], nil
}

// buildLayout lays the cells out row by row: rows 0..n-1 hold r+2 cells, the
// last row holds n. Upward lines run top-down, downward lines bottom-up.
func buildLayout(n int) *Layout {
	layout := &Layout{side: n}

	next := Move('A')
	for r := 0; r <= n; r++ {
		width := r + 2
		if r == n {
			width = n
		}

		row := make([]Move, width)
		for c := range row {
			row[c] = next
			next++
		}
		layout.rows = append(layout.rows, row)
	}
	layout.cells = int(next - 'A')

	ups := make([][]Move, n+1)
	for r, row := range layout.rows {
		for c, cell := range row {
			u := c
			if r == n {
				u = c + 1
			}
			ups[u] = append(ups[u], cell)
		}
	}

	downs := make([][]Move, n+1)
	for r := n; r >= 0; r-- {
		for c, cell := range layout.rows[r] {
			d := c + n - r - 1
			if r == n {
				d = c
			}
			downs[d] = append(downs[d], cell)
		}
	}

	for i, row := range layout.rows {
		layout.lines = append(layout.lines, Line{ID: fmt.Sprintf("h%d", i+1), Cells: row})
	}
	for i, cells := range ups {
		layout.lines = append(layout.lines, Line{ID: fmt.Sprintf("u%d", i+1), Cells: cells})
	}
	for i, cells := range downs {
		layout.lines = append(layout.lines, Line{ID: fmt.Sprintf("d%d", i+1), Cells: cells})
	}

	return layout
}

func (l *Layout) SideLength() int {
	return l.side
}

// Lines returns a copy of the lines in registry order: h, then u, then d.
// Layouts are shared by every state of a side length and never change.
func (l *Layout) Lines() []Line {
	lines := make([]Line, len(l.lines))
	for i, line := range l.lines {
		lines[i] = Line{ID: line.ID, Cells: slices.Clone(line.Cells)}
	}
	return lines
}

func (l *Layout) CellCount() int {
	return l.cells
}

// Contains reports whether m is a cell of this board.
func (l *Layout) Contains(m Move) bool {
	return m >= 'A' && m.index() < l.cells
}

func (l *Layout) lineIndex(id string) int {
	for i, line := range l.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}
