package stonehenge

import (
	"fmt"
	"slices"
)

// Score values reported for finished games, from the point of view of the
// player to move.
const (
	Win  = 1
	Draw = 0
	Lose = -1
)

// State is a snapshot of the game between two turns. It is never modified
// after being returned: MakeMove always produces a new State.
type State struct {
	layout *Layout
	turn   Player
	cells  []Owner
	lines  []Owner
}

// NewState - creates the initial state of a board with the given side length.
func NewState(p1Starts bool, sideLength int) (State, error) {
	layout, err := LayoutFor(sideLength)
	if err != nil {
		return State{}, err
	}

	turn := PlayerTwo
	if p1Starts {
		turn = PlayerOne
	}

	return State{
		layout: layout,
		turn:   turn,
		cells:  make([]Owner, layout.cells),
		lines:  make([]Owner, len(layout.lines)),
	}, nil
}

func (s State) Layout() *Layout {
	return s.layout
}

func (s State) SideLength() int {
	return s.layout.side
}

func (s State) CurrentPlayer() Player {
	return s.turn
}

// CellOwner returns the owner of the cell, Unclaimed for cells outside the board.
func (s State) CellOwner(m Move) Owner {
	if !s.layout.Contains(m) {
		return Unclaimed
	}
	return s.cells[m.index()]
}

// LineOwner returns the owner of the line with the given identifier.
func (s State) LineOwner(id string) (Owner, error) {
	i := s.layout.lineIndex(id)
	if i < 0 {
		return Unclaimed, fmt.Errorf("unknown line %q", id)
	}
	return s.lines[i], nil
}

// LineOwners returns line ownership keyed by line identifier.
func (s State) LineOwners() map[string]Owner {
	owners := make(map[string]Owner, len(s.lines))
	for i, line := range s.layout.lines {
		owners[line.ID] = s.lines[i]
	}
	return owners
}

func (s State) LineCount() int {
	return len(s.lines)
}

// OwnedLines counts the lines captured by p.
func (s State) OwnedLines(p Player) int {
	owner := OwnedBy(p)
	count := 0
	for _, o := range s.lines {
		if o == owner {
			count++
		}
	}
	return count
}

// IsOver reports whether either player owns at least half of the lines.
func (s State) IsOver() bool {
	total := len(s.lines)
	return 2*s.OwnedLines(PlayerOne) >= total || 2*s.OwnedLines(PlayerTwo) >= total
}

// PossibleMoves lists the unclaimed cells in order of first appearance across
// the lines. A finished game has no moves even when cells remain.
func (s State) PossibleMoves() []Move {
	if s.IsOver() {
		return nil
	}

	seen := make([]bool, s.layout.cells)
	moves := make([]Move, 0, s.layout.cells)
	for _, line := range s.layout.lines {
		for _, cell := range line.Cells {
			i := cell.index()
			if seen[i] || s.cells[i] != Unclaimed {
				continue
			}
			seen[i] = true
			moves = append(moves, cell)
		}
	}

	return moves
}

func (s State) IsValidMove(m Move) bool {
	return s.layout.Contains(m) && s.cells[m.index()] == Unclaimed && !s.IsOver()
}

// MakeMove claims cell m for the player to move. m must be a valid move.
func (s State) MakeMove(m Move) State {
	mover := OwnedBy(s.turn)

	next := State{
		layout: s.layout,
		turn:   s.turn.Opponent(),
		cells:  slices.Clone(s.cells),
		lines:  slices.Clone(s.lines),
	}
	next.cells[m.index()] = mover

	// a half share is enough to capture a line
	for i, line := range s.layout.lines {
		if next.lines[i] != Unclaimed {
			continue
		}
		if 2*next.countOwned(line, mover) >= len(line.Cells) {
			next.lines[i] = mover
		}
	}

	return next
}

func (s State) countOwned(line Line, owner Owner) int {
	count := 0
	for _, cell := range line.Cells {
		if s.cells[cell.index()] == owner {
			count++
		}
	}
	return count
}

// RoughOutcome estimates, without searching, the outcome the player to move
// can expect: Win, Lose or Draw when undetermined.
func (s State) RoughOutcome() float64 {
	total := len(s.lines)
	own := s.OwnedLines(s.turn)
	other := s.OwnedLines(s.turn.Opponent())

	switch {
	case 2*own >= total || other < own:
		return Win
	case 2*other > total-2:
		return Lose
	default:
		return Draw
	}
}
