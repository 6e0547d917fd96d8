package stonehenge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachableStates walks every state reachable from the initial state.
func reachableStates(t *testing.T, sideLength int) []State {
	t.Helper()

	root, err := NewState(true, sideLength)
	require.NoError(t, err)

	seen := map[string]bool{}
	var states []State
	var walk func(s State)
	walk = func(s State) {
		key := s.String() + s.CurrentPlayer().String()
		if seen[key] {
			return
		}
		seen[key] = true
		states = append(states, s)
		for _, m := range s.PossibleMoves() {
			walk(s.MakeMove(m))
		}
	}
	walk(root)

	return states
}

func ownedLineIDs(s State) map[string]Owner {
	owned := map[string]Owner{}
	for id, owner := range s.LineOwners() {
		if owner != Unclaimed {
			owned[id] = owner
		}
	}
	return owned
}

func TestLayoutFor(t *testing.T) {
	t.Run("Side length 1 matches the reference board", func(t *testing.T) {
		// When: the layout for side length 1 is requested
		layout, err := LayoutFor(1)
		require.NoError(t, err)

		// Then: lines and members are in registry order
		expected := []Line{
			{ID: "h1", Cells: []Move{'A', 'B'}},
			{ID: "h2", Cells: []Move{'C'}},
			{ID: "u1", Cells: []Move{'A'}},
			{ID: "u2", Cells: []Move{'B', 'C'}},
			{ID: "d1", Cells: []Move{'C', 'A'}},
			{ID: "d2", Cells: []Move{'B'}},
		}
		assert.Equal(t, expected, layout.Lines())
		assert.Equal(t, 3, layout.CellCount())
	})

	t.Run("Side length 2 matches the reference board", func(t *testing.T) {
		layout, err := LayoutFor(2)
		require.NoError(t, err)

		expected := []Line{
			{ID: "h1", Cells: []Move{'A', 'B'}},
			{ID: "h2", Cells: []Move{'C', 'D', 'E'}},
			{ID: "h3", Cells: []Move{'F', 'G'}},
			{ID: "u1", Cells: []Move{'A', 'C'}},
			{ID: "u2", Cells: []Move{'B', 'D', 'F'}},
			{ID: "u3", Cells: []Move{'E', 'G'}},
			{ID: "d1", Cells: []Move{'F', 'C'}},
			{ID: "d2", Cells: []Move{'G', 'D', 'A'}},
			{ID: "d3", Cells: []Move{'E', 'B'}},
		}
		assert.Equal(t, expected, layout.Lines())
	})

	t.Run("Side length 5 places Q on its own upward line", func(t *testing.T) {
		layout, err := LayoutFor(5)
		require.NoError(t, err)

		lines := map[string][]Move{}
		for _, line := range layout.Lines() {
			lines[line.ID] = line.Cells
		}

		assert.Equal(t, []Move{'B', 'D', 'G', 'K', 'P', 'U'}, lines["u2"])
		assert.Equal(t, []Move{'E', 'H', 'L', 'Q', 'V'}, lines["u3"])
		assert.Equal(t, []Move{'Y', 'S', 'M', 'H', 'D', 'A'}, lines["d5"])
		assert.Equal(t, 25, layout.CellCount())
		assert.Len(t, layout.Lines(), 18)
	})

	t.Run("Callers cannot change the shared topology", func(t *testing.T) {
		// Given: the lines of side length 1 handed out to a caller
		layout, err := LayoutFor(1)
		require.NoError(t, err)
		lines := layout.Lines()

		// When: the caller overwrites them
		lines[0].ID = "x"
		lines[0].Cells[0] = 'C'
		lines[1] = Line{}

		// Then: the layout and new states still use the original lines
		fresh := layout.Lines()
		assert.Equal(t, Line{ID: "h1", Cells: []Move{'A', 'B'}}, fresh[0])
		assert.Equal(t, Line{ID: "h2", Cells: []Move{'C'}}, fresh[1])

		state, err := NewState(true, 1)
		require.NoError(t, err)
		owner, err := state.MakeMove('A').LineOwner("h1")
		require.NoError(t, err)
		assert.Equal(t, OwnedBy(PlayerOne), owner)
	})

	t.Run("Every cell belongs to three lines", func(t *testing.T) {
		for side := MinSideLength; side <= MaxSideLength; side++ {
			layout, err := LayoutFor(side)
			require.NoError(t, err)

			count := map[Move]int{}
			for _, line := range layout.Lines() {
				for _, cell := range line.Cells {
					count[cell]++
				}
			}

			assert.Len(t, count, layout.CellCount(), "side %d", side)
			for cell, n := range count {
				assert.Equal(t, 3, n, "side %d cell %s", side, cell)
			}
		}
	})

	t.Run("Unsupported side lengths fail", func(t *testing.T) {
		for _, side := range []int{0, -1, 6} {
			// When: an out of range side length is requested
			_, err := LayoutFor(side)

			// Then: ErrUnsupportedSideLength is returned
			require.ErrorIs(t, err, ErrUnsupportedSideLength)
		}
	})
}

func TestNewState(t *testing.T) {
	t.Run("Initial state is unclaimed with the requested player to move", func(t *testing.T) {
		// When: a side length 1 board is created with p1 to move
		state, err := NewState(true, 1)
		require.NoError(t, err)

		// Then: nothing is owned and every cell is playable
		assert.Equal(t, PlayerOne, state.CurrentPlayer())
		assert.Empty(t, ownedLineIDs(state))
		assert.Equal(t, []Move{'A', 'B', 'C'}, state.PossibleMoves())
		assert.False(t, state.IsOver())
	})

	t.Run("p2 can start", func(t *testing.T) {
		state, err := NewState(false, 3)
		require.NoError(t, err)

		assert.Equal(t, PlayerTwo, state.CurrentPlayer())
		assert.Len(t, state.PossibleMoves(), 12)
	})

	t.Run("Unsupported side length", func(t *testing.T) {
		_, err := NewState(true, 6)

		require.ErrorIs(t, err, ErrUnsupportedSideLength)
	})
}

func TestState_MakeMove(t *testing.T) {
	t.Run("Claiming a cell captures every line where the mover holds half", func(t *testing.T) {
		// Given: a side length 2 board
		state, err := NewState(true, 2)
		require.NoError(t, err)

		// When: p1 claims the centre, then p2 claims the corner A
		state = state.MakeMove('D')
		assert.Empty(t, ownedLineIDs(state))

		state = state.MakeMove('A')

		// Then: p2 owns the two short lines through A but not the three-cell one
		assert.Equal(t, map[string]Owner{
			"h1": OwnedBy(PlayerTwo),
			"u1": OwnedBy(PlayerTwo),
		}, ownedLineIDs(state))
		assert.Equal(t, OwnedBy(PlayerOne), state.CellOwner('D'))
		assert.Equal(t, OwnedBy(PlayerTwo), state.CellOwner('A'))
		assert.Equal(t, PlayerOne, state.CurrentPlayer())
	})

	t.Run("Owned lines are never reassigned", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)

		// Given: p1 owns h1 through A
		state = state.MakeMove('A')
		owner, err := state.LineOwner("h1")
		require.NoError(t, err)
		require.Equal(t, OwnedBy(PlayerOne), owner)

		// When: p2 claims the other cell of h1
		state = state.MakeMove('B')

		// Then: h1 still belongs to p1
		owner, err = state.LineOwner("h1")
		require.NoError(t, err)
		assert.Equal(t, OwnedBy(PlayerOne), owner)
	})

	t.Run("The source state is left untouched", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)

		before := state.String()
		next := state.MakeMove('C')

		assert.Equal(t, before, state.String())
		assert.NotEqual(t, before, next.String())
		assert.Equal(t, Unclaimed, state.CellOwner('C'))
	})

	t.Run("Ownership is monotonic and turns alternate", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))

		for side := MinSideLength; side <= MaxSideLength; side++ {
			for game := 0; game < 20; game++ {
				state, err := NewState(game%2 == 0, side)
				require.NoError(t, err)

				for !state.IsOver() {
					moves := state.PossibleMoves()
					require.NotEmpty(t, moves)

					next := state.MakeMove(moves[r.Intn(len(moves))])

					assert.NotEqual(t, state.CurrentPlayer(), next.CurrentPlayer())
					for id, owner := range ownedLineIDs(state) {
						nextOwner, err := next.LineOwner(id)
						require.NoError(t, err)
						assert.Equal(t, owner, nextOwner, "line %s regressed", id)
					}

					state = next
				}
			}
		}
	})
}

func TestState_PossibleMoves(t *testing.T) {
	t.Run("Repeated queries return the same moves", func(t *testing.T) {
		state, err := NewState(true, 3)
		require.NoError(t, err)
		state = state.MakeMove('F').MakeMove('A')

		assert.Equal(t, state.PossibleMoves(), state.PossibleMoves())
		assert.NotContains(t, state.PossibleMoves(), Move('F'))
		assert.NotContains(t, state.PossibleMoves(), Move('A'))
	})

	t.Run("Finished states offer no moves even with free cells", func(t *testing.T) {
		// Given: p1 captures half the lines of side length 1 with its first claim
		state, err := NewState(true, 1)
		require.NoError(t, err)
		state = state.MakeMove('A')

		// Then: the game is over while B and C are still unclaimed
		require.True(t, state.IsOver())
		assert.Equal(t, Unclaimed, state.CellOwner('B'))
		assert.Empty(t, state.PossibleMoves())
		assert.False(t, state.IsValidMove('B'))
	})

	t.Run("Validity matches the move set", func(t *testing.T) {
		for _, state := range reachableStates(t, 2) {
			moves := state.PossibleMoves()
			for m := Move('A'); m <= Move('H'); m++ {
				assert.Equal(t, contains(moves, m), state.IsValidMove(m), "move %s", m)
			}
			assert.False(t, state.IsValidMove(NoMove))
		}
	})
}

func contains(moves []Move, m Move) bool {
	for _, move := range moves {
		if move == m {
			return true
		}
	}
	return false
}

func TestState_IsOver(t *testing.T) {
	for _, state := range reachableStates(t, 2) {
		total := state.LineCount()
		p1 := state.OwnedLines(PlayerOne)
		p2 := state.OwnedLines(PlayerTwo)

		assert.Equal(t, 2*p1 >= total || 2*p2 >= total, state.IsOver())
	}
}

func TestState_RoughOutcome(t *testing.T) {
	t.Run("Only ever returns -1, 0 or 1", func(t *testing.T) {
		for side := 1; side <= 2; side++ {
			for _, state := range reachableStates(t, side) {
				assert.Contains(t, []float64{Lose, Draw, Win}, state.RoughOutcome())
			}
		}
	})

	t.Run("A state already won by the mover is favourable", func(t *testing.T) {
		// Given: p1 to move and already holding half the lines
		state, err := NewState(true, 1)
		require.NoError(t, err)
		for _, id := range []string{"h1", "u1", "d1"} {
			state.lines[state.layout.lineIndex(id)] = OwnedBy(PlayerOne)
		}

		// Then: the estimate is a win
		assert.InDelta(t, Win, state.RoughOutcome(), 0)
	})

	t.Run("Level play is undetermined", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)

		// p1 takes A (h1, u1), p2 takes G (h3, u3): p1 to move, level
		state = state.MakeMove('A').MakeMove('G')
		assert.InDelta(t, Draw, state.RoughOutcome(), 0)

		// p1 takes E (d3): p2 trails but is not yet close to losing
		state = state.MakeMove('E')
		assert.Equal(t, 3, state.OwnedLines(PlayerOne))
		assert.InDelta(t, Draw, state.RoughOutcome(), 0)
	})

	t.Run("Leading on lines is favourable", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)
		state.lines[state.layout.lineIndex("h1")] = OwnedBy(PlayerOne)
		state.lines[state.layout.lineIndex("h2")] = OwnedBy(PlayerOne)
		state.lines[state.layout.lineIndex("u1")] = OwnedBy(PlayerTwo)

		assert.InDelta(t, Win, state.RoughOutcome(), 0)

		state.turn = PlayerTwo
		assert.InDelta(t, Draw, state.RoughOutcome(), 0)
	})

	t.Run("An opponent one capture away is unfavourable", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)
		for _, id := range []string{"h1", "h2", "h3", "u1"} {
			state.lines[state.layout.lineIndex(id)] = OwnedBy(PlayerTwo)
		}
		for _, id := range []string{"u2", "u3", "d1", "d2"} {
			state.lines[state.layout.lineIndex(id)] = OwnedBy(PlayerOne)
		}

		// 4 lines each out of 9: level, but p2 needs only one more
		assert.InDelta(t, Lose, state.RoughOutcome(), 0)
	})
}

func TestState_String(t *testing.T) {
	t.Run("Initial side length 1 board", func(t *testing.T) {
		state, err := NewState(true, 1)
		require.NoError(t, err)

		expected := "      @   @\n" +
			"     /   /\n" +
			"@ - A - B\n" +
			"     \\ / \\\n" +
			"  @ - C   @\n" +
			"       \\\n" +
			"        @"
		assert.Equal(t, expected, state.String())
	})

	t.Run("Side length 2 board after two claims", func(t *testing.T) {
		state, err := NewState(true, 2)
		require.NoError(t, err)
		state = state.MakeMove('D').MakeMove('A')

		expected := "        2   @\n" +
			"       /   /\n" +
			"  2 - 2 - B   @\n" +
			"     / \\ / \\ /\n" +
			"@ - C - 1 - E\n" +
			"     \\ / \\ / \\\n" +
			"  @ - F - G   @\n" +
			"       \\   \\\n" +
			"        @   @"
		assert.Equal(t, expected, state.String())
	})
}
