package strategy

import (
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

type recursiveMinimax struct{}

// NewRecursiveMinimax - exhaustive minimax written as plain recursion.
func NewRecursiveMinimax() Strategy {
	return &recursiveMinimax{}
}

func (that *recursiveMinimax) Name() string {
	return NameRecursiveMinimax
}

func (that *recursiveMinimax) SuggestMove(game *stonehenge.Game) (stonehenge.Move, error) {
	moves := game.CurrentState.PossibleMoves()
	if len(moves) == 0 {
		return stonehenge.NoMove, ErrNoLegalMoves
	}

	best := moves[0]
	bestScore := -recursiveScore(game, game.CurrentState.MakeMove(best))
	for _, move := range moves[1:] {
		if score := -recursiveScore(game, game.CurrentState.MakeMove(move)); score > bestScore {
			best, bestScore = move, score
		}
	}

	return best, nil
}

// recursiveScore is the guaranteed score of state for the player to move.
func recursiveScore(game *stonehenge.Game, state stonehenge.State) int {
	if game.IsOver(state) {
		return game.Score(state)
	}

	moves := state.PossibleMoves()
	if len(moves) == 0 {
		return stonehenge.Draw
	}

	best := -recursiveScore(game, state.MakeMove(moves[0]))
	for _, move := range moves[1:] {
		if score := -recursiveScore(game, state.MakeMove(move)); score > best {
			best = score
		}
	}

	return best
}
