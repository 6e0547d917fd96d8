package strategy

import (
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

type roughOutcome struct{}

// NewRoughOutcome - looks one move ahead and keeps the first move whose
// successor is worst for the opponent.
func NewRoughOutcome() Strategy {
	return &roughOutcome{}
}

func (that *roughOutcome) Name() string {
	return NameRoughOutcome
}

func (that *roughOutcome) SuggestMove(game *stonehenge.Game) (stonehenge.Move, error) {
	moves := game.CurrentState.PossibleMoves()
	if len(moves) == 0 {
		return stonehenge.NoMove, ErrNoLegalMoves
	}

	best := moves[0]
	bestScore := -game.CurrentState.MakeMove(best).RoughOutcome()
	for _, move := range moves[1:] {
		if score := -game.CurrentState.MakeMove(move).RoughOutcome(); score > bestScore {
			best, bestScore = move, score
		}
	}

	return best, nil
}
