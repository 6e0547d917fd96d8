package strategy

import (
	"errors"

	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrNoInput      = errors.New("no more input")
)

// Strategy picks the next move for the player to move in game.
type Strategy interface {
	Name() string
	SuggestMove(game *stonehenge.Game) (stonehenge.Move, error)
}
