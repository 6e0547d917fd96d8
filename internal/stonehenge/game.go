package stonehenge

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIllegalMove = errors.New("illegal move")

const instructions = "Players take turns claiming cells. When a player captures at least " +
	"half of the cells in a ley-line, that player captures the ley-line. The first " +
	"player to capture at least half of the ley-lines is the winner."

// Game is a play session around the current state.
type Game struct {
	CurrentState State
}

// NewGame - creates a session at the initial state.
func NewGame(p1Starts bool, sideLength int) (*Game, error) {
	state, err := NewState(p1Starts, sideLength)
	if err != nil {
		return nil, err
	}

	return &Game{CurrentState: state}, nil
}

func (that *Game) Instructions() string {
	return instructions
}

func (that *Game) IsOver(state State) bool {
	return state.IsOver()
}

// IsWinner reports whether player won the game at the current state. The
// winner is the player who made the capturing move, so never the one to move.
func (that *Game) IsWinner(player Player) bool {
	return that.CurrentState.CurrentPlayer() != player && that.IsOver(that.CurrentState)
}

// Winner judges an arbitrary state the same way IsWinner judges the current one.
func (that *Game) Winner(state State) (Player, bool) {
	if !that.IsOver(state) {
		return 0, false
	}
	return state.CurrentPlayer().Opponent(), true
}

// Score is the final score of a finished state for the player to move.
func (that *Game) Score(state State) int {
	winner, ok := that.Winner(state)
	switch {
	case ok && winner == state.CurrentPlayer():
		return Win
	case ok:
		return Lose
	default:
		return Draw
	}
}

// StrToMove returns the cell named by text, or NoMove.
func (that *Game) StrToMove(text string) Move {
	text = strings.ToUpper(strings.TrimSpace(text))
	if len(text) != 1 {
		return NoMove
	}

	move := Move(text[0])
	if !that.CurrentState.Layout().Contains(move) {
		return NoMove
	}
	return move
}

// Play applies move to the current state.
func (that *Game) Play(move Move) error {
	if !that.CurrentState.IsValidMove(move) {
		return fmt.Errorf("%w: %q", ErrIllegalMove, move.String())
	}

	that.CurrentState = that.CurrentState.MakeMove(move)
	return nil
}
