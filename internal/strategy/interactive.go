package strategy

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

type interactive struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewInteractive - asks a human for moves on out and reads them from in.
func NewInteractive(in io.Reader, out io.Writer) Strategy {
	return &interactive{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (that *interactive) Name() string {
	return NameInteractive
}

// SuggestMove prompts until a legal move is entered.
func (that *interactive) SuggestMove(game *stonehenge.Game) (stonehenge.Move, error) {
	if len(game.CurrentState.PossibleMoves()) == 0 {
		return stonehenge.NoMove, ErrNoLegalMoves
	}

	for {
		fmt.Fprint(that.out, "Enter a move: ")

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return stonehenge.NoMove, fmt.Errorf("failed to read move: %w", err)
			}
			return stonehenge.NoMove, ErrNoInput
		}

		move := game.StrToMove(that.in.Text())
		if game.CurrentState.IsValidMove(move) {
			return move, nil
		}

		fmt.Fprintf(that.out, "%q is not a legal move\n", that.in.Text())
	}
}
