package arena

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

var ErrNoGames = errors.New("arena needs at least one game")

// Arena plays a series of games between two strategies. Player1 always
// controls p1; who starts alternates, p1 starting the even games.
type Arena struct {
	Player1    strategy.Strategy
	Player2    strategy.Strategy
	SideLength int
	Games      int
	Workers    int

	// OnGameFinished, when set, is called after every game from the worker goroutine.
	OnGameFinished func(result Result)
}

// Result is the record of a single game.
type Result struct {
	Game     int               `json:"game"`
	P1Starts bool              `json:"p1_starts"`
	Winner   stonehenge.Player `json:"winner"`
	Moves    []stonehenge.Move `json:"moves"`
}

type Summary struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
}

type stats struct {
	p1Wins           atomic.Int32
	p2Wins           atomic.Int32
	draws            atomic.Int32
	firstToMoveWins  atomic.Int32
	secondToMoveWins atomic.Int32
}

// Run - plays every game, at most Workers at a time, and stops at the first
// failing game or when ctx is canceled.
func (that *Arena) Run(ctx context.Context) (Summary, error) {
	if that.Games < 1 {
		return Summary{}, ErrNoGames
	}

	workers := max(that.Workers, 1)

	var counters stats
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := 0; i < that.Games; i++ {
		if groupCtx.Err() != nil {
			break
		}

		game := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, err := PlayGame(that.Player1, that.Player2, game%2 == 0, that.SideLength)
			if err != nil {
				return fmt.Errorf("game %d: %w", game, err)
			}
			result.Game = game

			counters.record(result)
			if that.OnGameFinished != nil {
				that.OnGameFinished(result)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalGames:       that.Games,
		P1Wins:           int(counters.p1Wins.Load()),
		P2Wins:           int(counters.p2Wins.Load()),
		FirstToMoveWins:  int(counters.firstToMoveWins.Load()),
		SecondToMoveWins: int(counters.secondToMoveWins.Load()),
		Draws:            int(counters.draws.Load()),
		Workers:          workers,
		P1Name:           that.Player1.Name(),
		P2Name:           that.Player2.Name(),
	}, nil
}

func (that *stats) record(result Result) {
	starter := stonehenge.PlayerTwo
	if result.P1Starts {
		starter = stonehenge.PlayerOne
	}

	switch result.Winner {
	case stonehenge.PlayerOne:
		that.p1Wins.Add(1)
	case stonehenge.PlayerTwo:
		that.p2Wins.Add(1)
	default:
		that.draws.Add(1)
		return
	}

	if result.Winner == starter {
		that.firstToMoveWins.Add(1)
	} else {
		that.secondToMoveWins.Add(1)
	}
}

// PlayGame - plays one game to the end. The zero Player as winner means a draw.
func PlayGame(p1, p2 strategy.Strategy, p1Starts bool, sideLength int) (Result, error) {
	game, err := stonehenge.NewGame(p1Starts, sideLength)
	if err != nil {
		return Result{}, err
	}

	result := Result{P1Starts: p1Starts}
	for !game.IsOver(game.CurrentState) {
		if len(game.CurrentState.PossibleMoves()) == 0 {
			return result, nil
		}

		current := p1
		if game.CurrentState.CurrentPlayer() == stonehenge.PlayerTwo {
			current = p2
		}

		move, err := current.SuggestMove(game)
		if err != nil {
			return Result{}, fmt.Errorf("%s failed to move: %w", current.Name(), err)
		}

		if err = game.Play(move); err != nil {
			return Result{}, fmt.Errorf("%s suggested %q: %w", current.Name(), move.String(), err)
		}
		result.Moves = append(result.Moves, move)
	}

	result.Winner, _ = game.Winner(game.CurrentState)

	return result, nil
}
