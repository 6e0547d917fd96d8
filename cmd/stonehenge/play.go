package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/stonehenge-backend/internal/arena"
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

var ErrInteractiveArena = errors.New("an arena cannot use the interactive strategy")

type options struct {
	SideLength  int
	Player1     string
	Player2     string
	FirstPlayer string
	Games       int
	Workers     int
}

type runner struct {
	logger *slog.Logger
	in     io.Reader
	out    *termenv.Output
}

func (that *runner) run(ctx context.Context, opts options) error {
	first, err := stonehenge.ParsePlayer(opts.FirstPlayer)
	if err != nil {
		return err
	}

	p1, err := that.resolve(opts.Player1)
	if err != nil {
		return err
	}

	p2, err := that.resolve(opts.Player2)
	if err != nil {
		return err
	}

	if opts.Games > 1 {
		return that.runArena(ctx, p1, p2, opts)
	}

	return that.playGame(ctx, p1, p2, first == stonehenge.PlayerOne, opts.SideLength)
}

func (that *runner) resolve(name string) (strategy.Strategy, error) {
	if name == strategy.NameInteractive {
		return strategy.NewInteractive(that.in, that.out), nil
	}
	return strategy.ByName(name)
}

func (that *runner) playGame(ctx context.Context, p1, p2 strategy.Strategy, p1Starts bool, sideLength int) error {
	log := that.logger.With("method", "playGame")

	game, err := stonehenge.NewGame(p1Starts, sideLength)
	if err != nil {
		return err
	}

	fmt.Fprintln(that.out, game.Instructions())

	for !game.IsOver(game.CurrentState) {
		if err = ctx.Err(); err != nil {
			return err
		}

		player := game.CurrentState.CurrentPlayer()
		current := p1
		if player == stonehenge.PlayerTwo {
			current = p2
		}

		fmt.Fprintf(that.out, "\n%s\n%s to move\n", that.colorize(game.CurrentState.String()), player)

		started := time.Now()
		move, err := current.SuggestMove(game)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", player, current.Name(), err)
		}
		log.Debug("move chosen", "player", player.String(), "strategy", current.Name(), "move", move.String(), "elapsed", time.Since(started))

		if err = game.Play(move); err != nil {
			return fmt.Errorf("%s (%s): %w", player, current.Name(), err)
		}
		fmt.Fprintf(that.out, "%s plays %s\n", player, move)
	}

	fmt.Fprintf(that.out, "\n%s\n", that.colorize(game.CurrentState.String()))
	if winner, ok := game.Winner(game.CurrentState); ok {
		fmt.Fprintf(that.out, "%s wins!\n", winner)
	}

	return nil
}

func (that *runner) runArena(ctx context.Context, p1, p2 strategy.Strategy, opts options) error {
	if p1.Name() == strategy.NameInteractive || p2.Name() == strategy.NameInteractive {
		return ErrInteractiveArena
	}

	log := that.logger.With("method", "runArena")

	a := &arena.Arena{
		Player1:    p1,
		Player2:    p2,
		SideLength: opts.SideLength,
		Games:      opts.Games,
		Workers:    opts.Workers,
		OnGameFinished: func(result arena.Result) {
			log.Debug("game finished", "game", result.Game, "winner", result.Winner.String(), "moves", len(result.Moves))
		},
	}

	started := time.Now()
	summary, err := a.Run(ctx)
	if err != nil {
		return fmt.Errorf("arena failed: %w", err)
	}
	log.Info("arena finished", "games", summary.TotalGames, "elapsed", time.Since(started))

	encoder := json.NewEncoder(that.out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(summary)
}

// colorize paints ownership digits, cell letters are left alone.
func (that *runner) colorize(board string) string {
	p1 := that.out.String("1").Foreground(that.out.Color("1")).Bold().String()
	p2 := that.out.String("2").Foreground(that.out.Color("4")).Bold().String()

	return strings.NewReplacer("1", p1, "2", p2).Replace(board)
}
