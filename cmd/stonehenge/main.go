package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/stonehenge-backend/internal/config"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

// main - plays stonehenge in the terminal, or an arena of automatic games when -games > 1.
func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	opts := options{}
	flag.IntVar(&opts.SideLength, "side", conf.Game.SideLength, "side length of the board, 1 to 5")
	flag.StringVar(&opts.Player1, "p1", strategy.NameInteractive, "strategy for p1")
	flag.StringVar(&opts.Player2, "p2", conf.Game.BotStrategy, "strategy for p2")
	flag.StringVar(&opts.FirstPlayer, "first", conf.Game.FirstPlayer, "player who moves first, p1 or p2")
	flag.IntVar(&opts.Games, "games", 1, "number of games, more than one runs an arena")
	flag.IntVar(&opts.Workers, "workers", 4, "games played at once in an arena")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{
		logger: logger.With("component", "cli"),
		in:     os.Stdin,
		out:    termenv.NewOutput(os.Stdout),
	}

	if err = r.run(ctx, opts); err != nil {
		if errors.Is(err, strategy.ErrNoInput) || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "stonehenge: %v\n", err)
		os.Exit(1)
	}
}
