package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/stonehenge-backend/internal"
	"github.com/rocketscienceinc/stonehenge-backend/internal/config"
)

// main - runs the stonehenge game server.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "config.yml", "path to the config file, XDG directories are searched when it is missing")
	flag.Parse()

	conf := initConfig(*configPath)
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig(path string) *config.Config {
	if _, err := os.Stat(path); err == nil {
		return config.MustLoad(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("failed to stat config file: %w", err))
	}

	conf, err := config.Load()
	if err != nil {
		panic(err)
	}

	return conf
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)})).
		With("service", "stonehenge")
}
