package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/stonehenge-backend/internal/config"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/repository"
	"github.com/rocketscienceinc/stonehenge-backend/internal/repository/storage"
	"github.com/rocketscienceinc/stonehenge-backend/internal/service"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
	"github.com/rocketscienceinc/stonehenge-backend/transport/rest"
	"github.com/rocketscienceinc/stonehenge-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection, conf.Redis.GameTTL)
	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(logger, strategy.Automatic(), conf.Game.BotStrategy, conf.Game.MaxSearchSide)
	gamePlayService := service.NewGamePlayService(logger, playerService, gameService, botService, service.GameOptions{
		Type:        entity.PrivateType,
		SideLength:  conf.Game.SideLength,
		FirstPlayer: conf.Game.FirstPlayer,
		Strategy:    conf.Game.BotStrategy,
	})

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(groupCtx, conf.HTTPPort, rest.NewRouter(logger, playerService, gamePlayService)); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, playerService, gamePlayService)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
