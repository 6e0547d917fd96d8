package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, playerID string, options GameOptions) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID, playerID, cell string) (*entity.Game, error)
	Hint(ctx context.Context, gameID, strategyName string) (string, error)

	CleanupGame(ctx context.Context, game *entity.Game)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService

	defaults GameOptions
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	botService BotService,
	defaults GameOptions,
) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		defaults:      defaults,
	}
}

// CreateGame - starts a new game for the player. A player still seated in an
// unfinished game gets that game back.
func (that *gamePlayService) CreateGame(ctx context.Context, playerID string, options GameOptions) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		switch {
		case err == nil && !game.IsFinished():
			return game, nil
		case err != nil && !errors.Is(err, apperror.ErrGameNotFound):
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
	}

	options = options.withDefaults(that.defaults)
	if options.Type == entity.WithBotType {
		if err = that.botService.CheckStrategy(options.Strategy, options.SideLength); err != nil {
			return nil, err
		}
	}

	game, updatedPlayer, err := that.gameService.CreateGame(ctx, player, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, updatedPlayer); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if game.IsWithBot() {
		if err = that.addBotToGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to add bot to game: %w", err)
		}
	}

	return game, nil
}

func (that *gamePlayService) addBotToGame(ctx context.Context, game *entity.Game) error {
	playerMark, botMark := game.GetRandomMarks()

	botPlayer := entity.NewBotPlayer(game.ID, botMark)
	for _, player := range game.Players {
		player.Mark = playerMark
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
	}

	if err := that.playerService.UpdatePlayer(ctx, botPlayer); err != nil {
		return fmt.Errorf("failed to update bot player: %w", err)
	}

	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusOngoing

	if game.Turn == botMark {
		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game with bot: %w", err)
	}

	return nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if player.GameID != "" {
		current, err := that.gameService.GetGameByID(ctx, player.GameID)
		switch {
		case err == nil && !current.IsFinished():
			return nil, fmt.Errorf("%w: game id %s", apperror.ErrPlayerInAnotherGame, player.GameID)
		case err != nil && !errors.Is(err, apperror.ErrGameNotFound):
			return nil, fmt.Errorf("failed to get current game: %w", err)
		}
	}

	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.GameID = game.ID
	player.Mark = entity.PlayerTwo
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return game, nil
}

// MakeTurn - plays cell for the player in gameID and lets the bot answer in
// bot games. The player must currently be seated in gameID.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID, playerID, cell string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, fmt.Errorf("player %s: %w", playerID, apperror.ErrGameNotFound)
	}

	if player.GameID != gameID {
		return nil, fmt.Errorf("%w: player %s, game id %s", apperror.ErrPlayerNotInGame, playerID, gameID)
	}

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsFinished() && game.IsWithBot() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// Hint - suggests a move for whoever is on turn. An empty strategy name
// falls back to the game's bot strategy.
func (that *gamePlayService) Hint(ctx context.Context, gameID, strategyName string) (string, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return "", fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return "", err
	}

	if strategyName == "" {
		strategyName = game.Strategy
	}

	move, err := that.botService.SuggestMove(game, strategyName)
	if err != nil {
		return "", fmt.Errorf("failed to suggest move: %w", err)
	}

	return move, nil
}

func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		oldMark := player.Mark
		player.GameID = ""
		player.Mark = ""
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to update", "player", player.ID, "error", err)
		}
		player.Mark = oldMark
	}
}
