package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/pkg"
)

type GameService interface {
	CreateGame(ctx context.Context, player *entity.Player, options GameOptions) (*entity.Game, *entity.Player, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

// GameOptions describe a new game. Empty fields take the configured defaults.
type GameOptions struct {
	Type        string `json:"type"`
	SideLength  int    `json:"side_length"`
	FirstPlayer string `json:"first_player"`
	Strategy    string `json:"strategy"`
}

func (that GameOptions) withDefaults(defaults GameOptions) GameOptions {
	if that.Type == "" {
		that.Type = defaults.Type
	}
	if that.SideLength == 0 {
		that.SideLength = defaults.SideLength
	}
	if that.FirstPlayer == "" {
		that.FirstPlayer = defaults.FirstPlayer
	}
	if that.Strategy == "" {
		that.Strategy = defaults.Strategy
	}
	return that
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

// CreateGame - stores a new game seating player as p1.
func (that *gameService) CreateGame(ctx context.Context, player *entity.Player, options GameOptions) (*entity.Game, *entity.Player, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game, err := entity.NewGame(gameID, options.Type, options.SideLength, options.FirstPlayer)
	if err != nil {
		return nil, nil, err
	}
	game.Strategy = options.Strategy

	player.GameID = gameID
	player.Mark = entity.PlayerOne

	game.Players = []*entity.Player{player}
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to create game from storage: %w", err)
	}
	return game, player, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}
	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
