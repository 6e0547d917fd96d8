package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
	SuggestMove(game *entity.Game, strategyName string) (string, error)
	CheckStrategy(strategyName string, sideLength int) error
}

type botService struct {
	logger *slog.Logger

	strategies      map[string]strategy.Strategy
	defaultStrategy string
	maxSearchSide   int
}

// NewBotService - plays games with the given strategies. Games that name no
// strategy use defaultStrategy. Exhaustive searches only run on boards with a
// side length up to maxSearchSide.
func NewBotService(logger *slog.Logger, strategies map[string]strategy.Strategy, defaultStrategy string, maxSearchSide int) BotService {
	return &botService{
		logger:          logger.With("component", "bot"),
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		maxSearchSide:   maxSearchSide,
	}
}

// CheckStrategy - fails unless the strategy is known and can play a board of sideLength.
func (that *botService) CheckStrategy(strategyName string, sideLength int) error {
	if _, ok := that.strategies[strategyName]; !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, strategyName)
	}

	if strategy.IsExhaustive(strategyName) && sideLength > that.maxSearchSide {
		return fmt.Errorf("%w: %s on side length %d, limit is %d",
			apperror.ErrSearchTooLarge, strategyName, sideLength, that.maxSearchSide)
	}

	return nil
}

func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	cell, err := that.SuggestMove(game, game.Strategy)
	if err != nil {
		return err
	}

	if err = game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) SuggestMove(game *entity.Game, strategyName string) (string, error) {
	if strategyName == "" {
		strategyName = that.defaultStrategy
	}

	log := that.logger.With("method", "SuggestMove", "gameID", game.ID, "strategy", strategyName)

	if err := that.CheckStrategy(strategyName, game.SideLength); err != nil {
		return "", err
	}
	s := that.strategies[strategyName]

	session, err := game.Session()
	if err != nil {
		return "", fmt.Errorf("failed to restore game: %w", err)
	}

	started := time.Now()
	move, err := s.SuggestMove(session)
	if errors.Is(err, strategy.ErrNoLegalMoves) {
		return "", fmt.Errorf("%w: %w", ErrNoAvailableMoves, err)
	}
	if err != nil {
		return "", fmt.Errorf("strategy failed: %w", err)
	}

	log.Debug("move chosen", "move", move.String(), "elapsed", time.Since(started))

	return move.String(), nil
}
