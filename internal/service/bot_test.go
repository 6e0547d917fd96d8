package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays for the bot seat", func(t *testing.T) {
		// Given: a bot game where the bot is on turn
		game := ongoingBotGame(t, 2)
		game.Turn = entity.PlayerTwo
		game.FirstPlayer = entity.PlayerTwo
		bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

		// When: the bot moves
		err := bot.MakeTurn(game)

		// Then: a move is recorded and the human is on turn
		require.NoError(t, err)
		assert.Len(t, game.Moves, 1)
		assert.Equal(t, entity.PlayerOne, game.Turn)
	})

	t.Run("Returns ErrBotNotFound without a bot seat", func(t *testing.T) {
		game := ongoingBotGame(t, 2)
		game.Players = game.Players[:1]
		bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

		require.ErrorIs(t, bot.MakeTurn(game), ErrBotNotFound)
	})
}

func TestBotService_SuggestMove(t *testing.T) {
	t.Run("Finished game has no moves", func(t *testing.T) {
		game := ongoingBotGame(t, 1)
		require.NoError(t, game.MakeTurn(entity.PlayerOne, "C"))
		bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

		_, err := bot.SuggestMove(game, "")

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})

	t.Run("Unknown strategy", func(t *testing.T) {
		bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

		_, err := bot.SuggestMove(ongoingBotGame(t, 1), "coin-flip")

		require.ErrorIs(t, err, apperror.ErrUnknownStrategy)
	})

	t.Run("Exhaustive search is refused above the side limit", func(t *testing.T) {
		// Given: a fresh side length 3 game and a limit of 2
		game := ongoingBotGame(t, 3)
		bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

		for _, name := range []string{strategy.NameRecursiveMinimax, strategy.NameIterativeMinimax} {
			// When: a minimax move is requested
			_, err := bot.SuggestMove(game, name)

			// Then: the search never starts
			require.ErrorIs(t, err, apperror.ErrSearchTooLarge)
		}

		// And: the one-ply strategy still answers
		move, err := bot.SuggestMove(game, strategy.NameRoughOutcome)
		require.NoError(t, err)
		assert.NotEmpty(t, move)
	})
}

func TestBotService_CheckStrategy(t *testing.T) {
	bot := NewBotService(discardLogger(), strategy.Automatic(), strategy.NameRoughOutcome, 2)

	tests := []struct {
		name       string
		strategy   string
		sideLength int
		err        error
	}{
		{name: "Unknown strategy", strategy: "coin-flip", sideLength: 1, err: apperror.ErrUnknownStrategy},
		{name: "Interactive is not automatic", strategy: strategy.NameInteractive, sideLength: 1, err: apperror.ErrUnknownStrategy},
		{name: "Minimax within the limit", strategy: strategy.NameRecursiveMinimax, sideLength: 2},
		{name: "Minimax above the limit", strategy: strategy.NameIterativeMinimax, sideLength: 5, err: apperror.ErrSearchTooLarge},
		{name: "Rough outcome on any board", strategy: strategy.NameRoughOutcome, sideLength: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bot.CheckStrategy(tt.strategy, tt.sideLength)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
		})
	}
}
