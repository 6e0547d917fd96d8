package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/service"
)

type mockPlayers struct {
	mock.Mock
}

func (that *mockPlayers) CreatePlayer(ctx context.Context) (*entity.Player, error) {
	args := that.Called(ctx)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (that *mockPlayers) GetPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockGamePlay struct {
	mock.Mock
}

func (that *mockGamePlay) CreateGame(ctx context.Context, playerID string, options service.GameOptions) (*entity.Game, error) {
	args := that.Called(ctx, playerID, options)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlay) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID, playerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlay) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlay) MakeTurn(ctx context.Context, gameID, playerID, cell string) (*entity.Game, error) {
	args := that.Called(ctx, gameID, playerID, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlay) Hint(ctx context.Context, gameID, strategyName string) (string, error) {
	args := that.Called(ctx, gameID, strategyName)
	return args.String(0), args.Error(1)
}

func dial(t *testing.T, players *mockPlayers, games *mockGamePlay) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(New(logger, players, games).Handler(context.Background()))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, action string, payload Payload) (string, Payload) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))

	var replyPayload Payload
	require.NoError(t, json.Unmarshal(reply.Payload, &replyPayload))

	return reply.Action, replyPayload
}

func TestServer_Connect(t *testing.T) {
	t.Run("Creates a player for a new client", func(t *testing.T) {
		// Given: a client without a player id
		players := &mockPlayers{}
		players.On("CreatePlayer", mock.Anything).Return(&entity.Player{ID: "p-1"}, nil).Once()
		conn := dial(t, players, &mockGamePlay{})

		// When: the client connects
		action, payload := exchange(t, conn, actionConnect, Payload{})

		// Then: the new player is returned
		assert.Equal(t, actionConnect, action)
		require.NotNil(t, payload.Player)
		assert.Equal(t, "p-1", payload.Player.ID)
		assert.Nil(t, payload.Game)
	})

	t.Run("Restores the game of a known player", func(t *testing.T) {
		game, err := entity.NewGame("g1", entity.PrivateType, 1, entity.PlayerOne)
		require.NoError(t, err)
		player := &entity.Player{ID: "p-1", Mark: entity.PlayerOne, GameID: "g1"}

		players := &mockPlayers{}
		players.On("GetPlayerByID", mock.Anything, "p-1").Return(player, nil).Once()
		games := &mockGamePlay{}
		games.On("GetGameByID", mock.Anything, "g1").Return(game, nil).Once()
		conn := dial(t, players, games)

		_, payload := exchange(t, conn, actionConnect, Payload{Player: &entity.Player{ID: "p-1"}})

		require.NotNil(t, payload.Game)
		assert.Equal(t, "g1", payload.Game.ID)
		assert.Equal(t, []string{"A", "B", "C"}, payload.Game.PossibleMoves)
	})
}

func TestServer_ConnectWithBrokenGame(t *testing.T) {
	// Given: a known player whose stored game cannot be replayed
	game, err := entity.NewGame("g1", entity.PrivateType, 1, entity.PlayerOne)
	require.NoError(t, err)
	game.Moves = []string{"Z"}
	player := &entity.Player{ID: "p-1", Mark: entity.PlayerOne, GameID: "g1"}

	players := &mockPlayers{}
	players.On("GetPlayerByID", mock.Anything, "p-1").Return(player, nil).Once()
	games := &mockGamePlay{}
	games.On("GetGameByID", mock.Anything, "g1").Return(game, nil).Once()
	conn := dial(t, players, games)

	// When: the client reconnects
	action, payload := exchange(t, conn, actionConnect, Payload{Player: &entity.Player{ID: "p-1"}})

	// Then: the player is restored without a game
	assert.Equal(t, actionConnect, action)
	require.NotNil(t, payload.Player)
	assert.Equal(t, "p-1", payload.Player.ID)
	assert.Nil(t, payload.Game)
}

func TestServer_GameActions(t *testing.T) {
	t.Run("Turn broadcasts the updated game", func(t *testing.T) {
		// Given: an ongoing game seating the client
		game, err := entity.NewGame("g1", entity.PrivateType, 2, entity.PlayerOne)
		require.NoError(t, err)
		game.Status = entity.StatusOngoing
		game.Players = []*entity.Player{{ID: "p-1", Mark: entity.PlayerOne, GameID: "g1"}}
		require.NoError(t, game.MakeTurn(entity.PlayerOne, "D"))

		games := &mockGamePlay{}
		games.On("MakeTurn", mock.Anything, "g1", "p-1", "D").Return(game, nil).Once()
		conn := dial(t, &mockPlayers{}, games)

		// When: the client plays D
		action, payload := exchange(t, conn, actionTurn, Payload{Player: &entity.Player{ID: "p-1"}, GameID: "g1", Cell: "D"})

		// Then: the client receives the new board
		assert.Equal(t, actionTurn, action)
		require.NotNil(t, payload.Game)
		assert.Equal(t, []string{"D"}, payload.Game.Moves)
		assert.Equal(t, entity.PlayerTwo, payload.Game.Turn)
	})

	t.Run("Turn errors are reported to the sender", func(t *testing.T) {
		games := &mockGamePlay{}
		games.On("MakeTurn", mock.Anything, "g1", "p-1", "D").Return(nil, apperror.ErrNotYourTurn).Once()
		conn := dial(t, &mockPlayers{}, games)

		// the game falls back to the one the player names
		_, payload := exchange(t, conn, actionTurn, Payload{Player: &entity.Player{ID: "p-1", GameID: "g1"}, Cell: "D"})

		assert.Equal(t, apperror.ErrNotYourTurn.Error(), payload.Error)
	})

	t.Run("Actions without a player are rejected", func(t *testing.T) {
		conn := dial(t, &mockPlayers{}, &mockGamePlay{})

		_, payload := exchange(t, conn, actionNewGame, Payload{})

		assert.Equal(t, "Player is required", payload.Error)
	})

	t.Run("Hint replies with a move", func(t *testing.T) {
		games := &mockGamePlay{}
		games.On("Hint", mock.Anything, "g1", "rough-outcome").Return("C", nil).Once()
		conn := dial(t, &mockPlayers{}, games)

		action, payload := exchange(t, conn, actionHint, Payload{GameID: "g1", Strategy: "rough-outcome"})

		assert.Equal(t, actionHint, action)
		assert.Equal(t, "C", payload.Move)
	})

	t.Run("Unknown actions are reported", func(t *testing.T) {
		conn := dial(t, &mockPlayers{}, &mockGamePlay{})

		action, payload := exchange(t, conn, "game:leave", Payload{})

		assert.Equal(t, "game:leave", action)
		assert.Equal(t, "unknown action", payload.Error)
	})
}
