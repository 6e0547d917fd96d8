package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/service"
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

var errBadRequest = errors.New("malformed request body")

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
}

type gamePlayService interface {
	CreateGame(ctx context.Context, playerID string, options service.GameOptions) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID, playerID, cell string) (*entity.Game, error)
	Hint(ctx context.Context, gameID, strategyName string) (string, error)
	CleanupGame(ctx context.Context, game *entity.Game)
}

type createGameRequest struct {
	PlayerID string `json:"player_id"`
	service.GameOptions
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type turnRequest struct {
	PlayerID string `json:"player_id"`
	Cell     string `json:"cell"`
}

type hintResponse struct {
	Move     string `json:"move"`
	Strategy string `json:"strategy,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type GameHandler struct {
	logger *slog.Logger

	players playerService
	games   gamePlayService
}

func NewGameHandler(logger *slog.Logger, players playerService, games gamePlayService) *GameHandler {
	return &GameHandler{
		logger:  logger.With("component", "rest"),
		players: players,
		games:   games,
	}
}

func (that *GameHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *GameHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.players.CreatePlayer(r.Context())
	if err != nil {
		that.writeError(w, "CreatePlayer", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, player)
}

func (that *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		that.writeError(w, "CreateGame", errBadRequest)
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.PlayerID, req.GameOptions)
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeGame(w, http.StatusCreated, game)
}

func (that *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *GameHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		that.writeError(w, "JoinGame", errBadRequest)
		return
	}

	game, err := that.games.JoinGameByID(r.Context(), chi.URLParam(r, "id"), req.PlayerID)
	if err != nil {
		that.writeError(w, "JoinGame", err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *GameHandler) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		that.writeError(w, "MakeTurn", errBadRequest)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.PlayerID, req.Cell)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	strategyName := r.URL.Query().Get("strategy")

	move, err := that.games.Hint(r.Context(), chi.URLParam(r, "id"), strategyName)
	if err != nil {
		that.writeError(w, "Hint", err)
		return
	}

	that.writeJSON(w, http.StatusOK, hintResponse{Move: move, Strategy: strategyName})
}

// DeleteGame - only a player seated in the game may delete it.
func (that *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		that.writeError(w, "DeleteGame", errBadRequest)
		return
	}

	game, err := that.games.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	if !isSeated(game, playerID) {
		that.writeError(w, "DeleteGame", apperror.ErrPlayerNotInGame)
		return
	}

	that.games.CleanupGame(r.Context(), game)

	w.WriteHeader(http.StatusNoContent)
}

func isSeated(game *entity.Game, playerID string) bool {
	for _, player := range game.Players {
		if player.ID == playerID {
			return true
		}
	}
	return false
}

func (that *GameHandler) writeGame(w http.ResponseWriter, status int, game *entity.Game) {
	view, err := game.View()
	if err != nil {
		that.writeError(w, "writeGame", err)
		return
	}

	that.writeJSON(w, status, view)
}

func (that *GameHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *GameHandler) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrUnknownStrategy),
		errors.Is(err, apperror.ErrSearchTooLarge),
		errors.Is(err, stonehenge.ErrUnsupportedSideLength),
		errors.Is(err, stonehenge.ErrUnknownPlayer):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrPlayerNotInGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrGameIsFull),
		errors.Is(err, apperror.ErrPlayerInAnotherGame),
		errors.Is(err, apperror.ErrGameAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
