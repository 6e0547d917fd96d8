package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/service"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(conn, msg.Action, "malformed payload")
		return err
	}

	player, err := that.getOrCreatePlayer(ctx, payloadReq.Player)
	if err != nil {
		that.sendError(conn, msg.Action, "failed to create a new player")
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	that.register(player.ID, conn)

	payloadResp := Payload{Player: player}
	if player.GameID != "" {
		game, err := that.games.GetGameByID(ctx, player.GameID)
		if err == nil {
			payloadResp.Game, err = game.View()
		}
		if err != nil {
			log.Warn("failed to restore game", "gameID", player.GameID, "error", err)
		}
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) getOrCreatePlayer(ctx context.Context, requested *entity.Player) (*entity.Player, error) {
	if requested != nil && requested.ID != "" {
		player, err := that.players.GetPlayerByID(ctx, requested.ID)
		if err == nil {
			return player, nil
		}
		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			return nil, err
		}
	}

	return that.players.CreatePlayer(ctx)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.decodeWithPlayer(msg, conn)
	if err != nil {
		return err
	}

	var options service.GameOptions
	if payloadReq.Options != nil {
		options = *payloadReq.Options
	}

	game, err := that.games.CreateGame(ctx, payloadReq.Player.ID, options)
	if err != nil {
		that.sendError(conn, msg.Action, err.Error())
		return fmt.Errorf("failed to create game: %w", err)
	}

	return that.broadcast(msg.Action, game)
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.decodeWithPlayer(msg, conn)
	if err != nil {
		return err
	}

	game, err := that.games.JoinGameByID(ctx, payloadReq.GameID, payloadReq.Player.ID)
	if err != nil {
		that.sendError(conn, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.GameID, err))
		return fmt.Errorf("failed to join game: %w", err)
	}

	return that.broadcast(msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.decodeWithPlayer(msg, conn)
	if err != nil {
		return err
	}

	gameID := payloadReq.GameID
	if gameID == "" {
		gameID = payloadReq.Player.GameID
	}

	game, err := that.games.MakeTurn(ctx, gameID, payloadReq.Player.ID, payloadReq.Cell)
	if err != nil {
		that.sendError(conn, msg.Action, err.Error())
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return that.broadcast(msg.Action, game)
}

func (that *Server) handleHint(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(conn, msg.Action, "malformed payload")
		return err
	}

	move, err := that.games.Hint(ctx, payloadReq.GameID, payloadReq.Strategy)
	if err != nil {
		that.sendError(conn, msg.Action, err.Error())
		return fmt.Errorf("failed to suggest move: %w", err)
	}

	return that.sendMessage(conn, msg.Action, Payload{GameID: payloadReq.GameID, Strategy: payloadReq.Strategy, Move: move})
}

// broadcast sends the game to every connected human seated in it.
func (that *Server) broadcast(action string, game *entity.Game) error {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	view, err := game.View()
	if err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err = that.sendMessage(conn, action, Payload{Player: player, Game: view}); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

// decodeWithPlayer decodes the payload, requires a player and binds the
// connection to it.
func (that *Server) decodeWithPlayer(msg *Message, conn *connection) (*Payload, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		that.sendError(conn, msg.Action, "malformed payload")
		return nil, err
	}

	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(conn, msg.Action, "Player is required")
		return nil, fmt.Errorf("%s: %w", msg.Action, apperror.ErrPlayerNotFound)
	}

	that.register(payload.Player.ID, conn)

	return payload, nil
}

func (that *Server) sendMessage(conn *connection, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.writeJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *connection, action, errorMsg string) {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}
