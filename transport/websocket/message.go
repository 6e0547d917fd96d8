package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/stonehenge-backend/internal/entity"
	"github.com/rocketscienceinc/stonehenge-backend/internal/service"
)

const (
	actionConnect = "connect"
	actionNewGame = "game:new"
	actionJoin    = "game:join"
	actionTurn    = "game:turn"
	actionHint    = "game:hint"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player   *entity.Player       `json:"player,omitempty"`
	Game     *entity.GameView     `json:"game,omitempty"`
	Options  *service.GameOptions `json:"options,omitempty"`
	GameID   string               `json:"game_id,omitempty"`
	Cell     string               `json:"cell,omitempty"`
	Strategy string               `json:"strategy,omitempty"`
	Move     string               `json:"move,omitempty"`
	Error    string               `json:"error,omitempty"`
}
