package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerOne = "p1"
	PlayerTwo = "p2"
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the stored form of a session: the board is rebuilt by replaying Moves.
type Game struct {
	ID          string    `json:"id"`
	SideLength  int       `json:"side_length"`
	FirstPlayer string    `json:"first_player"`
	Moves       []string  `json:"moves"`
	Winner      string    `json:"winner"`
	Status      string    `json:"status"`
	Turn        string    `json:"player_turn"`
	Players     []*Player `json:"players,omitempty"`
	Type        string    `json:"type,omitempty"`
	Strategy    string    `json:"strategy,omitempty"`
}

// GameView is a game together with its rendered board.
type GameView struct {
	*Game
	Board         string            `json:"board"`
	Lines         map[string]string `json:"lines"`
	PossibleMoves []string          `json:"possible_moves"`
}

func NewGame(id, gameType string, sideLength int, firstPlayer string) (*Game, error) {
	if _, err := stonehenge.LayoutFor(sideLength); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if _, err := stonehenge.ParsePlayer(firstPlayer); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &Game{
		ID:          id,
		SideLength:  sideLength,
		FirstPlayer: firstPlayer,
		Moves:       []string{},
		Turn:        firstPlayer,
		Status:      StatusWaiting,
		Type:        gameType,
	}, nil
}

// State - replays the move history from the initial board.
func (that *Game) State() (stonehenge.State, error) {
	state, err := stonehenge.NewState(that.FirstPlayer == PlayerOne, that.SideLength)
	if err != nil {
		return stonehenge.State{}, fmt.Errorf("failed to build board: %w", err)
	}

	for i, text := range that.Moves {
		if len(text) != 1 || !state.IsValidMove(stonehenge.Move(text[0])) {
			return stonehenge.State{}, fmt.Errorf("%w: move %d %q", apperror.ErrInvalidMove, i+1, text)
		}
		state = state.MakeMove(stonehenge.Move(text[0]))
	}

	return state, nil
}

func (that *Game) Session() (*stonehenge.Game, error) {
	state, err := that.State()
	if err != nil {
		return nil, err
	}
	return &stonehenge.Game{CurrentState: state}, nil
}

func (that *Game) MakeTurn(playerMark, cell string) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	session, err := that.Session()
	if err != nil {
		return err
	}

	move := session.StrToMove(cell)
	if move == stonehenge.NoMove {
		return fmt.Errorf("%w: cell %q", apperror.ErrInvalidMove, cell)
	}

	if session.CurrentState.CellOwner(move) != stonehenge.Unclaimed {
		return apperror.ErrCellOccupied
	}

	if err = session.Play(move); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	that.Moves = append(that.Moves, move.String())
	that.UpdateGameState(session.CurrentState)

	return nil
}

func (that *Game) UpdateGameState(state stonehenge.State) {
	if state.IsOver() {
		// the player who just moved captured the last line it needed
		that.Winner = state.CurrentPlayer().Opponent().String()
		that.Status = StatusFinished
		that.Turn = ""
		return
	}

	that.Status = StatusOngoing
	that.Turn = state.CurrentPlayer().String()
}

func (that *Game) View() (*GameView, error) {
	state, err := that.State()
	if err != nil {
		return nil, err
	}

	lines := make(map[string]string, state.LineCount())
	for id, owner := range state.LineOwners() {
		if player, ok := owner.Player(); ok {
			lines[id] = player.String()
		} else {
			lines[id] = ""
		}
	}

	moves := state.PossibleMoves()
	possible := make([]string, len(moves))
	for i, m := range moves {
		possible[i] = m.String()
	}

	return &GameView{
		Game:          that,
		Board:         state.String(),
		Lines:         lines,
		PossibleMoves: possible,
	}, nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerOne, PlayerTwo
	}
	return PlayerTwo, PlayerOne
}
