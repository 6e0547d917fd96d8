package apperror

import "errors"

var (
	ErrGameFinished        = errors.New("game is already finished")
	ErrGameIsNotStarted    = errors.New("game is not started")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrInvalidMove         = errors.New("invalid move")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrGameAlreadyExists   = errors.New("game already exists")
	ErrGameIsFull          = errors.New("game is full")
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerNotInGame     = errors.New("player is not seated in this game")
	ErrPlayerInAnotherGame = errors.New("player is already in another game")
	ErrUnknownStrategy     = errors.New("unknown strategy")
	ErrSearchTooLarge      = errors.New("board is too large for an exhaustive search")
)
