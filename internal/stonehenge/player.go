package stonehenge

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Player is one of the two sides of the game.
type Player uint8

const (
	PlayerOne Player = iota + 1
	PlayerTwo
)

func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "p1"
	case PlayerTwo:
		return "p2"
	default:
		return "unknown"
	}
}

// ParsePlayer - converts "p1"/"p2" into a Player.
func ParsePlayer(name string) (Player, error) {
	switch name {
	case "p1":
		return PlayerOne, nil
	case "p2":
		return PlayerTwo, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
}

// Owner is the ownership slot of a cell or a line.
type Owner uint8

const Unclaimed Owner = 0

func OwnedBy(p Player) Owner {
	return Owner(p)
}

// Player returns the owning player, false when unclaimed.
func (o Owner) Player() (Player, bool) {
	if o == Unclaimed {
		return 0, false
	}
	return Player(o), true
}

// Mark is the single character used on the rendered board.
func (o Owner) Mark() byte {
	switch o {
	case OwnedBy(PlayerOne):
		return '1'
	case OwnedBy(PlayerTwo):
		return '2'
	default:
		return '@'
	}
}
