package strategy

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
)

const (
	NameInteractive      = "interactive"
	NameRoughOutcome     = "rough-outcome"
	NameRecursiveMinimax = "recursive-minimax"
	NameIterativeMinimax = "iterative-minimax"
)

// Names lists every strategy ByName accepts.
func Names() []string {
	return []string{NameInteractive, NameRoughOutcome, NameRecursiveMinimax, NameIterativeMinimax}
}

// ByName - resolves a strategy. The interactive one talks to the terminal.
func ByName(name string) (Strategy, error) {
	switch name {
	case NameInteractive:
		return NewInteractive(os.Stdin, os.Stdout), nil
	case NameRoughOutcome:
		return NewRoughOutcome(), nil
	case NameRecursiveMinimax:
		return NewRecursiveMinimax(), nil
	case NameIterativeMinimax:
		return NewIterativeMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, name)
	}
}

// IsExhaustive reports whether the named strategy searches the whole game tree.
func IsExhaustive(name string) bool {
	return name == NameRecursiveMinimax || name == NameIterativeMinimax
}

// Automatic - the strategies that need no human, keyed by name.
func Automatic() map[string]Strategy {
	return map[string]Strategy{
		NameRoughOutcome:     NewRoughOutcome(),
		NameRecursiveMinimax: NewRecursiveMinimax(),
		NameIterativeMinimax: NewIterativeMinimax(),
	}
}
