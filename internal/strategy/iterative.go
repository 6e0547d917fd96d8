package strategy

import (
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
)

// node is a slot of the search arena. Children are arena indices.
type node struct {
	state    stonehenge.State
	move     stonehenge.Move
	children []int
	expanded bool
	score    int
}

type iterativeMinimax struct{}

// NewIterativeMinimax - exhaustive minimax driven by an explicit stack, so the
// search depth is not bounded by the goroutine stack.
func NewIterativeMinimax() Strategy {
	return &iterativeMinimax{}
}

func (that *iterativeMinimax) Name() string {
	return NameIterativeMinimax
}

func (that *iterativeMinimax) SuggestMove(game *stonehenge.Game) (stonehenge.Move, error) {
	if len(game.CurrentState.PossibleMoves()) == 0 {
		return stonehenge.NoMove, ErrNoLegalMoves
	}

	nodes := iterativeSearch(game, game.CurrentState)

	root := nodes[0]
	for _, child := range root.children {
		if -nodes[child].score == root.score {
			return nodes[child].move, nil
		}
	}

	// unreachable: the root score is taken from one of its children
	return stonehenge.NoMove, ErrNoLegalMoves
}

// iterativeSearch scores every node of the tree rooted at state and returns
// the arena, root first.
func iterativeSearch(game *stonehenge.Game, state stonehenge.State) []node {
	nodes := []node{{state: state}}
	stack := []int{0}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case game.IsOver(nodes[i].state):
			nodes[i].score = game.Score(nodes[i].state)

		case !nodes[i].expanded:
			nodes[i].expanded = true
			stack = append(stack, i)

			for _, move := range nodes[i].state.PossibleMoves() {
				child := node{state: nodes[i].state.MakeMove(move), move: move}
				nodes = append(nodes, child)
				nodes[i].children = append(nodes[i].children, len(nodes)-1)
				stack = append(stack, len(nodes)-1)
			}

		default:
			nodes[i].score = bestChildScore(nodes, nodes[i].children)
		}
	}

	return nodes
}

// bestChildScore is the max over children of the negated child score, Draw
// for a node that could not be expanded.
func bestChildScore(nodes []node, children []int) int {
	if len(children) == 0 {
		return stonehenge.Draw
	}

	best := -nodes[children[0]].score
	for _, child := range children[1:] {
		if score := -nodes[child].score; score > best {
			best = score
		}
	}
	return best
}
