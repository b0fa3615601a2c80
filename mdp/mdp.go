// Package mdp holds the grid world Markov decision process and the tabular
// Q-learning agent that learns to cross it.
package mdp

import "fmt"

// Size is the side length of the reference grid.
const Size = 5

type State int

type Reward float64

type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

const NumActions = 4

var Actions = [NumActions]Action{Up, Down, Left, Right}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type Cell int

const (
	Empty Cell = iota
	Trap
	Goal
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Trap:
		return "trap"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("cell(%d)", int(c))
}

func (c Cell) IsTerminal() bool {
	return c == Trap || c == Goal
}

// Outcome is the result of a single environment step.
type Outcome struct {
	Position Position
	Reward   Reward
	Done     bool
}

type Transition struct {
	State0 State
	Action Action
	State1 State
	Reward Reward
}

// Environment is the transition function the agent learns against.
type Environment interface {
	Step(Position, Action) Outcome
	Cell(Position) Cell
	State(Position) State
	NumStates() int
}
