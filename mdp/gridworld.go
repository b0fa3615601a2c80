package mdp

import (
	"errors"
	"fmt"
)

const (
	StepReward Reward = -1
	TrapReward Reward = -100
	GoalReward Reward = 100
)

var (
	ErrOffBoard  = errors.New("position off board")
	ErrCellTaken = errors.New("cell already labelled")
)

// GridWorld is an immutable square grid with one goal and a fixed set of
// traps. Cells are indexed [y][x].
type GridWorld struct {
	size  int
	cells [][]Cell
	goal  Position
	traps []Position
}

func NewGridWorld(size int, goal Position, traps ...Position) (*GridWorld, error) {
	if size <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %d", size)
	}
	w := &GridWorld{size: size, goal: goal}
	w.cells = make([][]Cell, size)
	for y := range w.cells {
		w.cells[y] = make([]Cell, size)
	}

	if err := w.label(goal, Goal); err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	for _, t := range traps {
		if err := w.label(t, Trap); err != nil {
			return nil, fmt.Errorf("trap: %w", err)
		}
		w.traps = append(w.traps, t)
	}
	return w, nil
}

// DefaultGridWorld is the 5x5 layout with the goal in the far corner and
// traps at (2,1) and (3,3).
func DefaultGridWorld() *GridWorld {
	w, err := NewGridWorld(Size, Position{X: 4, Y: 4}, Position{X: 2, Y: 1}, Position{X: 3, Y: 3})
	if err != nil {
		panic(err)
	}
	return w
}

func (w *GridWorld) label(p Position, c Cell) error {
	if !w.Contains(p) {
		return fmt.Errorf("%v: %w", p, ErrOffBoard)
	}
	if w.cells[p.Y][p.X] != Empty {
		return fmt.Errorf("%v is %v: %w", p, w.cells[p.Y][p.X], ErrCellTaken)
	}
	w.cells[p.Y][p.X] = c
	return nil
}

func (w *GridWorld) Size() int {
	return w.size
}

func (w *GridWorld) NumStates() int {
	return w.size * w.size
}

func (w *GridWorld) Goal() Position {
	return w.goal
}

func (w *GridWorld) Traps() []Position {
	return append([]Position(nil), w.traps...)
}

func (w *GridWorld) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.size && p.Y < w.size
}

func (w *GridWorld) Cell(p Position) Cell {
	w.check(p)
	return w.cells[p.Y][p.X]
}

func (w *GridWorld) IsTerminal(p Position) bool {
	return w.Cell(p).IsTerminal()
}

func (w *GridWorld) State(p Position) State {
	w.check(p)
	return State(p.Y*w.size + p.X)
}

func (w *GridWorld) Position(s State) Position {
	if s < 0 || int(s) >= w.NumStates() {
		panic(fmt.Sprintf("bad state %d", s))
	}
	return Position{X: int(s) % w.size, Y: int(s) / w.size}
}

// Step moves one cell in the direction of a. Moving off an edge leaves that
// coordinate unchanged.
func (w *GridWorld) Step(p Position, a Action) Outcome {
	p1 := w.Shift(p, a)

	o := Outcome{Position: p1, Reward: StepReward}
	switch w.cells[p1.Y][p1.X] {
	case Trap:
		o.Reward = TrapReward
		o.Done = true
	case Goal:
		o.Reward = GoalReward
		o.Done = true
	}
	return o
}

func (w *GridWorld) Shift(p Position, a Action) Position {
	w.check(p)

	x, y := p.X, p.Y
	switch a {
	case Up:
		y--
	case Down:
		y++
	case Left:
		x--
	case Right:
		x++
	default:
		panic("unhandled action: " + a.String())
	}
	return Position{X: w.clip(x), Y: w.clip(y)}
}

func (w *GridWorld) clip(v int) int {
	if v < 0 {
		v = 0
	}
	if v > w.size-1 {
		v = w.size - 1
	}
	return v
}

func (w *GridWorld) check(p Position) {
	if !w.Contains(p) {
		panic(fmt.Sprintf("off board: %v", p))
	}
}
