package mdp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ActionValueTable stores Q[state][action], one row per state. Callers
// outside the package can only read it; the agent's update rule is the
// single writer.
type ActionValueTable struct {
	q *mat.Dense
}

func NewActionValueTable(states int) *ActionValueTable {
	if states <= 0 {
		panic(fmt.Sprintf("action-value table needs at least one state, got %d", states))
	}
	return &ActionValueTable{q: mat.NewDense(states, NumActions, nil)}
}

func (t *ActionValueTable) NumStates() int {
	r, _ := t.q.Dims()
	return r
}

func (t *ActionValueTable) Value(s State, a Action) float64 {
	t.check(s)
	if !a.Valid() {
		panic("unhandled action: " + a.String())
	}
	return t.q.At(int(s), int(a))
}

func (t *ActionValueTable) Values(s State) [NumActions]float64 {
	var v [NumActions]float64
	copy(v[:], t.row(s))
	return v
}

func (t *ActionValueTable) Max(s State) float64 {
	return floats.Max(t.row(s))
}

// Argmax returns the best action for s. Ties go to the lowest ordinal.
func (t *ActionValueTable) Argmax(s State) Action {
	return Action(floats.MaxIdx(t.row(s)))
}

// Clone returns an independent copy, e.g. for a snapshot taken mid-training.
func (t *ActionValueTable) Clone() *ActionValueTable {
	return &ActionValueTable{q: mat.DenseCopyOf(t.q)}
}

func (t *ActionValueTable) set(s State, a Action, v float64) {
	t.q.Set(int(s), int(a), v)
}

func (t *ActionValueTable) row(s State) []float64 {
	t.check(s)
	return t.q.RawRowView(int(s))
}

func (t *ActionValueTable) check(s State) {
	if s < 0 || int(s) >= t.NumStates() {
		panic(fmt.Sprintf("bad state %d", s))
	}
}
