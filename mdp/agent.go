package mdp

import (
	"fmt"
	"math/rand"
)

// Hyperparameters are fixed for the length of a run.
type Hyperparameters struct {
	Alpha   float64
	Gamma   float64
	Epsilon float64
}

func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Alpha:   0.1,
		Gamma:   0.9,
		Epsilon: 0.2,
	}
}

func (h Hyperparameters) Validate() error {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", h.Alpha)
	}
	if h.Gamma < 0 || h.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0, 1], got %v", h.Gamma)
	}
	if h.Epsilon < 0 || h.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", h.Epsilon)
	}
	return nil
}

// Agent owns the action-value table and is its only writer.
type Agent struct {
	env    Environment
	q      *ActionValueTable
	params Hyperparameters
	rng    *rand.Rand
}

func NewAgent(env Environment, params Hyperparameters, rng *rand.Rand) *Agent {
	if rng == nil {
		panic("agent needs a random source")
	}
	return &Agent{
		env:    env,
		q:      NewActionValueTable(env.NumStates()),
		params: params,
		rng:    rng,
	}
}

func (a *Agent) Q() *ActionValueTable {
	return a.q
}

func (a *Agent) Hyperparameters() Hyperparameters {
	return a.params
}

func (a *Agent) SetEpsilon(epsilon float64) {
	a.params.Epsilon = epsilon
}

func (a *Agent) Behavior() PolicyEpsilonGreedy {
	return PolicyEpsilonGreedy{Q: a.q, Epsilon: a.params.Epsilon, Rand: a.rng}
}

func (a *Agent) Greedy() PolicyGreedy {
	return PolicyGreedy{Q: a.q}
}

func (a *Agent) ChooseAction(p Position) Action {
	return a.Behavior().Act(a.env.State(p))
}

// Update applies one step of Q-learning for the action actually taken:
// Q[s][a] += alpha * (r + gamma * max Q[s1] - Q[s][a]).
func (a *Agent) Update(s State, act Action, r Reward, s1 State) {
	maxQ := a.q.Max(s1)
	qsa := a.q.Value(s, act)
	tdTarget := float64(r) + a.params.Gamma*maxQ
	a.q.set(s, act, qsa+a.params.Alpha*(tdTarget-qsa))
}

func (a *Agent) Learn(p Position, act Action, o Outcome) Transition {
	t := Transition{
		State0: a.env.State(p),
		Action: act,
		State1: a.env.State(o.Position),
		Reward: o.Reward,
	}
	a.Update(t.State0, t.Action, t.Reward, t.State1)
	return t
}
