package mdp

import (
	"fmt"
	"math/rand"
)

type Policy interface {
	Name() string
	Act(State) Action
}

// PolicyGreedy always takes the highest valued action.
type PolicyGreedy struct {
	Q *ActionValueTable
}

func (g PolicyGreedy) Name() string { return "greedy" }

func (g PolicyGreedy) Act(s State) Action {
	return g.Q.Argmax(s)
}

// PolicyEpsilonGreedy explores uniformly with probability Epsilon and acts
// greedily otherwise.
type PolicyEpsilonGreedy struct {
	Q       *ActionValueTable
	Epsilon float64
	Rand    *rand.Rand
}

func (p PolicyEpsilonGreedy) Name() string {
	return fmt.Sprintf("e-greedy-%.2f", p.Epsilon)
}

func (p PolicyEpsilonGreedy) Act(s State) Action {
	if p.Rand.Float64() < p.Epsilon {
		return Action(p.Rand.Intn(NumActions))
	}
	return p.Q.Argmax(s)
}

// Distribution is the probability of each action under the policy in s.
func (p PolicyEpsilonGreedy) Distribution(s State) [NumActions]float64 {
	var pdf [NumActions]float64
	best := p.Q.Argmax(s)
	for _, a := range Actions {
		pdf[a] = p.Epsilon / NumActions
		if a == best {
			pdf[a] += 1.0 - p.Epsilon
		}
	}
	return pdf
}
