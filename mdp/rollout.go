package mdp

// Trajectory is the path a policy walks without learning.
type Trajectory struct {
	Positions []Position
	Return    Reward
	// End is the terminal cell reached, or Empty if the step budget ran out.
	End Cell
}

func (t Trajectory) Steps() int {
	if len(t.Positions) == 0 {
		return 0
	}
	return len(t.Positions) - 1
}

func (t Trajectory) ReachedGoal() bool {
	return t.End == Goal
}

// Rollout follows policy from start for at most maxSteps steps. The table is
// not touched.
func Rollout(env Environment, policy Policy, start Position, maxSteps int) Trajectory {
	t := Trajectory{Positions: []Position{start}}
	if c := env.Cell(start); c.IsTerminal() {
		t.End = c
		return t
	}

	p := start
	for i := 0; i < maxSteps; i++ {
		o := env.Step(p, policy.Act(env.State(p)))
		p = o.Position
		t.Positions = append(t.Positions, p)
		t.Return += o.Reward
		if o.Done {
			t.End = env.Cell(p)
			break
		}
	}
	return t
}
