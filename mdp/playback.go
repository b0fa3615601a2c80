package mdp

// Playback is the "current agent position" a presentation layer animates
// after training. It reads the agent's table but never updates it.
type Playback struct {
	agent *Agent
	pos   Position
}

func NewPlayback(agent *Agent, start Position) *Playback {
	pb := &Playback{agent: agent}
	pb.SetPosition(start)
	return pb
}

func (pb *Playback) Position() Position {
	return pb.pos
}

func (pb *Playback) SetPosition(p Position) {
	pb.agent.env.State(p) // bounds check
	pb.pos = p
}

func (pb *Playback) Done() bool {
	return pb.agent.env.Cell(pb.pos).IsTerminal()
}

// Advance chooses an action, steps and moves to the new position. Once the
// agent is standing on a terminal cell it stays there and Advance reports
// false.
func (pb *Playback) Advance() (Outcome, bool) {
	if pb.Done() {
		return Outcome{Position: pb.pos, Done: true}, false
	}
	act := pb.agent.ChooseAction(pb.pos)
	o := pb.agent.env.Step(pb.pos, act)
	pb.pos = o.Position
	return o, true
}
