package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/gridq/mdp"
)

func TestPrintGrid(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.PrintGrid(mdp.DefaultGridWorld(), mdp.Position{X: 1, Y: 0})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, mdp.Size)
	assert.Equal(t, " . | A | . | . | . |", lines[0])
	assert.Equal(t, " . | . | T | . | . |", lines[1])
	assert.Equal(t, " . | . | . | T | . |", lines[3])
	assert.Equal(t, " . | . | . | . | G |", lines[4])
}

func TestPrintPolicyOnFreshTable(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	world := mdp.DefaultGridWorld()

	p.PrintPolicy(world, mdp.NewActionValueTable(world.NumStates()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, mdp.Size)
	assert.Equal(t, " ↑ | ↑ | ↑ | ↑ | ↑ |", lines[0])
	assert.Equal(t, " ↑ | ↑ | T | ↑ | ↑ |", lines[1])
	assert.Equal(t, " ↑ | ↑ | ↑ | ↑ | G |", lines[4])
}

func TestPrintValueEstimates(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	world := mdp.DefaultGridWorld()

	p.PrintValueEstimates(world, mdp.NewActionValueTable(world.NumStates()))

	out := buf.String()
	assert.Contains(t, out, "GOAL")
	assert.Equal(t, 2, strings.Count(out, "TRAP"))
	assert.Equal(t, 22, strings.Count(out, "↑0"))
	assert.Equal(t, 22, strings.Count(out, "→0"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4*mdp.Size)
	assert.Equal(t, "    ↑0       |", lines[0][:len("    ↑0       |")])
}

func TestPrintTrajectory(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	world := mdp.DefaultGridWorld()

	traj := mdp.Trajectory{
		Positions: []mdp.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		Return:    -102,
		End:       mdp.Trap,
	}
	p.PrintTrajectory(world, traj)

	out := buf.String()
	assert.Contains(t, out, " * | . | . | . | . |")
	assert.Contains(t, out, " * | * | T | . | . |")
	assert.Contains(t, out, "greedy path: 3 steps, return -102, fell into a trap")
}

func TestPrintStepAndEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.PrintStep(3, mdp.Outcome{Position: mdp.Position{X: 4, Y: 4}, Reward: mdp.GoalReward, Done: true})
	assert.Equal(t, "step  3: (4,4) reward +100\n", buf.String())

	buf.Reset()
	world := mdp.DefaultGridWorld()
	cfg := mdp.DefaultTrainingConfig()
	cfg.Episodes = 20
	ev := mdp.Evaluate(world, mdp.DefaultHyperparameters(), cfg, []int64{1, 2}, 8, zerolog.Nop())
	p.PrintEvaluation(ev)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "seed "))
	assert.Contains(t, out, "reached the goal: ")
}

func TestColoredOutputHasEscapes(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)
	agent := mdp.NewAgent(mdp.DefaultGridWorld(), mdp.DefaultHyperparameters(), rand.New(rand.NewSource(1)))

	p.PrintValueEstimates(mdp.DefaultGridWorld(), agent.Q())
	assert.Contains(t, buf.String(), "\x1b[")
}
