package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/CodeStranger-Fred/gridq/mdp"
)

const cellWidth = 13

var arrows = [mdp.NumActions]string{"↑", "↓", "←", "→"}

type printer struct {
	w  io.Writer
	au aurora.Aurora
}

func newPrinter(w io.Writer, colors bool) *printer {
	return &printer{w: w, au: aurora.NewAurora(colors)}
}

func (p *printer) PrintGrid(world *mdp.GridWorld, agent mdp.Position) {
	p.printCells(world, func(pos mdp.Position) string {
		if pos == agent {
			return p.au.Blue(" A ").Bold().String()
		}
		return ""
	})
}

func (p *printer) PrintPolicy(world *mdp.GridWorld, q *mdp.ActionValueTable) {
	p.printCells(world, func(pos mdp.Position) string {
		if world.IsTerminal(pos) {
			return ""
		}
		return " " + arrows[q.Argmax(world.State(pos))] + " "
	})
}

func (p *printer) PrintTrajectory(world *mdp.GridWorld, traj mdp.Trajectory) {
	visited := map[mdp.Position]bool{}
	for _, pos := range traj.Positions {
		visited[pos] = true
	}
	p.printCells(world, func(pos mdp.Position) string {
		if visited[pos] && !world.IsTerminal(pos) {
			return p.au.Blue(" * ").String()
		}
		return ""
	})

	status := p.au.Yellow("did not finish")
	switch traj.End {
	case mdp.Goal:
		status = p.au.Green("reached the goal")
	case mdp.Trap:
		status = p.au.Red("fell into a trap")
	}
	fmt.Fprintf(p.w, "greedy path: %d steps, return %.0f, %s\n\n", traj.Steps(), float64(traj.Return), status)
}

// printCells draws one three-character cell per position. mark returns ""
// to fall back to the cell kind.
func (p *printer) printCells(world *mdp.GridWorld, mark func(mdp.Position) string) {
	for y := 0; y < world.Size(); y++ {
		for x := 0; x < world.Size(); x++ {
			pos := mdp.Position{X: x, Y: y}
			cell := mark(pos)
			if cell == "" {
				switch world.Cell(pos) {
				case mdp.Goal:
					cell = p.au.Green(" G ").String()
				case mdp.Trap:
					cell = p.au.Red(" T ").String()
				default:
					cell = " . "
				}
			}
			fmt.Fprint(p.w, cell)
			fmt.Fprint(p.w, p.au.White("|"))
		}
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w)
}

// PrintValueEstimates draws every Q-value as an integer around its cell, the
// greedy action highlighted. Goal and trap cells have no values to show.
func (p *printer) PrintValueEstimates(world *mdp.GridWorld, q *mdp.ActionValueTable) {
	rule := strings.Repeat("-", (cellWidth+1)*world.Size())
	for y := 0; y < world.Size(); y++ {
		var top, mid, bottom strings.Builder
		for x := 0; x < world.Size(); x++ {
			pos := mdp.Position{X: x, Y: y}
			blank := strings.Repeat(" ", cellWidth)

			switch world.Cell(pos) {
			case mdp.Goal:
				top.WriteString(blank)
				mid.WriteString(p.au.Green(center("GOAL")).String())
				bottom.WriteString(blank)
			case mdp.Trap:
				top.WriteString(blank)
				mid.WriteString(p.au.Red(center("TRAP")).String())
				bottom.WriteString(blank)
			default:
				s := world.State(pos)
				values := q.Values(s)
				best := q.Argmax(s)
				label := func(a mdp.Action) string {
					l := fmt.Sprintf("%s%-4d", arrows[a], int(values[a]))
					if a == best {
						return p.au.Cyan(l).Bold().String()
					}
					return l
				}
				top.WriteString("    " + label(mdp.Up) + "    ")
				mid.WriteString(label(mdp.Left) + "   " + label(mdp.Right))
				bottom.WriteString("    " + label(mdp.Down) + "    ")
			}
			top.WriteString("|")
			mid.WriteString("|")
			bottom.WriteString("|")
		}
		fmt.Fprintln(p.w, top.String())
		fmt.Fprintln(p.w, mid.String())
		fmt.Fprintln(p.w, bottom.String())
		fmt.Fprintln(p.w, rule)
	}
	fmt.Fprintln(p.w)
}

func (p *printer) PrintStep(step int, o mdp.Outcome) {
	reward := p.au.White(fmt.Sprintf("%+.0f", float64(o.Reward)))
	switch {
	case o.Reward == mdp.GoalReward:
		reward = p.au.Green(fmt.Sprintf("%+.0f", float64(o.Reward)))
	case o.Reward == mdp.TrapReward:
		reward = p.au.Red(fmt.Sprintf("%+.0f", float64(o.Reward)))
	}
	fmt.Fprintf(p.w, "step %2d: %v reward %s\n", step, o.Position, reward)
}

func (p *printer) PrintEvaluation(ev mdp.Evaluation) {
	for _, r := range ev.Runs {
		end := p.au.Yellow("unfinished")
		switch r.Trajectory.End {
		case mdp.Goal:
			end = p.au.Green("goal")
		case mdp.Trap:
			end = p.au.Red("trap")
		}
		fmt.Fprintf(p.w, "seed %-20d training goals %4d/%-4d greedy path %2d steps -> %s\n",
			r.Seed, r.Training.Goals, len(r.Training.Episodes), r.Trajectory.Steps(), end)
	}
	fmt.Fprintf(p.w, "\nreached the goal: %d/%d (%.0f%%)\n", ev.Successes, len(ev.Runs), 100*ev.SuccessRate())
}

func center(s string) string {
	pad := cellWidth - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
