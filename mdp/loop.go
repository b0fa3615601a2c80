package mdp

import (
	"fmt"

	"github.com/rs/zerolog"
)

type EpisodeStats struct {
	Episode int
	Steps   int
	Return  Reward
	// End is the cell the episode finished on; Empty means it was truncated.
	End Cell
}

type TrainingConfig struct {
	Episodes int
	Start    Position
	// MaxSteps caps each episode. Zero runs every episode to a terminal cell.
	MaxSteps int
	LogEvery int
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Episodes: 1000,
		Start:    Position{X: 0, Y: 0},
		LogEvery: 100,
	}
}

func (c TrainingConfig) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("episodes must not be negative, got %d", c.Episodes)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log interval must not be negative, got %d", c.LogEvery)
	}
	return nil
}

type TrainingResult struct {
	Episodes  []EpisodeStats
	Goals     int
	Traps     int
	Truncated int
}

func (r TrainingResult) SuccessRate() float64 {
	if len(r.Episodes) == 0 {
		return 0
	}
	return float64(r.Goals) / float64(len(r.Episodes))
}

// RunEpisode plays one episode from start, updating the table after every
// step.
func (a *Agent) RunEpisode(start Position, maxSteps int) EpisodeStats {
	var stats EpisodeStats
	p := start
	for maxSteps <= 0 || stats.Steps < maxSteps {
		act := a.ChooseAction(p)
		o := a.env.Step(p, act)
		a.Learn(p, act, o)

		stats.Steps++
		stats.Return += o.Reward
		p = o.Position
		if o.Done {
			stats.End = a.env.Cell(p)
			break
		}
	}
	return stats
}

// Train runs cfg.Episodes episodes back to back. There is no early stopping.
func Train(agent *Agent, cfg TrainingConfig, logger zerolog.Logger) TrainingResult {
	res := TrainingResult{Episodes: make([]EpisodeStats, 0, cfg.Episodes)}

	for ep := 0; ep < cfg.Episodes; ep++ {
		stats := agent.RunEpisode(cfg.Start, cfg.MaxSteps)
		stats.Episode = ep + 1
		res.Episodes = append(res.Episodes, stats)

		switch stats.End {
		case Goal:
			res.Goals++
		case Trap:
			res.Traps++
		default:
			res.Truncated++
		}

		if cfg.LogEvery > 0 && stats.Episode%cfg.LogEvery == 0 {
			logger.Debug().
				Int("episode", stats.Episode).
				Int("steps", stats.Steps).
				Float64("return", float64(stats.Return)).
				Int("goals", res.Goals).
				Int("traps", res.Traps).
				Msg("training progress")
		}
	}

	logger.Info().
		Int("episodes", len(res.Episodes)).
		Int("goals", res.Goals).
		Int("traps", res.Traps).
		Int("truncated", res.Truncated).
		Msg("training finished")
	return res
}
