package mdp

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

type SeedRun struct {
	Seed       int64
	Training   TrainingResult
	Trajectory Trajectory
}

type Evaluation struct {
	Runs      []SeedRun
	Successes int
}

func (e Evaluation) SuccessRate() float64 {
	if len(e.Runs) == 0 {
		return 0
	}
	return float64(e.Successes) / float64(len(e.Runs))
}

// Evaluate trains a fresh agent per seed and checks whether its greedy
// rollout from cfg.Start reaches the goal within rolloutSteps. Every run owns
// its own table and random source; env is shared read-only.
func Evaluate(env Environment, params Hyperparameters, cfg TrainingConfig, seeds []int64, rolloutSteps int, logger zerolog.Logger) Evaluation {
	runs := make([]SeedRun, len(seeds))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, seed int64) {
			defer wg.Done()
			defer func() { <-sem }()

			runLogger := logger.With().Int64("seed", seed).Logger()
			agent := NewAgent(env, params, rand.New(rand.NewSource(seed)))
			training := Train(agent, cfg, runLogger)
			runs[i] = SeedRun{
				Seed:       seed,
				Training:   training,
				Trajectory: Rollout(env, agent.Greedy(), cfg.Start, rolloutSteps),
			}
		}(i, seed)
	}
	wg.Wait()

	ev := Evaluation{Runs: runs}
	for _, r := range runs {
		if r.Trajectory.ReachedGoal() {
			ev.Successes++
		}
	}
	logger.Info().
		Int("runs", len(runs)).
		Int("successes", ev.Successes).
		Float64("success_rate", ev.SuccessRate()).
		Msg("evaluation finished")
	return ev
}
