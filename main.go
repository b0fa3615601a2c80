package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/gridq/config"
	"github.com/CodeStranger-Fred/gridq/mdp"
)

var (
	cfg        *config.Config
	cfgFile    string
	logger     zerolog.Logger
	runID      string
	activeSeed int64
)

var rootCmd = &cobra.Command{
	Use:   "gridq",
	Short: "Tabular Q-learning on a 5x5 grid with traps",
	Long: `gridq trains an epsilon-greedy Q-learning agent to walk from the top-left
corner of a 5x5 grid to the goal in the bottom-right corner without
stepping on a trap, then shows what it learned.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train an agent and print its values, policy and greedy path",
	RunE:  runTrain,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Train an agent, then animate it walking the grid",
	RunE:  runPlay,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train one agent per seed and report how many greedy paths reach the goal",
	RunE:  runEvaluate,
}

func init() {
	d := config.Default()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	pf.Int("episodes", d.Episodes, "Training episodes")
	pf.Float64("alpha", d.Alpha, "Learning rate")
	pf.Float64("gamma", d.Gamma, "Discount factor")
	pf.Float64("epsilon", d.Epsilon, "Exploration rate")
	pf.Int64("seed", d.Seed, "Random seed (0 picks one from the clock)")
	pf.Int("max-steps", d.MaxSteps, "Step cap per episode (0 for none)")
	pf.Int("rollout-steps", d.RolloutSteps, "Step budget for the greedy path")
	pf.Bool("no-color", d.NoColor, "Disable coloured output")
	pf.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	pf.Int("log-every", d.LogEvery, "Log training progress every N episodes (0 disables)")

	trainCmd.Flags().String("chart", d.ChartPath, "Write the learning curve to this HTML file")
	trainCmd.Flags().Int("chart-window", d.ChartWindow, "Moving average window for the learning curve")
	trainCmd.Flags().String("serve", d.ServeAddr, "Serve the chart directory on this address, e.g. localhost:8089")

	playCmd.Flags().Duration("interval", d.PlaybackInterval, "Delay between playback steps")
	playCmd.Flags().Bool("greedy", d.Greedy, "Play back without exploration")

	evaluateCmd.Flags().Int("seeds", d.Seeds, "Number of seeds to train")

	rootCmd.AddCommand(trainCmd, playCmd, evaluateCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v := config.NewViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	runID = uuid.NewString()
	logger, err = newLogger(os.Stderr, cfg.LogLevel, !cfg.NoColor)
	if err != nil {
		return err
	}
	logger = logger.With().Str("run_id", runID).Logger()

	activeSeed = cfg.Seed
	if activeSeed == 0 {
		activeSeed = time.Now().UnixNano()
	}
	return nil
}

func train() (*mdp.GridWorld, *mdp.Agent, mdp.TrainingResult) {
	world := mdp.DefaultGridWorld()
	agent := mdp.NewAgent(world, cfg.Hyperparameters(), rand.New(rand.NewSource(activeSeed)))

	logger.Info().
		Int64("seed", activeSeed).
		Int("episodes", cfg.Episodes).
		Float64("alpha", cfg.Alpha).
		Float64("gamma", cfg.Gamma).
		Float64("epsilon", cfg.Epsilon).
		Msg("training started")
	res := mdp.Train(agent, cfg.Training(), logger)
	return world, agent, res
}

func runTrain(cmd *cobra.Command, args []string) error {
	world, agent, res := train()

	p := newPrinter(cmd.OutOrStdout(), !cfg.NoColor)
	p.PrintValueEstimates(world, agent.Q())
	p.PrintPolicy(world, agent.Q())

	traj := mdp.Rollout(world, agent.Greedy(), cfg.Training().Start, cfg.RolloutSteps)
	p.PrintTrajectory(world, traj)
	logger.Info().
		Bool("reached_goal", traj.ReachedGoal()).
		Int("steps", traj.Steps()).
		Float64("return", float64(traj.Return)).
		Msg("greedy rollout")

	if cfg.ChartPath == "" {
		return nil
	}
	if err := writeChart(cfg.ChartPath, runID, res, cfg.ChartWindow); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.ChartPath).Msg("learning curve written")

	if cfg.ServeAddr == "" {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveCharts(ctx, chartDir(cfg.ChartPath), cfg.ServeAddr, logger)
}

func runPlay(cmd *cobra.Command, args []string) error {
	world, agent, _ := train()
	if cfg.Greedy {
		agent.SetEpsilon(0)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newPrinter(cmd.OutOrStdout(), !cfg.NoColor)
	pb := mdp.NewPlayback(agent, cfg.Training().Start)
	p.PrintGrid(world, pb.Position())

	err := runPlayback(ctx, pb, cfg.PlaybackInterval, cfg.MaxSteps, func(step int, o mdp.Outcome) {
		p.PrintStep(step, o)
		p.PrintGrid(world, o.Position)
	})
	if err != nil {
		logger.Info().Msg("playback interrupted")
		return nil
	}
	logger.Info().
		Str("position", pb.Position().String()).
		Str("cell", world.Cell(pb.Position()).String()).
		Msg("playback finished")
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	seeds := make([]int64, cfg.Seeds)
	for i := range seeds {
		seeds[i] = activeSeed + int64(i)
	}

	ev := mdp.Evaluate(mdp.DefaultGridWorld(), cfg.Hyperparameters(), cfg.Training(), seeds, cfg.RolloutSteps, logger)

	p := newPrinter(cmd.OutOrStdout(), !cfg.NoColor)
	p.PrintEvaluation(ev)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
