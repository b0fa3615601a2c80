package mdp

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

// MovingAverage smooths xs over a trailing window. The first window-1 points
// average over what is available.
func MovingAverage(xs []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(xs))
	for i := range xs {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = floats.Sum(xs[lo:i+1]) / float64(i+1-lo)
	}
	return out
}

// PlotTraining renders the learning curve of a training run as an HTML page:
// per-episode return, its moving average and the episode length.
func PlotTraining(w io.Writer, title, subtitle string, res TrainingResult, window int) error {
	if len(res.Episodes) == 0 {
		return errors.New("no episodes to plot")
	}

	episodes := make([]string, 0, len(res.Episodes))
	returns := make([]float64, 0, len(res.Episodes))
	steps := make([]opts.LineData, 0, len(res.Episodes))
	for _, e := range res.Episodes {
		episodes = append(episodes, fmt.Sprintf("%d", e.Episode))
		returns = append(returns, float64(e.Return))
		steps = append(steps, opts.LineData{Value: e.Steps})
	}

	returnItems := make([]opts.LineData, 0, len(returns))
	for _, r := range returns {
		returnItems = append(returnItems, opts.LineData{Value: r})
	}
	avgItems := make([]opts.LineData, 0, len(returns))
	for _, r := range MovingAverage(returns, window) {
		avgItems = append(avgItems, opts.LineData{Value: r})
	}

	rewardLine := charts.NewLine()
	rewardLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "return"}),
	)
	rewardLine.SetXAxis(episodes).
		AddSeries("return", returnItems).
		AddSeries(fmt.Sprintf("return (avg %d)", window), avgItems)

	stepLine := charts.NewLine()
	stepLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "steps per episode",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "steps"}),
	)
	stepLine.SetXAxis(episodes).AddSeries("steps", steps)

	page := components.NewPage()
	page.AddCharts(rewardLine, stepLine)
	return page.Render(w)
}
