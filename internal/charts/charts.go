// Package charts renders interactive deck charts as self-contained HTML.
package charts

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/inkwellhq/lorcana-companion/internal/deck"
)

// ChartConfig holds chart rendering options.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
}

// DefaultChartConfig returns the default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
	}
}

// inkColors maps ink names to their conventional display colors.
var inkColors = map[string]string{
	"Amber":    "#F4B300",
	"Amethyst": "#81397D",
	"Emerald":  "#298A42",
	"Ruby":     "#D3252F",
	"Sapphire": "#0089C3",
	"Steel":    "#9FA9B3",
}

// RenderCostCurve writes a bar chart of the deck's copy count per ink cost.
func RenderCostCurve(w io.Writer, d *deck.Deck, config ChartConfig) error {
	summary := deck.Summarize(d)

	costs := make([]int, 0, len(summary.CostCurve))
	for cost := range summary.CostCurve {
		costs = append(costs, cost)
	}
	sort.Ints(costs)

	labels := make([]string, len(costs))
	data := make([]opts.BarData, len(costs))
	for i, cost := range costs {
		labels[i] = fmt.Sprintf("%d", cost)
		data[i] = opts.BarData{Value: summary.CostCurve[cost]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("Copies", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render cost curve: %w", err)
	}
	return nil
}

// RenderColorDistribution writes a pie chart of the deck's copies per ink
// color. Dual-ink cards count toward both colors.
func RenderColorDistribution(w io.Writer, d *deck.Deck, config ChartConfig) error {
	summary := deck.Summarize(d)

	colors := make([]string, 0, len(summary.Colors))
	for color := range summary.Colors {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	data := make([]opts.PieData, len(colors))
	for i, color := range colors {
		data[i] = opts.PieData{
			Name:  color,
			Value: summary.Colors[color],
		}
		if hex, ok := inkColors[color]; ok {
			data[i].ItemStyle = &opts.ItemStyle{Color: hex}
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	pie.AddSeries("Ink", data)

	if err := pie.Render(w); err != nil {
		return fmt.Errorf("failed to render color distribution: %w", err)
	}
	return nil
}
