package complexity

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	chartBg     = "#0d1117"
	textColor   = "#c9d1d9"
	mutedColor  = "#8b949e"
)

// NewChart builds the growth line chart with one series per class. The
// subtitle marks the selected n.
func NewChart(n int) (*charts.Line, error) {
	if n < 1 || n > MaxN {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrBadN, n, MaxN)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: chartBg,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         "Growth of common complexity classes",
			Subtitle:      fmt.Sprintf("operations for n = 1..%d, clipped at %d+ (selected n = %d)", MaxN, MaxOps, n),
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: textColor},
			SubtitleStyle: &opts.TextStyle{Color: mutedColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "10%",
			Left:      "center",
			TextStyle: &opts.TextStyle{Color: mutedColor},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n (input size)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "operations", Max: MaxOps}),
	)

	labels := make([]string, MaxN)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(labels)

	for _, c := range Classes() {
		card, _ := CardFor(c)
		values := Series(c)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		width := 2
		if i := n - 1; values[i] >= MaxOps {
			width = 1
		}
		line.AddSeries(string(c), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: card.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: float32(width)}),
		)
	}

	return line, nil
}

// RenderChart writes the chart as a standalone HTML page.
func RenderChart(w io.Writer, n int) error {
	line, err := NewChart(n)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("complexity: render chart: %w", err)
	}

	return nil
}
