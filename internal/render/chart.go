package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/finchat/internal/models"
)

// eighths are the partial block glyphs, one per eighth of a cell
var eighths = []rune("▁▂▃▄▅▆▇█")

// ChartOptions sizes and colors a price chart
type ChartOptions struct {
	Width  int // total width including the price axis
	Height int // plot rows
	Theme  TUITheme
	Color  bool
}

// DefaultChartOptions returns an 8-row chart at 60 columns in the active theme
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:  60,
		Height: 8,
		Theme:  GetTUITheme(),
		Color:  true,
	}
}

// ChartStats summarizes a series for the chart caption
type ChartStats struct {
	First, Last float64
	Min, Max    float64
	Change      float64
	ChangePct   float64
}

// Up reports whether the series closed at or above where it started
func (s ChartStats) Up() bool {
	return s.Change >= 0
}

// Stats computes first/last/min/max over a non-empty series
func Stats(series []models.PricePoint) ChartStats {
	if len(series) == 0 {
		return ChartStats{}
	}
	s := ChartStats{
		First: series[0].Price,
		Last:  series[len(series)-1].Price,
		Min:   series[0].Price,
		Max:   series[0].Price,
	}
	for _, p := range series[1:] {
		s.Min = math.Min(s.Min, p.Price)
		s.Max = math.Max(s.Max, p.Price)
	}
	s.Change = s.Last - s.First
	if s.First != 0 {
		s.ChangePct = s.Change / s.First * 100
	}
	return s
}

// Chart draws the series as a block area chart, oldest month on the left.
// It returns "" for a nil or empty payload.
func Chart(chart *models.ChartPayload, opts ChartOptions) string {
	if chart == nil || len(chart.Series) == 0 {
		return ""
	}
	if opts.Height < 1 {
		opts.Height = 1
	}

	series := chart.Series
	stats := Stats(series)

	maxLabel := fmt.Sprintf("%.2f", stats.Max)
	minLabel := fmt.Sprintf("%.2f", stats.Min)
	labelWidth := max(len(maxLabel), len(minLabel))

	// label, space, axis glyph
	plotWidth := opts.Width - labelWidth - 2
	colWidth := plotWidth / len(series)
	if colWidth < 1 {
		colWidth = 1
	}

	levels := scaleLevels(series, stats, opts.Height*len(eighths))

	barStyle := lipgloss.NewStyle()
	dimStyle := lipgloss.NewStyle()
	if opts.Color {
		barStyle = barStyle.Foreground(opts.Theme.Direction(stats.Up()))
		dimStyle = dimStyle.Foreground(opts.Theme.TextDim)
	}

	var sb strings.Builder
	sb.WriteString(caption(chart.Symbol, len(series), stats))
	sb.WriteString("\n")

	for row := opts.Height - 1; row >= 0; row-- {
		label := strings.Repeat(" ", labelWidth)
		axis := "│"
		switch row {
		case opts.Height - 1:
			label = fmt.Sprintf("%*s", labelWidth, maxLabel)
			axis = "┤"
		case 0:
			label = fmt.Sprintf("%*s", labelWidth, minLabel)
			axis = "┤"
		}

		var bars strings.Builder
		base := row * len(eighths)
		for _, level := range levels {
			bars.WriteString(strings.Repeat(string(cell(level-base)), colWidth))
		}

		sb.WriteString(dimStyle.Render(label + " " + axis))
		sb.WriteString(barStyle.Render(bars.String()))
		sb.WriteString("\n")
	}

	plotCols := colWidth * len(series)
	sb.WriteString(dimStyle.Render(strings.Repeat(" ", labelWidth+1) + "└" + strings.Repeat("─", plotCols)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat(" ", labelWidth+2) + periodAxis(series, plotCols)))

	return sb.String()
}

// scaleLevels maps each price to 1..steps. The minimum keeps one step so
// every month stays visible; a flat series sits at half height.
func scaleLevels(series []models.PricePoint, stats ChartStats, steps int) []int {
	levels := make([]int, len(series))
	span := stats.Max - stats.Min
	for i, p := range series {
		if span == 0 {
			levels[i] = (steps + 1) / 2
			continue
		}
		levels[i] = 1 + int(math.Round((p.Price-stats.Min)/span*float64(steps-1)))
	}
	return levels
}

// cell picks the glyph for the part of a column inside one row
func cell(fill int) rune {
	switch {
	case fill <= 0:
		return ' '
	case fill >= len(eighths):
		return eighths[len(eighths)-1]
	default:
		return eighths[fill-1]
	}
}

func caption(symbol string, months int, s ChartStats) string {
	sign := "+"
	if !s.Up() {
		sign = ""
	}
	return fmt.Sprintf("%s · %d-month close · %s%.2f (%s%.2f%%)",
		symbol, months, sign, s.Change, sign, s.ChangePct)
}

// periodAxis puts the first period on the left and the last on the right
func periodAxis(series []models.PricePoint, width int) string {
	first := series[0].Period
	if len(series) == 1 {
		return first
	}
	last := series[len(series)-1].Period
	gap := width - len(first) - len(last)
	if gap < 1 {
		return first + " " + last
	}
	return first + strings.Repeat(" ", gap) + last
}

// Sparkline renders the series on a single line
func Sparkline(series []models.PricePoint) string {
	if len(series) == 0 {
		return ""
	}
	levels := scaleLevels(series, Stats(series), len(eighths))
	var sb strings.Builder
	for _, level := range levels {
		sb.WriteRune(cell(level))
	}
	return sb.String()
}

// Table lists the series one month per line, for output that is not a terminal
func Table(chart *models.ChartPayload) string {
	if chart == nil || len(chart.Series) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s monthly close\n", chart.Symbol)
	for _, p := range chart.Series {
		fmt.Fprintf(&sb, "%s  %10.2f\n", p.Period, p.Price)
	}
	return strings.TrimRight(sb.String(), "\n")
}
