package tui

import (
	"math"
	"strings"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// renderChartPanel renders a sparkline of the cumulative series for the
// current metric.
func (m Model) renderChartPanel(w, h int) string {
	title := "Cumulative profit"
	values := make([]float64, len(m.result.Sessions))
	for i, s := range m.result.Sessions {
		if m.metric == MetricBB {
			values[i] = s.CumAvgBBPerHour
		} else {
			values[i] = s.CumProfit
		}
	}
	if m.metric == MetricBB {
		title = "Cumulative bb/h"
	}

	width := m.cfg.ChartWidth
	if inner := w - 4; width > inner {
		width = inner
	}

	var lines []string
	lines = append(lines, panelTitleStyle.Render(title))
	if len(values) == 0 {
		lines = append(lines, dimStyle.Render("no sessions"))
		return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
	}

	lo, hi := bounds(values)
	lines = append(lines, dimStyle.Render("max "+formatSigned(hi)))
	lines = append(lines, chartStyle.Render(sparkline(values, width)))
	lines = append(lines, dimStyle.Render("min "+formatSigned(lo)))
	lines = append(lines, dimStyle.Render(m.result.Sessions[0].Date+" → "+m.result.Sessions[len(values)-1].Date))

	return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
}

// sparkline draws values as block characters, resampled to at most width
// columns. A flat series renders at mid height.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	sampled := resample(values, width)
	lo, hi := bounds(sampled)

	var b strings.Builder
	for _, v := range sampled {
		idx := len(sparkRunes) / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkRunes)-1)))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// resample picks width evenly spaced points from values, always keeping the
// last one. Series shorter than width are returned unchanged.
func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	if width == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
