package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/pokerlytics/internal/streak"
	"github.com/nixlim/pokerlytics/internal/trend"
)

// renderSummaryPanel renders the totals, trend, and current streak.
func (m Model) renderSummaryPanel(w, h int) string {
	r := m.result

	var lines []string
	lines = append(lines, panelTitleStyle.Render("Summary"))
	lines = append(lines, "Total     "+styleMoney(r.TotalProfit, formatMoney(r.TotalProfit)))
	lines = append(lines, fmt.Sprintf("Sessions  %d  (%s h)", r.GamesPlayed, formatHours(r.TotalDuration)))
	lines = append(lines, "Hourly    "+m.rateLine())
	lines = append(lines, fmt.Sprintf("Win rate  %.1f%%", r.WinRate))
	lines = append(lines, "Trend     "+renderTrend(r.Trend))
	lines = append(lines, "Streak    "+m.renderStreak(r.CurrentStreak))

	return renderBorderedPanel(strings.Join(lines, "\n"), w, h)
}

// rateLine reports the whole-history rate for the charted metric.
func (m Model) rateLine() string {
	if m.metric == MetricBB {
		var bb float64
		if n := len(m.result.Sessions); n > 0 {
			bb = m.result.Sessions[n-1].CumAvgBBPerHour
		}
		return styleMoney(bb, formatSigned(bb)+" bb/h")
	}
	return styleMoney(m.result.HourlyRate, formatMoney(m.result.HourlyRate)+"/h")
}

func renderTrend(t trend.Signal) string {
	arrow := "▲"
	style := profitStyle
	if !t.IsPositive {
		arrow = "▼"
		style = lossStyle
	}

	label := fmt.Sprintf("%.1f%%", t.Value)
	if t.Method == trend.MethodSlope {
		label = fmt.Sprintf("%.1f/session", t.Value)
	}
	return style.Render(arrow+" "+label) + dimStyle.Render(" ("+t.Method.String()+")")
}

func (m Model) renderStreak(s streak.Streak) string {
	if s.Kind == streak.None {
		return dimStyle.Render("none")
	}

	text := fmt.Sprintf("%d %s", s.Count, s.Kind)
	if s.Kind == streak.Loss {
		if s.Count >= m.cfg.LossStreakWarning && m.cfg.LossStreakWarning > 0 {
			return warnStyle.Render(" " + text + " ")
		}
		return lossStyle.Render(text)
	}
	return profitStyle.Render(text)
}

func styleMoney(v float64, text string) string {
	var style lipgloss.Style
	switch {
	case v > 0:
		style = profitStyle
	case v < 0:
		style = lossStyle
	default:
		return text
	}
	return style.Render(text)
}
