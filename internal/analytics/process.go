// Package analytics turns a raw session history into the dashboard payload:
// a per-session time series, a trend signal, totals, and the current streak.
// Process runs the whole pipeline once over its arguments and keeps no state.
package analytics

import (
	"fmt"

	"github.com/nixlim/pokerlytics/internal/logging"
	"github.com/nixlim/pokerlytics/internal/session"
	"github.com/nixlim/pokerlytics/internal/stats"
	"github.com/nixlim/pokerlytics/internal/streak"
	"github.com/nixlim/pokerlytics/internal/trend"
)

// Options configures a Process run.
type Options struct {
	DefaultBigBlind float64
	ZeroBigBlind    stats.ZeroBigBlindPolicy
	Trend           trend.Config
	DateLayout      string // Go layout for ProcessedSession.Date

	// Debug receives every normalized session and warning. Nil disables tracing.
	Debug logging.DebugLogger
}

// DefaultOptions returns the standard analysis settings.
func DefaultOptions() Options {
	return Options{
		DefaultBigBlind: session.DefaultBigBlind,
		ZeroBigBlind:    stats.ZeroBigBlindError,
		Trend:           trend.DefaultConfig(),
		DateLayout:      "2006-01-02",
	}
}

// Process normalizes records, computes per-session metrics, and assembles
// the Result. An empty history yields the zero-valued Result.
func Process(records []session.Record, opts Options) (*Result, error) {
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultOptions().DateLayout
	}
	debug := opts.Debug
	if debug == nil {
		debug = logging.NopLogger{}
	}

	sessions, warnings, err := session.Normalize(records, session.Options{
		DefaultBigBlind: opts.DefaultBigBlind,
	})
	if err != nil {
		return nil, fmt.Errorf("normalizing sessions: %w", err)
	}

	calc := stats.NewCalculator(opts.DefaultBigBlind, opts.ZeroBigBlind)
	metrics, calcWarnings, err := calc.Compute(sessions)
	if err != nil {
		return nil, fmt.Errorf("computing session metrics: %w", err)
	}
	warnings = append(warnings, calcWarnings...)

	for _, s := range sessions {
		debug.LogSession(s)
	}
	for _, w := range warnings {
		debug.LogWarning(w)
	}

	totals := stats.ComputeTotals(metrics)
	profits := stats.Profits(metrics)

	result := &Result{
		Sessions:      make([]ProcessedSession, 0, len(metrics)),
		Trend:         trend.Estimate(profits, opts.Trend),
		TotalProfit:   totals.Profit,
		TotalDuration: totals.Duration,
		CurrentStreak: streak.Detect(profits),
		GamesPlayed:   totals.GamesPlayed,
		WinRate:       totals.WinRate,
		HourlyRate:    totals.HourlyRate,
		Warnings:      warnings,
	}

	for _, m := range metrics {
		result.Sessions = append(result.Sessions, ProcessedSession{
			Date:                 m.Session.Start.Format(opts.DateLayout),
			Start:                m.Session.Start,
			Profit:               m.Session.Profit,
			CumProfit:            m.CumProfit,
			DollarsPerHour:       m.DollarsPerHour,
			CumAvgDollarsPerHour: m.CumAvgDollarsPerHour,
			BBPerHour:            m.BBPerHour,
			CumAvgBBPerHour:      m.CumAvgBBPerHour,
			DurationHours:        m.DurationHours,
			BigBlindSize:         m.BigBlindSize,
		})
	}

	return result, nil
}
