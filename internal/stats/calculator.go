// Package stats computes per-session rate metrics and running aggregates
// over a chronologically ordered session history. All functions are pure
// computations with no side effects.
package stats

import (
	"errors"
	"fmt"

	"github.com/nixlim/pokerlytics/internal/session"
)

// ErrZeroBigBlind is returned when a session carries a big-blind size of
// zero and the policy is ZeroBigBlindError.
var ErrZeroBigBlind = errors.New("big blind size is zero")

// ErrNonFiniteMetric is returned when a rate or running aggregate overflows
// to an infinity or NaN.
var ErrNonFiniteMetric = errors.New("derived metric is not finite")

// Calculator computes SessionMetrics for an ordered session list.
type Calculator struct {
	defaultBigBlind float64
	zeroPolicy      ZeroBigBlindPolicy
}

// NewCalculator creates a Calculator. A non-positive defaultBigBlind falls
// back to session.DefaultBigBlind and an unknown policy to ZeroBigBlindError.
func NewCalculator(defaultBigBlind float64, zeroPolicy ZeroBigBlindPolicy) *Calculator {
	if defaultBigBlind <= 0 {
		defaultBigBlind = session.DefaultBigBlind
	}
	if !zeroPolicy.Valid() {
		zeroPolicy = ZeroBigBlindError
	}
	return &Calculator{defaultBigBlind: defaultBigBlind, zeroPolicy: zeroPolicy}
}

// Compute derives the metrics for every session. sessions must already be
// sorted by start time. It fails on a zero big-blind size under
// ZeroBigBlindError and on any metric that overflows.
func (c *Calculator) Compute(sessions []session.Session) ([]SessionMetrics, []session.Warning, error) {
	out := make([]SessionMetrics, 0, len(sessions))
	var warnings []session.Warning

	var cumProfit, cumHours, cumBB float64
	for _, s := range sessions {
		bb, warn, err := c.bigBlindSize(s)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		m := SessionMetrics{
			Session:       s,
			DurationHours: s.DurationHours(),
			BigBlindSize:  bb,
		}

		m.BBProfit = s.Profit / bb
		if m.DurationHours > 0 {
			m.DollarsPerHour = s.Profit / m.DurationHours
			m.BBPerHour = m.BBProfit / m.DurationHours
		}

		cumProfit += s.Profit
		cumHours += m.DurationHours
		cumBB += m.BBProfit

		m.CumProfit = cumProfit
		m.CumTotalHours = cumHours
		m.CumBBProfit = cumBB
		if cumHours > 0 {
			m.CumAvgDollarsPerHour = cumProfit / cumHours
			m.CumAvgBBPerHour = cumBB / cumHours
		}

		if !m.finite() {
			return nil, nil, fmt.Errorf("record %d: %w", s.Index, ErrNonFiniteMetric)
		}

		out = append(out, m)
	}

	return out, warnings, nil
}

func (m SessionMetrics) finite() bool {
	return isFinite(
		m.DurationHours, m.BBProfit, m.DollarsPerHour, m.BBPerHour,
		m.CumProfit, m.CumTotalHours, m.CumAvgDollarsPerHour,
		m.CumBBProfit, m.CumAvgBBPerHour,
	)
}

// bigBlindSize applies the zero-size policy to the session's big blind.
func (c *Calculator) bigBlindSize(s session.Session) (float64, *session.Warning, error) {
	if s.BigBlind.Size != 0 {
		return s.BigBlind.Size, nil, nil
	}
	if c.zeroPolicy == ZeroBigBlindDefault {
		return c.defaultBigBlind, &session.Warning{
			Index:   s.Index,
			Field:   "additional_info.bb",
			Message: fmt.Sprintf("zero big blind, using default %g", c.defaultBigBlind),
		}, nil
	}
	return 0, nil, fmt.Errorf("record %d: %w", s.Index, ErrZeroBigBlind)
}

// ComputeTotals aggregates whole-history totals from computed metrics.
func ComputeTotals(metrics []SessionMetrics) Totals {
	var t Totals
	for _, m := range metrics {
		t.Profit += m.Session.Profit
		t.Duration += m.DurationHours
		if m.Session.Profit >= 0 {
			t.Wins++
		}
	}
	t.GamesPlayed = len(metrics)

	if t.GamesPlayed > 0 {
		t.WinRate = float64(t.Wins) / float64(t.GamesPlayed) * 100
	}
	if t.Duration > 0 {
		t.HourlyRate = t.Profit / t.Duration
	}
	return t
}

// Profits returns the profit sequence of metrics in order.
func Profits(metrics []SessionMetrics) []float64 {
	out := make([]float64, len(metrics))
	for i, m := range metrics {
		out[i] = m.Session.Profit
	}
	return out
}
