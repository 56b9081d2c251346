package stats

import "github.com/nixlim/pokerlytics/internal/session"

// SessionMetrics holds the derived metrics for one session, including the
// running aggregates up to and including it. Values are unrounded.
type SessionMetrics struct {
	Session       session.Session
	DurationHours float64
	BigBlindSize  float64

	DollarsPerHour float64
	BBPerHour      float64
	BBProfit       float64

	CumProfit            float64
	CumTotalHours        float64
	CumAvgDollarsPerHour float64
	CumBBProfit          float64
	CumAvgBBPerHour      float64
}

// Totals holds whole-history aggregates.
type Totals struct {
	Profit      float64
	Duration    float64 // hours
	GamesPlayed int
	Wins        int
	WinRate     float64 // percent of sessions with profit >= 0
	HourlyRate  float64 // Profit / Duration
}

// ZeroBigBlindPolicy selects how a parsed big-blind size of zero is handled.
type ZeroBigBlindPolicy string

const (
	// ZeroBigBlindError rejects the run with ErrZeroBigBlind.
	ZeroBigBlindError ZeroBigBlindPolicy = "error"
	// ZeroBigBlindDefault substitutes the default size and records a warning.
	ZeroBigBlindDefault ZeroBigBlindPolicy = "default"
)

// Valid reports whether p is a known policy.
func (p ZeroBigBlindPolicy) Valid() bool {
	return p == ZeroBigBlindError || p == ZeroBigBlindDefault
}
