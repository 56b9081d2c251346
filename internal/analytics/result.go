package analytics

import (
	"encoding/json"
	"time"

	"github.com/nixlim/pokerlytics/internal/session"
	"github.com/nixlim/pokerlytics/internal/stats"
	"github.com/nixlim/pokerlytics/internal/streak"
	"github.com/nixlim/pokerlytics/internal/trend"
)

// ProcessedSession is one entry of the output time series. Values are kept
// unrounded; MarshalJSON rounds everything except Profit to 2 decimals.
type ProcessedSession struct {
	Date                 string
	Start                time.Time
	Profit               float64
	CumProfit            float64
	DollarsPerHour       float64
	CumAvgDollarsPerHour float64
	BBPerHour            float64
	CumAvgBBPerHour      float64

	DurationHours float64
	BigBlindSize  float64
}

type processedSessionJSON struct {
	Date                 string  `json:"date"`
	Profit               float64 `json:"profit"`
	CumProfit            float64 `json:"cum_profit"`
	DollarsPerHour       float64 `json:"$_per_hour"`
	CumAvgDollarsPerHour float64 `json:"cum_avg_$_per_hour"`
	BBPerHour            float64 `json:"bb_per_hour"`
	CumAvgBBPerHour      float64 `json:"cum_avg_bb_per_hour"`
}

func (p ProcessedSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(processedSessionJSON{
		Date:                 p.Date,
		Profit:               p.Profit,
		CumProfit:            Round(p.CumProfit, 2),
		DollarsPerHour:       Round(p.DollarsPerHour, 2),
		CumAvgDollarsPerHour: Round(p.CumAvgDollarsPerHour, 2),
		BBPerHour:            Round(p.BBPerHour, 2),
		CumAvgBBPerHour:      Round(p.CumAvgBBPerHour, 2),
	})
}

// Result is the analytics payload for a full session history.
type Result struct {
	Sessions      []ProcessedSession
	Trend         trend.Signal
	TotalProfit   float64
	TotalDuration float64
	CurrentStreak streak.Streak
	GamesPlayed   int
	WinRate       float64
	HourlyRate    float64

	// Warnings lists input accepted with a fallback. It is not serialised.
	Warnings []session.Warning
}

type resultJSON struct {
	Sessions      []ProcessedSession `json:"sessions"`
	Trend         trend.Signal       `json:"trend"`
	TotalProfit   float64            `json:"totalProfit"`
	TotalDuration float64            `json:"totalDuration"`
	CurrentStreak streak.Streak      `json:"currentStreak"`
	GamesPlayed   int                `json:"gamesPlayed"`
	WinRate       float64            `json:"winRate"`
	HourlyRate    float64            `json:"hourlyRate"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	sessions := r.Sessions
	if sessions == nil {
		sessions = []ProcessedSession{}
	}
	return json.Marshal(resultJSON{
		Sessions:      sessions,
		Trend:         r.Trend,
		TotalProfit:   Round(r.TotalProfit, 2),
		TotalDuration: r.TotalDuration,
		CurrentStreak: r.CurrentStreak,
		GamesPlayed:   r.GamesPlayed,
		WinRate:       Round(r.WinRate, 2),
		HourlyRate:    Round(r.HourlyRate, 2),
	})
}

// Round rounds v to places decimals, half to even. See stats.Round.
func Round(v float64, places int32) float64 {
	return stats.Round(v, places)
}
