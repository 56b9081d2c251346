package stats

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nixlim/pokerlytics/internal/session"
)

var base = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

// makeSession builds a session starting day days after base.
func makeSession(day int, hours, profit, bb float64) session.Session {
	start := base.AddDate(0, 0, day)
	return session.Session{
		Index:    day,
		Start:    start,
		End:      start.Add(time.Duration(hours * float64(time.Hour))),
		HasEnd:   true,
		Profit:   profit,
		BigBlind: session.BigBlind{Size: bb, Source: session.BigBlindParsed},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_SessionRates(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, warnings, err := calc.Compute([]session.Session{
		makeSession(0, 4, 100, 0.5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	m := metrics[0]
	if !approx(m.DurationHours, 4) {
		t.Errorf("expected DurationHours=4, got %f", m.DurationHours)
	}
	if !approx(m.DollarsPerHour, 25) {
		t.Errorf("expected DollarsPerHour=25, got %f", m.DollarsPerHour)
	}
	// (100 / 0.5) / 4 = 50
	if !approx(m.BBPerHour, 50) {
		t.Errorf("expected BBPerHour=50, got %f", m.BBPerHour)
	}
	if !approx(m.BBProfit, 200) {
		t.Errorf("expected BBProfit=200, got %f", m.BBProfit)
	}
}

func TestCompute_RunningAggregates(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, _, err := calc.Compute([]session.Session{
		makeSession(0, 2, 100, 1),
		makeSession(1, 3, -50, 0.5),
		makeSession(2, 5, 30, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCumProfit := []float64{100, 50, 80}
	wantCumHours := []float64{2, 5, 10}
	wantCumBB := []float64{100, 0, 30}
	for i, m := range metrics {
		if !approx(m.CumProfit, wantCumProfit[i]) {
			t.Errorf("session %d: expected CumProfit=%f, got %f", i, wantCumProfit[i], m.CumProfit)
		}
		if !approx(m.CumTotalHours, wantCumHours[i]) {
			t.Errorf("session %d: expected CumTotalHours=%f, got %f", i, wantCumHours[i], m.CumTotalHours)
		}
		if !approx(m.CumBBProfit, wantCumBB[i]) {
			t.Errorf("session %d: expected CumBBProfit=%f, got %f", i, wantCumBB[i], m.CumBBProfit)
		}
		if !approx(m.CumAvgDollarsPerHour, wantCumProfit[i]/wantCumHours[i]) {
			t.Errorf("session %d: unexpected CumAvgDollarsPerHour %f", i, m.CumAvgDollarsPerHour)
		}
		if !approx(m.CumAvgBBPerHour, wantCumBB[i]/wantCumHours[i]) {
			t.Errorf("session %d: unexpected CumAvgBBPerHour %f", i, m.CumAvgBBPerHour)
		}
	}
}

func TestCompute_ZeroDuration(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, _, err := calc.Compute([]session.Session{
		makeSession(0, 2, 40, 1),
		makeSession(1, 0, 60, 1),
		makeSession(2, 2, 0, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero := metrics[1]
	if zero.DollarsPerHour != 0 || zero.BBPerHour != 0 {
		t.Errorf("expected zero rates for zero duration, got %f and %f", zero.DollarsPerHour, zero.BBPerHour)
	}
	if !approx(zero.CumTotalHours, 2) {
		t.Errorf("expected CumTotalHours to stay at 2, got %f", zero.CumTotalHours)
	}
	// Profit still accumulates: 100 / 2h.
	if !approx(zero.CumAvgDollarsPerHour, 50) {
		t.Errorf("expected CumAvgDollarsPerHour=50, got %f", zero.CumAvgDollarsPerHour)
	}
	if !approx(metrics[2].CumAvgDollarsPerHour, 25) {
		t.Errorf("expected CumAvgDollarsPerHour=25, got %f", metrics[2].CumAvgDollarsPerHour)
	}
}

func TestCompute_AllZeroDurations(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, _, err := calc.Compute([]session.Session{
		makeSession(0, 0, 40, 1),
		{Index: 1, Start: base.AddDate(0, 0, 1), Profit: -10, BigBlind: session.BigBlind{Size: 0.2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, m := range metrics {
		if m.CumAvgDollarsPerHour != 0 || m.CumAvgBBPerHour != 0 {
			t.Errorf("session %d: expected zero cumulative averages, got %f and %f", i, m.CumAvgDollarsPerHour, m.CumAvgBBPerHour)
		}
	}
}

func TestCompute_NegativeDuration(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, _, err := calc.Compute([]session.Session{
		makeSession(0, 4, 40, 1),
		makeSession(1, -1, 10, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics[1].DollarsPerHour != 0 || metrics[1].BBPerHour != 0 {
		t.Errorf("expected zero rates for negative duration")
	}
	if !approx(metrics[1].CumTotalHours, 3) {
		t.Errorf("expected CumTotalHours=3, got %f", metrics[1].CumTotalHours)
	}
}

func TestCompute_ZeroBigBlind(t *testing.T) {
	sessions := []session.Session{
		makeSession(0, 2, 40, 1),
		makeSession(1, 2, 10, 0),
	}

	t.Run("error policy", func(t *testing.T) {
		calc := NewCalculator(0.2, ZeroBigBlindError)
		_, _, err := calc.Compute(sessions)
		if !errors.Is(err, ErrZeroBigBlind) {
			t.Fatalf("expected ErrZeroBigBlind, got %v", err)
		}
	})

	t.Run("default policy", func(t *testing.T) {
		calc := NewCalculator(0.25, ZeroBigBlindDefault)
		metrics, warnings, err := calc.Compute(sessions)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if metrics[1].BigBlindSize != 0.25 {
			t.Errorf("expected BigBlindSize=0.25, got %f", metrics[1].BigBlindSize)
		}
		// (10 / 0.25) / 2 = 20
		if !approx(metrics[1].BBPerHour, 20) {
			t.Errorf("expected BBPerHour=20, got %f", metrics[1].BBPerHour)
		}
		if len(warnings) != 1 || warnings[0].Index != 1 {
			t.Errorf("expected one warning for record 1, got %v", warnings)
		}
	})

	t.Run("unknown policy rejects", func(t *testing.T) {
		calc := NewCalculator(0.2, ZeroBigBlindPolicy("ignore"))
		_, _, err := calc.Compute(sessions)
		if !errors.Is(err, ErrZeroBigBlind) {
			t.Fatalf("expected ErrZeroBigBlind, got %v", err)
		}
	})
}

func TestCompute_Empty(t *testing.T) {
	calc := NewCalculator(0, "")
	metrics, warnings, err := calc.Compute(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics == nil || len(metrics) != 0 {
		t.Errorf("expected empty non-nil metrics, got %v", metrics)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestComputeTotals(t *testing.T) {
	calc := NewCalculator(0.2, ZeroBigBlindError)
	metrics, _, err := calc.Compute([]session.Session{
		makeSession(0, 2, 100, 1),
		makeSession(1, 3, -50, 1),
		makeSession(2, 5, 0, 1),
		makeSession(3, 2, 30, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := ComputeTotals(metrics)
	if !approx(totals.Profit, 80) {
		t.Errorf("expected Profit=80, got %f", totals.Profit)
	}
	if !approx(totals.Duration, 12) {
		t.Errorf("expected Duration=12, got %f", totals.Duration)
	}
	if totals.GamesPlayed != 4 {
		t.Errorf("expected GamesPlayed=4, got %d", totals.GamesPlayed)
	}
	// Break-even counts as a win.
	if totals.Wins != 3 || !approx(totals.WinRate, 75) {
		t.Errorf("expected 3 wins and WinRate=75, got %d and %f", totals.Wins, totals.WinRate)
	}
	if !approx(totals.HourlyRate, 80.0/12) {
		t.Errorf("expected HourlyRate=%f, got %f", 80.0/12, totals.HourlyRate)
	}
	if !approx(totals.Profit, metrics[len(metrics)-1].CumProfit) {
		t.Errorf("expected Profit to match last CumProfit")
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals != (Totals{}) {
		t.Errorf("expected zero Totals, got %+v", totals)
	}
}

func TestProfits(t *testing.T) {
	got := Profits([]SessionMetrics{
		{Session: session.Session{Profit: 1}},
		{Session: session.Session{Profit: -2}},
	})
	if len(got) != 2 || got[0] != 1 || got[1] != -2 {
		t.Errorf("expected [1 -2], got %v", got)
	}
}

func TestCompute_NonFiniteMetric(t *testing.T) {
	tests := []struct {
		name     string
		sessions []session.Session
		index    int
	}{
		{
			name:     "subnormal big blind",
			sessions: []session.Session{makeSession(0, 2, 100, 1e-310)},
			index:    0,
		},
		{
			name: "cumulative profit overflow",
			sessions: []session.Session{
				makeSession(0, 2, 1e308, 1),
				makeSession(1, 2, 1e308, 1),
			},
			index: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(0.2, ZeroBigBlindError)
			metrics, _, err := calc.Compute(tt.sessions)
			if !errors.Is(err, ErrNonFiniteMetric) {
				t.Fatalf("expected ErrNonFiniteMetric, got %v", err)
			}
			if metrics != nil {
				t.Errorf("expected no metrics, got %d", len(metrics))
			}
			want := fmt.Sprintf("record %d:", tt.index)
			if !strings.HasPrefix(err.Error(), want) {
				t.Errorf("expected error to start with %q, got %q", want, err.Error())
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int32
		want   float64
	}{
		{1.234, 2, 1.23},
		{2.675, 2, 2.67},   // stored as 2.67499999...
		{0.35, 1, 0.3},     // stored as 0.34999999...
		{-1.235, 2, -1.24}, // stored as -1.23500000...1
		{0.125, 2, 0.12},   // exact tie, to even
		{0.375, 2, 0.38},   // exact tie, to even
		{2.5, 0, 2},
		{-0.001, 2, 0},
		{1e-310, 2, 0},
	}

	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.v, tt.places, tt.want, got)
		}
	}
}

func TestRound_NonFinite(t *testing.T) {
	if got := Round(math.Inf(1), 2); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf unchanged, got %v", got)
	}
	if got := Round(math.Inf(-1), 2); !math.IsInf(got, -1) {
		t.Errorf("expected -Inf unchanged, got %v", got)
	}
	if got := Round(math.NaN(), 2); !math.IsNaN(got) {
		t.Errorf("expected NaN unchanged, got %v", got)
	}
}
