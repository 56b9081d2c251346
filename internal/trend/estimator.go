// Package trend derives a short-term performance signal from the tail of a
// chronological profit sequence. With enough history it reports the
// percentage swing between two equal windows; otherwise it reports the
// least-squares slope of the latest few sessions.
package trend

import (
	"math"

	"github.com/nixlim/pokerlytics/internal/stats"
)

// Estimate computes the trend signal for profits, ordered oldest first.
func Estimate(profits []float64, cfg Config) Signal {
	cfg = cfg.normalized()

	var sig Signal
	if len(profits) >= 2*cfg.Window {
		sig.Method = MethodWindow
		sig.Raw = windowChange(profits, cfg.Window)
	} else {
		sig.Method = MethodSlope
		n := min(cfg.SlopePoints, len(profits))
		sig.Raw = Slope(profits[len(profits)-n:])
	}

	sig.Raw = saturate(sig.Raw)
	sig.IsPositive = sig.Raw >= 0
	sig.Value = stats.Round(math.Abs(sig.Raw), 1)
	return sig
}

// saturate clamps an overflowed change to the largest finite magnitude.
// NaN reads as no change.
func saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Window <= 0 {
		c.Window = def.Window
	}
	if c.SlopePoints <= 0 {
		c.SlopePoints = def.SlopePoints
	}
	return c
}

// windowChange returns the percentage change of the mean of the last w
// values against the mean of the w values before them. A zero baseline
// yields 0 when the recent mean is also zero and 100 otherwise.
func windowChange(profits []float64, w int) float64 {
	n := len(profits)
	recent := mean(profits[n-w:])
	previous := mean(profits[n-2*w : n-w])

	if previous == 0 {
		if recent == 0 {
			return 0
		}
		return 100
	}
	return (recent - previous) / math.Abs(previous) * 100
}

// Slope fits y = a*x + b to ys with x = 0, 1, 2, ... and returns a.
// Fewer than two points yield 0.
func Slope(ys []float64) float64 {
	n := float64(len(ys))
	if len(ys) < 2 {
		return 0
	}

	// x values are 0..n-1, so their mean is (n-1)/2.
	xMean := (n - 1) / 2
	yMean := mean(ys)

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	n := float64(len(vs))
	var sum float64
	for _, v := range vs {
		sum += v
	}
	if !math.IsInf(sum, 0) {
		return sum / n
	}

	// The plain sum overflowed; scale each term first.
	sum = 0
	for _, v := range vs {
		sum += v / n
	}
	return sum
}
