package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/nixlim/pokerlytics/internal/analytics"
)

// formatMoney formats a signed dollar amount with thousands separators,
// e.g. +$1,234.50 or -$20.00.
func formatMoney(v float64) string {
	v = analytics.Round(v, 2)
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return sign + "$" + groupThousands(math.Abs(v))
}

// formatSigned formats a signed rate with two decimals.
func formatSigned(v float64) string {
	v = analytics.Round(v, 2)
	if v < 0 {
		return "-" + groupThousands(-v)
	}
	return "+" + groupThousands(v)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// groupThousands formats a non-negative value with two decimals and comma
// separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.2f", analytics.Round(v, 2))
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(intPart[i : i+3])
	}
	return result.String() + "." + frac
}

// formatSessionDetail describes one session for the status bar.
func formatSessionDetail(s analytics.ProcessedSession) string {
	return fmt.Sprintf("%s  %s h  bb %g  profit %s  %s/h  %s bb/h",
		s.Start.Format("2006-01-02 15:04"),
		formatHours(s.DurationHours),
		s.BigBlindSize,
		formatMoney(s.Profit),
		formatSigned(s.DollarsPerHour),
		formatSigned(s.BBPerHour))
}
