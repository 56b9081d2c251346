// Package session defines the raw session input schema and the normalizer
// that turns raw records into typed, chronologically ordered sessions.
// Everything here is a pure transformation of its arguments.
package session

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

var (
	// ErrInvalidTimestamp is returned when start_time or end_time cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrNonFiniteProfit is returned when profit_loss is NaN or infinite.
	ErrNonFiniteProfit = errors.New("profit_loss is not finite")
)

// timestampLayouts lists the accepted timestamp shapes, most specific first.
// Layouts without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Session is a typed, normalized session.
type Session struct {
	Index    int // zero-based position in the input
	Start    time.Time
	End      time.Time
	HasEnd   bool
	Profit   float64
	BigBlind BigBlind
}

// DurationHours returns end minus start in hours. A session without an
// end time has no valid duration and reports 0. The result may be negative
// when the timestamps are inverted.
func (s Session) DurationHours() float64 {
	if !s.HasEnd {
		return 0
	}
	return s.End.Sub(s.Start).Hours()
}

// Warning describes input that was accepted with a fallback.
type Warning struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d: %s: %s", w.Index, w.Field, w.Message)
}

// Options configures normalization.
type Options struct {
	DefaultBigBlind float64
}

// Normalize parses every record and returns the sessions sorted ascending
// by start time. Records with equal start times keep their input order.
func Normalize(records []Record, opts Options) ([]Session, []Warning, error) {
	fallback := opts.DefaultBigBlind
	if fallback <= 0 {
		fallback = DefaultBigBlind
	}

	sessions := make([]Session, 0, len(records))
	var warnings []Warning

	for i, r := range records {
		s, ws, err := normalizeRecord(i, r, fallback)
		if err != nil {
			return nil, nil, err
		}
		sessions = append(sessions, s)
		warnings = append(warnings, ws...)
	}

	sort.SliceStable(sessions, func(a, b int) bool {
		return sessions[a].Start.Before(sessions[b].Start)
	})

	return sessions, warnings, nil
}

func normalizeRecord(idx int, r Record, fallback float64) (Session, []Warning, error) {
	if r.StartTime == nil {
		return Session{}, nil, fmt.Errorf("record %d: %w: start_time", idx, ErrMissingField)
	}
	if r.ProfitLoss == nil {
		return Session{}, nil, fmt.Errorf("record %d: %w: profit_loss", idx, ErrMissingField)
	}

	start, err := ParseTimestamp(*r.StartTime)
	if err != nil {
		return Session{}, nil, fmt.Errorf("record %d: start_time: %w", idx, err)
	}

	profit := r.ProfitLoss.Float64()
	if math.IsNaN(profit) || math.IsInf(profit, 0) {
		return Session{}, nil, fmt.Errorf("record %d: %w", idx, ErrNonFiniteProfit)
	}

	s := Session{
		Index:  idx,
		Start:  start,
		Profit: profit,
	}

	var warnings []Warning
	if r.EndTime == nil || strings.TrimSpace(*r.EndTime) == "" {
		warnings = append(warnings, Warning{Index: idx, Field: "end_time", Message: "missing, duration treated as zero"})
	} else {
		end, err := ParseTimestamp(*r.EndTime)
		if err != nil {
			return Session{}, nil, fmt.Errorf("record %d: end_time: %w", idx, err)
		}
		s.End = end
		s.HasEnd = true
		if end.Before(start) {
			warnings = append(warnings, Warning{Index: idx, Field: "end_time", Message: "before start_time, rates treated as zero"})
		}
	}

	s.BigBlind = ParseBigBlind(r.AdditionalInfo, fallback)
	if s.BigBlind.Source == BigBlindMalformed {
		warnings = append(warnings, Warning{
			Index:   idx,
			Field:   "additional_info.bb",
			Message: fmt.Sprintf("%s, using default %g", s.BigBlind.Problem, fallback),
		})
	}

	return s, warnings, nil
}

// ParseTimestamp parses a session timestamp in any of the accepted layouts.
func ParseTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}
