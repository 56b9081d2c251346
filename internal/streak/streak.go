// Package streak reports the current unbroken win or loss run anchored at
// the most recent session.
package streak

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a session outcome.
type Kind int

const (
	None Kind = iota
	Win
	Loss
)

// String returns "Win", "Loss", or "none".
func (k Kind) String() string {
	switch k {
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	default:
		return "none"
	}
}

// Classify returns Win for a non-negative profit and Loss otherwise.
func Classify(profit float64) Kind {
	if profit >= 0 {
		return Win
	}
	return Loss
}

// Streak is the length and direction of the current run.
type Streak struct {
	Count int
	Kind  Kind
}

// Detect scans profits, ordered oldest first, from the end and counts the
// sessions sharing the latest session's outcome.
func Detect(profits []float64) Streak {
	var s Streak
	for i := len(profits) - 1; i >= 0; i-- {
		k := Classify(profits[i])
		if s.Kind == None {
			s.Kind = k
		}
		if k != s.Kind {
			break
		}
		s.Count++
	}
	return s
}

// MarshalJSON encodes the streak as the pair [count, type] where type is
// "Win", "Loss", or null.
func (s Streak) MarshalJSON() ([]byte, error) {
	var kind any
	if s.Kind != None {
		kind = s.Kind.String()
	}
	return json.Marshal([2]any{s.Count, kind})
}

// UnmarshalJSON decodes the [count, type] pair.
func (s *Streak) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("streak must be a [count, type] pair: %w", err)
	}

	var count int
	if err := json.Unmarshal(pair[0], &count); err != nil {
		return fmt.Errorf("streak count: %w", err)
	}
	var kind *string
	if err := json.Unmarshal(pair[1], &kind); err != nil {
		return fmt.Errorf("streak type: %w", err)
	}

	s.Count = count
	s.Kind = None
	if kind != nil {
		switch *kind {
		case "Win":
			s.Kind = Win
		case "Loss":
			s.Kind = Loss
		default:
			return fmt.Errorf("streak type: unknown %q", *kind)
		}
	}
	return nil
}
