package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultBigBlind is the big-blind size assumed when a session does not
// carry a usable one.
const DefaultBigBlind = 0.2

// BigBlindSource records how a session's big-blind size was obtained.
type BigBlindSource int

const (
	BigBlindParsed BigBlindSource = iota
	BigBlindAbsent
	BigBlindMalformed
)

// String returns a human-readable representation of the source.
func (s BigBlindSource) String() string {
	switch s {
	case BigBlindParsed:
		return "parsed"
	case BigBlindAbsent:
		return "absent"
	case BigBlindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// BigBlind is the outcome of extracting additional_info.bb.
// Problem is set only when Source is BigBlindMalformed.
type BigBlind struct {
	Size    float64
	Source  BigBlindSource
	Problem string
}

// ParseBigBlind extracts the bb field from a session's additional_info.
// info may be a decoded object or a JSON-encoded string of one. Every
// outcome other than BigBlindParsed carries the fallback size.
func ParseBigBlind(info any, fallback float64) BigBlind {
	fields, problem := infoFields(info)
	if problem != "" {
		return BigBlind{Size: fallback, Source: BigBlindMalformed, Problem: problem}
	}
	if fields == nil {
		return BigBlind{Size: fallback, Source: BigBlindAbsent}
	}

	raw, ok := fields["bb"]
	if !ok || raw == nil {
		return BigBlind{Size: fallback, Source: BigBlindAbsent}
	}

	size, problem := coerceNumber(raw)
	if problem != "" {
		return BigBlind{Size: fallback, Source: BigBlindMalformed, Problem: problem}
	}
	return BigBlind{Size: size, Source: BigBlindParsed}
}

// infoFields resolves additional_info to a field map. A nil map with an
// empty problem means the info is absent.
func infoFields(info any) (map[string]any, string) {
	switch v := info.(type) {
	case nil:
		return nil, ""
	case map[string]any:
		return v, ""
	case string:
		text := strings.TrimSpace(v)
		if text == "" || text == "null" {
			return nil, ""
		}
		var decoded any
		if err := json.Unmarshal([]byte(text), &decoded); err != nil {
			return nil, fmt.Sprintf("additional_info is not valid JSON: %v", err)
		}
		if decoded == nil {
			return nil, ""
		}
		m, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Sprintf("additional_info must be an object, got %T", decoded)
		}
		return m, ""
	default:
		return nil, fmt.Sprintf("additional_info must be an object, got %T", info)
	}
}

func coerceNumber(raw any) (float64, string) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Sprintf("bb is not numeric: %q", n.String())
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Sprintf("bb is not numeric: %q", n)
		}
		f = parsed
	default:
		return 0, fmt.Sprintf("bb has unsupported type %T", raw)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Sprintf("bb is not finite: %v", f)
	}
	return f, ""
}
