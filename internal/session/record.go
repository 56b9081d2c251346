package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one raw session as supplied by the session source. Fields the
// analytics do not consume (location, buy_in, game_type, ...) are ignored.
type Record struct {
	StartTime      *string `json:"start_time" yaml:"start_time" validate:"required"`
	EndTime        *string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	ProfitLoss     *Amount `json:"profit_loss" yaml:"profit_loss" validate:"required"`
	AdditionalInfo any     `json:"additional_info,omitempty" yaml:"additional_info,omitempty"`
}

// Amount is a signed currency value. It decodes from a number or from a
// string holding a number.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return a.parse(s)
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("amount must be numeric, got %s", string(data))
	}
	*a = Amount(f)
	return nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("amount must be a scalar (line %d)", node.Line)
	}
	return a.parse(node.Value)
}

func (a *Amount) parse(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("amount must be numeric, got %q", s)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) Float64() float64 { return float64(a) }

// NewRecord builds a Record from plain values. An empty end disables the
// end_time field.
func NewRecord(start, end string, profit float64, info any) Record {
	amt := Amount(profit)
	r := Record{
		StartTime:      &start,
		ProfitLoss:     &amt,
		AdditionalInfo: info,
	}
	if end != "" {
		r.EndTime = &end
	}
	return r
}
