package stats

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// exactDigits is enough fractional digits that no inexact float64 prints
// as a decimal tie at the precisions rounded to here.
const exactDigits = 30

// Round rounds v to places decimals, half to even, using the exact binary
// value of v: 2.675 is stored below the tie and rounds to 2.67.
// Non-finite values are returned unchanged.
func Round(v float64, places int32) float64 {
	if !isFinite(v) {
		return v
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return v
	}
	return d.RoundBank(places).InexactFloat64()
}

func isFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
