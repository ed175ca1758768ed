package services

import (
	"github.com/shopspring/decimal"
)

// round2 rounds a monetary value to 2 decimal places. Aggregates accumulate
// as raw floats and are rounded once at the end.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
