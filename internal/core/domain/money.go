package domain

import "math"

// RoundCurrency rounds v to two decimal places, half away from zero
// (math.Round semantics): 0.125 → 0.13, -0.125 → -0.13. Order totals are
// accumulated unrounded and rounded exactly once through this function.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
