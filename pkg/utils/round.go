package utils

import "math"

// Round2 rounds to 2 decimal places, the precision used for all price and
// percentage display fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places, used for greeks.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
