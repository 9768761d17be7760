package sanitizer

import "math"

// NormalizeAmount rounds a rupee amount to paise.
func NormalizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
