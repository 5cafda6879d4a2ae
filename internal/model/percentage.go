package model

import "math"

// Percentage returns completed/total as a percentage rounded to two
// decimals. A zero total yields 0 rather than a division error. Two
// decimals everywhere is a deliberate choice; see DESIGN.md.
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(completed) / float64(total) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
