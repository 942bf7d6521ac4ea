package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approach moves v toward zero by step without crossing it.
func Approach(v, step float64) float64 {
	if v > 0 {
		return math.Max(v-step, 0)
	}
	return math.Min(v+step, 0)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// FloorDiv divides and rounds toward negative infinity so that pixel
// positions left of or above the origin land in negative cells.
func FloorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
