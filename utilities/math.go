package utilities

import "math"

// Abs returns the absolute value of n.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SaturatingAdd adds two non-negative counts, clamping at the maximum
// int64 instead of wrapping. Frequency counts from long-tailed corpora
// must keep their ordering even when summed entries overflow.
func SaturatingAdd(a, b int64) int64 {
	if math.MaxInt64-a < b {
		return math.MaxInt64
	}
	return a + b
}
