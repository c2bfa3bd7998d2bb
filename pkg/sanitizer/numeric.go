package sanitizer

import "cmp"

// Clamp limits value to [lo, hi].
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	return min(max(value, lo), hi)
}

// DefaultIfNotPositive returns def when value is zero or negative.
func DefaultIfNotPositive[T int | int64 | float64](value, def T) T {
	if value <= 0 {
		return def
	}
	return value
}
