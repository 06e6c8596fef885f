package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v < hi (half-open).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v < hi
}

// Unit returns raw/full clamped to [0,1]. full <= 0 yields 0.
func Unit[T constraints.Integer](raw T, full float64) float64 {
	if full <= 0 {
		return 0
	}
	return Clamp(float64(raw)/full, 0, 1)
}
