package utils

import (
	"golang.org/x/exp/constraints"
)

// EqualSlice checks the equality between two slices of comparables.
func EqualSlice[V comparable](a, b []V) (v bool) {
	if len(a) != len(b) {
		return false
	}
	v = true
	for i := range a {
		v = v && (a[i] == b[i])
	}
	return
}

// IsInSlice checks if x is in slice.
func IsInSlice[V comparable](x V, slice []V) (v bool) {
	for i := range slice {
		v = v || (slice[i] == x)
	}
	return
}

// MaxSlice returns the maximum value of the input slice.
func MaxSlice[V constraints.Ordered](slice []V) (max V) {
	for i := range slice {
		max = Max(max, slice[i])
	}
	return
}

// Max returns the maximum between to comparables.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// Min returns the minimum between to comparables.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}
