package main

import (
	"math"
	"math/rand"
)

const TAU = 2 * math.Pi

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DistanceSq returns the squared distance between two points
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// WrapAngle wraps a heading into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TAU)
	if a < 0 {
		a += TAU
	}
	return a
}

// gaussian draws from N(mean, sd)
func gaussian(rng *rand.Rand, mean, sd float64) float64 {
	return rng.NormFloat64()*sd + mean
}

// uniform draws from [lo, hi)
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
