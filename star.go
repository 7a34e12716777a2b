package main

import "math/rand"

// Star is a static background point
type Star struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Light float64 `json:"l" msgpack:"l"`
}

// RandomStars scatters n stars across the padded map
func RandomStars(rng *rand.Rand, n int, t Tuning) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:     uniform(rng, -t.MapPad, t.MapSize+t.MapPad),
			Y:     uniform(rng, -t.MapPad, t.MapSize+t.MapPad),
			Light: uniform(rng, 50, 100),
		}
	}
	return stars
}
