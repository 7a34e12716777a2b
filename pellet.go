package main

import (
	"math"
	"math/rand"
)

// pellets per unit of asteroid size, so a size-60 rock drops 5 on average
const (
	pelletsPerSize  = 1.0 / 12
	pelletCountSD   = 1.0
	pelletSpreadDiv = 4.0
)

// Pellet is a pickup dropped by a destroyed asteroid
type Pellet struct {
	X, Y   float64
	Fuel   bool // fuel refills energy, otherwise spice
	Active bool
}

// SpawnPelletBurst scatters pellets around a destroyed asteroid.
// Pellets that would land outside the map are discarded.
func SpawnPelletBurst(rng *rand.Rand, a *Asteroid, t Tuning) []*Pellet {
	count := int(math.Round(gaussian(rng, a.Size*pelletsPerSize, pelletCountSD)))
	if count > maxPelletBurst {
		count = maxPelletBurst
	}
	spread := a.Size / pelletSpreadDiv
	var out []*Pellet
	for i := 0; i < count; i++ {
		px := gaussian(rng, a.X, spread)
		if px < 0 || px > t.MapSize {
			continue
		}
		py := gaussian(rng, a.Y, spread)
		if py < 0 || py > t.MapSize {
			continue
		}
		out = append(out, &Pellet{
			X:      px,
			Y:      py,
			Fuel:   rng.Float64() < FuelChance,
			Active: true,
		})
	}
	return out
}
