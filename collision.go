package main

// Game-over causes
const (
	ReasonAsteroid = "asteroid"
	ReasonPlayer   = "player"
)

// withinRadius reports whether (x2, y2) lies strictly inside the circle at (x1, y1).
// A non-positive radius contains nothing.
func withinRadius(x1, y1, x2, y2, r float64) bool {
	if r <= 0 {
		return false
	}
	return DistanceSq(x1, y1, x2, y2) < r*r
}

// collideBullets resolves every active bullet against the active asteroids.
// A bullet is spent by a hit but still damages every asteroid it overlaps that tick.
func (w *World) collideBullets() {
	w.grid.Clear()
	w.rocks.Each(func(a *Asteroid) {
		if a.Active {
			w.grid.InsertCircle(a)
		}
	})
	for _, b := range w.bullets {
		if !b.Active {
			continue
		}
		for _, a := range w.grid.At(b.X, b.Y) {
			if !a.Active || !withinRadius(a.X, a.Y, b.X, b.Y, a.Radius()) {
				continue
			}
			b.Active = false
			w.hitAsteroid(a)
		}
	}
}

// hitAsteroid applies bullet damage and fragments the asteroid into pellets when destroyed
func (w *World) hitAsteroid(a *Asteroid) {
	if !a.Damage(BulletDamage) {
		return
	}
	burst := SpawnPelletBurst(w.rng, a, w.tuning)
	w.pellets = append(w.pellets, burst...)
	w.recorder.Record(EvtRockDestroyed, w.shipID(), len(burst))
}

// collideRock deactivates a drifting asteroid or damages the local ship on contact
func (w *World) collideRock(a *Asteroid) {
	if a.OutOfBounds(w.tuning) {
		a.Active = false
		return
	}
	s := w.ship
	if s == nil || w.gameOver || s.ShieldOn {
		return
	}
	if withinRadius(a.X, a.Y, s.X, s.Y, a.Radius()-RockHitBuffer) {
		w.ShipCollided(s)
	}
}

// collidePellet picks up a pellet close to the local ship
func (w *World) collidePellet(p *Pellet) {
	s := w.ship
	if s == nil || w.gameOver {
		return
	}
	if !withinRadius(s.X, s.Y, p.X, p.Y, w.tuning.PickupRadius) {
		return
	}
	p.Active = false
	if p.Fuel {
		s.AddEnergy(FuelPelletEnergy, w.tuning.MaxEnergy)
		w.recorder.Record(EvtFuel, s.ID, FuelPelletEnergy)
	} else {
		s.Spice += SpicePelletValue
		w.recorder.Record(EvtSpice, s.ID, SpicePelletValue)
	}
}

// ShipCollided applies an asteroid hit to a ship
func (w *World) ShipCollided(s *Ship) {
	w.damageShip(s, RockHitPenalty, ShieldRockDecay, ReasonAsteroid)
}

// ShipGotShot applies a bullet hit to a ship. No inbound message drives it yet.
func (w *World) ShipGotShot(s *Ship) {
	w.damageShip(s, ShotHitPenalty, ShieldShotDecay, ReasonPlayer)
}

func (w *World) damageShip(s *Ship, penalty int, decay float64, reason string) {
	if s.IsLocal {
		w.shake.Enable()
	}
	if s.TakeDamage(penalty) {
		if s.IsLocal {
			w.endGame(reason)
		}
		return
	}
	s.EnableShield(decay)
}

// ScreenShake is the camera shake triggered when the local ship is hit
type ScreenShake struct {
	On   bool
	Time float64
}

// Enable restarts the shake
func (sh *ScreenShake) Enable() {
	sh.On = true
	sh.Time = 0
}

// Update advances the shake and stops it after decay ms
func (sh *ScreenShake) Update(dt, decay float64) {
	if !sh.On {
		return
	}
	sh.Time += dt
	if sh.Time > decay {
		sh.On = false
		sh.Time = 0
	}
}
