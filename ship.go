package main

import "math"

// Ship is a player ship. Only the local ship is simulated; remote ships are projections.
type Ship struct {
	ID          int
	X, Y        float64
	Angle       float64 // radians, wrapped to [0, 2π)
	Energy      int
	Spice       int
	ShieldOn    bool
	ShieldTime  float64 // ms since the shield was last enabled
	ShieldDecay float64 // ms the shield lasts
	IsLocal     bool
}

// NewLocalShip builds the local ship from a join acknowledgement
func NewLocalShip(m JoinOKMsg) *Ship {
	return &Ship{
		ID:       m.ID,
		X:        m.X,
		Y:        m.Y,
		Angle:    WrapAngle(m.Angle),
		Spice:    m.Spice,
		Energy:   m.Energy,
		ShieldOn: m.ShieldOn,
		IsLocal:  true,
	}
}

// EnableShield (re)enters the ON state with the given decay
func (s *Ship) EnableShield(decay float64) {
	s.ShieldOn = true
	s.ShieldTime = 0
	s.ShieldDecay = decay
}

// UpdateShield advances the shield timer and turns it off once the decay has elapsed
func (s *Ship) UpdateShield(dt float64) {
	if !s.ShieldOn {
		return
	}
	s.ShieldTime += dt
	if s.ShieldTime >= s.ShieldDecay {
		s.ShieldOn = false
	}
}

// TakeDamage drains energy and reports whether it went negative
func (s *Ship) TakeDamage(penalty int) bool {
	s.Energy -= penalty
	return s.Energy < 0
}

// AddEnergy refuels up to max
func (s *Ship) AddEnergy(n, max int) {
	s.Energy += n
	if s.Energy > max {
		s.Energy = max
	}
}

// Steer integrates rotation and thrust for one frame, then clamps into the map
func (s *Ship) Steer(dt float64, in InputSnapshot, t Tuning) {
	if in.Left {
		s.Angle = WrapAngle(s.Angle - dt*t.AngleSpeed)
	}
	if in.Right {
		s.Angle = WrapAngle(s.Angle + dt*t.AngleSpeed)
	}
	if in.Forward {
		s.X += dt * t.MoveSpeed * math.Cos(s.Angle)
		s.Y += dt * t.MoveSpeed * math.Sin(s.Angle)
	}
	if in.Backward {
		s.X -= dt * t.MoveSpeed * math.Cos(s.Angle)
		s.Y -= dt * t.MoveSpeed * math.Sin(s.Angle)
	}
	s.X = Clamp(s.X, 0, t.MapSize)
	s.Y = Clamp(s.Y, 0, t.MapSize)
}
