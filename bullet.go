package main

import "math"

// Bullet is a shot travelling along a fixed unit direction
type Bullet struct {
	OwnerID int
	X, Y    float64
	DX, DY  float64
	Time    float64 // ms alive
	Active  bool
}

// NewBullet fires from the ship's position along its heading
func NewBullet(owner *Ship) *Bullet {
	return &Bullet{
		OwnerID: owner.ID,
		X:       owner.X,
		Y:       owner.Y,
		DX:      math.Cos(owner.Angle),
		DY:      math.Sin(owner.Angle),
		Active:  true,
	}
}

// NewBulletFromWire builds a bullet announced by the server
func NewBulletFromWire(m BulletMsg) *Bullet {
	return &Bullet{
		OwnerID: m.ID,
		X:       m.X,
		Y:       m.Y,
		DX:      m.DX,
		DY:      m.DY,
		Active:  true,
	}
}

// Update moves the bullet one frame and retires it once it expires or leaves the map
func (b *Bullet) Update(dt float64, t Tuning) {
	if !b.Active {
		return
	}
	b.X += dt * t.BulletSpeed * b.DX
	b.Y += dt * t.BulletSpeed * b.DY
	b.Time += dt
	if b.Time > t.BulletDecay || b.OutOfBounds(t) {
		b.Active = false
	}
}

// OutOfBounds reports whether the bullet left the unpadded map
func (b *Bullet) OutOfBounds(t Tuning) bool {
	return b.X < 0 || b.X > t.MapSize || b.Y < 0 || b.Y > t.MapSize
}
