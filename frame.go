package main

import (
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

const gameTitle = "GALACTICA"

// ShipView is the draw request for one ship
type ShipView struct {
	ID       int     `msgpack:"id"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Angle    float64 `msgpack:"a"`
	Energy   float64 `msgpack:"e"` // fraction of max energy
	ShieldOn bool    `msgpack:"sh"`
	IsLocal  bool    `msgpack:"me"`
}

// RockView is the draw request for one asteroid
type RockView struct {
	ID       int      `msgpack:"id"`
	X        float64  `msgpack:"x"`
	Y        float64  `msgpack:"y"`
	Angle    float64  `msgpack:"a"`
	Health   float64  `msgpack:"h"` // fraction of max health
	Vertices []Vertex `msgpack:"v"`
}

// BulletView is the draw request for one bullet
type BulletView struct {
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	Fade float64 `msgpack:"f"` // elapsed fraction of lifetime
}

// PelletView is the draw request for one pellet
type PelletView struct {
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	Fuel bool    `msgpack:"fu"`
}

// HUD is the overlay data: title, countdown, status panel and log panel
type HUD struct {
	Title       string   `msgpack:"title"`
	RemainingMs float64  `msgpack:"rem"`
	Spice       int      `msgpack:"spice"`
	Energy      int      `msgpack:"energy"`
	ShieldOn    bool     `msgpack:"shield"`
	X           float64  `msgpack:"x"`
	Y           float64  `msgpack:"y"`
	GameOver    bool     `msgpack:"over"`
	Reason      string   `msgpack:"reason,omitempty"`
	Log         []string `msgpack:"log"`
}

// Frame is everything the renderer needs for one tick
type Frame struct {
	Tick        uint64       `msgpack:"tick"`
	Ships       []ShipView   `msgpack:"s"`
	Rocks       []RockView   `msgpack:"r"`
	Bullets     []BulletView `msgpack:"b"`
	Pellets     []PelletView `msgpack:"p"`
	PelletAngle float64      `msgpack:"pa"`
	Shake       float64      `msgpack:"sk"` // 0 when idle, else remaining fraction
	HUD         HUD          `msgpack:"hud"`
}

// Encode marshals the frame for the bridge
func (f *Frame) Encode() ([]byte, error) {
	return msgpack.Marshal(f)
}

// visible culls entities far from the local ship
func (w *World) visible(x, y float64) bool {
	if w.ship == nil {
		return true
	}
	r := w.tuning.ViewRadius
	return DistanceSq(w.ship.X, w.ship.Y, x, y) <= r*r
}

func (w *World) shipView(s *Ship) ShipView {
	return ShipView{
		ID:       s.ID,
		X:        s.X,
		Y:        s.Y,
		Angle:    s.Angle,
		Energy:   float64(s.Energy) / float64(w.tuning.MaxEnergy),
		ShieldOn: s.ShieldOn,
		IsLocal:  s.IsLocal,
	}
}

// Frame builds the draw requests for the current state
func (w *World) Frame(tick uint64) *Frame {
	f := &Frame{
		Tick:        tick,
		PelletAngle: w.pelletAngle,
		HUD: HUD{
			Title:       gameTitle,
			RemainingMs: math.Max(0, w.tuning.GameTime-w.clock),
			GameOver:    w.gameOver,
			Reason:      w.gameOverReason,
		},
	}
	if w.shake.On {
		f.Shake = 1 - w.shake.Time/w.tuning.ShakeDecay
	}
	for _, s := range w.ships {
		if w.visible(s.X, s.Y) {
			f.Ships = append(f.Ships, w.shipView(s))
		}
	}
	if s := w.ship; s != nil {
		if !w.gameOver {
			f.Ships = append(f.Ships, w.shipView(s))
		}
		f.HUD.Spice = s.Spice
		f.HUD.Energy = s.Energy
		f.HUD.ShieldOn = s.ShieldOn
		f.HUD.X = s.X
		f.HUD.Y = s.Y
	}
	w.rocks.Each(func(a *Asteroid) {
		if !a.Active || !w.visible(a.X, a.Y) {
			return
		}
		health := 0.0
		if a.MaxHealth > 0 {
			health = a.Health / a.MaxHealth
		}
		f.Rocks = append(f.Rocks, RockView{
			ID: a.ID, X: a.X, Y: a.Y, Angle: a.Angle, Health: health, Vertices: a.Vertices,
		})
	})
	for _, b := range w.bullets {
		if b.Active && w.visible(b.X, b.Y) {
			f.Bullets = append(f.Bullets, BulletView{X: b.X, Y: b.Y, Fade: b.Time / w.tuning.BulletDecay})
		}
	}
	for _, p := range w.pellets {
		if p.Active && w.visible(p.X, p.Y) {
			f.Pellets = append(f.Pellets, PelletView{X: p.X, Y: p.Y, Fuel: p.Fuel})
		}
	}
	for _, l := range w.logs {
		f.HUD.Log = append(f.HUD.Log, l.Text)
	}
	return f
}
