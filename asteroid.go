package main

import (
	"math"
	"math/rand"
)

const (
	AsteroidMeanSize  = 60.0
	AsteroidSizeSD    = 10.0
	AsteroidMeanSpeed = 5.0 // wire units per ms
	AsteroidSpeedSD   = 2.0
	AsteroidSpinSD    = 0.0001 // rad/ms
	outlineRadiusSD   = 7.0
	outlineMeanSteps  = 10.0
	outlineStepsSD    = 2.0
	outlineStepSD     = TAU * 10 / 360
	outlineMinStep    = TAU / 64
	outlineMinSteps   = 3.0
)

// Vertex is an outline offset from the asteroid centre
type Vertex struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Asteroid drifts in a straight line until destroyed or out of bounds
type Asteroid struct {
	ID         int
	X, Y       float64
	DX, DY     float64 // unit direction
	Speed      float64 // wire units per ms, scaled by Tuning.RockSpeedScale
	Size       float64
	Health     float64
	MaxHealth  float64
	Active     bool
	Vertices   []Vertex
	Angle      float64
	AngleSpeed float64
}

// NewAsteroidFromWire builds an asteroid from a rock-ok record
func NewAsteroidFromWire(rng *rand.Rand, m RockOKMsg) *Asteroid {
	return &Asteroid{
		ID:         m.ID,
		X:          m.X,
		Y:          m.Y,
		DX:         math.Cos(m.Angle),
		DY:         math.Sin(m.Angle),
		Speed:      m.Speed,
		Size:       m.Size,
		Health:     m.Health,
		MaxHealth:  m.Health,
		Active:     true,
		Vertices:   GenerateOutline(rng, m.Size),
		AngleSpeed: gaussian(rng, 0, AsteroidSpinSD),
	}
}

// RandomAsteroid spawns a locally owned asteroid anywhere on the map
func RandomAsteroid(rng *rand.Rand, id int, t Tuning) *Asteroid {
	phi := uniform(rng, 0, math.Pi)
	size := gaussian(rng, AsteroidMeanSize, AsteroidSizeSD)
	if size < AsteroidSizeSD {
		size = AsteroidSizeSD
	}
	return &Asteroid{
		ID:         id,
		X:          uniform(rng, 0, t.MapSize),
		Y:          uniform(rng, 0, t.MapSize),
		DX:         math.Cos(phi),
		DY:         math.Sin(phi),
		Speed:      gaussian(rng, AsteroidMeanSpeed, AsteroidSpeedSD),
		Size:       size,
		Health:     size / 2,
		MaxHealth:  size / 2,
		Active:     true,
		Vertices:   GenerateOutline(rng, size),
		AngleSpeed: gaussian(rng, 0, AsteroidSpinSD),
	}
}

// GenerateOutline walks once around the circle with jittered step and radius
func GenerateOutline(rng *rand.Rand, size float64) []Vertex {
	steps := math.Max(gaussian(rng, outlineMeanSteps, outlineStepsSD), outlineMinSteps)
	var v []Vertex
	for a := 0.0; a < TAU; {
		d := gaussian(rng, size/2, outlineRadiusSD)
		v = append(v, Vertex{X: d * math.Cos(a), Y: d * math.Sin(a)})
		a += math.Max(gaussian(rng, TAU/steps, outlineStepSD), outlineMinStep)
	}
	return v
}

// Radius is the collision radius
func (a *Asteroid) Radius() float64 {
	return a.Size / 2
}

// Update moves the asteroid one frame (dt in ms)
func (a *Asteroid) Update(dt float64, t Tuning) {
	if !a.Active {
		return
	}
	step := dt * a.Speed * t.RockSpeedScale
	a.X += step * a.DX
	a.Y += step * a.DY
	a.Angle += dt * a.AngleSpeed
}

// OutOfBounds reports whether the asteroid left the padded map
func (a *Asteroid) OutOfBounds(t Tuning) bool {
	return a.X < -t.MapPad || a.X > t.MapSize+t.MapPad ||
		a.Y < -t.MapPad || a.Y > t.MapSize+t.MapPad
}

// Damage subtracts health and reports whether the asteroid was destroyed
func (a *Asteroid) Damage(n float64) bool {
	a.Health -= n
	if a.Health <= 0 {
		a.Active = false
		return true
	}
	return false
}

// AsteroidField is the id-keyed asteroid collection. Iteration follows insertion order.
// Ids removed by Compact are remembered so later snapshots cannot revive them.
type AsteroidField struct {
	byID  map[int]*Asteroid
	order []int
	gone  map[int]bool
}

// NewAsteroidField creates an empty field
func NewAsteroidField() *AsteroidField {
	return &AsteroidField{
		byID: make(map[int]*Asteroid),
		gone: make(map[int]bool),
	}
}

// Get returns the asteroid with the given id
func (f *AsteroidField) Get(id int) (*Asteroid, bool) {
	a, ok := f.byID[id]
	return a, ok
}

// Insert adds or replaces an asteroid
func (f *AsteroidField) Insert(a *Asteroid) {
	if _, ok := f.byID[a.ID]; !ok {
		f.order = append(f.order, a.ID)
	}
	f.byID[a.ID] = a
}

// Upsert moves a known asteroid to (x, y), or inserts the one built by create.
// Only position is touched on update. Compacted ids are ignored and yield nil.
func (f *AsteroidField) Upsert(id int, x, y float64, create func() *Asteroid) (*Asteroid, bool) {
	if f.gone[id] {
		return nil, false
	}
	if a, ok := f.byID[id]; ok {
		a.X = x
		a.Y = y
		return a, false
	}
	a := create()
	f.Insert(a)
	return a, true
}

// Each visits asteroids in insertion order
func (f *AsteroidField) Each(fn func(a *Asteroid)) {
	for _, id := range f.order {
		fn(f.byID[id])
	}
}

// Compact drops inactive asteroids and returns how many were removed
func (f *AsteroidField) Compact() int {
	kept := f.order[:0]
	removed := 0
	for _, id := range f.order {
		if f.byID[id].Active {
			kept = append(kept, id)
			continue
		}
		delete(f.byID, id)
		f.gone[id] = true
		removed++
	}
	f.order = kept
	return removed
}

// Destroyed reports whether id was compacted away
func (f *AsteroidField) Destroyed(id int) bool {
	return f.gone[id]
}

// Len returns the number of stored asteroids, active or not
func (f *AsteroidField) Len() int {
	return len(f.order)
}
