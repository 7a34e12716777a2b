package main

import "math"

// SpatialCellSize is about twice the largest common asteroid radius
const SpatialCellSize = 80.0

// SpatialGrid is a fixed-size grid over the padded map for broad-phase bullet queries
type SpatialGrid struct {
	origin float64
	cols   int
	cells  [][]*Asteroid
}

// NewSpatialGrid covers [-pad, size+pad] on both axes
func NewSpatialGrid(t Tuning) *SpatialGrid {
	span := t.MapSize + 2*t.MapPad
	cols := int(math.Ceil(span/SpatialCellSize)) + 1
	return &SpatialGrid{
		origin: -t.MapPad,
		cols:   cols,
		cells:  make([][]*Asteroid, cols*cols),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) cellCoord(v float64) int {
	c := int((v - g.origin) / SpatialCellSize)
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

// InsertCircle adds an asteroid to all cells overlapping its bounding box
func (g *SpatialGrid) InsertCircle(a *Asteroid) {
	r := a.Radius()
	minCX, maxCX := g.cellCoord(a.X-r), g.cellCoord(a.X+r)
	minCY, maxCY := g.cellCoord(a.Y-r), g.cellCoord(a.Y+r)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], a)
		}
	}
}

// At returns the asteroids whose bounding box covers the cell holding (x, y).
// Each asteroid appears at most once.
func (g *SpatialGrid) At(x, y float64) []*Asteroid {
	return g.cells[g.cellCoord(y)*g.cols+g.cellCoord(x)]
}
