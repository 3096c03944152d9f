// Package systems provides the simulation systems: arena geometry, the
// broad-phase grid, motion integration, collision resolution and the
// transmutation rules.
package systems

import (
	"math/rand"
)

// Arena is the square battle area, centered inside the playfield.
// Entities bounce off its edges and never leave it.
type Arena struct {
	X, Y          float32
	Width, Height float32
}

// NewArena builds a centered square inset by margin from the smaller
// playfield dimension.
func NewArena(playfieldW, playfieldH, margin int) Arena {
	side := min(playfieldW, playfieldH) - 2*margin
	left := (playfieldW - side) / 2
	top := (playfieldH - side) / 2
	return Arena{
		X:      float32(left),
		Y:      float32(top),
		Width:  float32(side),
		Height: float32(side),
	}
}

// Right returns the x coordinate of the right wall.
func (a Arena) Right() float32 { return a.X + a.Width }

// Bottom returns the y coordinate of the bottom wall.
func (a Arena) Bottom() float32 { return a.Y + a.Height }

// RandomPoint samples a uniform point inside the arena, inset by padding
// on every side. Padding is clamped so the sampling region is never empty.
func (a Arena) RandomPoint(rng *rand.Rand, padding float32) (float32, float32) {
	maxPad := min(padding, min(a.Width, a.Height)/2-1)
	if maxPad < 0 {
		maxPad = 0
	}
	x := a.X + maxPad + rng.Float32()*(a.Width-2*maxPad)
	y := a.Y + maxPad + rng.Float32()*(a.Height-2*maxPad)
	return x, y
}
