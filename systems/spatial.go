package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// forwardNeighbors covers each adjacent cell pair exactly once when every
// occupied cell scans right and down.
var forwardNeighbors = [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// SpatialGrid buckets entities by center cell for broad-phase candidate
// generation. It is cleared and refilled every tick.
type SpatialGrid struct {
	cellSize float32
	originX  float32
	originY  float32
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
	merged   []ecs.Entity   // scratch buffer for neighbor cell unions
}

// NewSpatialGrid creates a grid covering the arena with the given cell size.
// The cell size must be at least one entity diameter so touching circles
// are never more than one cell apart.
func NewSpatialGrid(bounds Arena, cellSize float32) *SpatialGrid {
	cols := int(bounds.Width/cellSize) + 1
	rows := int(bounds.Height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		originX:  bounds.X,
		originY:  bounds.Y,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		merged:   make([]ecs.Entity, 0, 16),
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the cell containing its center.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	if idx >= 0 && idx < len(g.cells) {
		g.cells[idx] = append(g.cells[idx], e)
	}
}

// ForEachCandidateSet invokes fn for every broad-phase candidate list:
// each occupied cell's own list, then its union with each occupied
// neighbor cell, every unordered cell pair visited exactly once. A pair
// sharing a cell reappears in that cell's unions; the resolver tolerates
// the repeats. The union slice is reused between calls.
func (g *SpatialGrid) ForEachCandidateSet(fn func(list []ecs.Entity)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			own := g.cells[row*g.cols+col]
			if len(own) == 0 {
				continue
			}
			if len(own) > 1 {
				fn(own)
			}
			for _, d := range forwardNeighbors {
				nc, nr := col+d[0], row+d[1]
				if nc < 0 || nc >= g.cols || nr >= g.rows {
					continue
				}
				other := g.cells[nr*g.cols+nc]
				if len(other) == 0 {
					continue
				}
				g.merged = append(g.merged[:0], own...)
				g.merged = append(g.merged, other...)
				fn(g.merged)
			}
		}
	}
}

// cellIndex returns the flat index for a world position, clamped to the
// grid so out-of-arena positions land in edge cells.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := int((x - g.originX) / g.cellSize)
	row := int((y - g.originY) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
