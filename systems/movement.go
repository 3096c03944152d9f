package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
)

// MovementSystem integrates positions and reflects entities off the
// arena walls.
type MovementSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Body]
	arena  Arena
}

// NewMovementSystem creates a movement system bound to the given arena.
func NewMovementSystem(w *ecs.World, arena Arena) *MovementSystem {
	return &MovementSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		arena:  arena,
	}
}

// Update advances every entity by velocity*dt and bounces it off the
// walls. A bounce clamps the footprint edge to the wall, not the center,
// and negates that velocity component; the axes are independent, so a
// corner hit flips both in the same step. Returns the number of wall
// contacts for telemetry.
func (s *MovementSystem) Update(w *ecs.World, dt float32) int {
	bounces := 0
	right := s.arena.Right()
	bottom := s.arena.Bottom()

	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		// Horizontal bounce
		if pos.X-body.HalfW <= s.arena.X {
			pos.X = s.arena.X + body.HalfW
			vel.X = -vel.X
			bounces++
		} else if pos.X+body.HalfW >= right {
			pos.X = right - body.HalfW
			vel.X = -vel.X
			bounces++
		}

		// Vertical bounce
		if pos.Y-body.HalfH <= s.arena.Y {
			pos.Y = s.arena.Y + body.HalfH
			vel.Y = -vel.Y
			bounces++
		} else if pos.Y+body.HalfH >= bottom {
			pos.Y = bottom - body.HalfH
			vel.Y = -vel.Y
			bounces++
		}

		body.SyncBox(*pos)
	}
	return bounces
}
