package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
)

// CollisionTuning holds the narrow-phase tunables.
type CollisionTuning struct {
	Restitution    float32 // 1.0 = perfectly elastic
	SeparationBias float32 // >1 pushes a bit extra apart to prevent re-sticking
	MinSpeed       float32 // post-collision speed floor, 0 disables it
}

// Outcome counts what one resolve pass did.
type Outcome struct {
	Collisions int
	Morphs     int
	Gated      int
}

// Resolver runs the narrow phase over broad-phase candidate sets:
// circle-circle tests, positional separation, equal-mass impulse, the
// minimum-speed floor and the morph rules.
type Resolver struct {
	tuning CollisionTuning
	rng    *rand.Rand
	morphs *MorphEngine

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	bodyMap *ecs.Map1[components.Body]
}

// NewResolver creates a resolver. The rng drives zero-velocity recovery
// headings and must be the simulation's seeded source.
func NewResolver(w *ecs.World, tuning CollisionTuning, morphs *MorphEngine, rng *rand.Rand) *Resolver {
	return &Resolver{
		tuning:  tuning,
		rng:     rng,
		morphs:  morphs,
		posMap:  ecs.NewMap1[components.Position](w),
		velMap:  ecs.NewMap1[components.Velocity](w),
		bodyMap: ecs.NewMap1[components.Body](w),
	}
}

// ResolveAll processes every candidate set produced by the grid for one
// tick. now is the simulation time in seconds.
func (r *Resolver) ResolveAll(grid *SpatialGrid, now float32) Outcome {
	var out Outcome
	grid.ForEachCandidateSet(func(list []ecs.Entity) {
		r.resolveList(list, now, &out)
	})
	return out
}

// resolveList resolves every index-ordered pair among a candidate list.
// Positions and velocities update live, so later pairs in the same list
// see the results of earlier ones.
func (r *Resolver) resolveList(list []ecs.Entity, now float32, out *Outcome) {
	for i := 0; i < len(list); i++ {
		a := list[i]
		posA := r.posMap.Get(a)
		velA := r.velMap.Get(a)
		bodyA := r.bodyMap.Get(a)

		for j := i + 1; j < len(list); j++ {
			b := list[j]
			posB := r.posMap.Get(b)
			bodyB := r.bodyMap.Get(b)

			// Narrow phase: squared-distance rejection, sqrt only on a hit
			dx := posB.X - posA.X
			dy := posB.Y - posA.Y
			rSum := bodyA.Radius + bodyB.Radius
			distSq := dx*dx + dy*dy
			if distSq >= rSum*rSum {
				continue
			}

			var dist, nx, ny float32
			if distSq > 0 {
				dist = float32(math.Sqrt(float64(distSq)))
				nx = dx / dist
				ny = dy / dist
			} else {
				// Coincident centers: arbitrary fixed normal
				dist = 1.0
				nx, ny = 1.0, 0.0
			}

			// Separate along the normal, half each way
			overlap := (rSum - dist) * r.tuning.SeparationBias
			posA.X -= 0.5 * overlap * nx
			posA.Y -= 0.5 * overlap * ny
			posB.X += 0.5 * overlap * nx
			posB.Y += 0.5 * overlap * ny
			bodyA.SyncBox(*posA)
			bodyB.SyncBox(*posB)

			// Equal mass: swap normal components, tangential untouched
			velB := r.velMap.Get(b)
			vaN := velA.X*nx + velA.Y*ny
			vbN := velB.X*nx + velB.Y*ny
			vaAfter := vbN * r.tuning.Restitution
			vbAfter := vaN * r.tuning.Restitution
			velA.X += (vaAfter - vaN) * nx
			velA.Y += (vaAfter - vaN) * ny
			velB.X += (vbAfter - vbN) * nx
			velB.Y += (vbAfter - vbN) * ny

			r.enforceMinSpeed(velA)
			r.enforceMinSpeed(velB)

			out.Collisions++
			switch r.morphs.Apply(a, b, now) {
			case MorphApplied:
				out.Morphs++
			case MorphGated:
				out.Gated++
			}
		}
	}
}

// enforceMinSpeed keeps a velocity at or above the floor, preserving the
// heading; a numerically dead vector gets a random heading instead.
func (r *Resolver) enforceMinSpeed(v *components.Velocity) {
	spd := float32(math.Hypot(float64(v.X), float64(v.Y)))
	if spd >= r.tuning.MinSpeed {
		return
	}
	if spd < 1e-6 {
		ang := r.rng.Float64() * 2 * math.Pi
		v.X = float32(math.Cos(ang)) * r.tuning.MinSpeed
		v.Y = float32(math.Sin(ang)) * r.tuning.MinSpeed
		return
	}
	k := r.tuning.MinSpeed / spd
	v.X *= k
	v.Y *= k
}
