package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
)

// flatSkins issues kind-tagged handles without touching any textures.
type flatSkins struct{}

func (flatSkins) Skin(k components.Kind) components.Skin {
	return components.Skin{ID: uint32(k)}
}

// resolverFixture bundles a world with a resolver wired for tests.
type resolverFixture struct {
	world    *ecs.World
	mapper   *ecs.Map4[components.Position, components.Velocity, components.Body, components.Species]
	resolver *Resolver
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	specMap  *ecs.Map1[components.Species]
}

func newResolverFixture(tuning CollisionTuning, cooldown float32) *resolverFixture {
	world := ecs.NewWorld()
	morphs := NewMorphEngine(world, flatSkins{}, cooldown)
	return &resolverFixture{
		world:    world,
		mapper:   ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Species](world),
		resolver: NewResolver(world, tuning, morphs, rand.New(rand.NewSource(7))),
		posMap:   ecs.NewMap1[components.Position](world),
		velMap:   ecs.NewMap1[components.Velocity](world),
		specMap:  ecs.NewMap1[components.Species](world),
	}
}

func (f *resolverFixture) spawn(kind components.Kind, x, y, vx, vy, radius float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.Body{
		Radius: radius,
		HalfW:  radius,
		HalfH:  radius,
		Box:    components.Box{W: int32(2 * radius), H: int32(2 * radius)},
	}
	body.SyncBox(pos)
	spec := components.Species{Kind: kind, MorphedAt: -1000, Skin: components.Skin{ID: uint32(kind)}}
	return f.mapper.NewEntity(&pos, &vel, &body, &spec)
}

func (f *resolverFixture) distance(a, b ecs.Entity) float64 {
	pa := f.posMap.Get(a)
	pb := f.posMap.Get(b)
	return math.Hypot(float64(pb.X-pa.X), float64(pb.Y-pa.Y))
}

func (f *resolverFixture) speed(e ecs.Entity) float64 {
	v := f.velMap.Get(e)
	return math.Hypot(float64(v.X), float64(v.Y))
}

func TestResolveSeparatesOverlappingPair(t *testing.T) {
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0)
	a := f.spawn(components.Rock, 100, 100, 80, 0, 10)
	b := f.spawn(components.Rock, 110, 100, -80, 0, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{a, b}, 0, &out)

	if out.Collisions != 1 {
		t.Errorf("collisions = %d, want 1", out.Collisions)
	}
	if dist := f.distance(a, b); dist < 20 {
		t.Errorf("distance after resolve = %f, want >= 20", dist)
	}
	// Head-on equal mass: velocities swap.
	if v := f.velMap.Get(a); math.Abs(float64(v.X+80)) > 0.01 {
		t.Errorf("vel A.X = %f, want -80", v.X)
	}
	if v := f.velMap.Get(b); math.Abs(float64(v.X-80)) > 0.01 {
		t.Errorf("vel B.X = %f, want 80", v.X)
	}
}

func TestResolveSwapsNormalKeepsTangential(t *testing.T) {
	// MinSpeed off so the floor cannot rescale the asserted velocities.
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 0}, 0)
	a := f.spawn(components.Rock, 100, 100, 50, 30, 10)
	b := f.spawn(components.Rock, 115, 100, -40, 70, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{a, b}, 0, &out)

	va := f.velMap.Get(a)
	vb := f.velMap.Get(b)
	if math.Abs(float64(va.X+40)) > 0.01 || math.Abs(float64(va.Y-30)) > 0.01 {
		t.Errorf("vel A = (%f, %f), want (-40, 30)", va.X, va.Y)
	}
	if math.Abs(float64(vb.X-50)) > 0.01 || math.Abs(float64(vb.Y-70)) > 0.01 {
		t.Errorf("vel B = (%f, %f), want (50, 70)", vb.X, vb.Y)
	}
}

func TestResolveAppliesSpeedFloor(t *testing.T) {
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0)
	a := f.spawn(components.Rock, 100, 100, 30, 0, 10)
	b := f.spawn(components.Rock, 115, 100, -30, 0, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{a, b}, 0, &out)

	if spd := f.speed(a); math.Abs(spd-60) > 0.01 {
		t.Errorf("speed A = %f, want 60", spd)
	}
	if spd := f.speed(b); math.Abs(spd-60) > 0.01 {
		t.Errorf("speed B = %f, want 60", spd)
	}
	// Directions survive the rescale: A bounced back to -X, B to +X.
	if v := f.velMap.Get(a); v.X >= 0 {
		t.Errorf("vel A.X = %f, want negative", v.X)
	}
	if v := f.velMap.Get(b); v.X <= 0 {
		t.Errorf("vel B.X = %f, want positive", v.X)
	}
}

func TestResolveRockPaperAtRest(t *testing.T) {
	// 1 Rock and 1 Paper overlapping with zero velocity: one resolve must
	// separate them, float both speeds, and convert the rock.
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0.25)
	rock := f.spawn(components.Rock, 100, 100, 0, 0, 10)
	paper := f.spawn(components.Paper, 110, 100, 0, 0, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{rock, paper}, 0, &out)

	if k := f.specMap.Get(rock).Kind; k != components.Paper {
		t.Errorf("rock kind = %v, want paper", k)
	}
	if k := f.specMap.Get(paper).Kind; k != components.Paper {
		t.Errorf("paper kind = %v, want paper", k)
	}
	if dist := f.distance(rock, paper); dist < 20 {
		t.Errorf("distance = %f, want >= 20", dist)
	}
	if spd := f.speed(rock); spd < 60-0.01 {
		t.Errorf("speed rock = %f, want >= 60", spd)
	}
	if spd := f.speed(paper); spd < 60-0.01 {
		t.Errorf("speed paper = %f, want >= 60", spd)
	}
	if out.Morphs != 1 {
		t.Errorf("morphs = %d, want 1", out.Morphs)
	}
	if got := f.specMap.Get(rock).Skin.ID; got != uint32(components.Paper) {
		t.Errorf("converted skin = %d, want %d", got, uint32(components.Paper))
	}
}

func TestResolveCoincidentCentersUsesFixedNormal(t *testing.T) {
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0)
	a := f.spawn(components.Rock, 100, 100, 0, 0, 10)
	b := f.spawn(components.Rock, 100, 100, 0, 0, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{a, b}, 0, &out)

	pa := f.posMap.Get(a)
	pb := f.posMap.Get(b)
	// The fallback normal is +X with an assumed distance of 1.
	wantShift := (20.0 - 1.0) * 1.02
	if got := float64(pb.X - pa.X); math.Abs(got-wantShift) > 0.01 {
		t.Errorf("X separation = %f, want %f", got, wantShift)
	}
	if pa.Y != 100 || pb.Y != 100 {
		t.Errorf("Y moved: %f / %f, want 100 / 100", pa.Y, pb.Y)
	}
	if spd := f.speed(a); math.Abs(spd-60) > 0.01 {
		t.Errorf("speed A = %f, want 60", spd)
	}
	if spd := f.speed(b); math.Abs(spd-60) > 0.01 {
		t.Errorf("speed B = %f, want 60", spd)
	}
}

func TestResolveIgnoresSeparatedPair(t *testing.T) {
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0)
	a := f.spawn(components.Rock, 100, 100, 10, 0, 10)
	b := f.spawn(components.Paper, 130, 100, -10, 0, 10)

	var out Outcome
	f.resolver.resolveList([]ecs.Entity{a, b}, 0, &out)

	if out.Collisions != 0 {
		t.Errorf("collisions = %d, want 0", out.Collisions)
	}
	if v := f.velMap.Get(a); v.X != 10 {
		t.Errorf("vel A.X = %f, want untouched 10", v.X)
	}
	if k := f.specMap.Get(a).Kind; k != components.Rock {
		t.Errorf("kind A changed to %v", k)
	}
}

func TestResolveAllThroughGrid(t *testing.T) {
	f := newResolverFixture(CollisionTuning{Restitution: 1, SeparationBias: 1.02, MinSpeed: 60}, 0.25)
	arena := Arena{X: 0, Y: 0, Width: 400, Height: 400}
	grid := NewSpatialGrid(arena, 40)

	// Overlapping cross-cell pair: centers straddle a cell boundary.
	a := f.spawn(components.Scissors, 78, 100, 50, 0, 10)
	b := f.spawn(components.Paper, 84, 100, -50, 0, 10)
	// A distant bystander that must stay untouched.
	c := f.spawn(components.Rock, 300, 300, 5, 5, 10)

	for _, e := range []ecs.Entity{a, b, c} {
		p := f.posMap.Get(e)
		grid.Insert(e, p.X, p.Y)
	}

	out := f.resolver.ResolveAll(grid, 0)
	if out.Collisions == 0 {
		t.Fatal("cross-cell overlap was not resolved")
	}
	if f.specMap.Get(b).Kind != components.Scissors {
		t.Errorf("paper kind = %v, want scissors", f.specMap.Get(b).Kind)
	}
	if v := f.velMap.Get(c); v.X != 5 || v.Y != 5 {
		t.Errorf("bystander velocity = (%f, %f), want (5, 5)", v.X, v.Y)
	}
}
