package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
)

// SkinProvider issues renderable handles per kind. Implementations decide
// how a handle maps to pixels; the rule engine only stores it.
type SkinProvider interface {
	Skin(k components.Kind) components.Skin
}

// beats maps each kind to the kind it defeats.
var beats = [components.KindCount]components.Kind{
	components.Rock:     components.Scissors,
	components.Paper:    components.Rock,
	components.Scissors: components.Paper,
}

// Beats reports whether a defeats b. Equal kinds never beat each other.
func Beats(a, b components.Kind) bool {
	return a != b && beats[a] == b
}

// MorphResult describes the outcome of one rule application.
type MorphResult uint8

const (
	MorphNone    MorphResult = iota // equal kinds, nothing to do
	MorphApplied                    // loser took the winner's kind
	MorphGated                      // loser still inside its cooldown
)

// MorphEngine applies the dominance rules to colliding pairs. Each entity
// carries the time of its last morph; another morph is allowed only after
// the cooldown has elapsed. Gated attempts are dropped silently.
type MorphEngine struct {
	cooldown float32
	skins    SkinProvider
	specMap  *ecs.Map1[components.Species]
}

// NewMorphEngine creates a morph engine with the given cooldown in
// seconds of simulation time.
func NewMorphEngine(w *ecs.World, skins SkinProvider, cooldown float32) *MorphEngine {
	return &MorphEngine{
		cooldown: cooldown,
		skins:    skins,
		specMap:  ecs.NewMap1[components.Species](w),
	}
}

// Apply runs the dominance rule for a colliding pair at simulation time
// now. The loser takes the winner's kind; position, velocity and radius
// are left alone, physics has already been applied.
func (m *MorphEngine) Apply(a, b ecs.Entity, now float32) MorphResult {
	sa := m.specMap.Get(a)
	sb := m.specMap.Get(b)
	if sa.Kind == sb.Kind {
		return MorphNone
	}
	if Beats(sa.Kind, sb.Kind) {
		return m.morph(sb, sa.Kind, now)
	}
	return m.morph(sa, sb.Kind, now)
}

// morph changes an entity's kind, stamps the cooldown ledger and swaps
// the skin. Morphing to the kind it already has leaves the ledger alone.
func (m *MorphEngine) morph(s *components.Species, to components.Kind, now float32) MorphResult {
	if s.Kind == to {
		return MorphNone
	}
	if now-s.MorphedAt < m.cooldown {
		return MorphGated
	}
	s.Kind = to
	s.MorphedAt = now
	s.Skin = m.skins.Skin(to)
	return MorphApplied
}
