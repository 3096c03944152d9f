// Package components defines ECS components for the simulation.
package components

import "fmt"

// Kind identifies one of the three competing species.
type Kind uint8

const (
	Rock Kind = iota
	Paper
	Scissors
)

// KindCount is the number of distinct kinds.
const KindCount = 3

// Kinds lists every kind in enum order, for iteration and spawn cycling.
var Kinds = [KindCount]Kind{Rock, Paper, Scissors}

// String returns the lowercase kind name used in config, assets and telemetry.
func (k Kind) String() string {
	switch k {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}
	return "unknown"
}

// ParseKind maps a kind name to its enum value. "stone" is accepted as an
// alias for Rock, so asset keys may use either name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "rock", "stone":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// Position represents an entity's world position (circle center).
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}

// Box is an axis-aligned integer footprint used for drawing.
type Box struct {
	X, Y int32
	W, H int32
}

// Body holds the collision circle and the cached sprite footprint.
// Radius is derived from the icon size at spawn or resize and stays
// fixed otherwise; a morph never touches it.
type Body struct {
	Radius float32
	HalfW  float32
	HalfH  float32
	Box    Box
}

// SyncBox refreshes the cached footprint after the center moved.
func (b *Body) SyncBox(p Position) {
	b.Box.X = int32(p.X - b.HalfW)
	b.Box.Y = int32(p.Y - b.HalfH)
}

// Skin is an opaque renderable handle issued by a skin provider.
// Only the provider that issued it can interpret the ID.
type Skin struct {
	ID uint32
}

// Species carries the mutable kind identity and morph bookkeeping.
// MorphedAt is the simulation time of the last kind change in seconds;
// spawns backdate it so the first morph is never gated.
type Species struct {
	Kind      Kind
	MorphedAt float32
	Skin      Skin
}
