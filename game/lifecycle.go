package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/systems"
	"github.com/mkord/rps-arena/telemetry"
)

// startRound wipes the arena and spawns a fresh population. Icon size,
// collision radius and the grid cell size all derive from the per-kind
// count, so the skins and the grid are rebuilt here.
func (g *Game) startRound() {
	cfg := g.config()

	g.clearEntities()

	g.round++
	g.roundActive = true
	g.hasWinner = false
	g.roundStart = g.simTime

	g.iconSize = int32(cfg.Icons.SizeFor(g.perKind))
	if err := g.skins.Build(g.iconSize); err != nil {
		slog.Error("failed to build skins", "error", err, "size", g.iconSize)
	}

	// Cell size must cover one entity diameter or the broad phase
	// misses touching circles in diagonal cells
	cell := float32(cfg.Physics.CellScale) * float32(g.iconSize)
	if minCell := float32(cfg.Physics.MinCellSize); cell < minCell {
		cell = minCell
	}
	g.grid = systems.NewSpatialGrid(g.arena, cell)

	radius := float32(cfg.Population.RadiusScale) * float32(g.iconSize)
	half := float32(g.iconSize) / 2
	pad := half + float32(cfg.Population.SpawnMargin)

	for _, k := range components.Kinds {
		for i := 0; i < g.perKind; i++ {
			g.spawnEntity(k, radius, half, pad)
		}
		g.counts[k] = g.perKind
	}
	g.entityCount = g.perKind * components.KindCount

	g.collector.Reset(g.simTime)

	slog.Info("round_start",
		"round", g.round,
		"per_kind", g.perKind,
		"icon_size", g.iconSize,
		"cell_size", cell,
		"seed", g.seed,
	)
}

// spawnEntity creates one entity of the given kind at a random arena
// position with a random heading and a random speed. The morph ledger
// is backdated so the first contact is never gated.
func (g *Game) spawnEntity(kind components.Kind, radius, half, pad float32) ecs.Entity {
	cfg := g.config()

	x, y := g.arena.RandomPoint(g.rng, pad)
	ang := g.rng.Float64() * 2 * math.Pi
	spd := cfg.Population.SpeedMin + g.rng.Float64()*(cfg.Population.SpeedMax-cfg.Population.SpeedMin)

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: float32(math.Cos(ang) * spd),
		Y: float32(math.Sin(ang) * spd),
	}
	side := int32(2 * half)
	body := components.Body{Radius: radius, HalfW: half, HalfH: half, Box: components.Box{W: side, H: side}}
	body.SyncBox(pos)
	spec := components.Species{
		Kind:      kind,
		MorphedAt: float32(g.simTime - cfg.Morph.Cooldown),
		Skin:      g.skins.Skin(kind),
	}

	return g.entityMapper.NewEntity(&pos, &vel, &body, &spec)
}

// clearEntities removes every entity. Two passes, removal must not run
// during query iteration.
func (g *Game) clearEntities() {
	var toRemove []ecs.Entity

	query := g.entityFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.entityMapper.Remove(e)
	}

	g.counts = [components.KindCount]int{}
	g.entityCount = 0
}

// Restart abandons the current round and starts the next one. Wins are
// kept; only the arena population resets.
func (g *Game) Restart() {
	g.startRound()
}

// finishRound records the win and freezes the round. The survivors stay
// visible until the next round starts.
func (g *Game) finishRound(winner components.Kind) {
	g.roundActive = false
	g.hasWinner = true
	g.winner = winner
	g.wins[winner]++

	duration := g.simTime - g.roundStart

	if g.outputManager != nil {
		rec := telemetry.RoundRecord{
			Round:       g.round,
			Winner:      winner.String(),
			DurationSec: duration,
			EndTick:     g.tick,
			PerKind:     g.perKind,
			IconSize:    int(g.iconSize),
		}
		if err := g.outputManager.WriteRound(rec); err != nil {
			slog.Error("failed to write round record", "error", err)
		}
	}

	slog.Info("round_won",
		"round", g.round,
		"winner", winner.String(),
		"duration_sec", duration,
		"end_tick", g.tick,
	)
}
