package game

import (
	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/telemetry"
)

// Update advances the simulation for one rendered frame. Frame time is
// clamped so a dragged window or a long stall cannot blow up one
// integration step; the speed setting repeats whole steps.
func (g *Game) Update(frameDT float32) {
	g.handleInput()

	if g.paused || !g.roundActive {
		return
	}

	if maxDT := float32(g.config().Physics.MaxFrameDT); frameDT > maxDT {
		frameDT = maxDT
	}
	if frameDT <= 0 {
		return
	}

	for i := 0; i < g.speed; i++ {
		g.simulationStep(frameDT)
		if !g.roundActive {
			break
		}
	}
}

// UpdateHeadless advances exactly one fixed step. Given the same seed
// and per-kind count, headless runs are reproducible tick for tick.
func (g *Game) UpdateHeadless() {
	if !g.roundActive {
		return
	}
	g.simulationStep(g.config().Derived.DT32)
}

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep(dt float32) {
	g.perfCollector.StartTick()

	// 1. Integrate positions and bounce off the walls
	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	bounces := g.movement.Update(g.world, dt)

	// 2. Rebuild the spatial index
	g.perfCollector.StartPhase(telemetry.PhaseSpatialGrid)
	g.updateSpatialGrid()

	// 3. Narrow phase: physics plus the dominance rules
	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	outcome := g.resolver.ResolveAll(g.grid, float32(g.simTime))

	// 4. Recount the population
	g.perfCollector.StartPhase(telemetry.PhaseCensus)
	g.updateCensus()

	// 5. Telemetry accumulation and windowed flush
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordWallBounces(bounces)
	g.collector.RecordCollisions(outcome.Collisions)
	g.collector.RecordMorphs(outcome.Morphs, outcome.Gated)

	g.tick++
	g.simTime += float64(dt)

	g.flushTelemetry()

	g.perfCollector.EndTick()

	if winner, won := g.checkWin(); won {
		g.finishRound(winner)
	}
}

// updateSpatialGrid rebuilds the spatial index.
func (g *Game) updateSpatialGrid() {
	g.grid.Clear()

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, _, _ := query.Get()
		g.grid.Insert(entity, pos.X, pos.Y)
	}
}

// updateCensus recounts the population per kind.
func (g *Game) updateCensus() {
	var counts [components.KindCount]int
	total := 0

	query := g.entityFilter.Query()
	for query.Next() {
		_, _, _, spec := query.Get()
		counts[spec.Kind]++
		total++
	}

	g.counts = counts
	g.entityCount = total
}

// checkWin reports the winning kind once every entity shares it.
func (g *Game) checkWin() (components.Kind, bool) {
	if g.entityCount == 0 {
		return 0, false
	}
	for _, k := range components.Kinds {
		if g.counts[k] == g.entityCount {
			return k, true
		}
	}
	return 0, false
}
