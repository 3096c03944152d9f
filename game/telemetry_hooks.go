package game

import (
	"log/slog"
	"math"
)

// flushTelemetry flushes the stats window once its duration has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	// Sample the speed distribution at the window boundary
	speeds := g.sampleSpeeds()

	stats := g.collector.Flush(g.tick, g.simTime, g.counts, speeds)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleSpeeds collects every entity's speed for the distribution stats.
func (g *Game) sampleSpeeds() []float64 {
	speeds := make([]float64, 0, g.entityCount)

	query := g.entityFilter.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		speeds = append(speeds, math.Hypot(float64(vel.X), float64(vel.Y)))
	}

	return speeds
}
