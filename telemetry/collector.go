package telemetry

import "github.com/mkord/rps-arena/components"

// Collector accumulates simulation events into fixed-duration windows of
// simulation time and produces WindowStats at each window boundary.
type Collector struct {
	windowDurationSec float64
	windowStart       float64

	// Event counters for current window
	collisions  int
	morphs      int
	morphsGated int
	wallBounces int
}

// NewCollector creates a collector with the given window length in
// simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordCollisions adds resolved collision pairs to the current window.
func (c *Collector) RecordCollisions(n int) {
	c.collisions += n
}

// RecordMorphs adds applied and cooldown-gated morphs to the current window.
func (c *Collector) RecordMorphs(applied, gated int) {
	c.morphs += applied
	c.morphsGated += gated
}

// RecordWallBounces adds wall contacts to the current window.
func (c *Collector) RecordWallBounces(n int) {
	c.wallBounces += n
}

// ShouldFlush reports whether the current window is over at time now.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats for the closing window and resets the
// counters. counts are the live per-kind populations and speeds the
// entity speeds sampled at the window boundary.
func (c *Collector) Flush(tick int32, now float64, counts [components.KindCount]int, speeds []float64) WindowStats {
	span := now - c.windowStart
	var collisionsPerSec, morphsPerSec float64
	if span > 0 {
		collisionsPerSec = float64(c.collisions) / span
		morphsPerSec = float64(c.morphs) / span
	}

	mean, std, p10, p50, p90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    now,

		RockCount:     counts[components.Rock],
		PaperCount:    counts[components.Paper],
		ScissorsCount: counts[components.Scissors],

		Collisions:  c.collisions,
		Morphs:      c.morphs,
		MorphsGated: c.morphsGated,
		WallBounces: c.wallBounces,

		CollisionsPerSec: collisionsPerSec,
		MorphsPerSec:     morphsPerSec,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	c.Reset(now)
	return stats
}

// Reset zeroes the counters and starts a fresh window at time now.
// Round restarts call this so windows never span two rounds.
func (c *Collector) Reset(now float64) {
	c.windowStart = now
	c.collisions = 0
	c.morphs = 0
	c.morphsGated = 0
	c.wallBounces = 0
}
