package telemetry

import (
	"log/slog"
	"time"
)

// Phase indexes one stage of the fixed simulation step order.
type Phase uint8

const (
	PhaseMovement Phase = iota
	PhaseSpatialGrid
	PhaseCollision
	PhaseCensus
	PhaseTelemetry

	// PhaseCount is the number of step phases.
	PhaseCount = 5
)

// Phases lists the phases in step order for iteration.
var Phases = [PhaseCount]Phase{
	PhaseMovement,
	PhaseSpatialGrid,
	PhaseCollision,
	PhaseCensus,
	PhaseTelemetry,
}

var phaseNames = [PhaseCount]string{
	PhaseMovement:    "movement",
	PhaseSpatialGrid: "spatial_grid",
	PhaseCollision:   "collision",
	PhaseCensus:      "census",
	PhaseTelemetry:   "telemetry",
}

// String returns the snake_case phase name used in log attributes and
// CSV columns.
func (p Phase) String() string { return phaseNames[p] }

// tickSample is one tick's total duration and its per-phase split.
type tickSample struct {
	total  time.Duration
	phases [PhaseCount]time.Duration
}

// PerfCollector accumulates per-tick phase timings into a fixed ring.
// With the ring sized to the tick rate a Stats snapshot covers roughly
// the last second of simulation.
type PerfCollector struct {
	ring   []tickSample
	next   int
	filled int

	tickStart  time.Time
	phaseStart time.Time
	active     Phase
	inPhase    bool
	current    [PhaseCount]time.Duration

	prevFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{ring: make([]tickSample, windowSize)}
}

// StartTick marks the beginning of a simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = [PhaseCount]time.Duration{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	if p.inPhase {
		p.current[p.active] += now.Sub(p.phaseStart)
	}
	p.active = ph
	p.inPhase = true
	p.phaseStart = now
}

// EndTick closes the running phase and commits the tick sample to the
// ring, evicting the oldest sample once the ring is full.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.inPhase {
		p.current[p.active] += now.Sub(p.phaseStart)
		p.inPhase = false
	}

	p.ring[p.next] = tickSample{total: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame notes a frame boundary for FPS derivation in windowed
// mode. Headless runs never call it, leaving FPS at zero.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.prevFrame.IsZero() {
		p.frameDur = now.Sub(p.prevFrame)
	}
	p.prevFrame = now
}

// PerfStats aggregates tick timing over the collector's ring.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	// Per-phase average duration and share of the tick, indexed by Phase.
	PhaseAvg [PhaseCount]time.Duration
	PhasePct [PhaseCount]float64

	TicksPerSecond float64

	// Frame timing, windowed mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the ring. It does not
// consume them; successive calls over the same ticks agree.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{FrameDuration: p.frameDur}
	if p.frameDur > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.filled == 0 {
		return stats
	}

	var totalTick time.Duration
	var phaseSum [PhaseCount]time.Duration
	for i := 0; i < p.filled; i++ {
		s := p.ring[i]
		totalTick += s.total
		if i == 0 || s.total < stats.MinTick {
			stats.MinTick = s.total
		}
		if s.total > stats.MaxTick {
			stats.MaxTick = s.total
		}
		for _, ph := range Phases {
			phaseSum[ph] += s.phases[ph]
		}
	}

	stats.AvgTick = totalTick / time.Duration(p.filled)
	for _, ph := range Phases {
		stats.PhaseAvg[ph] = phaseSum[ph] / time.Duration(p.filled)
		if stats.AvgTick > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgTick) * 100
		}
	}
	if stats.AvgTick > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTick)
	}
	return stats
}

// LogStats logs a one-line perf summary. Phases below 0.1% of the tick
// are omitted to keep the line short.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"min_tick_us", s.MinTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV flattens PerfStats for CSV export.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	MovementPct    float64 `csv:"movement_pct"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	CollisionPct   float64 `csv:"collision_pct"`
	CensusPct      float64 `csv:"census_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV converts the stats to a flat CSV row ending at the given tick.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		MovementPct:    s.PhasePct[PhaseMovement],
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		CollisionPct:   s.PhasePct[PhaseCollision],
		CensusPct:      s.PhasePct[PhaseCensus],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
