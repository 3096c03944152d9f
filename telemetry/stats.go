package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Population counts at window end
	RockCount     int `csv:"rock"`
	PaperCount    int `csv:"paper"`
	ScissorsCount int `csv:"scissors"`

	// Events during window
	Collisions  int `csv:"collisions"`
	Morphs      int `csv:"morphs"`
	MorphsGated int `csv:"morphs_gated"`
	WallBounces int `csv:"wall_bounces"`

	CollisionsPerSec float64 `csv:"collisions_per_sec"`
	MorphsPerSec     float64 `csv:"morphs_per_sec"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// RoundRecord summarizes one completed round.
type RoundRecord struct {
	Round       int     `csv:"round"`
	Winner      string  `csv:"winner"`
	DurationSec float64 `csv:"duration_sec"`
	EndTick     int32   `csv:"end_tick"`
	PerKind     int     `csv:"per_kind"`
	IconSize    int     `csv:"icon_size"`
}

// ComputeSpeedStats returns mean, sample standard deviation, and the
// empirical 10th/50th/90th percentiles of the given speeds. Empty input
// yields all zeros.
func ComputeSpeedStats(speeds []float64) (mean, std, p10, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(w.WindowEndTick)),
		slog.Float64("sim_time", w.SimTimeSec),
		slog.Int("rock", w.RockCount),
		slog.Int("paper", w.PaperCount),
		slog.Int("scissors", w.ScissorsCount),
		slog.Int("collisions", w.Collisions),
		slog.Int("morphs", w.Morphs),
		slog.Int("morphs_gated", w.MorphsGated),
		slog.Int("wall_bounces", w.WallBounces),
		slog.Float64("speed_mean", w.SpeedMean),
	)
}

// LogStats emits the window to the default logger at info level.
func (w WindowStats) LogStats() {
	slog.Info("window",
		"tick", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"rock", w.RockCount,
		"paper", w.PaperCount,
		"scissors", w.ScissorsCount,
		"collisions", w.Collisions,
		"morphs", w.Morphs,
		"morphs_gated", w.MorphsGated,
		"wall_bounces", w.WallBounces,
		"collisions_per_sec", w.CollisionsPerSec,
		"speed_mean", w.SpeedMean,
		"speed_p50", w.SpeedP50,
	)
}
