// Package main runs batches of headless rounds across seeds and
// summarizes round durations and the winner distribution. Useful for
// checking how population size shifts battle length and balance.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/config"
	"github.com/mkord/rps-arena/game"
	"github.com/mkord/rps-arena/sprites"
)

// roundResult is one CSV row per completed round.
type roundResult struct {
	Seed        int64   `csv:"seed"`
	Round       int     `csv:"round"`
	PerKind     int     `csv:"per_kind"`
	Winner      string  `csv:"winner"`
	DurationSec float64 `csv:"duration_sec"`
	EndTick     int32   `csv:"end_tick"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file (empty = embedded defaults)")
	perKind := flag.Int("per-kind", 0, "Entities per kind (0 = config default)")
	seeds := flag.Int("seeds", 20, "Number of seeds to run")
	baseSeed := flag.Int64("base-seed", 42, "First seed; runs use base, base+1, ...")
	rounds := flag.Int("rounds", 3, "Rounds per seed")
	maxTicks := flag.Int("max-ticks", 1000000, "Tick cap per seed before giving up")
	outputPath := flag.String("output", "", "CSV file for per-round results (empty = summary only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Per-round slog output would drown the progress lines
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var results []roundResult
	var durations []float64
	var wins [components.KindCount]int
	timeouts := 0
	startTime := time.Now()

	for s := 0; s < *seeds; s++ {
		seed := *baseSeed + int64(s)
		g := game.NewGame(game.Options{
			PerKind: *perKind,
			Seed:    seed,
			Skins:   sprites.Flat{},
		})

		finished := 0
		roundStartSim := g.SimTime()
		for tick := 0; finished < *rounds && tick < *maxTicks; tick++ {
			g.UpdateHeadless()
			if g.RoundActive() {
				continue
			}

			winner, _ := g.Winner()
			duration := g.SimTime() - roundStartSim
			results = append(results, roundResult{
				Seed:        seed,
				Round:       g.Round(),
				PerKind:     g.PerKind(),
				Winner:      winner.String(),
				DurationSec: duration,
				EndTick:     g.Tick(),
			})
			durations = append(durations, duration)
			wins[winner]++
			finished++

			if finished < *rounds {
				g.Restart()
				roundStartSim = g.SimTime()
			}
		}
		if finished < *rounds {
			timeouts++
		}

		fmt.Printf("Seed %d/%d: %d rounds, elapsed %s\n",
			s+1, *seeds, finished, time.Since(startTime).Round(time.Second))
	}

	if len(durations) == 0 {
		fmt.Println("No rounds completed.")
		return
	}

	sort.Float64s(durations)
	mean := stat.Mean(durations, nil)
	p50 := stat.Quantile(0.50, stat.Empirical, durations, nil)
	p90 := stat.Quantile(0.90, stat.Empirical, durations, nil)

	fmt.Printf("\nCompleted %d rounds across %d seeds (%d seeds hit the tick cap)\n",
		len(durations), *seeds, timeouts)
	fmt.Printf("Duration: mean=%.1fs p50=%.1fs p90=%.1fs", mean, p50, p90)
	if len(durations) > 1 {
		fmt.Printf(" std=%.1fs", stat.StdDev(durations, nil))
	}
	fmt.Println()

	fmt.Println("Winners:")
	for _, k := range components.Kinds {
		share := 100 * float64(wins[k]) / float64(len(durations))
		fmt.Printf("  %-8s %4d (%.1f%%)\n", k, wins[k], share)
	}

	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()

		if err := gocsv.MarshalFile(&results, f); err != nil {
			log.Fatalf("failed to write results: %v", err)
		}
		fmt.Printf("\nPer-round results saved to: %s\n", *outputPath)
	}
}
