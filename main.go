package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/config"
	"github.com/mkord/rps-arena/game"
	"github.com/mkord/rps-arena/sprites"
	"github.com/mkord/rps-arena/telemetry"
	"github.com/mkord/rps-arena/ui"
)

func main() {
	// .env is optional and only pre-seeds flag defaults; flags win
	_ = godotenv.Load()

	// CLI flags
	configPath := flag.String("config", envStr("RPS_CONFIG", ""), "Path to config.yaml (empty = embedded defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	perKind := flag.Int("per-kind", 0, "Entities per kind (0 = config default; windowed mode asks on the start screen)")
	seed := flag.Int64("seed", envInt64("RPS_SEED", 0), "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Headless: stop after N ticks (0 = unlimited)")
	maxRounds := flag.Int("max-rounds", 1, "Headless: stop after N finished rounds (0 = unlimited)")
	outputDir := flag.String("output-dir", envStr("RPS_OUTPUT_DIR", ""), "Output directory for CSV telemetry and the config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window and perf stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var output *telemetry.OutputManager
	if *outputDir != "" {
		var err error
		output, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		defer output.Close()

		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if *headless {
		runHeadless(rngSeed, *perKind, *maxTicks, *maxRounds, output, *logStats)
		return
	}
	runWindowed(rngSeed, *perKind, output, *logStats)
}

// runHeadless drives fixed steps with no window. Rounds chain until
// maxRounds finish or maxTicks elapse.
func runHeadless(seed int64, perKind, maxTicks, maxRounds int, output *telemetry.OutputManager, logStats bool) {
	g := game.NewGame(game.Options{
		PerKind:  perKind,
		Seed:     seed,
		Skins:    sprites.Flat{},
		Output:   output,
		LogStats: logStats,
	})
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", seed,
		"per_kind", g.PerKind(),
		"max_ticks", maxTicks,
		"max_rounds", maxRounds,
	)

	rounds := 0
	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
		if !g.RoundActive() {
			rounds++
			if maxRounds > 0 && rounds >= maxRounds {
				break
			}
			g.Restart()
		}
	}

	g.PerfStats().LogStats()

	wins := g.Wins()
	slog.Info("simulation finished",
		"rounds", rounds,
		"ticks", g.Tick(),
		"sim_time_sec", g.SimTime(),
		"rock_wins", wins[components.Rock],
		"paper_wins", wins[components.Paper],
		"scissors_wins", wins[components.Scissors],
	)
}

// runWindowed owns the raylib window and the start-screen/battle loop.
// Returning to the start screen keeps the window and the texture cache;
// each new battle gets a fresh seed so replays differ.
func runWindowed(seed int64, perKindFlag int, output *telemetry.OutputManager, logStats bool) {
	cfg := config.Cfg()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "RPS Arena")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var skins sprites.Provider
	if cache, err := sprites.NewCache(cfg.Icons.Assets); err != nil {
		slog.Error("failed to load icon assets, using flat skins", "error", err)
	} else {
		skins = cache
		defer cache.Unload()
	}

	// -per-kind pre-seeds the start screen; without it an empty entry means 1.
	fallback := perKindFlag
	if fallback < 1 {
		fallback = 1
	}
	start := ui.NewStartScreen(fallback, int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	var g *game.Game
	gameSeed := seed

	for !rl.WindowShouldClose() {
		if g == nil {
			rl.BeginDrawing()
			rl.ClearBackground(rl.RayWhite)
			begin := start.Frame()
			rl.EndDrawing()

			if begin {
				g = game.NewGame(game.Options{
					PerKind:  start.PerKind(),
					Seed:     gameSeed,
					Skins:    skins,
					Output:   output,
					LogStats: logStats,
				})
				gameSeed++
			}
			continue
		}

		g.Update(rl.GetFrameTime())

		switch g.Draw() {
		case ui.ActionRestart:
			g.Restart()
		case ui.ActionReturnToStart:
			g = nil
			start.Reset()
		case ui.ActionExit:
			return
		}
	}
}

// envStr returns an environment variable's value, or fallback when the
// variable is unset or empty.
func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt64 parses an environment variable as int64, falling back when
// unset or unparsable.
func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
