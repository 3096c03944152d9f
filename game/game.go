package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/config"
	"github.com/mkord/rps-arena/sprites"
	"github.com/mkord/rps-arena/systems"
	"github.com/mkord/rps-arena/telemetry"
	"github.com/mkord/rps-arena/ui"
)

// Options configures a new game.
type Options struct {
	PerKind  int                      // entities per kind; <1 falls back to config
	Seed     int64                    // drives spawning and recovery headings
	Skins    sprites.Provider         // nil uses flat placeholder skins
	Output   *telemetry.OutputManager // nil disables file output
	LogStats bool                     // log window and perf stats via slog
}

// Game holds the complete battle state: the ECS world, the simulation
// systems, telemetry and the UI widgets.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// Entity mapper - the 4 components every entity carries
	entityMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Species,
	]
	entityFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Species,
	]

	// Systems
	arena    systems.Arena
	grid     *systems.SpatialGrid
	movement *systems.MovementSystem
	morphs   *systems.MorphEngine
	resolver *systems.Resolver

	// Skins
	skins sprites.Provider

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// UI
	hud     *ui.HUD
	panel   *ui.Panel
	overlay *ui.WinnerOverlay

	// Round state
	perKind     int
	iconSize    int32
	tick        int32
	simTime     float64
	roundStart  float64
	round       int
	roundActive bool
	winner      components.Kind
	hasWinner   bool

	counts      [components.KindCount]int
	wins        [components.KindCount]int
	entityCount int

	paused bool
	speed  int // simulation steps per frame (1-10)
}

// NewGame creates a game and spawns the first round.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	perKind := opts.PerKind
	if perKind < 1 {
		perKind = cfg.Population.PerKind
	}
	skins := opts.Skins
	if skins == nil {
		skins = sprites.Flat{}
	}

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		seed:  opts.Seed,
		entityMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Species,
		](world),
		entityFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Species,
		](world),

		skins:         skins,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		outputManager: opts.Output,
		logStats:      opts.LogStats,

		perKind: perKind,
		speed:   1,
	}

	// Arena is a centered square in the playfield left of the panel
	g.arena = systems.NewArena(cfg.Derived.PlayfieldW, cfg.Screen.Height, cfg.Arena.Margin)
	g.movement = systems.NewMovementSystem(world, g.arena)
	g.morphs = systems.NewMorphEngine(world, skins, float32(cfg.Morph.Cooldown))
	g.resolver = systems.NewResolver(world, systems.CollisionTuning{
		Restitution:    float32(cfg.Physics.Restitution),
		SeparationBias: float32(cfg.Physics.SeparationBias),
		MinSpeed:       float32(cfg.Physics.MinSpeed),
	}, g.morphs, g.rng)

	g.hud = ui.NewHUD()
	g.panel = ui.NewPanel(int32(cfg.Derived.PlayfieldW), int32(cfg.Screen.PanelWidth), int32(cfg.Screen.Height))
	g.overlay = ui.NewWinnerOverlay()

	g.startRound()

	return g
}

// Tick returns the number of fixed steps simulated so far.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns the simulation time in seconds.
func (g *Game) SimTime() float64 { return g.simTime }

// Round returns the current round number, starting at 1.
func (g *Game) Round() int { return g.round }

// RoundActive reports whether the current round is still being fought.
func (g *Game) RoundActive() bool { return g.roundActive }

// Winner returns the winning kind of the finished round. The bool is
// false while the round is still running.
func (g *Game) Winner() (components.Kind, bool) { return g.winner, g.hasWinner }

// Wins returns the rounds won per kind across the session.
func (g *Game) Wins() [components.KindCount]int { return g.wins }

// Counts returns the current population per kind.
func (g *Game) Counts() [components.KindCount]int { return g.counts }

// PerKind returns the configured entities per kind for this game.
func (g *Game) PerKind() int { return g.perKind }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// PerfStats returns per-phase timing aggregates over the rolling
// sample window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Unload releases skin textures. Call before closing the window.
func (g *Game) Unload() {
	g.skins.Unload()
}
