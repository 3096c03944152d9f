package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
	"github.com/mkord/rps-arena/ui"
)

var kindLetters = [components.KindCount]string{"R", "P", "S"}

const (
	arenaRoundness = 0.04
	arenaSegments  = 12
)

// Draw renders one frame and reports the panel action, if any.
func (g *Game) Draw() ui.Action {
	cfg := g.config()

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	g.drawArena(float32(cfg.Arena.Border))

	// Winner icon fills the playfield behind the surviving entities
	if g.hasWinner {
		g.overlay.Draw(ui.WinnerOverlayData{
			Winner:  g.winner,
			Texture: g.skins.Texture(g.skins.Skin(g.winner)),
			Arena: rl.Rectangle{
				X:      g.arena.X,
				Y:      g.arena.Y,
				Width:  g.arena.Width,
				Height: g.arena.Height,
			},
		})
	}

	g.drawEntities()

	g.hud.Draw(ui.HUDData{
		Counts:  g.counts,
		Round:   g.round,
		Elapsed: g.simTime - g.roundStart,
		Speed:   g.speed,
		Paused:  g.paused,
		ArenaX:  int32(g.arena.X),
		ArenaW:  int32(g.arena.Width),
	})

	action := g.panel.Draw(ui.PanelData{
		Wins:      g.wins,
		Round:     g.round,
		PerKind:   g.perKind,
		IconSize:  g.iconSize,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		RoundOver: g.hasWinner,
		Winner:    g.winner,
	})

	rl.EndDrawing()

	g.perfCollector.RecordFrame()

	return action
}

// drawArena draws the playfield as a rounded panel, border ring under
// the fill so corners stay clean.
func (g *Game) drawArena(border float32) {
	inner := rl.Rectangle{
		X:      g.arena.X,
		Y:      g.arena.Y,
		Width:  g.arena.Width,
		Height: g.arena.Height,
	}
	outer := rl.Rectangle{
		X:      inner.X - border,
		Y:      inner.Y - border,
		Width:  inner.Width + 2*border,
		Height: inner.Height + 2*border,
	}
	rl.DrawRectangleRounded(outer, arenaRoundness, arenaSegments, rl.Color{R: 52, G: 58, B: 64, A: 255})
	rl.DrawRectangleRounded(inner, arenaRoundness, arenaSegments, rl.White)
}

// drawEntities renders every entity: textured when the skin provider
// has pixels, tinted disc with the kind initial otherwise.
func (g *Game) drawEntities() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, body, spec := query.Get()

		tex := g.skins.Texture(spec.Skin)
		if tex.ID != 0 {
			rl.DrawTexture(tex, body.Box.X, body.Box.Y, rl.White)
			continue
		}

		color := ui.KindColor(spec.Kind)
		rl.DrawCircleV(rl.Vector2{X: pos.X, Y: pos.Y}, body.Radius, color)

		letter := kindLetters[spec.Kind]
		fontSize := g.iconSize / 2
		if fontSize < 10 {
			fontSize = 10
		}
		w := rl.MeasureText(letter, fontSize)
		rl.DrawText(letter, int32(pos.X)-w/2, int32(pos.Y)-fontSize/2, fontSize, rl.White)
	}
}
