package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
)

// HUDData holds everything the top bar needs for one frame.
type HUDData struct {
	Counts  [components.KindCount]int
	Round   int
	Elapsed float64 // seconds since the round started
	Speed   int     // simulation steps per frame
	Paused  bool
	ArenaX  int32 // pills align to the arena's left edge
	ArenaW  int32
}

// HUD renders the per-kind count pills and round status above the arena.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the pill row and the status line.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme

	pillW := int32(96)
	pillH := int32(26)
	gap := int32(8)
	y := int32(6)

	x := data.ArenaX
	for _, k := range components.Kinds {
		rl.DrawRectangle(x, y, pillW, pillH, t.PillBg)
		rl.DrawRectangleLines(x, y, pillW, pillH, t.PillBorder)
		rl.DrawCircle(x+14, y+pillH/2, 7, KindColor(k))
		rl.DrawText(fmt.Sprintf("%s %d", k, data.Counts[k]), x+26, y+6, t.FontSize, t.ValueColor)
		x += pillW + gap
	}

	status := fmt.Sprintf("round %d  %.1fs  %dx", data.Round, data.Elapsed, data.Speed)
	if data.Paused {
		status += "  PAUSED"
	}
	w := rl.MeasureText(status, t.FontSize)
	rl.DrawText(status, data.ArenaX+data.ArenaW-w, y+6, t.FontSize, t.LabelColor)
}
