package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
)

// WinnerOverlayData describes the end-of-round overlay.
type WinnerOverlayData struct {
	Winner  components.Kind
	Texture rl.Texture2D // zero texture falls back to a tinted disc
	Arena   rl.Rectangle
}

// WinnerOverlay renders the faded winner icon behind the arena frame.
type WinnerOverlay struct {
	renderer *Renderer
}

// NewWinnerOverlay creates a winner overlay renderer.
func NewWinnerOverlay() *WinnerOverlay {
	return &WinnerOverlay{renderer: NewRenderer()}
}

// Draw renders the overlay centered in the arena bounds.
func (o *WinnerOverlay) Draw(data WinnerOverlayData) {
	side := data.Arena.Width * 0.6
	cx := data.Arena.X + data.Arena.Width/2
	cy := data.Arena.Y + data.Arena.Height/2

	if data.Texture.ID != 0 {
		src := rl.Rectangle{Width: float32(data.Texture.Width), Height: float32(data.Texture.Height)}
		dst := rl.Rectangle{X: cx - side/2, Y: cy - side/2, Width: side, Height: side}
		rl.DrawTexturePro(data.Texture, src, dst, rl.Vector2{}, 0, rl.Fade(rl.White, 0.30))
	} else {
		rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, side/2, rl.Fade(KindColor(data.Winner), 0.30))
	}

	msg := fmt.Sprintf("%s wins the round", data.Winner)
	w := rl.MeasureText(msg, 32)
	rl.DrawText(msg, int32(cx)-w/2, int32(cy+side/2)+10, 32, rl.Fade(KindColor(data.Winner), 0.85))
}
