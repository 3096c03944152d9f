package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
)

// PanelData holds the side panel contents for one frame.
type PanelData struct {
	Wins      [components.KindCount]int
	Round     int
	PerKind   int
	IconSize  int32
	FPS       int32
	Paused    bool
	RoundOver bool
	Winner    components.Kind
}

// Panel renders the right-hand control panel with the scoreboard and
// the round controls.
type Panel struct {
	renderer *Renderer
	x        int32
	width    int32
	height   int32
}

// NewPanel creates a panel anchored at x spanning width by height.
func NewPanel(x, width, height int32) *Panel {
	return &Panel{renderer: NewRenderer(), x: x, width: width, height: height}
}

// Draw renders the panel and reports the clicked action, if any.
func (p *Panel) Draw(data PanelData) Action {
	r := p.renderer
	t := r.Theme
	pad := t.Padding
	inner := p.width - pad*2

	r.DrawPanel(p.x, 0, p.width, p.height)

	x := p.x + pad
	y := pad

	y = r.DrawSectionHeader(x, y, "RPS Arena")
	y = r.DrawLabelValue(x, y, "round", fmt.Sprintf("%d", data.Round), inner)
	y = r.DrawLabelValue(x, y, "per kind", fmt.Sprintf("%d", data.PerKind), inner)
	y = r.DrawLabelValue(x, y, "icon px", fmt.Sprintf("%d", data.IconSize), inner)
	y = r.DrawLabelValue(x, y, "fps", fmt.Sprintf("%d", data.FPS), inner)
	y += t.LineHeight / 2

	y = r.DrawSectionHeader(x, y, "Wins")
	for _, k := range components.Kinds {
		rl.DrawCircle(x+7, y+7, 6, KindColor(k))
		y = r.DrawLabelValue(x+18, y, k.String(), fmt.Sprintf("%d", data.Wins[k]), inner-18)
	}
	y += t.LineHeight / 2

	switch {
	case data.RoundOver:
		rl.DrawText(fmt.Sprintf("%s wins!", data.Winner), x, y, t.HeaderFontSize, KindColor(data.Winner))
	case data.Paused:
		rl.DrawText("paused", x, y, t.HeaderFontSize, t.LabelColor)
	}
	y += t.LineHeight + 10

	action := ActionNone
	if r.Button(x, y, inner, "Restart") {
		action = ActionRestart
	}
	y += t.ButtonHeight + 8
	if r.Button(x, y, inner, "Start Screen") {
		action = ActionReturnToStart
	}
	y += t.ButtonHeight + 8
	if r.Button(x, y, inner, "Exit") {
		action = ActionExit
	}

	legend := []string{"space  pause", "< >    speed", "enter  restart"}
	ly := p.height - pad - int32(len(legend))*t.LineHeight
	for _, line := range legend {
		rl.DrawText(line, x, ly, t.FontSize, t.LabelColor)
		ly += t.LineHeight
	}

	return action
}
