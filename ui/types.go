// Package ui renders the HUD, side panel, winner overlay, and start
// screen. Widgets are immediate mode: each Draw call renders one frame
// and reports any clicked action.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
)

// Action identifies a panel button press.
type Action int

const (
	ActionNone Action = iota
	ActionRestart
	ActionReturnToStart
	ActionExit
)

// Theme holds UI styling constants for the light in-game chrome.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	TitleColor  rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	PillBg      rl.Color
	PillBorder  rl.Color

	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
	ButtonHeight   int32
}

// DefaultTheme returns the default light theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 236, G: 238, B: 241, A: 255},
		PanelBorder: rl.Color{R: 52, G: 58, B: 64, A: 255},
		TitleColor:  rl.Color{R: 33, G: 37, B: 41, A: 255},
		LabelColor:  rl.Color{R: 73, G: 80, B: 87, A: 255},
		ValueColor:  rl.Color{R: 33, G: 37, B: 41, A: 255},
		PillBg:      rl.Color{R: 248, G: 249, B: 250, A: 255},
		PillBorder:  rl.Color{R: 173, G: 181, B: 189, A: 255},

		Padding:        10,
		LineHeight:     18,
		FontSize:       14,
		HeaderFontSize: 18,
		ButtonHeight:   32,
	}
}

// kindColors tints HUD pills and the flat fallback sprites.
var kindColors = [components.KindCount]rl.Color{
	components.Rock:     {R: 116, G: 122, B: 130, A: 255},
	components.Paper:    {R: 222, G: 170, B: 61, A: 255},
	components.Scissors: {R: 197, G: 63, B: 74, A: 255},
}

// KindColor returns the display color for a kind.
func KindColor(k components.Kind) rl.Color {
	return kindColors[k]
}
