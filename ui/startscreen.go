package ui

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StartScreen collects the per-kind population count before a battle.
type StartScreen struct {
	renderer *Renderer
	input    string
	fallback int
	width    int32
	height   int32
}

// NewStartScreen creates a start screen defaulting to fallback per kind.
func NewStartScreen(fallback int, width, height int32) *StartScreen {
	return &StartScreen{renderer: NewRenderer(), fallback: fallback, width: width, height: height}
}

// Reset clears the typed count.
func (s *StartScreen) Reset() {
	s.input = ""
}

// PerKind returns the entered count, or the fallback when the field is
// empty or unparsable.
func (s *StartScreen) PerKind() int {
	if s.input == "" {
		return s.fallback
	}
	n, err := strconv.Atoi(s.input)
	if err != nil || n < 1 {
		return s.fallback
	}
	return n
}

// Frame handles one frame of input and drawing between BeginDrawing and
// EndDrawing. It reports true when the battle should start.
func (s *StartScreen) Frame() bool {
	// Digit entry, capped at 3 characters
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= '0' && ch <= '9' && len(s.input) < 3 {
			s.input += string(ch)
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}

	start := rl.IsKeyPressed(rl.KeyEnter)

	t := s.renderer.Theme

	title := "Rock Paper Scissors"
	tw := rl.MeasureText(title, 48)
	rl.DrawText(title, s.width/2-tw/2, s.height/3-60, 48, t.TitleColor)

	prompt := "entities per kind"
	pw := rl.MeasureText(prompt, t.FontSize)
	rl.DrawText(prompt, s.width/2-pw/2, s.height/3+10, t.FontSize, t.LabelColor)

	boxW := int32(140)
	boxH := int32(44)
	bx := s.width/2 - boxW/2
	by := s.height/3 + 34
	rl.DrawRectangle(bx, by, boxW, boxH, t.PillBg)
	rl.DrawRectangleLines(bx, by, boxW, boxH, t.PanelBorder)

	shown := s.input
	if shown == "" {
		shown = strconv.Itoa(s.fallback)
	}
	sw := rl.MeasureText(shown, 28)
	rl.DrawText(shown, s.width/2-sw/2, by+8, 28, t.ValueColor)

	if s.renderer.Button(s.width/2-70, by+boxH+20, 140, "Start") {
		start = true
	}

	hint := fmt.Sprintf("type a count (1-999), empty uses %d, enter to start", s.fallback)
	hw := rl.MeasureText(hint, t.FontSize)
	rl.DrawText(hint, s.width/2-hw/2, by+boxH+20+t.ButtonHeight+18, t.FontSize, t.LabelColor)

	return start
}
