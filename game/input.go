package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	// Enter is a shortcut for the Restart button once a round is decided;
	// mid-round restarts go through the panel so a stray key can't wipe
	// a battle.
	if rl.IsKeyPressed(rl.KeyEnter) && g.hasWinner {
		g.Restart()
	}
}
