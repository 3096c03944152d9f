package game

import "github.com/mkord/rps-arena/config"

// config returns the loaded process-wide configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}
