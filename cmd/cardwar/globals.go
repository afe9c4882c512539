package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/cardwar/internal/config"
)

// Globals are flags shared by every command. Flags win over the config file.
type Globals struct {
	Config   string        `short:"c" default:"cardwar.hcl" help:"HCL config file (missing file means defaults)"`
	Seed     *int64        `help:"Deterministic base seed; game n uses seed+n"`
	Interval time.Duration `short:"i" help:"Time between rounds (overrides config)"`
	Players  []string      `help:"Two player names, comma separated"`
	Debug    bool          `short:"d" help:"Enable debug logging"`
	NoColor  bool          `help:"Disable colour output"`
}

// Load reads the config file and applies flag overrides
func (g *Globals) Load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	if g.Seed != nil {
		cfg.Game.Seed = *g.Seed
	}
	if g.Interval != 0 {
		cfg.Game.Interval = g.Interval
	}
	if len(g.Players) > 0 {
		if len(g.Players) != 2 {
			return nil, fmt.Errorf("--players needs exactly 2 names, got %d", len(g.Players))
		}
		cfg.Game.Players = [2]string{g.Players[0], g.Players[1]}
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}
