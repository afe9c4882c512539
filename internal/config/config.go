package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cardwar/internal/game"
)

// DefaultFile is the config file read when none is given
const DefaultFile = "cardwar.hcl"

// Config represents the complete configuration
type Config struct {
	Game   GameSettings
	Server ServerSettings
	Log    LogSettings
}

// GameSettings controls how games are played
type GameSettings struct {
	Interval time.Duration
	Seed     int64
	Players  [2]string
}

// ServerSettings controls the spectator server
type ServerSettings struct {
	Address string
	Port    int
}

// LogSettings controls logging
type LogSettings struct {
	Level string
	File  string
}

// file mirrors the HCL layout; every block is optional
type file struct {
	Game   *gameBlock   `hcl:"game,block"`
	Server *serverBlock `hcl:"server,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type gameBlock struct {
	Interval string   `hcl:"interval,optional"`
	Seed     int64    `hcl:"seed,optional"`
	Players  []string `hcl:"players,optional"`
}

type serverBlock struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Interval: 2 * time.Second,
			Seed:     0,
			Players:  [2]string{game.DefaultPlayer1, game.DefaultPlayer2},
		},
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, filling unset values with defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()

	if b := raw.Game; b != nil {
		if b.Interval != "" {
			d, err := time.ParseDuration(b.Interval)
			if err != nil {
				return nil, fmt.Errorf("game.interval: %w", err)
			}
			config.Game.Interval = d
		}
		config.Game.Seed = b.Seed
		if b.Players != nil {
			if len(b.Players) != 2 {
				return nil, fmt.Errorf("game.players: want exactly 2 names, got %d", len(b.Players))
			}
			config.Game.Players = [2]string{b.Players[0], b.Players[1]}
		}
	}

	if b := raw.Server; b != nil {
		if b.Address != "" {
			config.Server.Address = b.Address
		}
		if b.Port != 0 {
			config.Server.Port = b.Port
		}
	}

	if b := raw.Log; b != nil {
		if b.Level != "" {
			config.Log.Level = b.Level
		}
		config.Log.File = b.File
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Interval <= 0 {
		return fmt.Errorf("invalid interval: %s", c.Game.Interval)
	}

	for i, name := range c.Game.Players {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("player %d: name must not be empty", i+1)
		}
	}
	if c.Game.Players[0] == c.Game.Players[1] {
		return fmt.Errorf("players must have different names, both are %q", c.Game.Players[0])
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
