package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Watch a game in the terminal UI"`
	Watch    WatchCmd         `cmd:"" help:"Print a game to stdout as it is played"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games instantly and report statistics"`
	Serve    ServeCmd         `cmd:"" help:"Stream games to browsers over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardwar"),
		kong.Description("Two automated players fight a game of War"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
