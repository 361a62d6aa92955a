package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand
type Globals struct {
	Config string `kong:"default='blackjack.hcl',type='path',help='HCL config file (missing file uses defaults)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal UI"`
	Console  ConsoleCmd       `cmd:"" help:"Play with line-by-line prompts"`
	Serve    ServeCmd         `cmd:"" help:"Serve sessions over WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many sessions with a fixed strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack with upgrades, dealer difficulty and Russian roulette"),
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
