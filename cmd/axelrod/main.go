// Command axelrod runs iterated Prisoner's Dilemma tournaments in the style
// of Axelrod's classic experiments.
package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug bool `short:"d" help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Run        RunCmd           `cmd:"" help:"Run a round-robin tournament"`
	Strategies StrategiesCmd    `cmd:"" help:"List available strategies"`
	List       ListCmd          `cmd:"" help:"List tournaments stored in a database"`
	Export     ExportCmd        `cmd:"" help:"Export a stored tournament to CSV"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("axelrod"),
		kong.Description("Iterated Prisoner's Dilemma tournament simulator"),
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
