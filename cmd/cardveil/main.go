package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Run the table service"`
	Client  ClientCmd        `cmd:"" help:"Join a table as a player"`
	Eval    EvalCmd          `cmd:"" help:"Score a poker hand from card notation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardveil"),
		kong.Description("Heads-up hold'em with confidential dealing and showdown"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
