package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Score   ScoreCmd         `cmd:"" help:"Score and explain hands"`
	Calling CallingCmd       `cmd:"" help:"List the tiles that would complete a calling hand"`
	Batch   BatchCmd         `cmd:"" help:"Score a file of hands concurrently"`
	Rules   RulesCmd         `cmd:"" help:"List the rules of a ruleset"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mjscore"),
		kong.Description("Mah jongg hand scoring engine"),
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
