package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/motionmux/cmd"
	"github.com/lepinkainen/motionmux/types"
	"github.com/lepinkainen/motionmux/ui"
)

var Version = "dev"

type CLI struct {
	cmd.MuxCmd `embed:""`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("motionmux"),
		kong.Description("Merges a photo and video into a Microvideo-formatted Google Motion Photo"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := ui.NewLogger(os.Stderr, cli.Verbose)
	appCtx := &types.AppContext{Version: Version, Logger: logger}

	if err := cli.Run(appCtx); err != nil {
		logger.Error(err.Error())
		ctx.Exit(types.ExitFailure)
	}
}
