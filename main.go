package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/statix-dev/precompress/internal/cli"
)

// CLI represents the command-line interface structure.
var CLI struct {
	Verbose bool `short:"v" help:"Print per-file progress."`

	Compress    cli.CompressCmd    `cmd:"" default:"withargs" help:"Compress static files in a directory tree, idempotently."`
	FindOrphans cli.FindOrphansCmd `cmd:"" name:"find-orphans" help:"List compressed artifacts whose source file is gone."`
	Init        cli.InitCmd        `cmd:"" help:"Write a starter .precompress.toml."`
}

// Version information (injected by GoReleaser via ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("precompress"),
		kong.Description("Keep compressed companions of a static site's files in sync with their sources."),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if err := ctx.Run(cli.NewLogger(CLI.Verbose)); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
