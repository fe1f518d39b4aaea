package main

import (
	"github.com/alecthomas/kong"
)

// Globals are flags shared by every command
type Globals struct {
	Config string `help:"Path to the YAML or TOML config file." short:"c" default:"config.yaml" type:"path"`
}

type CLI struct {
	Globals

	Serve ServeCmd `cmd:"" default:"1" help:"Serve the upload form and HTTP API."`
	Watch WatchCmd `cmd:"" help:"Process MP3 files dropped into the inbox folder."`
	Run   RunCmd   `cmd:"" help:"Generate minutes for a single MP3 file."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("minutes"),
		kong.Description("Meeting minutes generator: MP3 recording in, formatted minutes out."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
