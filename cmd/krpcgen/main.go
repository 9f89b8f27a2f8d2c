package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/broady/krpcgen/cmd/krpcgen/internal/check"
	"github.com/broady/krpcgen/cmd/krpcgen/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Rust bindings from a schema directory."`
	Check   check.Cmd  `cmd:"" help:"Parse and generate in memory, report counts and warnings, write nothing."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("krpcgen"),
		kong.Description("Generate Rust client bindings from kRPC service descriptions."),
		kong.UsageOnError(),
	)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logger := log.Logger

	err := ctx.Run(&logger)
	ctx.FatalIfErrorf(err)
}
