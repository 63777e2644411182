package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitecfg/cmd/sitecfg/commands"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("sitecfg"),
		kong.Description("Generate the Starlight site configuration for the documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := kctx.Run(&commands.Global{Ctx: ctx, Out: os.Stdout, Logger: slog.Default()}, &cli)
	stop()
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
