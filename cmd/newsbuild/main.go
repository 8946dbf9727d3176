package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/admin-esegames/esegames-site/cmd/newsbuild/commands"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("newsbuild"),
		kong.Description("Build the news section of a static site from a headless content API."),
		kong.UsageOnError(),
		commands.Vars(version.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Context: ctx, Logger: slog.Default(), Out: os.Stdout}, cli)
	stop()

	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
