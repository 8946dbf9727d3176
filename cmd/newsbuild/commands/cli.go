package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/admin-esegames/esegames-site/internal/config"
	"github.com/admin-esegames/esegames-site/internal/observability"
)

// Global is shared state handed to every command.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	// Out receives user-facing output; logs go to stderr.
	Out io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"${config_file}"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Fetch news entries and write the listing, article pages, sitemap, and feed"`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration file"`
	History HistoryCmd `cmd:"" help:"Show recent builds recorded in the events database"`
}

// Vars are the kong interpolation variables the CLI definition needs.
func Vars(versionLine string) kong.Vars {
	return kong.Vars{
		"version":     versionLine,
		"config_file": config.DefaultConfigFile,
	}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	observability.SetupLogging(os.Stderr, c.Verbose)
	return nil
}
