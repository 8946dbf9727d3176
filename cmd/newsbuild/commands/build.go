package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/admin-esegames/esegames-site/internal/build"
	"github.com/admin-esegames/esegames-site/internal/config"
	"github.com/admin-esegames/esegames-site/internal/eventstore"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/metrics"
	"github.com/admin-esegames/esegames-site/internal/observability"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Site root the pages are written below (overrides output.directory)"`
	Template    string `short:"t" help:"Listing template, relative to the site root (overrides output.listing_template)"`
	BaseURL     string `name:"base-url" help:"Public base URL of the site (overrides site.base_url)"`
	Environment string `short:"e" help:"Content environment tried before master and main"`
	DryRun      bool   `name:"dry-run" help:"Fetch and render without writing any file"`
	MetricsFile string `name:"metrics-file" type:"path" help:"Write Prometheus metrics to this file after the build"`
	EventsDB    string `name:"events-db" type:"path" help:"Record build events in this SQLite database"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "load config").Build()
	}
	b.applyOverrides(cfg)
	return RunBuild(g, cfg, BuildOptions{
		DryRun:      b.DryRun,
		MetricsFile: b.MetricsFile,
		EventsDB:    b.EventsDB,
	})
}

// applyOverrides lets command line flags win over file and environment values.
func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Template != "" {
		cfg.Output.ListingTemplate = b.Template
		cfg.Output.ListingURL = ""
	}
	if b.BaseURL != "" {
		cfg.Site.BaseURL = b.BaseURL
	}
	if b.Environment != "" {
		cfg.Content.Environment = b.Environment
	}
	config.ApplyDefaults(cfg)
}

// BuildOptions are the optional outputs of a build run.
type BuildOptions struct {
	DryRun      bool
	MetricsFile string
	EventsDB    string
}

// RunBuild executes one build and prints its summary.
func RunBuild(g *Global, cfg *config.Config, opts BuildOptions) error {
	ctx := g.context()
	out := g.out()

	svc := build.NewService()

	var registry *prometheus.Registry
	if opts.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		svc.WithRecorder(metrics.NewPrometheusRecorder(registry))
	}

	if opts.EventsDB != "" {
		store, err := eventstore.NewSQLiteStore(opts.EventsDB)
		if err != nil {
			// Ledger failures never fail the build.
			observability.WarnContext(ctx, "Build events will not be recorded", logfields.Error(err))
		} else {
			defer func() {
				if cerr := store.Close(); cerr != nil {
					slog.Warn("Failed to close events database", logfields.Error(cerr))
				}
			}()
			svc.WithEventStore(store)
		}
	}

	if opts.DryRun {
		_, _ = fmt.Fprintln(out, "Dry run: nothing will be written")
	}
	report, err := svc.Run(ctx, build.Request{Config: cfg, DryRun: opts.DryRun})

	if registry != nil {
		if werr := metrics.WriteTextfile(opts.MetricsFile, registry); werr != nil {
			observability.WarnContext(ctx, "Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(werr))
		}
	}
	if report != nil {
		printReport(out, report)
	}
	return err
}

func printReport(w io.Writer, r *build.Report) {
	verb := "Wrote"
	if r.DryRun {
		verb = "Would write"
	}
	for _, p := range r.Paths {
		_, _ = fmt.Fprintf(w, "%s %s\n", verb, p)
	}
	if len(r.Warnings) > 0 {
		msgs := make([]string, 0, len(r.Warnings))
		for _, warning := range r.Warnings {
			msgs = append(msgs, warning.Error())
		}
		_, _ = fmt.Fprintf(w, "Warnings:\n  %s\n", strings.Join(msgs, "\n  "))
	}
	_, _ = fmt.Fprintln(w, r.Summary())
}
