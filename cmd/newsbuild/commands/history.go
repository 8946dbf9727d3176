package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/admin-esegames/esegames-site/internal/eventstore"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	EventsDB string `name:"events-db" required:"" type:"path" help:"SQLite database written by 'build --events-db'"`
	Limit    int    `short:"n" default:"10" help:"Number of builds to show (0 for all)"`
	JSON     bool   `name:"json" help:"Print builds as JSON"`
}

func (h *HistoryCmd) Run(g *Global) error {
	if h.Limit < 0 {
		return errors.ValidationError("--limit must not be negative").
			WithContext("limit", h.Limit).
			Build()
	}
	if _, err := os.Stat(h.EventsDB); err != nil {
		return errors.NotFoundError("events database not found").
			WithCause(err).
			WithContext("path", h.EventsDB).
			Build()
	}
	store, err := eventstore.NewSQLiteStore(h.EventsDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	projection := eventstore.NewBuildHistoryProjection(store)
	if err := projection.Rebuild(g.context()); err != nil {
		return err
	}
	builds := projection.GetHistory(h.Limit)

	if h.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(builds); err != nil {
			return errors.InternalError("failed to encode build history").WithCause(err).Build()
		}
		return nil
	}
	return writeHistoryTable(g.out(), builds)
}

func writeHistoryTable(w io.Writer, builds []eventstore.BuildSummary) error {
	if len(builds) == 0 {
		_, err := fmt.Fprintln(w, "No builds recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tBUILD\tSTATUS\tENVIRONMENT\tENTRIES\tFILES\tDURATION\tERROR")
	for _, b := range builds {
		duration := "-"
		if b.CompletedAt != nil {
			duration = b.Duration.Truncate(time.Millisecond).String()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			b.StartedAt.Local().Format(time.DateTime),
			b.BuildID,
			b.Status,
			dash(b.Environment),
			b.Entries,
			artifactCounts(b.Artifacts),
			duration,
			dash(errorText(b)),
		)
	}
	return tw.Flush()
}

// artifactCounts renders kind counts as "article=3,feed=1".
func artifactCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}

func errorText(b eventstore.BuildSummary) string {
	if b.ErrorMessage == "" {
		return ""
	}
	if b.ErrorStage == "" {
		return b.ErrorMessage
	}
	return b.ErrorStage + ": " + b.ErrorMessage
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
