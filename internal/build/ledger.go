package build

import (
	"context"

	"github.com/admin-esegames/esegames-site/internal/eventstore"
	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/observability"
)

// ledger appends build events to an optional store. Failures are logged and
// never change the build outcome.
type ledger struct {
	store eventstore.Store
}

func (l *ledger) append(ctx context.Context, event eventstore.Event, err error) {
	if l == nil || l.store == nil {
		return
	}
	if err == nil {
		err = l.store.Append(ctx, event)
	}
	if err != nil {
		observability.WarnContext(ctx, "Failed to record build event", logfields.Error(err))
	}
}
