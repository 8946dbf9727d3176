package eventstore

import (
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// storeError classifies a failure of the ledger itself. Ledger failures are
// warnings: the site build does not depend on them.
func storeError(msg string, cause error) error {
	return errors.EventStoreError(msg).WithCause(cause).Warning().Build()
}
