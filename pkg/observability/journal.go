package observability

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aretw0/paramspec/pkg/ports"
	"github.com/google/uuid"
)

// JournalHooks records every rejected payload in journal. Passing payloads
// and setup errors are not recorded. Journal errors are logged, never
// propagated to the validation caller.
func JournalHooks(journal ports.FailureJournal, logger *slog.Logger) Hooks {
	return Hooks{
		OnValidated: func(ctx context.Context, e *ValidationEvent) {
			f, failed := e.Result.Failure()
			if e.Err != nil || !failed {
				return
			}

			id := e.RequestID
			if id == "" {
				id = uuid.NewString()
			}

			key := f.Key
			if len(f.Keys) > 0 {
				key = strings.Join(f.Keys, ",")
			}

			rec := ports.FailureRecord{
				ID:         id,
				Schema:     e.Schema,
				Status:     f.Status,
				Code:       string(f.Code),
				Key:        key,
				Message:    f.Message,
				RecordedAt: e.At,
			}
			if err := journal.Record(ctx, rec); err != nil {
				logger.WarnContext(ctx, "failed to record validation failure", "schema", e.Schema, "error", err)
			}
		},
	}
}
