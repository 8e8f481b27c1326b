package ports

import (
	"context"
	"time"
)

// FailureRecord is the journal entry written for one rejected payload.
type FailureRecord struct {
	ID         string    `json:"id"`
	Schema     string    `json:"schema"`
	Status     int       `json:"status"`
	Code       string    `json:"code"`
	Key        string    `json:"key,omitempty"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recorded_at"`
}

// FailureJournal keeps recent validation failures so operators can inspect
// what clients are sending.
type FailureJournal interface {
	// Record appends a failure.
	Record(ctx context.Context, rec FailureRecord) error

	// Recent returns the failures recorded for schemaName, newest first.
	// A limit <= 0 returns every retained record. An unknown schema yields
	// an empty slice, not an error.
	Recent(ctx context.Context, schemaName string, limit int) ([]FailureRecord, error)
}
