package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFailureJournalContract runs a suite of tests to verify that a
// FailureJournal implementation adheres to the interface contract.
func RunFailureJournalContract(t *testing.T, journal FailureJournal) {
	ctx := context.Background()
	schemaName := "contract-" + time.Now().Format("20060102150405.000000000")
	base := time.Now().UTC().Truncate(time.Millisecond)

	records := []FailureRecord{
		{ID: "r1", Schema: schemaName, Status: 400, Code: "BAD_PARAM_TYPE", Key: "age", Message: "first", RecordedAt: base},
		{ID: "r2", Schema: schemaName, Status: 500, Code: "UNKNOWN_PARAM", Key: "extra", Message: "second", RecordedAt: base.Add(time.Second)},
		{ID: "r3", Schema: schemaName, Status: 400, Code: "MISSING_REQUIRED_PARAM", Message: "third", RecordedAt: base.Add(2 * time.Second)},
	}

	t.Run("Record and Recent", func(t *testing.T) {
		for _, rec := range records {
			require.NoError(t, journal.Record(ctx, rec), "Record should not return error")
		}

		got, err := journal.Recent(ctx, schemaName, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "r3", got[0].ID, "newest record first")
		assert.Equal(t, "r1", got[2].ID)

		assert.Equal(t, records[1].Code, got[1].Code)
		assert.Equal(t, records[1].Key, got[1].Key)
		assert.Equal(t, records[1].Status, got[1].Status)
		assert.Equal(t, records[1].Message, got[1].Message)
		assert.True(t, records[1].RecordedAt.Equal(got[1].RecordedAt), "timestamps should survive storage")
	})

	t.Run("Limit", func(t *testing.T) {
		got, err := journal.Recent(ctx, schemaName, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r3", got[0].ID)
		assert.Equal(t, "r2", got[1].ID)
	})

	t.Run("Schemas Are Isolated", func(t *testing.T) {
		other := schemaName + "-other"
		require.NoError(t, journal.Record(ctx, FailureRecord{ID: "o1", Schema: other, Status: 400, RecordedAt: base}))

		got, err := journal.Recent(ctx, other, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "o1", got[0].ID)

		got, err = journal.Recent(ctx, schemaName, 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("Unknown Schema", func(t *testing.T) {
		got, err := journal.Recent(ctx, "never-recorded-"+schemaName, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Reused IDs Are Kept", func(t *testing.T) {
		reused := schemaName + "-reused"
		first := FailureRecord{ID: "req-1", Schema: reused, Status: 400, Code: "BAD_PARAM_TYPE", Key: "age", Message: "first", RecordedAt: base}
		second := FailureRecord{ID: "req-1", Schema: reused, Status: 400, Code: "BAD_PARAM_BOUNDARY", Key: "age", Message: "second", RecordedAt: base.Add(time.Second)}
		require.NoError(t, journal.Record(ctx, first))
		require.NoError(t, journal.Record(ctx, second))

		got, err := journal.Recent(ctx, reused, 0)
		require.NoError(t, err)
		require.Len(t, got, 2, "a reused request id must not overwrite an earlier failure")
		assert.Equal(t, "second", got[0].Message)
		assert.Equal(t, "first", got[1].Message)
	})
}
