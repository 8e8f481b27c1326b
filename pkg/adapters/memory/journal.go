package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aretw0/paramspec/pkg/ports"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Journal implements ports.FailureJournal in memory.
// Records expire after the configured TTL. Safe for concurrent use.
type Journal struct {
	cache *gocache.Cache
}

type Option func(*journalOptions)

type journalOptions struct {
	ttl     time.Duration
	cleanup time.Duration
}

// WithTTL sets how long records are retained. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(o *journalOptions) {
		o.ttl = ttl
	}
}

// WithCleanupInterval sets how often expired records are purged.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *journalOptions) {
		o.cleanup = d
	}
}

// NewJournal creates a new in-memory journal.
func NewJournal(opts ...Option) *Journal {
	o := journalOptions{
		ttl:     time.Hour,
		cleanup: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ttl := o.ttl
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Journal{cache: gocache.New(ttl, o.cleanup)}
}

// Record stores the failure until it expires. Records sharing an ID are all
// kept, since IDs come from client request headers.
func (j *Journal) Record(ctx context.Context, rec ports.FailureRecord) error {
	j.cache.Set(rec.Schema+"\x00"+rec.ID+"\x00"+uuid.NewString(), rec, gocache.DefaultExpiration)
	return nil
}

// Recent returns unexpired failures for schemaName, newest first.
func (j *Journal) Recent(ctx context.Context, schemaName string, limit int) ([]ports.FailureRecord, error) {
	var out []ports.FailureRecord
	for _, item := range j.cache.Items() {
		rec, ok := item.Object.(ports.FailureRecord)
		if !ok || rec.Schema != schemaName {
			continue
		}
		out = append(out, rec)
	}

	slices.SortFunc(out, func(a, b ports.FailureRecord) int {
		if c := b.RecordedAt.Compare(a.RecordedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Flush drops every record.
func (j *Journal) Flush() {
	j.cache.Flush()
}
