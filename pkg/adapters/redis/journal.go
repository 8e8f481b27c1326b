package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/paramspec/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.FailureJournal using Redis.
// Each schema owns a sorted set scored by record time in milliseconds.
type Journal struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	maxLen int64
}

type Option func(*Journal)

// WithTTL drops records older than ttl. Zero keeps them until trimmed by length.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// WithPrefix sets the key prefix for journal sets.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithMaxLen caps how many records are kept per schema. Zero disables the cap.
func WithMaxLen(n int64) Option {
	return func(j *Journal) {
		j.maxLen = n
	}
}

// New creates a new Redis journal with options.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: "paramspec:failures:",
		maxLen: 1000,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

func (j *Journal) key(schemaName string) string {
	return j.prefix + schemaName
}

// Record appends the failure to the schema's set and trims old entries.
func (j *Journal) Record(ctx context.Context, rec ports.FailureRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal failure record: %w", err)
	}

	key := j.key(rec.Schema)
	pipe := j.client.Pipeline()

	pipe.ZAdd(ctx, key, backend.Z{
		Score:  float64(rec.RecordedAt.UnixMilli()),
		Member: data,
	})

	if j.maxLen > 0 {
		// keep the newest maxLen members
		pipe.ZRemRangeByRank(ctx, key, 0, -(j.maxLen + 1))
	}
	if j.ttl > 0 {
		pipe.Expire(ctx, key, j.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record failure in redis: %w", err)
	}
	return nil
}

// Recent returns failures for schemaName, newest first.
func (j *Journal) Recent(ctx context.Context, schemaName string, limit int) ([]ports.FailureRecord, error) {
	key := j.key(schemaName)

	// Lazy cleanup of records older than the TTL.
	if j.ttl > 0 {
		cutoff := time.Now().Add(-j.ttl).UnixMilli()
		err := j.client.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10)).Err()
		if err != nil {
			return nil, fmt.Errorf("failed to prune expired failures: %w", err)
		}
	}

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	members, err := j.client.ZRevRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list failures: %w", err)
	}

	out := make([]ports.FailureRecord, 0, len(members))
	for _, m := range members {
		var rec ports.FailureRecord
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal failure record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}

// Ping checks that the server is reachable.
func (j *Journal) Ping(ctx context.Context) error {
	if err := j.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
