package middleware

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/paramspec/pkg/ports"
)

// Mask replaces redacted values in journal messages.
const Mask = "***"

// valueMarker precedes the offending value in every diagnostic that echoes
// one.
const valueMarker = "but got"

type redactMiddleware struct {
	next     ports.FailureJournal
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that hides the offending value in
// records whose key matches one of the patterns, so secrets sent by clients
// are never persisted.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.FailureJournal) ports.FailureJournal {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Record(ctx context.Context, rec ports.FailureRecord) error {
	if m.matches(rec.Key) {
		rec.Message = maskValue(rec.Message)
	}
	return m.next.Record(ctx, rec)
}

func (m *redactMiddleware) Recent(ctx context.Context, schemaName string, limit int) ([]ports.FailureRecord, error) {
	return m.next.Recent(ctx, schemaName, limit)
}

// matches checks every key of a comma separated list.
func (m *redactMiddleware) matches(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range strings.Split(key, ",") {
		for _, p := range m.patterns {
			if p.MatchString(k) {
				return true
			}
		}
	}
	return false
}

func maskValue(msg string) string {
	i := strings.LastIndex(msg, valueMarker)
	if i < 0 {
		return msg
	}
	return msg[:i] + valueMarker + ": " + Mask
}
