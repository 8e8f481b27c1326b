// Package catalog keeps named, frozen schemas and runs validations against
// them with observability hooks attached.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/paramspec/internal/logging"
	"github.com/aretw0/paramspec/pkg/observability"
	"github.com/aretw0/paramspec/pkg/schema"
)

// ErrSchemaNotFound is returned when no schema is registered under a name.
var ErrSchemaNotFound = errors.New("schema not found")

// Catalog manages the available schemas. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
	hooks   observability.Hooks
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithHooks registers observability hooks.
func WithHooks(hooks observability.Hooks) Option {
	return func(c *Catalog) {
		c.hooks = hooks
	}
}

// WithLogger sets the logger used for registration messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		schemas: make(map[string]*schema.Schema),
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a schema under name.
// If a schema with the same name exists, it is overwritten.
func (c *Catalog) Register(name string, s *schema.Schema) error {
	if name == "" {
		return fmt.Errorf("catalog: schema name must not be empty")
	}
	if s == nil {
		return fmt.Errorf("catalog: schema %q is nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.schemas[name]; exists {
		c.logger.Warn("replacing schema", "schema", name)
	}
	c.schemas[name] = s
	c.logger.Debug("schema registered", "schema", name, "keys", s.Len())
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(name string, s *schema.Schema) {
	if err := c.Register(name, s); err != nil {
		panic(err)
	}
}

// Lookup returns the schema registered under name.
func (c *Catalog) Lookup(name string) (*schema.Schema, error) {
	c.mu.RLock()
	s, ok := c.schemas[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return s, nil
}

// Names returns the registered schema names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate looks up name and validates p against it, firing hooks with the
// outcome. Unknown schema names return ErrSchemaNotFound without firing hooks.
func (c *Catalog) Validate(ctx context.Context, name string, p *schema.Payload) (schema.Result, error) {
	s, err := c.Lookup(name)
	if err != nil {
		return schema.Result{}, err
	}

	start := c.now()
	res, err := s.Validate(p)
	end := c.now()

	if c.hooks.OnValidated != nil {
		c.hooks.OnValidated(ctx, &observability.ValidationEvent{
			Schema:    name,
			RequestID: observability.RequestIDFrom(ctx),
			Result:    res,
			Err:       err,
			Duration:  end.Sub(start),
			At:        end,
		})
	}

	if err != nil {
		return res, fmt.Errorf("schema %s: %w", name, err)
	}
	return res, nil
}
