package schema

import (
	"fmt"
	"math"
	"slices"
)

type options struct {
	strictElements  bool
	scalarAllowList bool
}

// Option configures how a built Schema validates payloads.
type Option func(*options)

// WithStrictElementTypes makes a single mismatching collection element fail
// validation. By default a collection fails its element-type check only when
// two or more elements mismatch.
func WithStrictElementTypes() Option {
	return func(o *options) {
		o.strictElements = true
	}
}

// WithScalarAllowList enforces allow-lists on scalar parameters. By default
// allow-lists are accepted for scalars at registration but only enforced on
// collection elements.
func WithScalarAllowList() Option {
	return func(o *options) {
		o.scalarAllowList = true
	}
}

// Builder accumulates parameter declarations. It is not safe for concurrent
// use; call Build to obtain a read-only Schema.
type Builder struct {
	order       []string
	constraints map[string]Constraint
	opts        options
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		constraints: make(map[string]Constraint),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// Register declares the rules for key. Inconsistent declarations are rejected
// with a *ConfigurationError and leave the builder unchanged. Registering an
// existing key replaces its rules but keeps its declaration position.
func (b *Builder) Register(key string, typ Kind, required bool, opts ...ParamOption) error {
	c := Constraint{Key: key, Type: typ, Required: required}
	for _, opt := range opts {
		opt(&c)
	}
	if err := check(c); err != nil {
		return err
	}
	if !typ.IsCollection() {
		c.Element = Invalid
	}

	if _, exists := b.constraints[key]; !exists {
		b.order = append(b.order, key)
	}
	b.constraints[key] = c
	return nil
}

// MustRegister is like Register but panics on a configuration error.
func (b *Builder) MustRegister(key string, typ Kind, required bool, opts ...ParamOption) *Builder {
	if err := b.Register(key, typ, required, opts...); err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of declared keys.
func (b *Builder) Len() int { return len(b.order) }

// Build freezes the current declarations. Later registrations on the builder
// do not affect the returned Schema.
func (b *Builder) Build() *Schema {
	constraints := make(map[string]Constraint, len(b.constraints))
	for key, c := range b.constraints {
		constraints[key] = c.clone()
	}
	return &Schema{
		order:       slices.Clone(b.order),
		constraints: constraints,
		opts:        b.opts,
	}
}

func check(c Constraint) error {
	if c.Key == "" {
		return configErr(c.Key, "key must not be empty")
	}
	if !c.Type.Valid() {
		return configErr(c.Key, fmt.Sprintf("unsupported type %s", c.Type))
	}

	if c.Type.IsCollection() && !c.Element.Valid() {
		return configErr(c.Key, fmt.Sprintf("%s parameters need an element type", c.Type))
	}

	target := c.Target()
	if c.Bounds != nil {
		if !target.IsNumeric() {
			return configErr(c.Key, fmt.Sprintf("bounds need a numeric type, got %s", target))
		}
		if math.IsNaN(c.Bounds.Min) || math.IsNaN(c.Bounds.Max) {
			return configErr(c.Key, "bounds must be numbers")
		}
		if c.Bounds.Min > c.Bounds.Max {
			return configErr(c.Key, fmt.Sprintf("min %v is greater than max %v", c.Bounds.Min, c.Bounds.Max))
		}
	}

	if c.Allowed != nil {
		if !target.IsEnumerable() {
			return configErr(c.Key, fmt.Sprintf("allowed values need a string, integer or boolean type, got %s", target))
		}
		if len(c.Allowed) == 0 {
			return configErr(c.Key, "allowed values must not be empty")
		}
		for _, v := range c.Allowed {
			if k := KindOf(v); !k.IsEnumerable() {
				return configErr(c.Key, fmt.Sprintf("allowed value %v has unsupported type %T", v, v))
			}
		}
	}
	return nil
}

func configErr(key, reason string) error {
	return &ConfigurationError{Key: key, Reason: reason}
}
