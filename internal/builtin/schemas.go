// Package builtin holds the demo schemas served by the paramspec binary.
package builtin

import (
	"github.com/aretw0/paramspec/internal/config"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/schema"
)

// Signup checks a user registration request.
func Signup(opts ...schema.Option) *schema.Schema {
	return schema.NewBuilder(opts...).
		MustRegister("username", schema.String, true).
		MustRegister("age", schema.Integer, true, schema.WithBounds(13, 120)).
		MustRegister("role", schema.String, true, schema.WithAllowed("admin", "editor", "viewer")).
		MustRegister("tags", schema.List, false, schema.WithElement(schema.String)).
		MustRegister("newsletter", schema.Boolean, false).
		Build()
}

// Order checks a shop order.
func Order(opts ...schema.Option) *schema.Schema {
	return schema.NewBuilder(opts...).
		MustRegister("sku", schema.String, true).
		MustRegister("quantity", schema.Integer, true, schema.WithBounds(1, 100)).
		MustRegister("unit_price", schema.Float, true, schema.WithBounds(0, 10000)).
		MustRegister("sizes", schema.List, false, schema.WithElement(schema.String), schema.WithAllowed("S", "M", "L", "XL")).
		MustRegister("ratings", schema.List, false, schema.WithElement(schema.Integer), schema.WithBounds(1, 5)).
		MustRegister("express", schema.Boolean, false).
		Build()
}

// Geo checks a located measurement.
func Geo(opts ...schema.Option) *schema.Schema {
	return schema.NewBuilder(opts...).
		MustRegister("position", schema.List, true, schema.WithElement(schema.Float), schema.WithBounds(-180, 180)).
		MustRegister("altitude", schema.Float, false, schema.WithBounds(-500, 9000)).
		MustRegister("levels", schema.List, false, schema.WithElement(schema.Integer), schema.WithAllowed(0, 1, 2, 3)).
		Build()
}

// Options maps the validation config onto schema options.
func Options(cfg config.ValidationConfig) []schema.Option {
	var opts []schema.Option
	if cfg.StrictElementTypes {
		opts = append(opts, schema.WithStrictElementTypes())
	}
	if cfg.ScalarAllowList {
		opts = append(opts, schema.WithScalarAllowList())
	}
	return opts
}

// Register adds every built-in schema to c.
func Register(c *catalog.Catalog, cfg config.ValidationConfig) error {
	opts := Options(cfg)
	for name, build := range map[string]func(...schema.Option) *schema.Schema{
		"signup": Signup,
		"order":  Order,
		"geo":    Geo,
	} {
		if err := c.Register(name, build(opts...)); err != nil {
			return err
		}
	}
	return nil
}
