/*
Package paramspec validates loosely typed key/value payloads, such as decoded
JSON request bodies, against declared per-key rules.

A schema declares, for each key, an expected type, an element type for
collections, whether a null value is acceptable, numeric bounds and an
allow-list. Validating a payload yields a status (200, 400 or 500) and at most
one diagnostic from a fixed message catalog.

# Layout

  - pkg/schema: the declaration builder, the frozen Schema and Validate.
  - pkg/catalog: named schemas with observability hooks.
  - pkg/observability: logging, Prometheus, journal and tracing hooks.
  - pkg/adapters: HTTP middleware, MCP tools and failure journals.

# Usage

	s := schema.NewBuilder().
		MustRegister("age", schema.Integer, true, schema.WithBounds(0, 120)).
		MustRegister("tags", schema.List, false, schema.WithElement(schema.String)).
		Build()

	res, err := s.Validate(schema.NewPayload().Set("age", 150).Set("tags", nil))
	if err != nil {
		// the payload did not mention every declared key
	}
	fmt.Println(res) // 400 BAD_PARAM_BOUNDARY: Failed to check constrains ...

Payloads must mention every declared key, using null for absent optional
values. Keys the schema does not declare are reported as server errors.
*/
package paramspec
