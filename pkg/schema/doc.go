// Package schema validates loosely-typed key/value payloads, such as decoded
// JSON request bodies, against declared parameter rules.
//
// Declarations are accumulated on a Builder and frozen into a Schema:
//
//	b := schema.NewBuilder()
//	b.MustRegister("age", schema.Integer, true, schema.WithBounds(0, 120))
//	b.MustRegister("role", schema.String, true, schema.WithAllowed("admin", "user"))
//	b.MustRegister("tags", schema.List, false, schema.WithElement(schema.String))
//	s := b.Build()
//
// Payloads keep their key order, which decides which key is reported first:
//
//	p := schema.NewPayload().
//	    Set("age", 150).
//	    Set("role", "admin").
//	    Set("tags", nil)
//
//	res, err := s.Validate(p)
//	if err != nil {
//	    // the payload omitted declared keys: a programming error
//	}
//	if !res.OK() {
//	    fmt.Println(res.StatusCode(), res.Message())
//	}
//
// Registration rejects inconsistent declarations with a *ConfigurationError.
// Validation never returns data problems as errors; they come back as a
// Result carrying a status code (400 or 500) and a catalog message.
//
// Two behaviors are kept for compatibility and can be tightened per schema:
// a collection fails its element-type check only when at least two elements
// mismatch (WithStrictElementTypes lowers that to one), and allow-lists are
// only enforced on collection elements (WithScalarAllowList extends them to
// scalar values).
//
// This package has no dependencies beyond the Go standard library.
package schema
