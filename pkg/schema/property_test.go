package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// declaration is a generated parameter rule plus a value that satisfies it.
type declaration struct {
	key      string
	kind     Kind
	required bool
	opts     []ParamOption
	valid    any
}

func drawDeclaration(t *rapid.T, key string) declaration {
	d := declaration{
		key:      key,
		kind:     rapid.SampledFrom([]Kind{String, Integer, Float, Boolean, List}).Draw(t, key+"_kind"),
		required: rapid.Bool().Draw(t, key+"_required"),
	}

	switch d.kind {
	case String:
		allowed := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,6}`), 1, 4, rapid.ID[string]).Draw(t, key+"_allowed")
		d.opts = append(d.opts, WithAllowed(toAny(allowed)...))
		d.valid = rapid.SampledFrom(allowed).Draw(t, key+"_value")
	case Integer:
		lo := rapid.IntRange(-1000, 1000).Draw(t, key+"_min")
		hi := rapid.IntRange(lo, lo+1000).Draw(t, key+"_max")
		d.opts = append(d.opts, WithBounds(float64(lo), float64(hi)))
		d.valid = rapid.IntRange(lo, hi).Draw(t, key+"_value")
	case Float:
		lo := rapid.Float64Range(-100, 100).Draw(t, key+"_min")
		d.opts = append(d.opts, WithBounds(lo, lo+10))
		d.valid = rapid.Float64Range(lo, lo+10).Draw(t, key+"_value")
	case Boolean:
		d.valid = rapid.Bool().Draw(t, key+"_value")
	case List:
		d.opts = append(d.opts, WithElement(Integer), WithBounds(0, 9))
		d.valid = rapid.SliceOfN(rapid.IntRange(0, 9), 0, 5).Draw(t, key+"_value")
	}
	return d
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func drawSchema(t *rapid.T) ([]declaration, *Schema) {
	n := rapid.IntRange(1, 6).Draw(t, "n")
	b := NewBuilder(WithScalarAllowList(), WithStrictElementTypes())
	decls := make([]declaration, n)
	for i := range decls {
		decls[i] = drawDeclaration(t, fmt.Sprintf("k%d", i))
		b.MustRegister(decls[i].key, decls[i].kind, decls[i].required, decls[i].opts...)
	}
	return decls, b.Build()
}

func TestProperty_ConformingPayloadsPass(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		decls, s := drawSchema(rt)

		p := NewPayload()
		for _, d := range decls {
			if !d.required && rapid.Bool().Draw(rt, d.key+"_null") {
				p.Set(d.key, nil)
				continue
			}
			p.Set(d.key, d.valid)
		}

		res, err := s.Validate(p)
		require.NoError(rt, err)
		require.True(rt, res.OK(), "conforming payload rejected: %s", res)
	})
}

func TestProperty_RequiredNullAlwaysReported(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		decls, s := drawSchema(rt)

		target := rapid.IntRange(0, len(decls)-1).Draw(rt, "target")
		b := NewBuilder()
		for i, d := range decls {
			b.MustRegister(d.key, d.kind, d.required || i == target, d.opts...)
		}
		s = b.Build()

		p := NewPayload()
		for i, d := range decls {
			if i == target {
				p.Set(d.key, nil)
				continue
			}
			// garbage everywhere else must not mask the missing value
			p.Set(d.key, struct{}{})
		}

		res, err := s.Validate(p)
		require.NoError(rt, err)
		require.Equal(rt, StatusBadRequest, res.StatusCode())
		require.Equal(rt, CodeMissingRequiredParam, res.Code())
	})
}

func TestProperty_UnknownKeyIsServerError(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		decls, s := drawSchema(rt)

		p := NewPayload()
		for _, d := range decls {
			p.Set(d.key, d.valid)
		}
		p.Set("undeclared_"+rapid.StringMatching(`[a-z]{1,4}`).Draw(rt, "suffix"), 1)

		res, err := s.Validate(p)
		require.NoError(rt, err)
		require.Equal(rt, StatusInternalError, res.StatusCode())
		require.Equal(rt, CodeUnknownParam, res.Code())
	})
}

func TestProperty_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		decls, s := drawSchema(rt)

		p := NewPayload()
		for _, d := range decls {
			v := rapid.SampledFrom([]any{d.valid, nil, "x", 1, 2.5, true, []any{1, "a"}}).Draw(rt, d.key+"_any")
			p.Set(d.key, v)
		}

		first, err1 := s.Validate(p)
		second, err2 := s.Validate(p)
		require.Equal(rt, err1, err2)
		require.Equal(rt, first, second)
	})
}
