package schema

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Valid(t *testing.T) {
	b := NewBuilder()

	require.NoError(t, b.Register("name", String, true))
	require.NoError(t, b.Register("age", Integer, true, WithBounds(0, 120)))
	require.NoError(t, b.Register("ratio", Float, false, WithBounds(0, 1)))
	require.NoError(t, b.Register("role", String, true, WithAllowed("admin", "user")))
	require.NoError(t, b.Register("active", Boolean, false, WithAllowed(true)))
	require.NoError(t, b.Register("tags", List, false, WithElement(String), WithAllowed("a", "b")))
	require.NoError(t, b.Register("scores", Tuple, false, WithElement(Integer), WithBounds(0, 10)))
	require.NoError(t, b.Register("ids", Set, false, WithElement(Integer)))

	assert.Equal(t, 8, b.Len())
}

func TestRegister_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		kind Kind
		opts []ParamOption
	}{
		{"empty key", "", String, nil},
		{"invalid kind", "x", Invalid, nil},
		{"unknown kind", "x", Kind(77), nil},
		{"list without element", "tags", List, nil},
		{"set without element", "ids", Set, nil},
		{"tuple without element", "pair", Tuple, nil},
		{"bounds on string", "name", String, []ParamOption{WithBounds(0, 1)}},
		{"bounds on boolean", "flag", Boolean, []ParamOption{WithBounds(0, 1)}},
		{"bounds on string elements", "tags", List, []ParamOption{WithElement(String), WithBounds(0, 1)}},
		{"min above max", "age", Integer, []ParamOption{WithBounds(10, 1)}},
		{"NaN bound", "age", Integer, []ParamOption{WithBounds(math.NaN(), 1)}},
		{"allow-list on float", "ratio", Float, []ParamOption{WithAllowed(1, 2)}},
		{"allow-list on float elements", "ratios", List, []ParamOption{WithElement(Float), WithAllowed(1)}},
		{"empty allow-list", "role", String, []ParamOption{WithAllowed()}},
		{"allow-list with float value", "level", Integer, []ParamOption{WithAllowed(1, 2.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			err := b.Register(tt.key, tt.kind, true, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Key)
			assert.Zero(t, b.Len(), "failed registration must not store the key")
		})
	}
}

func TestRegister_OverwriteKeepsPosition(t *testing.T) {
	b := NewBuilder()
	b.MustRegister("a", String, false).
		MustRegister("b", Integer, false).
		MustRegister("a", Integer, true, WithBounds(1, 2))

	s := b.Build()
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	c, ok := s.Constraint("a")
	require.True(t, ok)
	assert.Equal(t, Integer, c.Type)
	assert.True(t, c.Required)
	require.NotNil(t, c.Bounds)
	assert.Equal(t, Bounds{Min: 1, Max: 2}, *c.Bounds)
}

func TestRegister_ScalarDropsElement(t *testing.T) {
	s := NewBuilder().MustRegister("name", String, false, WithElement(Integer)).Build()

	c, ok := s.Constraint("name")
	require.True(t, ok)
	assert.Equal(t, Invalid, c.Element)
}

func TestMustRegister_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().MustRegister("tags", List, false)
	})
}

func TestBuild_IsolatedFromBuilder(t *testing.T) {
	b := NewBuilder()
	b.MustRegister("role", String, true, WithAllowed("admin"))
	s := b.Build()

	b.MustRegister("extra", String, false)
	b.MustRegister("role", Integer, false)

	assert.Equal(t, []string{"role"}, s.Keys())
	c, _ := s.Constraint("role")
	assert.Equal(t, String, c.Type)

	// copies handed out must not leak back into the schema
	c.Allowed[0] = "root"
	again, _ := s.Constraint("role")
	assert.Equal(t, []any{"admin"}, again.Allowed)
}

func TestConstraint_String(t *testing.T) {
	s := NewBuilder().
		MustRegister("tags", List, true, WithElement(Integer), WithBounds(0, 9), WithAllowed(1, 2)).
		Build()

	c, _ := s.Constraint("tags")
	assert.Equal(t, "tags: list<integer> required [0, 9] {1,2}", c.String())
	assert.Equal(t, Integer, c.Target())
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{Key: "tags", Reason: "list parameters need an element type"}
	assert.Equal(t, `schema: parameter "tags": list parameters need an element type`, err.Error())

	err = &ConfigurationError{Reason: "boom"}
	assert.Equal(t, "schema: boom", err.Error())
}
