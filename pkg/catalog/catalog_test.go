package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/observability"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ageSchema() *schema.Schema {
	return schema.NewBuilder().
		MustRegister("age", schema.Integer, true, schema.WithBounds(0, 120)).
		Build()
}

func TestCatalog_RegisterAndLookup(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Register("people", ageSchema()))
	require.NoError(t, c.Register("alpha", ageSchema()))

	s, err := c.Lookup("people")
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, s.Keys())

	assert.Equal(t, []string{"alpha", "people"}, c.Names())

	_, err = c.Lookup("missing")
	assert.ErrorIs(t, err, catalog.ErrSchemaNotFound)
}

func TestCatalog_RegisterErrors(t *testing.T) {
	c := catalog.New()
	assert.Error(t, c.Register("", ageSchema()))
	assert.Error(t, c.Register("x", nil))
	assert.Panics(t, func() { c.MustRegister("", ageSchema()) })
}

func TestCatalog_Validate(t *testing.T) {
	var events []*observability.ValidationEvent
	c := catalog.New(catalog.WithHooks(observability.Hooks{
		OnValidated: func(ctx context.Context, e *observability.ValidationEvent) {
			events = append(events, e)
		},
	}))
	c.MustRegister("people", ageSchema())

	ctx := observability.WithRequestID(context.Background(), "req-1")

	res, err := c.Validate(ctx, "people", schema.NewPayload().Set("age", 150))
	require.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode())
	assert.Equal(t, schema.CodeBadParamBoundary, res.Code())

	res, err = c.Validate(ctx, "people", schema.NewPayload().Set("age", 30))
	require.NoError(t, err)
	assert.True(t, res.OK())

	_, err = c.Validate(ctx, "people", schema.NewPayload())
	assert.ErrorIs(t, err, schema.ErrValidationSetup)

	_, err = c.Validate(ctx, "missing", schema.NewPayload())
	assert.ErrorIs(t, err, catalog.ErrSchemaNotFound)

	require.Len(t, events, 3, "unknown schemas do not fire hooks")
	assert.Equal(t, "people", events[0].Schema)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "BAD_PARAM_BOUNDARY", events[0].Label())
	assert.Equal(t, "OK", events[1].Label())
	assert.Error(t, events[2].Err)
	assert.False(t, events[2].At.IsZero())
}

func TestCatalog_ConcurrentValidate(t *testing.T) {
	c := catalog.New()
	c.MustRegister("people", ageSchema())

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(age int) {
			defer wg.Done()
			res, err := c.Validate(context.Background(), "people", schema.NewPayload().Set("age", age))
			assert.NoError(t, err)
			assert.Equal(t, age <= 120, res.OK())
		}(i * 5)
	}
	wg.Wait()
}
