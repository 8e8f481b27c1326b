package builtin

import (
	"context"
	"testing"

	"github.com/aretw0/paramspec/internal/config"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	c := catalog.New()
	require.NoError(t, Register(c, config.ValidationConfig{}))
	assert.Equal(t, []string{"geo", "order", "signup"}, c.Names())
}

func TestSignup(t *testing.T) {
	p := schema.NewPayload().
		Set("username", "ada").
		Set("age", 36).
		Set("role", "root").
		Set("tags", []any{"math"}).
		Set("newsletter", nil)

	res, err := Signup().Validate(p)
	require.NoError(t, err)
	assert.True(t, res.OK(), "scalar allow-lists are not enforced by default")

	res, err = Signup(Options(config.ValidationConfig{ScalarAllowList: true})...).Validate(p)
	require.NoError(t, err)
	assert.Equal(t, schema.CodeFailedConstrainsParam, res.Code())
}

func TestOrder(t *testing.T) {
	p := schema.NewPayload().
		Set("sku", "A-1").
		Set("quantity", 3).
		Set("unit_price", 9.99).
		Set("sizes", []any{"M", "XXL"}).
		Set("ratings", nil).
		Set("express", true)

	res, err := Order().Validate(p)
	require.NoError(t, err)
	assert.Equal(t, schema.CodeFailedConstrainsParam, res.Code())
	assert.Equal(t, "Failed to check constrains for parameter: sizes. Expected: [S,M,L,XL] but got: XXL", res.Message())
}

func TestGeo(t *testing.T) {
	p := schema.NewPayload().
		Set("position", []any{12.5, 190.0}).
		Set("altitude", nil).
		Set("levels", []any{1, 2})

	res, err := Geo().Validate(p)
	require.NoError(t, err)
	assert.Equal(t, schema.CodeBadParamBoundary, res.Code())
	f, failed := res.Failure()
	require.True(t, failed)
	assert.Equal(t, "position", f.Key)
}

func TestStrictElementTypes(t *testing.T) {
	c := catalog.New()
	require.NoError(t, Register(c, config.ValidationConfig{StrictElementTypes: true}))

	p := schema.NewPayload().
		Set("username", "ada").
		Set("age", 36).
		Set("role", "admin").
		Set("tags", []any{"ok", 7}).
		Set("newsletter", false)

	res, err := c.Validate(context.Background(), "signup", p)
	require.NoError(t, err)
	assert.Equal(t, schema.CodeBadParamInnerType, res.Code())
}
