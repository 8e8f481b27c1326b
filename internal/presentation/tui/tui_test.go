package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.Equal(t, len(bannerLines)+3, strings.Count(out, "\n"))
}

func TestVerdict_Ascii(t *testing.T) {
	assert.Equal(t, "200 OK", Verdict(termenv.Ascii, true, "200 OK"))
	assert.Equal(t, "400 BAD", Verdict(termenv.Ascii, false, "400 BAD"))
}

func TestVerdict_Colours(t *testing.T) {
	ok := Verdict(termenv.TrueColor, true, "x")
	bad := Verdict(termenv.TrueColor, false, "x")
	assert.NotEqual(t, ok, bad)
	assert.Contains(t, ok, "\x1b[")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Verdict\n\n**OK**")
	require.NoError(t, err)
	assert.Contains(t, out, "Verdict")
	assert.Contains(t, out, "OK")
}
