package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Hello World", "Hello World"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
		{"Carriage Return", "over\rwrite", "overwrite"},
		{"Invalid UTF-8", "a\xffb", "a�b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeText_SizeLimit(t *testing.T) {
	old := MaxMessageSize
	MaxMessageSize = 8
	t.Cleanup(func() { MaxMessageSize = old })

	assert.Equal(t, "12345678", SanitizeText("12345678"))
	assert.Equal(t, "12345678...", SanitizeText("123456789"))

	got := SanitizeText("1234567é9")
	assert.True(t, utf8.ValidString(got), got)
	assert.True(t, strings.HasPrefix(got, "1234567"))
}
