package cli

import (
	"strings"
	"unicode"
)

// MaxMessageSize caps how much of a diagnostic is printed.
var MaxMessageSize = 4096

// SanitizeText makes client supplied text safe to print on a terminal.
// Diagnostics echo payload values, so they may carry ANSI codes, NULL or BEL
// bytes. Those are stripped, invalid UTF-8 is replaced and the result is cut
// at MaxMessageSize bytes.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, string(unicode.ReplacementChar))

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if !unicode.IsControl(r) || isSafeControl(r) {
				b.WriteRune(r)
			}
		}
		s = b.String()
	}

	if len(s) > MaxMessageSize {
		cut := MaxMessageSize
		for cut > 0 && !isRuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t'
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
