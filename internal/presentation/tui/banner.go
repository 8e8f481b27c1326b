package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ___  __ _ _ __ __ _ _ __ ___  ___ _ __   ___  ___`, "#818cf8"},
	{` | _ \/ _' | '__/ _' | '_ ' _ \/ __| '_ \ / _ \/ __|`, "#a78bfa"},
	{` |  _/ (_| | | | (_| | | | | | \__ \ |_) |  __/ (__`, "#c084fc"},
	{` |_|  \__,_|_|  \__,_|_| |_| |_|___/ .__/ \___|\___|`, "#e879f9"},
	{`                                   |_|`, "#f472b6"},
}

// PrintBanner writes the startup banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

// Verdict colours a verdict line: green when ok, red otherwise.
func Verdict(profile termenv.Profile, ok bool, text string) string {
	color := "#f87171"
	if ok {
		color = "#4ade80"
	}
	return profile.String(text).Foreground(profile.Color(color)).Bold().String()
}
