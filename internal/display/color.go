// Package display renders terminal output: ANSI styles and aligned tables.
//
// Styling is off when NO_COLOR is set or stdout is not a terminal, and forced
// on by FORCE_COLOR.
package display

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Style is an ANSI SGR prefix. The zero Style renders text unchanged.
type Style string

const reset = "\033[0m"

// Styles used by the CLI.
const (
	StyleBold   Style = "\033[1m"
	StyleDim    Style = "\033[2m"
	StyleGray   Style = "\033[90m"
	StyleAccent Style = "\033[1m\033[36m"
	StyleApprox Style = "\033[33m"
)

// ApproxMarker flags a time that was approximated rather than computed
// from its twilight angle.
const ApproxMarker = "*"

var enabled = detect(os.Stdout)

func detect(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides terminal detection, e.g. for --json or tests.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether styles are applied.
func Enabled() bool {
	return enabled
}

// Render applies s to text when styling is enabled.
func (s Style) Render(text string) string {
	if !enabled || s == "" {
		return text
	}
	return string(s) + text + reset
}

func Bold(text string) string   { return StyleBold.Render(text) }
func Dim(text string) string    { return StyleDim.Render(text) }
func Gray(text string) string   { return StyleGray.Render(text) }
func Accent(text string) string { return StyleAccent.Render(text) }

// Approx renders an approximated time with ApproxMarker appended.
func Approx(text string) string {
	return StyleApprox.Render(text + ApproxMarker)
}
