// Package presentation formats CLI output. Colors degrade gracefully on
// terminals without color support; termenv handles the detection.
package presentation

import (
	"fmt"

	"github.com/muesli/termenv"
)

var profile = termenv.ColorProfile()

// Success renders a green confirmation line.
func Success(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	return termenv.String("✔ " + msg).Foreground(profile.Color("#22c55e")).String()
}

// Failure renders a red failure line.
func Failure(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	return termenv.String("✘ " + msg).Foreground(profile.Color("#ef4444")).String()
}

// Heading renders a section heading.
func Heading(text string) string {
	return termenv.String(text).Bold().String()
}
