package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the flowserve ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _                                         ", "#818cf8"},
		{"  / _| | _____      _____  ___ _ ____   _____ ", "#a78bfa"},
		{" | |_| |/ _ \\ \\ /\\ / / __|/ _ \\ '__\\ \\ / / _ \\", "#c084fc"},
		{" |  _| | (_) \\ V  V /\\__ \\  __/ |   \\ V /  __/", "#e879f9"},
		{" |_| |_|\\___/ \\_/\\_/ |___/\\___|_|    \\_/ \\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(" v"+version).Faint())
	fmt.Fprintln(w)
}
