package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the startup banner with the version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	lines := []string{
		`                 _             `,
		`  ___  _ __ __| |_ __   __ _ `,
		` / _ \| '__/ _` + "`" + ` | '_ \ / _` + "`" + ` |`,
		`| (_) | | | (_| | | | | (_| |`,
		` \___/|_|  \__,_|_| |_|\__,_|`,
	}
	// Amber-to-orange ramp.
	colors := []string{"#fbbf24", "#f59e0b", "#f97316", "#ea580c", "#dc2626"}

	fmt.Println()
	for i, line := range lines {
		fmt.Println(termenv.String(line).Foreground(p.Color(colors[i%len(colors)])))
	}
	fmt.Printf("  file organizer %s\n\n", strings.TrimSpace(version))
}
