package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Slate-to-teal gradient
	s1 := termenv.String("              _       _                          ").Foreground(p.Color("#94a3b8"))
	s2 := termenv.String("   __ _  __ _| |_ ___| |__   ___  _   _ ___  ___ ").Foreground(p.Color("#7dd3fc"))
	s3 := termenv.String("  / _` |/ _` | __/ _ \\ '_ \\ / _ \\| | | / __|/ _ \\").Foreground(p.Color("#67e8f9"))
	s4 := termenv.String(" | (_| | (_| | ||  __/ | | | (_) | |_| \\__ \\  __/").Foreground(p.Color("#5eead4"))
	s5 := termenv.String("  \\__, |\\__,_|\\__\\___|_| |_|\\___/ \\__,_|___/\\___|").Foreground(p.Color("#6ee7b7"))
	s6 := termenv.String("   __/ |                                         ").Foreground(p.Color("#86efac"))
	s7 := termenv.String("  |___/                                          ").Foreground(p.Color("#bef264"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println(s7)
	fmt.Println(termenv.String("  "+version).Foreground(p.Color("#64748b")).Italic())
	fmt.Println()
}
