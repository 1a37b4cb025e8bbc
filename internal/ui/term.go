package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Project names: bold blue to anchor each event line
	colorProject = color.New(color.FgBlue, color.Bold)

	// Diff markers
	colorAdded    = color.New(color.FgGreen)
	colorRemoved  = color.New(color.FgRed)
	colorModified = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Day headings
	colorToday = color.New(color.FgGreen, color.Bold)
	colorDay   = color.New(color.FgBlue, color.Bold)

	// Status symbols
	colorBooked  = color.New(color.FgGreen)
	colorPlanned = color.New(color.FgBlue)
	colorMissed  = color.New(color.FgRed)

	// Free gaps between events
	colorFree = color.New(color.FgGreen)

	// Warnings and prompts
	colorWarn = color.New(color.FgYellow)

	// Muted: for secondary information like ids
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// confirm asks a yes/no question on stdin and returns the answer.
// Anything other than y/yes counts as no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
