package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: script names, paths, URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for warning markers.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for validation error markers.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message, used for validation error lines.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed).Render("✗")
	return cross + " " + msg
}

// FormatWarning renders a yellow warning marker with a message.
func FormatWarning(msg string) string {
	mark := lipgloss.NewStyle().Foreground(ColorYellow).Render("!")
	return mark + " " + msg
}

// vetLabelWidth aligns the detail column of vet check lines.
const vetLabelWidth = 28

// FormatVetCheck renders a passed check line with an optional right-hand detail.
func FormatVetCheck(label, detail string) string {
	if detail == "" {
		return FormatCheckmark(label)
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return FormatCheckmark(label) + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

// FormatKeyValue renders "key: value" with a dim key, used in build summaries.
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("%s %v", StyleDim.Render(key+":"), value)
}
