// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Teal   = lipgloss.Color("#0EA5A4")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// FormatColor returns the color a module format is rendered in.
// Modern modules use the brand color, legacy modules a muted one.
func FormatColor(format string) lipgloss.Color {
	switch format {
	case "module":
		return Iris
	case "commonjs":
		return Yellow
	case "builtin", "json":
		return Teal
	default:
		return Slate
	}
}
