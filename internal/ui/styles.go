package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorGreen    = "42"  // PASS
	ColorRed      = "196" // FAIL
	ColorYellow   = "220" // Warnings
	ColorWhite    = "255" // Headers
	ColorGray     = "245" // Labels
	ColorDarkGray = "238" // Hints, separators
)

// Styles holds the styles used by the renderers.
type Styles struct {
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Warn   lipgloss.Style
	Label  lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Pass:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGreen)),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Pass:   lipgloss.NewStyle(),
		Fail:   lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
