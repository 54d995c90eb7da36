package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/dsm/core"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	OK     lipgloss.Style
	Error  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	OK:     lipgloss.NewStyle().SetString("✓").Foreground(colorAccent),
	Error:  lipgloss.NewStyle().SetString("✗").Foreground(colorError),
	Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Cell:   lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right),
}

// hexColor renders a grouping color for lipgloss.
func hexColor(c core.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B)))
}

func channel(v float64) uint8 {
	return uint8(v*255 + 0.5)
}
