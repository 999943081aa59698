package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

var (
	secondaryColor = lipgloss.Color("#666666")

	complexityColors = map[domain.Complexity]lipgloss.Color{
		domain.ComplexitySimple:   lipgloss.Color("#87AF87"),
		domain.ComplexityModerate: lipgloss.Color("#D7AF5F"),
		domain.ComplexityComplex:  lipgloss.Color("#D7875F"),
		domain.ComplexityCritical: lipgloss.Color("#AF5F5F"),
	}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5FAFAF"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(complexityColors[domain.ComplexityCritical])
)

// complexityStyle colors a cell by changeover tier
func complexityStyle(c domain.Complexity) lipgloss.Style {
	color, ok := complexityColors[c]
	if !ok {
		return cellStyle
	}
	return cellStyle.Foreground(color)
}
