package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numbernexus/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent int // 0..100
	Color   color.Color
	Width   int
	Suffix  string
}

// View renders the progress bar as "label  ████░░░░  45% suffix".
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(16).Render(p.Label))
	}

	pct := min(max(p.Percent, 0), 100)
	percent := fmt.Sprintf("%4d%%", pct)
	barWidth := max(p.Width-lipgloss.Width(b.String())-len(percent)-lipgloss.Width(p.Suffix)-3, 4)

	filled := barWidth * pct / 100
	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}

	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + percent))
	if p.Suffix != "" {
		b.WriteString("  " + p.Suffix)
	}
	return b.String()
}
