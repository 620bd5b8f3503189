package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numbernexus/internal/ui/layout"
	"github.com/abhisek/numbernexus/internal/ui/theme"
)

const (
	banner  = "N U M B E R   N E X U S"
	tagline = "practice makes progress"
)

func (h *HomeScreen) View(width, height int) string {
	if h.err != nil {
		return layout.Center(theme.Incorrect.Render("Could not load your progress: "+h.err.Error()), width, height)
	}
	if h.stats == nil {
		return layout.Center(theme.Hint.Render("Loading..."), width, height)
	}

	var sections []string
	sections = append(sections, theme.Title.Render(banner))
	if !layout.IsCompactHeight(height) {
		sections = append(sections, theme.Subtitle.Render(tagline), "")
	}
	sections = append(sections, h.renderStats())
	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}

func (h *HomeScreen) renderStats() string {
	st := h.stats
	name := st.Name
	if name == "" {
		name = "Player"
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := []string{
		theme.Highlight.Render(name),
		dim.Render(h.env.Localizer.Plural("problemsSolved", st.ProblemsSolved,
			"{{.Count}} problem solved", "{{.Count}} problems solved")),
		dim.Render(fmt.Sprintf("accuracy %.0f%%", st.Accuracy()*100)),
		dim.Render("difficulty ") + theme.Selected.Render(st.Difficulty),
	}
	return strings.Join(parts, dim.Render("  ·  "))
}
