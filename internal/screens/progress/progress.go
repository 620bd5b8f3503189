package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/screen"
	"github.com/abhisek/numbernexus/internal/topic"
	"github.com/abhisek/numbernexus/internal/ui/components"
	"github.com/abhisek/numbernexus/internal/ui/layout"
	"github.com/abhisek/numbernexus/internal/ui/theme"
)

type loadedMsg struct {
	dash *dashboard.Dashboard
	err  error
}

// ProgressScreen shows topic levels, recent activity and achievements.
type ProgressScreen struct {
	env  screen.Env
	now  func() time.Time
	dash *dashboard.Dashboard
	err  error
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(env screen.Env) *ProgressScreen {
	return &ProgressScreen{env: env, now: time.Now}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return p.load
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) load() tea.Msg {
	d, err := p.env.Dashboard.Build(context.Background(), p.env.StudentID, p.now())
	return loadedMsg{dash: d, err: err}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		p.dash, p.err = msg.dash, msg.err
	case tea.KeyPressMsg:
		if msg.String() == "enter" || msg.String() == "q" {
			return p, screen.Pop
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	if p.err != nil {
		return layout.Center(theme.Incorrect.Render("Could not load progress: "+p.err.Error()), width, height)
	}
	if p.dash == nil {
		return layout.Center(theme.Hint.Render("Loading..."), width, height)
	}

	cw := min(width-8, 72)
	sections := []string{
		p.renderTotals(),
		p.renderTopics(cw),
		p.renderActivity(),
	}
	if !layout.IsCompactHeight(height) {
		sections = append(sections, p.renderAchievements(cw))
	}
	return layout.Center(lipgloss.JoinVertical(lipgloss.Left, sections...), width, height)
}

func (p *ProgressScreen) renderTotals() string {
	t := p.dash.Totals
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return theme.Highlight.Render(fmt.Sprintf("★ %d", t.TotalScore)) +
		dim.Render(fmt.Sprintf("   %d/%d correct (%.0f%%)   best streak %d",
			t.CorrectAnswers, t.ProblemsSolved, t.Accuracy*100, t.BestStreak)) + "\n"
}

func (p *ProgressScreen) renderTopics(width int) string {
	var b strings.Builder
	for _, d := range p.dash.Topics {
		name := p.env.Localizer.TopicName(string(d.ID), topic.DisplayName(d.ID))
		if !d.IsUnlocked {
			b.WriteString(theme.Locked.Render(fmt.Sprintf("%-16s🔒 locked", name)))
			b.WriteString("\n")
			continue
		}
		bar := components.ProgressBar{
			Label:   name,
			Percent: d.Progress,
			Color:   theme.TopicColor(d.ID),
			Width:   width,
			Suffix:  fmt.Sprintf("Lv %d", d.Level),
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	return b.String()
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// renderActivity draws the last days as a one-line spark chart.
func (p *ProgressScreen) renderActivity() string {
	peak := 0
	for _, d := range p.dash.Activity {
		peak = max(peak, d.Problems)
	}

	var chart, labels strings.Builder
	for _, d := range p.dash.Activity {
		r := ' '
		if d.Problems > 0 {
			r = sparks[(d.Problems*(len(sparks)-1))/max(peak, 1)]
		}
		chart.WriteString(fmt.Sprintf(" %c ", r))
		if day, err := time.Parse(time.DateOnly, d.Date); err == nil {
			labels.WriteString(day.Format("Mon")[:2] + " ")
		}
	}
	return theme.Hint.Render("last 7 days") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(chart.String()) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+labels.String()) + "\n"
}

func (p *ProgressScreen) renderAchievements(width int) string {
	var parts []string
	for _, a := range p.dash.Earned {
		parts = append(parts, theme.Highlight.Render("🏆 "+p.env.Localizer.AchievementName(a.ID, a.Name)))
	}
	for _, a := range p.dash.Locked {
		parts = append(parts, theme.Locked.Render("· "+p.env.Localizer.AchievementName(a.ID, a.Name)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "  "))
}
