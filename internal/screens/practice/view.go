package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numbernexus/internal/diagnosis"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/topic"
	"github.com/abhisek/numbernexus/internal/ui/layout"
	"github.com/abhisek/numbernexus/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	var body string
	switch p.phase {
	case phaseLoading:
		body = theme.Hint.Render("Getting your problems ready...")
	case phaseError:
		body = theme.Incorrect.Render("Could not start practice") + "\n\n" +
			theme.Body.Render(p.err.Error())
	case phaseSummary:
		body = p.renderSummary()
	case phaseConfirmQuit:
		body = theme.Card.Render(theme.Highlight.Render("End this session?") + "\n\n" +
			theme.Hint.Render("Y to finish, N to keep going"))
	default:
		body = p.renderProblem(width)
	}
	return layout.Center(body, width, height)
}

func (p *PracticeScreen) renderProblem(width int) string {
	st := p.sess.State
	tp := topic.ForOperation(p.problem.Operation)
	color := theme.TopicColor(tp)

	info := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(p.env.Localizer.TopicName(string(tp), topic.DisplayName(tp)))
	info += lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   Q%d  ✓ %d  %s", st.TotalQuestions+1, st.TotalCorrect, st.Difficulty))

	question := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 4).
		Render(p.problem.Text)

	lines := []string{info, "", question, ""}

	if p.phase == phaseResolved {
		lines = append(lines, p.renderResolved()...)
	} else {
		lines = append(lines, p.input.View())
		if p.problem.Operation == problemgen.OpDivision {
			lines = append(lines, theme.Hint.Render("remainders: 7 R 2"))
		}
		if fb := p.feedback; fb != nil && !fb.Correct {
			lines = append(lines, "", p.renderRetry(fb.Attempts))
			if fb.Diagnosis != nil {
				lines = append(lines, theme.Hint.Render(diagnosisMessage(fb.Diagnosis)))
			}
		}
		if p.hint != nil {
			lines = append(lines, "", p.renderHint(min(width-8, 60)))
		}
	}

	if p.notice != "" {
		lines = append(lines, "", theme.Hint.Render(p.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (p *PracticeScreen) renderRetry(attempts int) string {
	msg := theme.Incorrect.Render("Not quite!")
	if p.sess.State.HintAvailable() && p.hint == nil {
		msg += theme.Hint.Render("  Press H for a hint.")
	}
	return msg + theme.Hint.Render(fmt.Sprintf("  (try %d)", attempts+1))
}

func (p *PracticeScreen) renderResolved() []string {
	fb := p.feedback
	var lines []string
	if fb.Correct {
		line := theme.Correct.Render("Correct!")
		if fb.Result != nil {
			line += theme.Highlight.Render(fmt.Sprintf("  +%d", fb.Result.Points))
		}
		lines = append(lines, line)
	} else {
		lines = append(lines,
			theme.Incorrect.Render("The answer is "+fb.Expected),
			theme.Hint.Render("Let's try another one."))
	}

	if fb.Result != nil {
		for _, id := range fb.Result.NewlyUnlocked {
			name := p.env.Localizer.TopicName(string(id), topic.DisplayName(id))
			lines = append(lines, theme.Highlight.Render("🔓 "+name+" unlocked!"))
		}
		for _, a := range fb.Result.NewAchievements {
			lines = append(lines, theme.Highlight.Render("🏆 "+p.env.Localizer.AchievementName(a.ID, a.Name)))
		}
	}
	return lines
}

func (p *PracticeScreen) renderHint(width int) string {
	h := p.hint
	var b strings.Builder
	b.WriteString(theme.Highlight.Render("💡 " + p.env.Localizer.HintTitle(string(h.Type), h.Title)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(h.Description))
	for i, step := range h.Steps {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, step))
	}
	if h.Type == hints.StrategyFactFamily && h.Family != "" {
		b.WriteString("\n" + theme.Hint.Render("family: "+string(h.Family)))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (p *PracticeScreen) renderSummary() string {
	s := p.summary
	lines := []string{
		theme.Title.Render("Session complete"),
		"",
		fmt.Sprintf("%d / %d correct  ·  %.0f%%  ·  +%d points",
			s.TotalCorrect, s.TotalQuestions, s.Accuracy*100, s.PointsEarned),
		theme.Hint.Render("time " + s.Duration.Round(time.Second).String()),
	}
	if len(s.TopicResults) > 0 {
		lines = append(lines, "")
		for _, tr := range s.TopicResults {
			name := p.env.Localizer.TopicName(string(tr.Topic), topic.DisplayName(tr.Topic))
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TopicColor(tr.Topic)).
				Render(fmt.Sprintf("%-16s %d/%d", name, tr.Correct, tr.Attempted)))
		}
	}
	for _, id := range s.Unlocked {
		lines = append(lines, theme.Highlight.Render("🔓 "+topic.DisplayName(id)))
	}
	for _, a := range s.Achievements {
		lines = append(lines, theme.Highlight.Render("🏆 "+p.env.Localizer.AchievementName(a.ID, a.Name)))
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// diagnosisMessage turns a classified mistake into a short nudge.
func diagnosisMessage(d *diagnosis.DiagnosisResult) string {
	switch d.Category {
	case diagnosis.CategorySpeedRush:
		return "Slow down a little and check your work."
	case diagnosis.CategoryCareless:
		return "So close! Double-check that one."
	case diagnosis.CategoryMisconception:
		if m := diagnosis.GetMisconception(d.MisconceptionID); m != nil {
			return m.Label + ": " + m.Description
		}
	}
	return "Have another look."
}
