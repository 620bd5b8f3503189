package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/screen"
	"github.com/abhisek/numbernexus/internal/session"
	"github.com/abhisek/numbernexus/internal/topic"
	"github.com/abhisek/numbernexus/internal/ui/components"
	"github.com/abhisek/numbernexus/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseResolved
	phaseConfirmQuit
	phaseSummary
	phaseError
)

// startedMsg is sent once the plan is built and the session created.
type startedMsg struct {
	sess *session.Session
	err  error
}

// feedbackMsg carries the outcome of a submit or skip.
type feedbackMsg struct {
	fb  *session.Feedback
	err error
}

// PracticeScreen runs one practice session. An empty focus practices every
// unlocked topic in rotation.
type PracticeScreen struct {
	env   screen.Env
	focus topic.ID

	sess     *session.Session
	problem  problemgen.Problem
	input    components.AnswerInput
	phase    phase
	busy     bool
	feedback *session.Feedback
	hint     *hints.HintStrategy
	summary  *session.SessionSummary
	notice   string
	err      error
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen. The session starts in Init.
func New(env screen.Env, focus topic.ID) *PracticeScreen {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	return &PracticeScreen{
		env:   env,
		focus: focus,
		input: components.NewAnswerInput("type your answer", 12),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(p.start, p.input.Init())
}

func (p *PracticeScreen) Title() string {
	if p.focus == "" {
		return "Mixed Practice"
	}
	return p.env.Localizer.TopicName(string(p.focus), topic.DisplayName(p.focus))
}

func (p *PracticeScreen) HandlesEscape() bool {
	return true
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseQuestion:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		if p.sess != nil && p.sess.State.HintAvailable() {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
		}
		return append(hints,
			layout.KeyHint{Key: "S", Description: "Skip"},
			layout.KeyHint{Key: "Esc", Description: "End"},
		)
	case phaseResolved:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
			{Key: "Esc", Description: "End"},
		}
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	default:
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	}
}

func (p *PracticeScreen) start() tea.Msg {
	ctx := context.Background()
	st, err := p.env.Stats.Get(ctx, p.env.StudentID)
	if err != nil {
		return startedMsg{err: err}
	}
	engine := p.env.Stats.Engine()
	plan, err := session.BuildPlan(engine.CalculateTopicProgress(st), p.focus, engine.Config().UnlockThreshold)
	if err != nil {
		return startedMsg{err: err}
	}
	sess, err := session.New(session.Options{
		StudentID:  p.env.StudentID,
		Plan:       plan,
		Difficulty: problemgen.ParseDifficulty(st.Difficulty),
		Accuracy:   st.Accuracy(),
		Generator:  p.env.Generator,
		Hints:      p.env.Hints,
		Recorder:   p.env.Stats,
		Metrics:    p.env.Metrics,
		Logger:     p.env.Logger,
	})
	return startedMsg{sess: sess, err: err}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			p.err = msg.err
			p.phase = phaseError
			return p, nil
		}
		p.sess = msg.sess
		p.next()
		return p, nil

	case feedbackMsg:
		return p.handleFeedback(msg)

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.phase == phaseQuestion {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) next() {
	prob, err := p.sess.Next()
	if err != nil {
		p.err = err
		p.phase = phaseError
		return
	}
	p.problem = prob
	p.feedback = nil
	p.hint = nil
	p.notice = ""
	p.input.Reset()
	p.phase = phaseQuestion
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if p.busy {
		return p, nil
	}
	key := msg.String()

	switch p.phase {
	case phaseLoading:
		if key == "esc" {
			return p, screen.Pop
		}

	case phaseError, phaseSummary:
		if key == "enter" || key == "esc" {
			return p, screen.Pop
		}

	case phaseConfirmQuit:
		switch key {
		case "y", "Y":
			p.summary = p.sess.End()
			p.phase = phaseSummary
		case "n", "N", "esc":
			p.phase = phaseQuestion
			if p.feedback != nil && p.feedback.Resolved {
				p.phase = phaseResolved
			}
		}

	case phaseResolved:
		if key == "esc" {
			p.phase = phaseConfirmQuit
			return p, nil
		}
		p.next()

	case phaseQuestion:
		switch key {
		case "esc":
			p.phase = phaseConfirmQuit
			return p, nil
		case "enter":
			return p, p.submit()
		case "h":
			p.showHint()
			return p, nil
		case "s":
			return p, p.skip()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) submit() tea.Cmd {
	answer := p.input.Value()
	if answer == "" {
		p.notice = "Type an answer first."
		return nil
	}
	p.busy = true
	sess := p.sess
	return func() tea.Msg {
		fb, err := sess.Submit(context.Background(), answer)
		return feedbackMsg{fb: fb, err: err}
	}
}

func (p *PracticeScreen) skip() tea.Cmd {
	p.busy = true
	sess := p.sess
	return func() tea.Msg {
		fb, err := sess.Skip(context.Background())
		return feedbackMsg{fb: fb, err: err}
	}
}

func (p *PracticeScreen) showHint() {
	h, err := p.sess.Hint()
	if errors.Is(err, session.ErrNoHint) {
		p.notice = "Hints unlock after your first try."
		return
	}
	if err != nil {
		p.notice = err.Error()
		return
	}
	p.hint = &h
}

func (p *PracticeScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	p.busy = false
	if msg.err != nil {
		p.env.Logger.Warn("practice answer failed", zap.Error(msg.err))
		p.notice = "Could not save that answer: " + msg.err.Error()
		return p, nil
	}

	p.feedback = msg.fb
	p.notice = ""
	if !msg.fb.Resolved {
		p.input.Reset()
		return p, nil
	}

	p.phase = phaseResolved
	if res := msg.fb.Result; res != nil && res.Stats != nil {
		status := screen.StatusMsg{Score: res.Stats.TotalScore, Streak: res.Stats.CurrentStreak}
		return p, func() tea.Msg { return status }
	}
	return p, nil
}
