package practice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/screen"
	"github.com/abhisek/numbernexus/internal/stats"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEnv(t *testing.T) (screen.Env, *stats.Service) {
	t.Helper()
	db, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := stats.NewService(db.Stats(), db.Events(), progression.New(progression.DefaultConfig()))
	return screen.Env{
		StudentID: "kid",
		Stats:     svc,
		Generator: problemgen.NewWithSource(problemgen.DefaultConfig(), rand.NewPCG(7, 11)),
	}, svc
}

func typeAnswer(p *PracticeScreen, s string) {
	for _, r := range s {
		p.Update(keyPress(r))
	}
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, p *PracticeScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := p.Update(cmd())
	return next
}

func TestPracticeScreen_FullSession(t *testing.T) {
	env, svc := testEnv(t)
	p := New(env, topic.Addition)
	p.Update(p.start())

	if p.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", p.phase)
	}
	if p.Title() != "Addition" {
		t.Errorf("Title = %q", p.Title())
	}

	// Correct answer.
	typeAnswer(p, problemgen.FormatAnswer(p.problem))
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	statusCmd := run(t, p, cmd)
	if p.phase != phaseResolved || !p.feedback.Correct {
		t.Fatalf("expected resolved correct feedback, got phase %d", p.phase)
	}
	status, ok := statusCmd().(screen.StatusMsg)
	if !ok || status.Score != 10 || status.Streak != 1 {
		t.Errorf("status = %+v, want score 10 streak 1", status)
	}
	if !strings.Contains(p.View(80, 24), "Correct!") {
		t.Error("expected Correct! in view")
	}

	// Any key moves on.
	p.Update(keyPress('x'))
	if p.phase != phaseQuestion || p.sess.State.TotalQuestions != 1 {
		t.Fatalf("expected next question, phase %d", p.phase)
	}

	// Hints stay hidden before the first attempt.
	p.Update(keyPress('h'))
	if p.hint != nil {
		t.Error("hint shown before a wrong attempt")
	}

	// Wrong answer, then a hint.
	typeAnswer(p, strconv.Itoa(p.problem.Answer+1))
	_, cmd = p.Update(specialKey(tea.KeyEnter))
	run(t, p, cmd)
	if p.phase != phaseQuestion || p.feedback.Resolved {
		t.Fatalf("wrong first try should leave the problem open")
	}
	p.Update(keyPress('h'))
	if p.hint == nil {
		t.Fatal("expected hint after a wrong attempt")
	}
	if !strings.Contains(p.View(100, 30), "Not quite!") {
		t.Error("expected retry message in view")
	}

	// Skip records a miss.
	_, cmd = p.Update(keyPress('s'))
	run(t, p, cmd)
	if p.phase != phaseResolved || p.feedback.Correct || p.feedback.Expected == "" {
		t.Fatalf("skip should resolve as missed with the expected answer")
	}

	// End the session.
	p.Update(specialKey(tea.KeyEscape))
	if p.phase != phaseConfirmQuit {
		t.Fatalf("phase = %d, want confirm", p.phase)
	}
	p.Update(keyPress('y'))
	if p.phase != phaseSummary {
		t.Fatalf("phase = %d, want summary", p.phase)
	}
	if p.summary.TotalQuestions != 2 || p.summary.TotalCorrect != 1 {
		t.Errorf("summary = %d/%d, want 1/2", p.summary.TotalCorrect, p.summary.TotalQuestions)
	}
	if !strings.Contains(p.View(80, 24), "Session complete") {
		t.Error("expected summary view")
	}

	_, cmd = p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(screen.PopMsg); !ok {
		t.Error("expected PopMsg")
	}

	st, err := svc.Get(context.Background(), "kid")
	if err != nil {
		t.Fatal(err)
	}
	if st.ProblemsSolved != 2 || st.CorrectAnswers != 1 || st.TotalScore != 10 {
		t.Errorf("stats = solved %d correct %d score %d, want 2 1 10",
			st.ProblemsSolved, st.CorrectAnswers, st.TotalScore)
	}
}

func TestPracticeScreen_EmptyAnswerShowsNotice(t *testing.T) {
	env, _ := testEnv(t)
	p := New(env, topic.Addition)
	p.Update(p.start())

	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no submit for an empty answer")
	}
	if p.notice == "" {
		t.Error("expected a notice")
	}
}

func TestPracticeScreen_ConfirmQuitCancel(t *testing.T) {
	env, _ := testEnv(t)
	p := New(env, topic.Addition)
	p.Update(p.start())

	p.Update(specialKey(tea.KeyEscape))
	p.Update(keyPress('n'))
	if p.phase != phaseQuestion {
		t.Errorf("phase = %d, want question after cancel", p.phase)
	}
}

func TestPracticeScreen_LockedTopic(t *testing.T) {
	env, _ := testEnv(t)
	p := New(env, topic.Division)
	p.Update(p.start())

	if p.phase != phaseError {
		t.Fatalf("phase = %d, want error", p.phase)
	}
	if !strings.Contains(p.View(80, 24), "locked") {
		t.Error("expected lock reason in view")
	}
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
}

func TestPracticeScreen_MixedTitle(t *testing.T) {
	env, _ := testEnv(t)
	p := New(env, "")
	if p.Title() != "Mixed Practice" {
		t.Errorf("Title = %q", p.Title())
	}
	p.Update(p.start())
	if p.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", p.phase)
	}
	if topic.ForOperation(p.problem.Operation) != topic.Addition {
		t.Errorf("new student should start on addition, got %s", p.problem.Operation)
	}
}
