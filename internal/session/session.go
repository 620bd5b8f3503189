package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/diagnosis"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/stats"
	"github.com/abhisek/numbernexus/internal/topic"
)

var (
	ErrNoProblem    = errors.New("no active problem")
	ErrEmptyAnswer  = errors.New("empty answer")
	ErrNoHint       = errors.New("hint not available yet")
	ErrSessionEnded = errors.New("session ended")
)

// Recorder persists resolved problems. *stats.Service implements it.
type Recorder interface {
	RecordSolve(ctx context.Context, id string, in stats.SolveInput) (*stats.Result, error)
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Correct bool

	// Resolved is true once the problem is finished: answered correctly or
	// out of attempts. Only resolved problems are recorded.
	Resolved bool

	// Expected is the canonical answer, set once the problem is resolved.
	Expected string

	Attempts      int
	HintAvailable bool
	Diagnosis     *diagnosis.DiagnosisResult
	Result        *stats.Result
}

// Options configures a Session.
type Options struct {
	StudentID  string
	Plan       *Plan
	Difficulty problemgen.Difficulty

	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int

	// Accuracy is the student's historical accuracy, used by the careless
	// diagnosis rule.
	Accuracy float64

	Generator *problemgen.Generator
	Hints     *hints.Classifier
	Recorder  Recorder
	Metrics   *metrics.Metrics
	Logger    *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Session drives one practice session: it serves problems from the plan,
// checks answers, unlocks hints after a wrong attempt and records each
// resolved problem. A Session is not safe for concurrent use.
type Session struct {
	State *SessionState

	maxAttempts int
	accuracy    float64
	gen         *problemgen.Generator
	hints       *hints.Classifier
	diagnoser   *diagnosis.Service
	recorder    Recorder
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// New starts a session. The first problem is served by Next.
func New(opts Options) (*Session, error) {
	if opts.StudentID == "" {
		return nil, errors.New("session: student id required")
	}
	if opts.Plan == nil || len(opts.Plan.Slots) == 0 {
		return nil, ErrNoTopics
	}
	for _, s := range opts.Plan.Slots {
		if !topic.Valid(s.Topic) {
			return nil, fmt.Errorf("session: unknown topic %q", s.Topic)
		}
	}
	if opts.Recorder == nil {
		return nil, errors.New("session: recorder required")
	}

	if opts.Generator == nil {
		opts.Generator = problemgen.New(problemgen.DefaultConfig())
	}
	if opts.Hints == nil {
		opts.Hints = hints.New(hints.DefaultConfig())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if !opts.Difficulty.Valid() {
		opts.Difficulty = problemgen.Medium
	}

	s := &Session{
		State:       NewSessionState(opts.Plan, uuid.NewString(), opts.StudentID, opts.Difficulty, opts.Now()),
		maxAttempts: opts.MaxAttempts,
		accuracy:    opts.Accuracy,
		gen:         opts.Generator,
		hints:       opts.Hints,
		diagnoser:   diagnosis.NewService(),
		recorder:    opts.Recorder,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	s.logger.Debug("session started",
		zap.String("session_id", s.State.SessionID),
		zap.String("student_id", opts.StudentID),
		zap.Int("slots", len(opts.Plan.Slots)),
	)
	return s, nil
}

// ID returns the session UUID.
func (s *Session) ID() string {
	return s.State.SessionID
}

// Next serves a new problem for the current slot. The previous pair for
// the topic is excluded so the same problem is never served twice in a
// row. An unresolved current problem is discarded without being recorded.
func (s *Session) Next() (problemgen.Problem, error) {
	st := s.State
	if st.Phase == PhaseSummary {
		return problemgen.Problem{}, ErrSessionEnded
	}
	if st.CurrentProblem != nil {
		st.advanceSlot()
	}

	slot := st.CurrentSlot()
	var exclude *problemgen.OperandPair
	if prev, ok := st.PreviousPairs[slot.Topic]; ok {
		exclude = &prev
	}

	p := s.gen.Problem(problemgen.Operation(slot.Topic), problemgen.ForDifficulty(st.Difficulty), exclude)
	s.metrics.ObserveProblem(string(p.Operation), string(p.Difficulty), p.Fallback)

	st.PreviousPairs[slot.Topic] = p.Operands
	st.CurrentProblem = &p
	st.QuestionsInSlot++
	st.Attempts = 0
	st.WrongCount = 0
	st.HintShown = false
	st.LastDiagnosis = nil
	st.Phase = PhaseActive
	st.QuestionStartTime = s.now()
	return p, nil
}

// Submit checks an answer to the current problem. A correct answer, or the
// last allowed wrong one, resolves the problem and records it.
func (s *Session) Submit(ctx context.Context, answer string) (*Feedback, error) {
	st := s.State
	if st.Phase == PhaseSummary {
		return nil, ErrSessionEnded
	}
	if st.CurrentProblem == nil || st.Phase != PhaseActive {
		return nil, ErrNoProblem
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	p := *st.CurrentProblem
	st.Attempts++
	fb := &Feedback{
		Correct:  problemgen.CheckAnswer(answer, p),
		Attempts: st.Attempts,
	}

	if !fb.Correct {
		st.WrongCount++
		elapsed := s.now().Sub(st.QuestionStartTime).Milliseconds()
		st.LastDiagnosis = s.diagnoser.Diagnose(p, answer, int(elapsed), s.accuracy)
		fb.Diagnosis = st.LastDiagnosis
		if st.Attempts < s.maxAttempts {
			fb.HintAvailable = st.HintAvailable()
			return fb, nil
		}
	} else {
		st.LastDiagnosis = nil
	}

	res, err := s.resolve(ctx, p, fb.Correct)
	if err != nil {
		return nil, err
	}
	fb.Resolved = true
	fb.Expected = problemgen.FormatAnswer(p)
	fb.Result = res
	return fb, nil
}

// Skip gives up on the current problem, recording it as missed.
func (s *Session) Skip(ctx context.Context) (*Feedback, error) {
	st := s.State
	if st.CurrentProblem == nil || st.Phase != PhaseActive {
		return nil, ErrNoProblem
	}
	p := *st.CurrentProblem
	res, err := s.resolve(ctx, p, false)
	if err != nil {
		return nil, err
	}
	return &Feedback{
		Resolved: true,
		Expected: problemgen.FormatAnswer(p),
		Attempts: st.Attempts,
		Result:   res,
	}, nil
}

// Hint returns the strategy for the current problem. It is only available
// after at least one wrong attempt.
func (s *Session) Hint() (hints.HintStrategy, error) {
	st := s.State
	if st.CurrentProblem == nil {
		return hints.HintStrategy{}, ErrNoProblem
	}
	if !st.HintAvailable() {
		return hints.HintStrategy{}, ErrNoHint
	}
	p := st.CurrentProblem
	h := s.hints.StrategyFor(p.Operation, p.Operands.Num1, p.Operands.Num2)
	if !st.HintShown {
		st.HintShown = true
		s.metrics.ObserveHint(string(h.Type))
	}
	return h, nil
}

// End finishes the session and returns its summary.
func (s *Session) End() *SessionSummary {
	s.State.Phase = PhaseSummary
	sum := BuildSummary(s.State, s.now())
	s.logger.Debug("session ended",
		zap.String("session_id", s.State.SessionID),
		zap.Int("questions", sum.TotalQuestions),
		zap.Int("correct", sum.TotalCorrect),
	)
	return sum
}

func (s *Session) resolve(ctx context.Context, p problemgen.Problem, correct bool) (*stats.Result, error) {
	st := s.State
	hintsUsed := 0
	if st.HintShown {
		hintsUsed = 1
	}

	tp := topic.ForOperation(p.Operation)
	res, err := s.recorder.RecordSolve(ctx, st.StudentID, stats.SolveInput{
		Topic:      string(tp),
		Num1:       p.Operands.Num1,
		Num2:       p.Operands.Num2,
		Correct:    correct,
		ResponseMs: s.now().Sub(st.QuestionStartTime).Milliseconds(),
		HintsUsed:  hintsUsed,
		Difficulty: string(st.Difficulty),
	})
	if err != nil {
		return nil, fmt.Errorf("record problem: %w", err)
	}

	st.Phase = PhaseFeedback
	st.TotalQuestions++
	tr := st.PerTopicResults[tp]
	if tr != nil {
		tr.Attempted++
		tr.HintsUsed += hintsUsed
	}
	if correct {
		st.TotalCorrect++
		st.ConsecutiveCorrect++
		st.PointsEarned += res.Points
		if tr != nil {
			tr.Correct++
		}
	} else {
		st.ConsecutiveCorrect = 0
	}
	st.Unlocked = append(st.Unlocked, res.NewlyUnlocked...)
	st.Achievements = append(st.Achievements, res.NewAchievements...)
	return res, nil
}
