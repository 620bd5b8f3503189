package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/diagnosis"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

var (
	ErrInvalidTopic      = errors.New("invalid topic")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrTopicLocked       = errors.New("topic locked")
	ErrInvalidInput      = errors.New("invalid input")
)

// Points per correct answer by difficulty.
var difficultyPoints = map[problemgen.Difficulty]int{
	problemgen.Easy:   5,
	problemgen.Medium: 10,
	problemgen.Hard:   15,
}

const (
	hintPenalty       = 2
	minPoints         = 1
	drillPointsPerHit = 2
)

// Points returns the score for a correct answer at difficulty d with the
// given number of hints used. It is never below 1.
func Points(d problemgen.Difficulty, hintsUsed int) int {
	base, ok := difficultyPoints[d]
	if !ok {
		base = difficultyPoints[problemgen.Medium]
	}
	return max(minPoints, base-hintPenalty*max(hintsUsed, 0))
}

// SolveInput describes one answered problem.
type SolveInput struct {
	Topic string
	Num1  int
	Num2  int

	// Answer is the learner's raw input. When set, correctness is checked
	// here and Correct is ignored.
	Answer  string
	Correct bool

	ResponseMs int64
	HintsUsed  int

	// Difficulty overrides the student's setting for scoring.
	Difficulty string
}

// DrillInput describes one completed speed drill.
type DrillInput struct {
	Topic      string
	Correct    int
	Attempted  int
	DurationMs int64
}

// Result is returned by RecordSolve and RecordDrill.
type Result struct {
	Stats           *store.StudentStats         `json:"stats"`
	Correct         bool                        `json:"correct"`
	Points          int                         `json:"points"`
	Topics          []progression.MathTopicData `json:"topics"`
	NewlyUnlocked   []topic.ID                  `json:"newlyUnlocked"`
	NewAchievements []achievements.Achievement  `json:"newAchievements"`
	Diagnosis       *diagnosis.DiagnosisResult  `json:"diagnosis,omitempty"`
}

// Service applies answers and drills to student stats. It owns every stats
// mutation; the engines it calls stay pure.
type Service struct {
	stats     store.StatsRepo
	events    store.EventRepo
	engine    *progression.Engine
	evaluator *achievements.Evaluator
	diagnoser *diagnosis.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records solves and drills.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a stats service.
func NewService(statsRepo store.StatsRepo, events store.EventRepo, engine *progression.Engine, opts ...Option) *Service {
	s := &Service{
		stats:     statsRepo,
		events:    events,
		engine:    engine,
		evaluator: achievements.NewEvaluator(engine.Config().UnlockThreshold),
		diagnoser: diagnosis.NewService(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Engine returns the progression engine used by the service.
func (s *Service) Engine() *progression.Engine {
	return s.engine
}

// Create registers a new student with a generated id.
func (s *Service) Create(ctx context.Context, name string) (*store.StudentStats, error) {
	id := uuid.NewString()
	st, err := s.stats.Mutate(ctx, id, func(st *store.StudentStats) error {
		st.Name = strings.TrimSpace(name)
		st.CreatedAt = s.now()
		st.LastActiveAt = st.CreatedAt
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	s.logger.Info("student created", zap.String("student_id", id))
	return st, nil
}

// Get returns the student's stats, creating zero defaults on first lookup.
func (s *Service) Get(ctx context.Context, id string) (*store.StudentStats, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("empty student id: %w", ErrInvalidInput)
	}
	st, err := s.stats.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	return st, nil
}

// List returns every student.
func (s *Service) List(ctx context.Context) ([]*store.StudentStats, error) {
	return s.stats.List(ctx)
}

// Progress returns the student's current topic progress.
func (s *Service) Progress(ctx context.Context, id string) ([]progression.MathTopicData, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engine.CalculateTopicProgress(st), nil
}

// RecordSolve applies one answer: problem count, score, streak and
// achievements change in a single mutation, then a solve event is appended.
func (s *Service) RecordSolve(ctx context.Context, id string, in SolveInput) (*Result, error) {
	tp := topic.ID(in.Topic)
	if !topic.Valid(tp) {
		return nil, fmt.Errorf("%q: %w", in.Topic, ErrInvalidTopic)
	}
	if in.Difficulty != "" && !problemgen.Difficulty(in.Difficulty).Valid() {
		return nil, fmt.Errorf("%q: %w", in.Difficulty, ErrInvalidDifficulty)
	}
	if in.HintsUsed < 0 || in.ResponseMs < 0 {
		return nil, fmt.Errorf("negative hints or response time: %w", ErrInvalidInput)
	}

	problem := problemgen.Build(problemgen.Operation(tp), problemgen.OperandPair{Num1: in.Num1, Num2: in.Num2})
	correct := in.Correct
	if in.Answer != "" {
		correct = problemgen.CheckAnswer(in.Answer, problem)
	}

	res := &Result{Correct: correct}
	var difficulty problemgen.Difficulty

	st, err := s.stats.Mutate(ctx, id, func(st *store.StudentStats) error {
		before := s.engine.CalculateTopicProgress(st)
		if d, ok := progression.Find(before, tp); !ok || !d.IsUnlocked {
			return fmt.Errorf("%s: %w", tp, ErrTopicLocked)
		}

		difficulty = problemgen.ParseDifficulty(st.Difficulty)
		if in.Difficulty != "" {
			difficulty = problemgen.Difficulty(in.Difficulty)
		}

		if !correct && in.Answer != "" {
			res.Diagnosis = s.diagnoser.Diagnose(problem, in.Answer, int(in.ResponseMs), st.Accuracy())
		}

		st.ProblemsSolved++
		st.LastActiveAt = s.now()
		if correct {
			st.CorrectAnswers++
			st.CurrentStreak++
			st.BestStreak = max(st.BestStreak, st.CurrentStreak)
			res.Points = Points(difficulty, in.HintsUsed)
			s.adoptLegacyScores(st)
			st.AddTopicScore(string(tp), res.Points)
		} else {
			st.CurrentStreak = 0
		}

		s.finish(st, before, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record solve: %w", err)
	}
	res.Stats = st

	_, err = s.events.AppendSolve(ctx, store.SolveEvent{
		StudentID:  id,
		Kind:       store.EventSolve,
		Topic:      string(tp),
		Num1:       in.Num1,
		Num2:       in.Num2,
		Correct:    correct,
		Points:     res.Points,
		ResponseMs: in.ResponseMs,
		HintsUsed:  in.HintsUsed,
		Difficulty: string(difficulty),
		CreatedAt:  st.LastActiveAt,
	})
	if err != nil {
		// Stats are already committed; the event only feeds dashboard charts.
		s.logger.Warn("append solve event failed", zap.String("student_id", id), zap.Error(err))
	}

	s.metrics.ObserveSolve(string(tp), correct)
	s.logger.Debug("solve recorded",
		zap.String("student_id", id),
		zap.String("topic", string(tp)),
		zap.Bool("correct", correct),
		zap.Int("points", res.Points),
	)
	return res, nil
}

// RecordDrill applies a completed speed drill. Each correct answer is worth
// two points and the best drill score is kept.
func (s *Service) RecordDrill(ctx context.Context, id string, in DrillInput) (*Result, error) {
	tp := topic.ID(in.Topic)
	if !topic.Valid(tp) {
		return nil, fmt.Errorf("%q: %w", in.Topic, ErrInvalidTopic)
	}
	if in.Correct < 0 || in.Attempted < in.Correct {
		return nil, fmt.Errorf("correct %d of %d attempted: %w", in.Correct, in.Attempted, ErrInvalidInput)
	}

	res := &Result{Correct: in.Correct > 0, Points: in.Correct * drillPointsPerHit}
	st, err := s.stats.Mutate(ctx, id, func(st *store.StudentStats) error {
		before := s.engine.CalculateTopicProgress(st)
		if d, ok := progression.Find(before, tp); !ok || !d.IsUnlocked {
			return fmt.Errorf("%s: %w", tp, ErrTopicLocked)
		}

		st.ProblemsSolved += in.Attempted
		st.CorrectAnswers += in.Correct
		st.SpeedDrillBest = max(st.SpeedDrillBest, in.Correct)
		st.LastActiveAt = s.now()
		if res.Points > 0 {
			s.adoptLegacyScores(st)
			st.AddTopicScore(string(tp), res.Points)
		}

		s.finish(st, before, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record drill: %w", err)
	}
	res.Stats = st

	_, err = s.events.AppendSolve(ctx, store.SolveEvent{
		StudentID:  id,
		Kind:       store.EventDrill,
		Topic:      string(tp),
		Num1:       in.Correct,
		Num2:       in.Attempted,
		Correct:    res.Correct,
		Points:     res.Points,
		ResponseMs: in.DurationMs,
		CreatedAt:  st.LastActiveAt,
	})
	if err != nil {
		s.logger.Warn("append drill event failed", zap.String("student_id", id), zap.Error(err))
	}

	s.metrics.ObserveDrill(string(tp))
	return res, nil
}

// adoptLegacyScores converts a total-only account to per-topic scores
// before its first topic points land, so existing progress carries over.
func (s *Service) adoptLegacyScores(st *store.StudentStats) {
	if scores := s.engine.LegacyScores(st); scores != nil {
		st.TopicScores = scores
	}
}

// finish recomputes progress after a mutation and records newly earned
// achievements on st.
func (s *Service) finish(st *store.StudentStats, before []progression.MathTopicData, res *Result) {
	after := s.engine.CalculateTopicProgress(st)
	res.Topics = after
	res.NewlyUnlocked = progression.NewlyUnlocked(before, after)

	res.NewAchievements = s.evaluator.Evaluate(st, after)
	st.Achievements = append(st.Achievements, achievements.IDs(res.NewAchievements)...)
}

// SetDifficulty changes the student's difficulty setting.
func (s *Service) SetDifficulty(ctx context.Context, id, difficulty string) (*store.StudentStats, error) {
	d := problemgen.Difficulty(strings.ToLower(strings.TrimSpace(difficulty)))
	if !d.Valid() {
		return nil, fmt.Errorf("%q: %w", difficulty, ErrInvalidDifficulty)
	}
	st, err := s.stats.Mutate(ctx, id, func(st *store.StudentStats) error {
		st.Difficulty = string(d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set difficulty: %w", err)
	}
	return st, nil
}

// Reset clears all progress but keeps the student's id, name and
// difficulty.
func (s *Service) Reset(ctx context.Context, id string) (*store.StudentStats, error) {
	st, err := s.stats.Mutate(ctx, id, func(st *store.StudentStats) error {
		fresh := store.NewStudentStats(st.ID, s.now())
		fresh.Name = st.Name
		fresh.Difficulty = st.Difficulty
		fresh.CreatedAt = st.CreatedAt
		*st = *fresh
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	if err := s.events.DeleteSolves(ctx, id); err != nil {
		return nil, fmt.Errorf("reset events: %w", err)
	}
	s.logger.Info("student reset", zap.String("student_id", id))
	return st, nil
}

// Delete removes the student and their history.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.stats.Get(ctx, id); err != nil {
		return err
	}
	if err := s.events.DeleteSolves(ctx, id); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}
	if err := s.stats.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}
