package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// KindStudent is the entity kind for student statistics.
const KindStudent = "student"

// StudentStats is the per-student document persisted in the entity store.
// Topic progress is never stored; it is derived from the scores on read.
type StudentStats struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	TotalScore int    `json:"totalScore"`

	// TopicScores maps topic id to cumulative points. Nil for legacy
	// accounts that only ever tracked TotalScore.
	TopicScores map[string]int `json:"topicScores,omitempty"`

	ProblemsSolved int      `json:"problemsSolved"`
	CorrectAnswers int      `json:"correctAnswers"`
	CurrentStreak  int      `json:"currentStreak"`
	BestStreak     int      `json:"bestStreak"`
	Achievements   []string `json:"achievements"`
	Difficulty     string   `json:"difficulty"`
	SpeedDrillBest int      `json:"speedDrillBest"`

	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// NewStudentStats returns zero-valued stats for a first lookup.
func NewStudentStats(id string, now time.Time) *StudentStats {
	return &StudentStats{
		ID:           id,
		Achievements: []string{},
		Difficulty:   "medium",
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// TopicScore returns the stored score for a topic and whether an entry
// exists.
func (s *StudentStats) TopicScore(topic string) (int, bool) {
	if s == nil || s.TopicScores == nil {
		return 0, false
	}
	v, ok := s.TopicScores[topic]
	return v, ok
}

// AddTopicScore adds points to both the topic and the total.
func (s *StudentStats) AddTopicScore(topic string, points int) {
	if s.TopicScores == nil {
		s.TopicScores = make(map[string]int)
	}
	s.TopicScores[topic] += points
	s.TotalScore += points
}

// HasAchievement reports whether the achievement has been earned.
func (s *StudentStats) HasAchievement(id string) bool {
	return s != nil && slices.Contains(s.Achievements, id)
}

// Accuracy returns the fraction of correct answers, or 0 with no history.
func (s *StudentStats) Accuracy() float64 {
	if s == nil || s.ProblemsSolved == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.ProblemsSolved)
}

// Clone returns a deep copy.
func (s *StudentStats) Clone() *StudentStats {
	if s == nil {
		return nil
	}
	c := *s
	if s.TopicScores != nil {
		c.TopicScores = make(map[string]int, len(s.TopicScores))
		for k, v := range s.TopicScores {
			c.TopicScores[k] = v
		}
	}
	c.Achievements = slices.Clone(s.Achievements)
	return &c
}

// StatsRepo persists StudentStats.
type StatsRepo interface {
	// Get returns the stats, or ErrNotFound.
	Get(ctx context.Context, id string) (*StudentStats, error)

	// GetOrCreate returns the stats, creating zero defaults on first lookup.
	GetOrCreate(ctx context.Context, id string) (*StudentStats, error)

	// Mutate applies fn to the current stats (created if missing) and
	// persists the result in one transaction. Concurrent mutations of the
	// same student never interleave. If fn returns an error nothing is
	// written.
	Mutate(ctx context.Context, id string, fn func(*StudentStats) error) (*StudentStats, error)

	// Delete removes the student.
	Delete(ctx context.Context, id string) error

	// List returns every student ordered by id.
	List(ctx context.Context) ([]*StudentStats, error)
}

type statsRepo struct {
	entities *entityRepo
}

func (r *statsRepo) Get(ctx context.Context, id string) (*StudentStats, error) {
	e, err := r.entities.Get(ctx, KindStudent, id)
	if err != nil {
		return nil, err
	}
	return decodeStats(e.State)
}

func (r *statsRepo) GetOrCreate(ctx context.Context, id string) (*StudentStats, error) {
	st, err := r.Get(ctx, id)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.Mutate(ctx, id, func(*StudentStats) error { return nil })
}

func (r *statsRepo) Mutate(ctx context.Context, id string, fn func(*StudentStats) error) (*StudentStats, error) {
	var out *StudentStats
	_, err := r.entities.mutate(ctx, KindStudent, id, func(state []byte) ([]byte, error) {
		st := NewStudentStats(id, time.Now())
		if state != nil {
			decoded, err := decodeStats(state)
			if err != nil {
				return nil, err
			}
			st = decoded
		}
		if err := fn(st); err != nil {
			return nil, err
		}
		out = st
		return json.Marshal(st)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *statsRepo) Delete(ctx context.Context, id string) error {
	return r.entities.Delete(ctx, KindStudent, id)
}

func (r *statsRepo) List(ctx context.Context) ([]*StudentStats, error) {
	es, err := r.entities.List(ctx, KindStudent)
	if err != nil {
		return nil, err
	}
	out := make([]*StudentStats, 0, len(es))
	for _, e := range es {
		st, err := decodeStats(e.State)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func decodeStats(state []byte) (*StudentStats, error) {
	var st StudentStats
	if err := json.Unmarshal(state, &st); err != nil {
		return nil, fmt.Errorf("decode student stats: %w", err)
	}
	if st.Achievements == nil {
		st.Achievements = []string{}
	}
	return &st, nil
}
