package progression

import (
	"math"

	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

// MathTopicData is the derived state of one topic. It is recomputed on
// every call and never persisted.
type MathTopicData struct {
	ID         topic.ID `json:"id"`
	Progress   int      `json:"progress"`
	IsUnlocked bool     `json:"isUnlocked"`
	Level      int      `json:"level"`
}

// Engine computes topic progress from student stats. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New creates an Engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's gating constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// CalculateTopicProgress returns one entry per topic in chain order. Nil
// stats behave as all zero.
//
// A topic unlocks when the topic before it is unlocked and its progress is
// at least UnlockThreshold (and, if configured, the gating achievement is
// earned). Locked topics report progress 0 and level 1.
func (e *Engine) CalculateTopicProgress(stats *store.StudentStats) []MathTopicData {
	scores := e.scores(stats)
	out := make([]MathTopicData, len(e.cfg.Topics))

	prevUnlocked, prevProgress := true, 0
	for i, id := range e.cfg.Topics {
		unlocked := i == 0 || (prevUnlocked && prevProgress >= e.cfg.UnlockThreshold && e.gateMet(stats, id))

		d := MathTopicData{ID: id, IsUnlocked: unlocked, Level: 1}
		if unlocked {
			d.Progress = percent(scores[i], e.cfg.ScoreLimit(id))
			d.Level = e.level(d.Progress)
		}
		out[i] = d

		prevUnlocked, prevProgress = unlocked, d.Progress
	}
	return out
}

// scores resolves the raw score of every topic. Legacy accounts without any
// topic scores have their total spread along the chain, each topic taking
// up to its limit.
func (e *Engine) scores(stats *store.StudentStats) []int {
	out := make([]int, len(e.cfg.Topics))
	if stats == nil {
		return out
	}

	if len(stats.TopicScores) == 0 {
		return e.spread(stats.TotalScore)
	}

	for i, id := range e.cfg.Topics {
		if s, ok := stats.TopicScore(string(id)); ok {
			out[i] = s
		} else if i == 0 {
			out[i] = stats.TotalScore
		}
	}
	return out
}

// spread distributes a legacy total along the chain. Each topic takes up to
// its limit and whatever is left over stays on the last topic, so the
// parts always add up to total.
func (e *Engine) spread(total int) []int {
	out := make([]int, len(e.cfg.Topics))
	remaining := total
	for i, id := range e.cfg.Topics {
		take := min(max(remaining, 0), max(e.cfg.ScoreLimit(id), 0))
		out[i] = take
		remaining -= take
	}
	if n := len(out); n > 0 && remaining > 0 {
		out[n-1] += remaining
	}
	return out
}

// LegacyScores returns the per-topic scores a legacy account (no topic
// scores, only a total) is displayed with. It returns nil when stats
// already track topic scores or hold no points. Writing the result into
// TopicScores before adding new points keeps the displayed progress.
func (e *Engine) LegacyScores(stats *store.StudentStats) map[string]int {
	if stats == nil || len(stats.TopicScores) > 0 || stats.TotalScore <= 0 {
		return nil
	}
	out := make(map[string]int, len(e.cfg.Topics))
	for i, s := range e.spread(stats.TotalScore) {
		if s > 0 {
			out[string(e.cfg.Topics[i])] = s
		}
	}
	return out
}

func (e *Engine) gateMet(stats *store.StudentStats, id topic.ID) bool {
	gate, ok := e.cfg.AchievementGates[id]
	if !ok || gate == "" {
		return true
	}
	return stats.HasAchievement(gate)
}

func (e *Engine) level(progress int) int {
	if e.cfg.PointsPerLevel <= 0 {
		return 1
	}
	return max(1, min(progress/e.cfg.PointsPerLevel+1, e.cfg.MaxLevel))
}

// percent returns round(score/limit*100) clamped to [0, 100]. A
// non-positive limit yields 0.
func percent(score, limit int) int {
	if limit <= 0 {
		return 0
	}
	p := int(math.Round(float64(score) / float64(limit) * 100))
	return min(max(p, 0), 100)
}
