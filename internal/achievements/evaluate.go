package achievements

import (
	"github.com/samber/lo"

	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

// Evaluator decides which achievements a student has earned.
type Evaluator struct {
	masteryThreshold int
}

// NewEvaluator creates an Evaluator. A topic counts as mastered once it is
// unlocked with progress at or above masteryThreshold.
func NewEvaluator(masteryThreshold int) *Evaluator {
	return &Evaluator{masteryThreshold: masteryThreshold}
}

// Evaluate returns achievements earned by stats that are not yet recorded
// in stats.Achievements. Calling it again after recording them returns
// nothing.
func (e *Evaluator) Evaluate(stats *store.StudentStats, topics []progression.MathTopicData) []Achievement {
	if stats == nil {
		return nil
	}
	mastered := func(id topic.ID) bool {
		d, ok := progression.Find(topics, id)
		return ok && d.IsUnlocked && d.Progress >= e.masteryThreshold
	}

	earned := lo.Filter(catalog, func(en entry, _ int) bool {
		return !stats.HasAchievement(en.ID) && en.earned(stats, mastered)
	})
	return lo.Map(earned, func(en entry, _ int) Achievement { return en.Achievement })
}

// Earned returns the catalog entries recorded in stats, in display order.
func Earned(stats *store.StudentStats) []Achievement {
	return lo.Filter(All(), func(a Achievement, _ int) bool { return stats.HasAchievement(a.ID) })
}

// Locked returns the catalog entries not yet recorded in stats.
func Locked(stats *store.StudentStats) []Achievement {
	return lo.Reject(All(), func(a Achievement, _ int) bool { return stats.HasAchievement(a.ID) })
}

// IDs extracts achievement IDs.
func IDs(as []Achievement) []string {
	return lo.Map(as, func(a Achievement, _ int) string { return a.ID })
}
