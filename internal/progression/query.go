package progression

import (
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

// Find returns the entry for id.
func Find(list []MathTopicData, id topic.ID) (MathTopicData, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return MathTopicData{}, false
}

// IsUnlocked reports whether id is unlocked for the student.
func (e *Engine) IsUnlocked(stats *store.StudentStats, id topic.ID) bool {
	d, ok := Find(e.CalculateTopicProgress(stats), id)
	return ok && d.IsUnlocked
}

// Mastered reports whether the student has reached the unlock threshold in
// id.
func (e *Engine) Mastered(stats *store.StudentStats, id topic.ID) bool {
	d, ok := Find(e.CalculateTopicProgress(stats), id)
	return ok && d.IsUnlocked && d.Progress >= e.cfg.UnlockThreshold
}

// NextLocked returns the first locked topic in the chain.
func (e *Engine) NextLocked(stats *store.StudentStats) (topic.ID, bool) {
	for _, d := range e.CalculateTopicProgress(stats) {
		if !d.IsUnlocked {
			return d.ID, true
		}
	}
	return "", false
}

// NewlyUnlocked returns topics locked in before and unlocked in after.
func NewlyUnlocked(before, after []MathTopicData) []topic.ID {
	var out []topic.ID
	for _, a := range after {
		if !a.IsUnlocked {
			continue
		}
		if b, ok := Find(before, a.ID); !ok || !b.IsUnlocked {
			out = append(out, a.ID)
		}
	}
	return out
}
