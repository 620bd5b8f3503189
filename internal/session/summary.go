package session

import (
	"time"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/topic"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	PointsEarned   int
	TopicResults   []TopicResult
	Unlocked       []topic.ID
	Achievements   []achievements.Achievement
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState, now time.Time) *SessionSummary {
	var results []TopicResult
	seen := make(map[topic.ID]bool)
	for _, slot := range state.Plan.Slots {
		if seen[slot.Topic] {
			continue
		}
		seen[slot.Topic] = true
		if tr, ok := state.PerTopicResults[slot.Topic]; ok {
			results = append(results, *tr)
		}
	}

	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}

	return &SessionSummary{
		SessionID:      state.SessionID,
		Duration:       now.Sub(state.StartTime),
		TotalQuestions: state.TotalQuestions,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		PointsEarned:   state.PointsEarned,
		TopicResults:   results,
		Unlocked:       state.Unlocked,
		Achievements:   state.Achievements,
	}
}
