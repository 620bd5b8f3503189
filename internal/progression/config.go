package progression

import "github.com/abhisek/numbernexus/internal/topic"

// DefaultScoreLimit is the mastery limit for a topic with no explicit entry.
const DefaultScoreLimit = 100

// Config holds the gating constants.
type Config struct {
	// Topics is the ordered chain. Each topic is gated on the one before.
	Topics []topic.ID

	// UnlockThreshold is the percent the preceding topic must reach.
	UnlockThreshold int

	// ScoreLimits maps a topic to the points that count as 100%.
	ScoreLimits map[topic.ID]int

	PointsPerLevel int
	MaxLevel       int

	// AchievementGates optionally requires an earned achievement, on top of
	// the numeric threshold, before a topic unlocks.
	AchievementGates map[topic.ID]string
}

// DefaultConfig returns the compiled-in gating constants. No achievement
// gates are set.
func DefaultConfig() Config {
	ids := topic.IDs()
	limits := make(map[topic.ID]int, len(ids))
	for _, id := range ids {
		limits[id] = DefaultScoreLimit
	}
	return Config{
		Topics:          ids,
		UnlockThreshold: 80,
		ScoreLimits:     limits,
		PointsPerLevel:  20,
		MaxLevel:        5,
	}
}

// ScoreLimit returns the mastery limit for id.
func (c Config) ScoreLimit(id topic.ID) int {
	if l, ok := c.ScoreLimits[id]; ok {
		return l
	}
	return DefaultScoreLimit
}
