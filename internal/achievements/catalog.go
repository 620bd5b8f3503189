package achievements

import (
	"fmt"

	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

// Achievement IDs that are not derived from a topic.
const (
	FirstSteps   = "first-steps"
	TenSolved    = "ten-solved"
	FiftySolved  = "fifty-solved"
	Century      = "century"
	Streak5      = "streak-5"
	Streak10     = "streak-10"
	Streak20     = "streak-20"
	SpeedDemon   = "speed-demon"
	speedDemonAt = 20
)

// MasterID returns the mastery achievement ID for a topic, e.g.
// "addition-master".
func MasterID(id topic.ID) string {
	return string(id) + "-master"
}

// rule decides whether an achievement is earned. mastered reports whether
// the student has reached the mastery threshold in a topic.
type rule func(st *store.StudentStats, mastered func(topic.ID) bool) bool

type entry struct {
	Achievement
	earned rule
}

func correctAtLeast(n int) rule {
	return func(st *store.StudentStats, _ func(topic.ID) bool) bool { return st.CorrectAnswers >= n }
}

func streakAtLeast(n int) rule {
	return func(st *store.StudentStats, _ func(topic.ID) bool) bool { return st.BestStreak >= n }
}

func masteredTopic(id topic.ID) rule {
	return func(_ *store.StudentStats, mastered func(topic.ID) bool) bool { return mastered(id) }
}

var catalog = buildCatalog()

func buildCatalog() []entry {
	c := []entry{
		{Achievement{FirstSteps, "First Steps", "Answer your first problem correctly", CategoryMilestone, RarityCommon}, correctAtLeast(1)},
		{Achievement{TenSolved, "Warming Up", "Answer 10 problems correctly", CategoryMilestone, RarityCommon}, correctAtLeast(10)},
		{Achievement{FiftySolved, "Number Cruncher", "Answer 50 problems correctly", CategoryMilestone, RarityRare}, correctAtLeast(50)},
		{Achievement{Century, "Century", "Answer 100 problems correctly", CategoryMilestone, RarityEpic}, correctAtLeast(100)},
		{Achievement{Streak5, "On a Roll", "5 correct in a row", CategoryStreak, StreakRarity(5)}, streakAtLeast(5)},
		{Achievement{Streak10, "Hot Streak", "10 correct in a row", CategoryStreak, StreakRarity(10)}, streakAtLeast(10)},
		{Achievement{Streak20, "Unstoppable", "20 correct in a row", CategoryStreak, StreakRarity(20)}, streakAtLeast(20)},
	}

	for i, t := range topic.All() {
		c = append(c, entry{
			Achievement{MasterID(t.ID), t.Name + " Master", fmt.Sprintf("Reach mastery in %s", t.Name), CategoryMastery, DepthRarity(i)},
			masteredTopic(t.ID),
		})
	}

	c = append(c, entry{
		Achievement{SpeedDemon, "Speed Demon", fmt.Sprintf("Get %d right in one speed drill", speedDemonAt), CategorySpeed, RarityEpic},
		func(st *store.StudentStats, _ func(topic.ID) bool) bool { return st.SpeedDrillBest >= speedDemonAt },
	})
	return c
}

// All returns every achievement in display order.
func All() []Achievement {
	out := make([]Achievement, len(catalog))
	for i, e := range catalog {
		out[i] = e.Achievement
	}
	return out
}

// Get returns an achievement by ID.
func Get(id string) (Achievement, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e.Achievement, true
		}
	}
	return Achievement{}, false
}
