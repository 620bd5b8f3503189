package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

// ActivityDays is the length of the activity chart.
const ActivityDays = 7

// DayActivity is one bar of the activity chart.
type DayActivity struct {
	Date     string `json:"date"` // YYYY-MM-DD in the caller's location
	Problems int    `json:"problems"`
	Correct  int    `json:"correct"`
}

// TopicAccuracy summarizes answered problems per topic.
type TopicAccuracy struct {
	Topic     topic.ID `json:"topic"`
	Attempted int      `json:"attempted"`
	Correct   int      `json:"correct"`
	Accuracy  float64  `json:"accuracy"`
}

// Totals are the headline numbers.
type Totals struct {
	TotalScore     int     `json:"totalScore"`
	ProblemsSolved int     `json:"problemsSolved"`
	CorrectAnswers int     `json:"correctAnswers"`
	Accuracy       float64 `json:"accuracy"`
	CurrentStreak  int     `json:"currentStreak"`
	BestStreak     int     `json:"bestStreak"`
	SpeedDrillBest int     `json:"speedDrillBest"`
}

// Dashboard is everything the dashboard page renders.
type Dashboard struct {
	StudentID     string                      `json:"studentId"`
	Name          string                      `json:"name,omitempty"`
	Difficulty    string                      `json:"difficulty"`
	Topics        []progression.MathTopicData `json:"topics"`
	Activity      []DayActivity               `json:"activity"`
	TopicAccuracy []TopicAccuracy             `json:"topicAccuracy"`
	Earned        []achievements.Achievement  `json:"earnedAchievements"`
	Locked        []achievements.Achievement  `json:"lockedAchievements"`
	Totals        Totals                      `json:"totals"`
}

// Builder assembles dashboards from stored stats and solve events.
type Builder struct {
	stats  store.StatsRepo
	events store.EventRepo
	engine *progression.Engine
}

// NewBuilder creates a Builder.
func NewBuilder(stats store.StatsRepo, events store.EventRepo, engine *progression.Engine) *Builder {
	return &Builder{stats: stats, events: events, engine: engine}
}

// Build assembles the dashboard for a student as of now. Activity days are
// computed in now's location.
func (b *Builder) Build(ctx context.Context, id string, now time.Time) (*Dashboard, error) {
	st, err := b.stats.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	start := startOfDay(now).AddDate(0, 0, -(ActivityDays - 1))
	evs, err := b.events.QuerySolves(ctx, id, store.QueryOpts{From: start, To: now})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	return &Dashboard{
		StudentID:     st.ID,
		Name:          st.Name,
		Difficulty:    st.Difficulty,
		Topics:        b.engine.CalculateTopicProgress(st),
		Activity:      Activity(evs, start, now.Location()),
		TopicAccuracy: Accuracy(evs),
		Earned:        achievements.Earned(st),
		Locked:        achievements.Locked(st),
		Totals: Totals{
			TotalScore:     st.TotalScore,
			ProblemsSolved: st.ProblemsSolved,
			CorrectAnswers: st.CorrectAnswers,
			Accuracy:       st.Accuracy(),
			CurrentStreak:  st.CurrentStreak,
			BestStreak:     st.BestStreak,
			SpeedDrillBest: st.SpeedDrillBest,
		},
	}, nil
}

// Activity buckets events into ActivityDays days starting at start. Drill
// events count every attempted and correct answer they summarize.
func Activity(evs []store.SolveEvent, start time.Time, loc *time.Location) []DayActivity {
	byDay := lo.GroupBy(evs, func(ev store.SolveEvent) string {
		return ev.CreatedAt.In(loc).Format(time.DateOnly)
	})

	out := make([]DayActivity, ActivityDays)
	for i := range out {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		out[i] = DayActivity{Date: day}
		for _, ev := range byDay[day] {
			attempted, correct := counts(ev)
			out[i].Problems += attempted
			out[i].Correct += correct
		}
	}
	return out
}

// Accuracy summarizes events per topic in chain order. Topics without
// events are included with zero counts.
func Accuracy(evs []store.SolveEvent) []TopicAccuracy {
	byTopic := lo.GroupBy(evs, func(ev store.SolveEvent) string { return ev.Topic })

	return lo.Map(topic.IDs(), func(id topic.ID, _ int) TopicAccuracy {
		ta := TopicAccuracy{Topic: id}
		for _, ev := range byTopic[string(id)] {
			attempted, correct := counts(ev)
			ta.Attempted += attempted
			ta.Correct += correct
		}
		if ta.Attempted > 0 {
			ta.Accuracy = float64(ta.Correct) / float64(ta.Attempted)
		}
		return ta
	})
}

func counts(ev store.SolveEvent) (attempted, correct int) {
	if ev.Kind == store.EventDrill {
		return ev.Num2, ev.Num1
	}
	if ev.Correct {
		return 1, 1
	}
	return 1, 0
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
