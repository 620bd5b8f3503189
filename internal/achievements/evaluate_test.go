package achievements

import (
	"slices"
	"testing"

	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

func evaluate(st *store.StudentStats) []string {
	e := progression.New(progression.DefaultConfig())
	return IDs(NewEvaluator(80).Evaluate(st, e.CalculateTopicProgress(st)))
}

func TestEvaluate_Milestones(t *testing.T) {
	tests := []struct {
		correct int
		want    []string
	}{
		{0, nil},
		{1, []string{FirstSteps}},
		{10, []string{FirstSteps, TenSolved}},
		{100, []string{FirstSteps, TenSolved, FiftySolved, Century}},
	}
	for _, tt := range tests {
		st := &store.StudentStats{CorrectAnswers: tt.correct}
		got := evaluate(st)
		if !slices.Equal(got, tt.want) {
			t.Errorf("correct=%d: got %v, want %v", tt.correct, got, tt.want)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	st := &store.StudentStats{CorrectAnswers: 12, BestStreak: 6}
	first := evaluate(st)
	if len(first) != 3 {
		t.Fatalf("got %v, want first-steps, ten-solved, streak-5", first)
	}
	st.Achievements = append(st.Achievements, first...)
	if again := evaluate(st); len(again) != 0 {
		t.Errorf("second evaluation returned %v", again)
	}
}

func TestEvaluate_Mastery(t *testing.T) {
	st := &store.StudentStats{TopicScores: map[string]int{"addition": 100, "subtraction": 50}}
	got := evaluate(st)
	if !slices.Contains(got, MasterID(topic.Addition)) {
		t.Errorf("expected addition-master in %v", got)
	}
	if slices.Contains(got, MasterID(topic.Subtraction)) {
		t.Errorf("subtraction-master awarded at 50%%: %v", got)
	}

	// Score in a locked topic does not count as mastery.
	st = &store.StudentStats{TopicScores: map[string]int{"addition": 10, "multiplication": 100}}
	if got := evaluate(st); slices.Contains(got, MasterID(topic.Multiplication)) {
		t.Errorf("locked topic mastered: %v", got)
	}
}

func TestEvaluate_SpeedDemon(t *testing.T) {
	got := evaluate(&store.StudentStats{SpeedDrillBest: 20})
	if !slices.Equal(got, []string{SpeedDemon}) {
		t.Errorf("got %v, want [speed-demon]", got)
	}
}

func TestEvaluate_Nil(t *testing.T) {
	if got := NewEvaluator(80).Evaluate(nil, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestEarnedAndLocked(t *testing.T) {
	st := &store.StudentStats{Achievements: []string{Streak5, FirstSteps}}
	earned := IDs(Earned(st))
	if !slices.Equal(earned, []string{FirstSteps, Streak5}) {
		t.Errorf("Earned = %v, want catalog order", earned)
	}
	if n := len(Locked(st)); n != len(All())-2 {
		t.Errorf("Locked = %d entries, want %d", n, len(All())-2)
	}
}

func TestCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range All() {
		if seen[a.ID] {
			t.Errorf("duplicate achievement %q", a.ID)
		}
		seen[a.ID] = true
		if a.Name == "" || a.Description == "" {
			t.Errorf("%q is missing display text", a.ID)
		}
	}
	for _, id := range topic.IDs() {
		if _, ok := Get(MasterID(id)); !ok {
			t.Errorf("no mastery achievement for %q", id)
		}
	}
	a, _ := Get(MasterID(topic.Division))
	if a.Rarity != RarityLegendary {
		t.Errorf("division-master rarity = %q, want legendary", a.Rarity)
	}
}

func TestStreakRarity(t *testing.T) {
	tests := []struct {
		length int
		want   Rarity
	}{
		{5, RarityCommon},
		{10, RarityRare},
		{15, RarityEpic},
		{20, RarityLegendary},
		{50, RarityLegendary},
	}
	for _, tt := range tests {
		if got := StreakRarity(tt.length); got != tt.want {
			t.Errorf("StreakRarity(%d) = %q, want %q", tt.length, got, tt.want)
		}
	}
}
