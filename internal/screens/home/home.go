package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/screen"
	"github.com/abhisek/numbernexus/internal/screens/practice"
	progressscreen "github.com/abhisek/numbernexus/internal/screens/progress"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
	"github.com/abhisek/numbernexus/internal/ui/components"
	"github.com/abhisek/numbernexus/internal/ui/layout"
)

// loadedMsg carries the student's stats and derived topic progress.
type loadedMsg struct {
	stats  *store.StudentStats
	topics []progression.MathTopicData
	err    error
}

// HomeScreen lists the topics with their lock state and level.
type HomeScreen struct {
	env    screen.Env
	stats  *store.StudentStats
	topics []progression.MathTopicData
	menu   components.Menu
	err    error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. Data is loaded by Init.
func New(env screen.Env) *HomeScreen {
	return &HomeScreen{env: env}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load
}

// Resume reloads stats after a practice session.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "D", Description: "Difficulty"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) load() tea.Msg {
	ctx := context.Background()
	st, err := h.env.Stats.Get(ctx, h.env.StudentID)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{stats: st, topics: h.env.Stats.Engine().CalculateTopicProgress(st)}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.err = msg.err
		if msg.err != nil {
			return h, nil
		}
		h.stats, h.topics = msg.stats, msg.topics
		h.menu.SetItems(h.menuItems())
		return h, func() tea.Msg {
			return screen.StatusMsg{Score: msg.stats.TotalScore, Streak: msg.stats.CurrentStreak}
		}

	case tea.KeyPressMsg:
		if msg.String() == "d" && h.stats != nil {
			return h, h.cycleDifficulty()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// cycleDifficulty moves easy → medium → hard → easy and reloads.
func (h *HomeScreen) cycleDifficulty() tea.Cmd {
	next := nextDifficulty(problemgen.ParseDifficulty(h.stats.Difficulty))
	return func() tea.Msg {
		if _, err := h.env.Stats.SetDifficulty(context.Background(), h.env.StudentID, string(next)); err != nil {
			return loadedMsg{err: err}
		}
		return h.load()
	}
}

func nextDifficulty(d problemgen.Difficulty) problemgen.Difficulty {
	all := problemgen.AllDifficulties()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return problemgen.Medium
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	threshold := h.env.Stats.Engine().Config().UnlockThreshold
	items := make([]components.MenuItem, 0, len(h.topics)+3)
	unlocked := 0

	for _, d := range h.topics {
		t, err := topic.Get(d.ID)
		if err != nil {
			continue
		}
		name := h.env.Localizer.TopicName(string(t.ID), t.Name)
		item := components.MenuItem{Label: fmt.Sprintf("%s  %s", t.Symbol, name)}
		if d.IsUnlocked {
			unlocked++
			item.Detail = fmt.Sprintf("Lv %d · %d%%", d.Level, d.Progress)
			id := d.ID
			item.Action = func() tea.Cmd {
				return screen.Push(practice.New(h.env, id))
			}
		} else {
			item.Disabled = true
			item.Detail = "🔒 locked"
			if prev, ok := topic.Prerequisite(t.ID); ok {
				item.Detail = fmt.Sprintf("🔒 reach %d%% in %s", threshold,
					h.env.Localizer.TopicName(string(prev.ID), prev.Name))
			}
		}
		items = append(items, item)
	}

	items = append(items,
		components.MenuItem{
			Label:    "🔀  Mixed practice",
			Disabled: unlocked < 2,
			Action: func() tea.Cmd {
				return screen.Push(practice.New(h.env, ""))
			},
		},
		components.MenuItem{
			Label: "📊  Progress",
			Action: func() tea.Cmd {
				return screen.Push(progressscreen.New(h.env))
			},
		},
		components.MenuItem{
			Label:  "👋  Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}
