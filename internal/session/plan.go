package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/topic"
)

// PlanCategory represents the reason a topic was included in the plan.
type PlanCategory string

const (
	CategoryFocus    PlanCategory = "focus"
	CategoryFrontier PlanCategory = "frontier"
	CategoryReview   PlanCategory = "review"
)

// QuestionsPerSlot is the number of questions served per mini-block before
// a mixed session moves to the next topic.
const QuestionsPerSlot = 3

// PlanSlot is a single topic that receives mini-blocks of questions.
type PlanSlot struct {
	Topic    topic.ID
	Category PlanCategory
}

// Plan is the ordered list of topic slots for a session.
type Plan struct {
	Slots []PlanSlot
}

var ErrNoTopics = errors.New("no unlocked topics")

// BuildPlan creates a plan from the student's topic progress. A non-empty
// focus yields a single-slot plan for that topic, which must be unlocked.
// Otherwise unlocked topics below masteryThreshold are frontier slots,
// followed by mastered topics as review slots.
func BuildPlan(topics []progression.MathTopicData, focus topic.ID, masteryThreshold int) (*Plan, error) {
	if focus != "" {
		d, ok := progression.Find(topics, focus)
		if !ok {
			return nil, fmt.Errorf("unknown topic %q", focus)
		}
		if !d.IsUnlocked {
			return nil, fmt.Errorf("topic %q is locked", focus)
		}
		return &Plan{Slots: []PlanSlot{{Topic: focus, Category: CategoryFocus}}}, nil
	}

	var frontier, review []PlanSlot
	for _, d := range topics {
		if !d.IsUnlocked {
			continue
		}
		if d.Progress >= masteryThreshold {
			review = append(review, PlanSlot{Topic: d.ID, Category: CategoryReview})
		} else {
			frontier = append(frontier, PlanSlot{Topic: d.ID, Category: CategoryFrontier})
		}
	}

	slots := append(frontier, review...)
	if len(slots) == 0 {
		return nil, ErrNoTopics
	}
	return &Plan{Slots: slots}, nil
}

// Topics returns the topic of every slot in order.
func (p *Plan) Topics() []topic.ID {
	ids := make([]topic.ID, len(p.Slots))
	for i, s := range p.Slots {
		ids[i] = s.Topic
	}
	return ids
}
