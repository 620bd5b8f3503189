package diagnosis

import (
	"slices"

	"github.com/abhisek/numbernexus/internal/topic"
)

// Misconception IDs recognised by the rule classifiers.
const (
	MisconceptionOffByOne          = "off-by-one"
	MisconceptionWrongOperation    = "wrong-operation"
	MisconceptionNoCarry           = "add-no-carry"
	MisconceptionSmallerFromLarger = "sub-smaller-from-larger"
)

// Misconception defines a known misconception pattern.
type Misconception struct {
	ID          string
	Topics      []topic.ID
	Label       string
	Description string
	Examples    []string
}

var misconceptions = []Misconception{
	{
		ID:          MisconceptionOffByOne,
		Topics:      topic.IDs(),
		Label:       "Off by one",
		Description: "Counts one too many or one too few; often starts counting on the first addend",
		Examples:    []string{"8 + 5 = 12", "9 - 4 = 6"},
	},
	{
		ID:          MisconceptionWrongOperation,
		Topics:      topic.IDs(),
		Label:       "Wrong operation",
		Description: "Applies a different operation than the one shown",
		Examples:    []string{"6 × 2 = 8", "9 - 3 = 12"},
	},
	{
		ID:          MisconceptionNoCarry,
		Topics:      []topic.ID{topic.Addition},
		Label:       "Forgot to carry",
		Description: "Adds each column separately and drops the carried ten",
		Examples:    []string{"27 + 16 = 33", "58 + 34 = 82"},
	},
	{
		ID:          MisconceptionSmallerFromLarger,
		Topics:      []topic.ID{topic.Subtraction},
		Label:       "Smaller from larger",
		Description: "Subtracts the smaller digit from the larger in each column instead of regrouping",
		Examples:    []string{"42 - 17 = 35", "50 - 23 = 33"},
	},
}

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	for i := range misconceptions {
		if misconceptions[i].ID == id {
			return &misconceptions[i]
		}
	}
	return nil
}

// MisconceptionsByTopic returns all misconceptions that apply to a topic.
func MisconceptionsByTopic(id topic.ID) []*Misconception {
	var out []*Misconception
	for i := range misconceptions {
		if slices.Contains(misconceptions[i].Topics, id) {
			out = append(out, &misconceptions[i])
		}
	}
	return out
}

// AllMisconceptions returns every misconception in the taxonomy.
func AllMisconceptions() []*Misconception {
	out := make([]*Misconception, len(misconceptions))
	for i := range misconceptions {
		out[i] = &misconceptions[i]
	}
	return out
}
