package topic

import (
	"fmt"
	"slices"
)

// chain is the fixed ordered list of topics. Each topic's prerequisite is
// the topic immediately before it.
var chain = []Topic{
	{
		ID:          Addition,
		Name:        "Addition",
		Description: "Counting on, making ten and adding with tens and ones",
		Symbol:      "+",
		Icon:        "➕",
	},
	{
		ID:           Subtraction,
		Name:         "Subtraction",
		Description:  "Taking away and thinking addition",
		Symbol:       "-",
		Icon:         "➖",
		Prerequisite: Addition,
	},
	{
		ID:           Multiplication,
		Name:         "Multiplication",
		Description:  "Skip counting and times tables",
		Symbol:       "×",
		Icon:         "✖",
		Prerequisite: Subtraction,
	},
	{
		ID:           Division,
		Name:         "Division",
		Description:  "Sharing equally, with remainders",
		Symbol:       "÷",
		Icon:         "➗",
		Prerequisite: Multiplication,
	},
}

var byID = func() map[ID]int {
	m := make(map[ID]int, len(chain))
	for i, t := range chain {
		m[t.ID] = i
	}
	return m
}()

// All returns every topic in chain order.
func All() []Topic {
	return slices.Clone(chain)
}

// IDs returns the topic IDs in chain order.
func IDs() []ID {
	ids := make([]ID, len(chain))
	for i, t := range chain {
		ids[i] = t.ID
	}
	return ids
}

// Get returns a topic by ID, or an error if it does not exist.
func Get(id ID) (Topic, error) {
	i, ok := byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return chain[i], nil
}

// Valid reports whether id names a known topic.
func Valid(id ID) bool {
	_, ok := byID[id]
	return ok
}

// Index returns the position of id in the chain, or -1.
func Index(id ID) int {
	if i, ok := byID[id]; ok {
		return i
	}
	return -1
}

// Prerequisite returns the topic that gates id. The second result is false
// for the root topic and for unknown IDs.
func Prerequisite(id ID) (Topic, bool) {
	i, ok := byID[id]
	if !ok || chain[i].Prerequisite == "" {
		return Topic{}, false
	}
	return chain[byID[chain[i].Prerequisite]], true
}

// Next returns the topic unlocked by mastering id.
func Next(id ID) (Topic, bool) {
	i, ok := byID[id]
	if !ok || i+1 >= len(chain) {
		return Topic{}, false
	}
	return chain[i+1], true
}

// DisplayName returns the human-readable topic name, or the raw ID for
// unknown topics.
func DisplayName(id ID) string {
	if t, err := Get(id); err == nil {
		return t.Name
	}
	return string(id)
}
