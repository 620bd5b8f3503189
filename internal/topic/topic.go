package topic

import "github.com/abhisek/numbernexus/internal/problemgen"

// ID identifies a topic. Topic IDs match the operation names used by the
// problem generator.
type ID string

const (
	Addition       ID = "addition"
	Subtraction    ID = "subtraction"
	Multiplication ID = "multiplication"
	Division       ID = "division"
)

// Topic is one stage of the progression chain.
type Topic struct {
	ID          ID
	Name        string
	Description string
	Symbol      string
	Icon        string

	// Prerequisite is the topic that must be mastered first. Empty for the
	// root of the chain.
	Prerequisite ID
}

// Operation returns the arithmetic operation practiced by the topic.
func (t Topic) Operation() problemgen.Operation {
	return problemgen.Operation(t.ID)
}

// ForOperation returns the topic ID that practices op.
func ForOperation(op problemgen.Operation) ID {
	return ID(op)
}
