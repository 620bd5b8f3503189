package problemgen

import "strings"

// Operation is one of the four arithmetic operations a problem can use.
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// AllOperations returns the operations in curriculum order.
func AllOperations() []Operation {
	return []Operation{OpAddition, OpSubtraction, OpMultiplication, OpDivision}
}

// Symbol returns the printable operator for the operation.
func (o Operation) Symbol() string {
	switch o {
	case OpSubtraction:
		return "-"
	case OpMultiplication:
		return "×"
	case OpDivision:
		return "÷"
	default:
		return "+"
	}
}

// ParseOperation maps a string to an Operation. Unknown or empty input
// resolves to addition.
func ParseOperation(s string) Operation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subtraction", "sub", "-":
		return OpSubtraction
	case "multiplication", "mul", "x", "*", "×":
		return OpMultiplication
	case "division", "div", "/", "÷":
		return OpDivision
	default:
		return OpAddition
	}
}

// Difficulty selects the numeric ranges used for generation.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseDifficulty maps a string to a Difficulty. Unknown or empty input
// resolves to medium.
func ParseDifficulty(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.Valid() {
		return d
	}
	return Medium
}

// OperandPair holds the two numbers of a problem. For subtraction and
// division Num1 is the minuend/dividend and is never smaller than Num2.
type OperandPair struct {
	Num1 int `json:"num1"`
	Num2 int `json:"num2"`
}

// Equal reports whether both components match.
func (p OperandPair) Equal(o OperandPair) bool {
	return p.Num1 == o.Num1 && p.Num2 == o.Num2
}

// Bound is the second argument of generation: either a difficulty looked up
// in the limit tables, or a raw ceiling for the sum (legacy numeric mode).
// The zero value means medium difficulty.
type Bound struct {
	Difficulty Difficulty
	MaxSum     int
}

// ForDifficulty returns a Bound that uses the limit tables for d.
func ForDifficulty(d Difficulty) Bound {
	return Bound{Difficulty: d}
}

// ForMaxSum returns a Bound in numeric mode with the given ceiling.
func ForMaxSum(max int) Bound {
	return Bound{MaxSum: max}
}

// numeric reports whether the bound is in legacy numeric mode.
func (b Bound) numeric() bool {
	return b.MaxSum > 0
}

// difficulty returns the bound's difficulty, defaulting to medium.
func (b Bound) difficulty() Difficulty {
	if b.Difficulty.Valid() {
		return b.Difficulty
	}
	return Medium
}

// Problem is a generated problem ready for display and answer checking.
type Problem struct {
	Operation  Operation   `json:"operation"`
	Difficulty Difficulty  `json:"difficulty,omitempty"`
	Operands   OperandPair `json:"operands"`

	// Text is the prompt shown to the learner, e.g. "8 + 5 = ?".
	Text string `json:"text"`

	// Answer is the exact result; the quotient for division.
	Answer int `json:"answer"`

	// Remainder is only meaningful for division.
	Remainder int `json:"remainder,omitempty"`

	// Fallback is set when retries were exhausted and the deterministic
	// fallback pair was returned.
	Fallback bool `json:"fallback,omitempty"`
}
