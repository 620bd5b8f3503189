package hints

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/numbernexus/internal/problemgen"
)

// FactFamily groups facts that share a memorization trick.
type FactFamily string

const (
	FamilyDoubles     FactFamily = "doubles"
	FamilyNearDoubles FactFamily = "near-doubles"
	FamilyPlusOne     FactFamily = "plus-one"
	FamilyPlusNine    FactFamily = "plus-nine"
	FamilyMakeTen     FactFamily = "make-ten"
	FamilyMinusSame   FactFamily = "minus-same"
	FamilyMinusOne    FactFamily = "minus-one"
	FamilyFromTen     FactFamily = "from-ten"
	FamilyTimesZero   FactFamily = "times-zero"
	FamilyTimesOne    FactFamily = "times-one"
	FamilyTimesTwo    FactFamily = "times-two"
	FamilyTimesFive   FactFamily = "times-five"
	FamilyTimesNine   FactFamily = "times-nine"
	FamilySquares     FactFamily = "squares"
	FamilyOther       FactFamily = "other"
)

var familyTips = map[FactFamily]string{
	FamilyDoubles:     "Double facts are easy to remember! Think of pairs.",
	FamilyNearDoubles: "This is close to a double. Just add or subtract 1!",
	FamilyPlusOne:     "Just count up by one!",
	FamilyPlusNine:    "Add 10, then subtract 1!",
	FamilyMakeTen:     "These two numbers make 10 together!",
	FamilyMinusSame:   "Any number minus itself equals zero!",
	FamilyMinusOne:    "Just count down by one!",
	FamilyFromTen:     "Think about what makes 10 with this number.",
	FamilyTimesZero:   "Any number times zero equals zero!",
	FamilyTimesOne:    "Any number times one equals itself!",
	FamilyTimesTwo:    "Double the number!",
	FamilyTimesFive:   "Count by 5s or think of nickels!",
	FamilyTimesNine:   "Multiply by 10 and subtract the number once!",
	FamilySquares:     "Square numbers form a pattern: 1, 4, 9, 16, 25...",
}

// Tip returns the memorization tip for the family, or "" for FamilyOther.
func (f FactFamily) Tip() string {
	return familyTips[f]
}

// ClassifyFactFamily names the fact family of n1 op n2. Division facts are
// classified through their multiplication partner (quotient × divisor).
func ClassifyFactFamily(op problemgen.Operation, n1, n2 int) FactFamily {
	switch op {
	case problemgen.OpSubtraction:
		switch {
		case n1 == n2:
			return FamilyMinusSame
		case n2 == 1:
			return FamilyMinusOne
		case n1 == 10:
			return FamilyFromTen
		}
		return FamilyOther

	case problemgen.OpMultiplication:
		switch {
		case n1 == 0 || n2 == 0:
			return FamilyTimesZero
		case n1 == 1 || n2 == 1:
			return FamilyTimesOne
		case n1 == 2 || n2 == 2:
			return FamilyTimesTwo
		case n1 == 5 || n2 == 5:
			return FamilyTimesFive
		case n1 == 9 || n2 == 9:
			return FamilyTimesNine
		case n1 == n2:
			return FamilySquares
		}
		return FamilyOther

	case problemgen.OpDivision:
		if n2 == 0 {
			return FamilyOther
		}
		return ClassifyFactFamily(problemgen.OpMultiplication, n1/n2, n2)

	default:
		switch {
		case n1 == n2:
			return FamilyDoubles
		case n1-n2 == 1 || n2-n1 == 1:
			return FamilyNearDoubles
		case n1 == 1 || n2 == 1:
			return FamilyPlusOne
		case n1 == 9 || n2 == 9:
			return FamilyPlusNine
		case n1+n2 == 10:
			return FamilyMakeTen
		}
		return FamilyOther
	}
}

// StrategyFor returns the hint for any operation. Addition uses the
// count / make-ten / decompose selection; the other operations get a
// fact-family strategy that leans on the inverse operation.
func (c *Classifier) StrategyFor(op problemgen.Operation, n1, n2 int) HintStrategy {
	switch op {
	case problemgen.OpSubtraction:
		return thinkAddition(n1, n2)
	case problemgen.OpMultiplication:
		return skipCount(n1, n2)
	case problemgen.OpDivision:
		return thinkMultiplication(n1, n2)
	default:
		s := c.Strategy(n1, n2)
		if f := ClassifyFactFamily(problemgen.OpAddition, n1, n2); f != FamilyOther {
			s.Family = f
		}
		return s
	}
}

func describe(fallback string, f FactFamily) string {
	if tip := f.Tip(); tip != "" {
		return tip
	}
	return fallback
}

func thinkAddition(n1, n2 int) HintStrategy {
	f := ClassifyFactFamily(problemgen.OpSubtraction, n1, n2)
	diff := n1 - n2
	return HintStrategy{
		Type:        StrategyFactFamily,
		Title:       "Think Addition",
		Description: describe("Subtraction undoes addition.", f),
		Steps: []string{
			fmt.Sprintf("Start at %d", n2),
			fmt.Sprintf("What do you add to %d to get %d?", n2, n1),
			fmt.Sprintf("%d + %d = %d, so %d - %d = %d", n2, diff, n1, n1, n2, diff),
		},
		VisualCues: VisualCues{PulseAddend2: true},
		Family:     f,
	}
}

// maxSkipTerms caps the listed skip-count sequence.
const maxSkipTerms = 6

func skipCount(n1, n2 int) HintStrategy {
	f := ClassifyFactFamily(problemgen.OpMultiplication, n1, n2)

	terms := make([]string, 0, maxSkipTerms+1)
	for i := 1; i <= min(n1, maxSkipTerms); i++ {
		terms = append(terms, strconv.Itoa(i*n2))
	}
	if n1 > maxSkipTerms {
		terms = append(terms, "...")
	}
	seq := strings.Join(terms, ", ")
	if seq == "" {
		seq = "0"
	}

	return HintStrategy{
		Type:        StrategyFactFamily,
		Title:       "Skip Count",
		Description: describe("Multiplication is adding equal groups.", f),
		Steps: []string{
			fmt.Sprintf("Make %d groups of %d", n1, n2),
			fmt.Sprintf("Count by %ds: %s", n2, seq),
			fmt.Sprintf("%d × %d = %d", n1, n2, n1*n2),
		},
		VisualCues: VisualCues{PulseAddend1: true, PulseAddend2: true},
		Family:     f,
	}
}

func thinkMultiplication(n1, n2 int) HintStrategy {
	if n2 == 0 {
		return HintStrategy{
			Type:        StrategyFactFamily,
			Title:       "Think Multiplication",
			Description: "Nothing can be shared into zero groups.",
			Steps:       []string{"Division by zero has no answer"},
			Family:      FamilyOther,
		}
	}

	f := ClassifyFactFamily(problemgen.OpDivision, n1, n2)
	q, r := n1/n2, n1%n2
	steps := []string{
		fmt.Sprintf("What times %d gets close to %d without going over?", n2, n1),
		fmt.Sprintf("%d × %d = %d", q, n2, q*n2),
	}
	if r != 0 {
		steps = append(steps,
			fmt.Sprintf("%d - %d = %d left over", n1, q*n2, r),
			fmt.Sprintf("%d ÷ %d = %d R %d", n1, n2, q, r),
		)
	} else {
		steps = append(steps, fmt.Sprintf("%d ÷ %d = %d", n1, n2, q))
	}

	return HintStrategy{
		Type:        StrategyFactFamily,
		Title:       "Think Multiplication",
		Description: describe("Division undoes multiplication.", f),
		Steps:       steps,
		VisualCues:  VisualCues{PulseAddend2: true},
		Family:      f,
	}
}
