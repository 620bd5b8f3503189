package diagnosis

import "github.com/abhisek/numbernexus/internal/problemgen"

// OffByOneClassifier flags answers exactly one away from the correct result,
// typically a counting slip.
type OffByOneClassifier struct{}

func (c *OffByOneClassifier) Name() string { return "off-by-one" }

func (c *OffByOneClassifier) Classify(input *ClassifyInput) (ErrorCategory, string, float64) {
	n, ok := input.answer()
	if !ok {
		return "", "", 0
	}
	if d := n - input.Problem.Answer; d == 1 || d == -1 {
		return CategoryMisconception, MisconceptionOffByOne, 0.7
	}
	return "", "", 0
}

// WrongOperationClassifier flags answers that equal the result of a
// different operation on the same operands, e.g. 12 for 6 × 2 (added).
type WrongOperationClassifier struct{}

func (c *WrongOperationClassifier) Name() string { return "wrong-operation" }

func (c *WrongOperationClassifier) Classify(input *ClassifyInput) (ErrorCategory, string, float64) {
	n, ok := input.answer()
	if !ok || n == input.Problem.Answer {
		return "", "", 0
	}
	for _, op := range problemgen.AllOperations() {
		if op == input.Problem.Operation {
			continue
		}
		if op == problemgen.OpDivision && input.Problem.Operands.Num2 == 0 {
			continue
		}
		if problemgen.Build(op, input.Problem.Operands).Answer == n {
			return CategoryMisconception, MisconceptionWrongOperation, 0.85
		}
	}
	return "", "", 0
}

// NoCarryClassifier flags column-wise answers that skip regrouping:
// addition without carrying, or subtraction taking the smaller digit from
// the larger in each column.
type NoCarryClassifier struct{}

func (c *NoCarryClassifier) Name() string { return "no-carry" }

func (c *NoCarryClassifier) Classify(input *ClassifyInput) (ErrorCategory, string, float64) {
	n, ok := input.answer()
	if !ok {
		return "", "", 0
	}
	a, b := input.Problem.Operands.Num1, input.Problem.Operands.Num2
	if a < 0 || b < 0 {
		return "", "", 0
	}

	switch input.Problem.Operation {
	case problemgen.OpAddition:
		if v := columnWise(a, b, func(x, y int) int { return (x + y) % 10 }); v != input.Problem.Answer && v == n {
			return CategoryMisconception, MisconceptionNoCarry, 0.9
		}
	case problemgen.OpSubtraction:
		if v := columnWise(a, b, func(x, y int) int { return max(x, y) - min(x, y) }); v != input.Problem.Answer && v == n {
			return CategoryMisconception, MisconceptionSmallerFromLarger, 0.9
		}
	}
	return "", "", 0
}

// columnWise combines a and b digit by digit with no interaction between
// columns.
func columnWise(a, b int, digit func(x, y int) int) int {
	result, place := 0, 1
	for a > 0 || b > 0 {
		result += digit(a%10, b%10) * place
		a, b = a/10, b/10
		place *= 10
	}
	return result
}
