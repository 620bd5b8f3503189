package problemgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Generator produces operand pairs by rejection sampling within the
// configured ranges. It never fails: when every retry is rejected it returns
// a deterministic fallback pair.
//
// A Generator is safe for concurrent use.
type Generator struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand // nil means the global source
}

// New creates a Generator backed by the global random source.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// NewWithSource creates a Generator that draws from src. Useful for
// reproducible sequences in tests.
func NewWithSource(cfg Config, src rand.Source) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(src)}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns an operand pair for op within bound, never exactly equal
// to exclude (when exclude is non-nil) unless the fallback is reached.
func (g *Generator) Generate(op Operation, bound Bound, exclude *OperandPair) OperandPair {
	pair, _ := g.generate(op, bound, exclude)
	return pair
}

// Problem generates a pair and wraps it with display text and the answer.
func (g *Generator) Problem(op Operation, bound Bound, exclude *OperandPair) Problem {
	pair, fallback := g.generate(op, bound, exclude)
	p := Build(op, pair)
	p.Fallback = fallback
	switch {
	case op == OpMultiplication || op == OpDivision:
		p.Difficulty = g.tableDifficulty(op, bound)
	case !bound.numeric():
		p.Difficulty = bound.difficulty()
	}
	return p
}

func (g *Generator) generate(op Operation, bound Bound, exclude *OperandPair) (OperandPair, bool) {
	switch op {
	case OpMultiplication:
		return g.multiplication(g.cfg.MultiplicationLimitsFor(g.tableDifficulty(op, bound)), exclude)
	case OpDivision:
		return g.division(g.cfg.DivisionLimitsFor(g.tableDifficulty(op, bound)), exclude)
	case OpSubtraction:
		lo, hi := g.sumRange(bound)
		return g.subtraction(lo, hi, exclude)
	default:
		lo, hi := g.sumRange(bound)
		return g.addition(lo, hi, exclude)
	}
}

// tableDifficulty resolves the difficulty used for table lookups. Numeric
// mode has no meaning for multiplication and division, so it maps to medium.
func (g *Generator) tableDifficulty(op Operation, bound Bound) Difficulty {
	if bound.numeric() && (op == OpMultiplication || op == OpDivision) {
		return Medium
	}
	return bound.difficulty()
}

// sumRange resolves (min, max) for addition and subtraction.
func (g *Generator) sumRange(bound Bound) (int, int) {
	if bound.numeric() {
		return g.cfg.MinOperand, bound.MaxSum
	}
	l := g.cfg.SumLimitsFor(bound.difficulty())
	return l.Min, l.Max
}

func (g *Generator) addition(lo, hi int, exclude *OperandPair) (OperandPair, bool) {
	floor := float64(hi) * g.cfg.MinSumRatio
	for range g.cfg.MaxRetries {
		a := g.intRange(lo, hi-1)
		b := g.intRange(1, hi-a)
		if b > a {
			a, b = b, a
		}
		sum := a + b
		if sum > hi || float64(sum) < floor {
			continue
		}
		p := OperandPair{Num1: a, Num2: b}
		if excluded(p, exclude) {
			continue
		}
		return p, false
	}

	div := g.cfg.FallbackDivisor
	if div <= 0 {
		div = 1
	}
	return OperandPair{Num1: max(lo, int(math.Floor(float64(hi)/div))), Num2: 1}, true
}

func (g *Generator) subtraction(lo, hi int, exclude *OperandPair) (OperandPair, bool) {
	for range g.cfg.MaxRetries {
		a := g.intRange(lo, hi)
		b := g.intRange(lo, a)
		p := OperandPair{Num1: a, Num2: b}
		if a < b || excluded(p, exclude) {
			continue
		}
		return p, false
	}
	return OperandPair{Num1: hi, Num2: hi / 2}, true
}

func (g *Generator) multiplication(l MultiplicationLimits, exclude *OperandPair) (OperandPair, bool) {
	for range g.cfg.MaxRetries {
		p := OperandPair{
			Num1: g.intRange(l.Min1, l.Max1),
			Num2: g.intRange(l.Min2, l.Max2),
		}
		if excluded(p, exclude) {
			continue
		}
		return p, false
	}
	return OperandPair{Num1: l.Max1, Num2: l.Min2}, true
}

func (g *Generator) division(l DivisionLimits, exclude *OperandPair) (OperandPair, bool) {
	for range g.cfg.MaxRetries {
		divisor := g.intRange(l.MinDivisor, l.MaxDivisor)
		dividend := g.intRange(l.MinDividend, l.MaxDividend)
		p := OperandPair{Num1: dividend, Num2: divisor}
		if divisor <= 0 || dividend < divisor || excluded(p, exclude) {
			continue
		}
		return p, false
	}
	// The fallback follows the limits as configured, even a non-positive
	// divisor.
	return OperandPair{Num1: l.MaxDividend, Num2: l.MaxDivisor}, true
}

// intRange returns a uniform integer in [lo, hi], or lo when the range is
// empty.
func (g *Generator) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := hi - lo + 1
	if g.rng == nil {
		return lo + rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + g.rng.IntN(n)
}

func excluded(p OperandPair, exclude *OperandPair) bool {
	return exclude != nil && p.Equal(*exclude)
}

// Build computes the display text and answer for an operand pair.
func Build(op Operation, pair OperandPair) Problem {
	p := Problem{
		Operation: op,
		Operands:  pair,
		Text:      fmt.Sprintf("%d %s %d = ?", pair.Num1, op.Symbol(), pair.Num2),
	}
	switch op {
	case OpSubtraction:
		p.Answer = pair.Num1 - pair.Num2
	case OpMultiplication:
		p.Answer = pair.Num1 * pair.Num2
	case OpDivision:
		if pair.Num2 != 0 {
			p.Answer = pair.Num1 / pair.Num2
			p.Remainder = pair.Num1 % pair.Num2
		}
	default:
		p.Operation = OpAddition
		p.Answer = pair.Num1 + pair.Num2
	}
	return p
}
