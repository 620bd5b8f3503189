package hints

import "fmt"

// Classifier selects hint strategies. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	cfg Config
}

// New creates a Classifier with the given thresholds.
func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Config returns the classifier's thresholds.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Category classifies a sum by threshold.
func (c *Classifier) Category(sum int) Category {
	switch {
	case sum <= c.cfg.FoundationMaxSum:
		return Foundation
	case sum <= c.cfg.BridgeMaxSum:
		return Bridge
	default:
		return Decomposition
	}
}

// IsBridgeThroughTen reports whether adding n2 to n1 crosses a ten
// boundary in the ones column.
func (c *Classifier) IsBridgeThroughTen(n1, n2 int) bool {
	base := c.cfg.base()
	if n1%base == 0 {
		return false
	}
	return n1%base+n2%base > base
}

// MakeTenBreakdown returns how much n1 needs to reach the next multiple of
// ten and what is left of n2 after lending it.
func (c *Classifier) MakeTenBreakdown(n1, n2 int) Breakdown {
	base := c.cfg.base()
	ones := n1 % base
	if ones == 0 {
		ones = base
	}
	needs := max(0, base-ones)
	return Breakdown{Needs: needs, Remainder: max(0, n2-needs)}
}

// Strategy picks the addition hint for n1 + n2. The branches are checked in
// order and cover every input.
func (c *Classifier) Strategy(n1, n2 int) HintStrategy {
	sum := n1 + n2
	base := c.cfg.base()

	switch {
	case sum <= c.cfg.FoundationMaxSum:
		return countOn(n1, n2)
	case n1 < base && n2 < base && sum > base:
		return c.makeTen(n1, n2)
	default:
		return decompose(n1, n2, base)
	}
}

func countOn(n1, n2 int) HintStrategy {
	return HintStrategy{
		Type:        StrategyCount,
		Title:       "Count On",
		Description: "Start with the first number and count up.",
		Steps: []string{
			fmt.Sprintf("Start at %d", n1),
			fmt.Sprintf("Count up %d more", n2),
			fmt.Sprintf("%d + %d = %d", n1, n2, n1+n2),
		},
		VisualCues: VisualCues{PulseAddend1: true, PulseAddend2: true},
	}
}

func (c *Classifier) makeTen(n1, n2 int) HintStrategy {
	base := c.cfg.base()
	b := c.MakeTenBreakdown(n1, n2)
	return HintStrategy{
		Type:        StrategyMakeTen,
		Title:       "Make Ten",
		Description: fmt.Sprintf("Fill %d up to %d first, then add what is left.", n1, base),
		Steps: []string{
			fmt.Sprintf("%d needs %d more to make %d", n1, b.Needs, base),
			fmt.Sprintf("Take %d from %d, leaving %d", b.Needs, n2, b.Remainder),
			fmt.Sprintf("%d + %d = %d", base, b.Remainder, n1+n2),
		},
		VisualCues: VisualCues{BridgeActive: true},
	}
}

func decompose(n1, n2, base int) HintStrategy {
	tens1, ones1 := n1/base*base, n1%base
	tens2, ones2 := n2/base*base, n2%base
	tens := tens1 + tens2
	ones := ones1 + ones2

	final := fmt.Sprintf("Total: %d + %d = %d", tens, ones, tens+ones)
	if ones > base {
		final = fmt.Sprintf("Bridge: %d ones make a new ten, so %d + %d = %d", ones, tens, ones, tens+ones)
	}

	return HintStrategy{
		Type:        StrategyDecompose,
		Title:       "Tens and Ones",
		Description: "Split each number into tens and ones, then add the parts.",
		Steps: []string{
			fmt.Sprintf("Tens: %d + %d = %d", tens1, tens2, tens),
			fmt.Sprintf("Ones: %d + %d = %d", ones1, ones2, ones),
			final,
		},
		VisualCues: VisualCues{PulseAddend1: true, PulseAddend2: true},
	}
}
