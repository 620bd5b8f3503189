package problemgen

// SumLimits bounds the result of addition and the minuend of subtraction.
type SumLimits struct {
	Min int
	Max int
}

// MultiplicationLimits bounds each factor independently.
type MultiplicationLimits struct {
	Min1, Max1 int
	Min2, Max2 int
}

// DivisionLimits bounds the dividend and divisor independently.
type DivisionLimits struct {
	MinDividend, MaxDividend int
	MinDivisor, MaxDivisor   int
}

// Config holds the generation tables and tuning constants. It is built once
// and shared read-only by every Generator.
type Config struct {
	// Problem limits per difficulty for addition and subtraction.
	Problem map[Difficulty]SumLimits

	Multiplication map[Difficulty]MultiplicationLimits
	Division       map[Difficulty]DivisionLimits

	// MaxRetries is the number of samples drawn before falling back.
	MaxRetries int

	// MinOperand is the lower bound used in numeric (max-sum) mode.
	MinOperand int

	// MinSumRatio rejects addition problems whose sum is below
	// max*MinSumRatio.
	MinSumRatio float64

	// FallbackDivisor shapes the addition fallback: floor(max/FallbackDivisor).
	FallbackDivisor float64
}

// DefaultConfig returns the compiled-in generation tables.
func DefaultConfig() Config {
	return Config{
		Problem: map[Difficulty]SumLimits{
			Easy:   {Min: 2, Max: 10},
			Medium: {Min: 2, Max: 20},
			Hard:   {Min: 10, Max: 100},
		},
		Multiplication: map[Difficulty]MultiplicationLimits{
			Easy:   {Min1: 2, Max1: 5, Min2: 1, Max2: 5},
			Medium: {Min1: 2, Max1: 10, Min2: 2, Max2: 10},
			Hard:   {Min1: 5, Max1: 12, Min2: 3, Max2: 12},
		},
		Division: map[Difficulty]DivisionLimits{
			Easy:   {MinDividend: 2, MaxDividend: 20, MinDivisor: 1, MaxDivisor: 5},
			Medium: {MinDividend: 10, MaxDividend: 100, MinDivisor: 2, MaxDivisor: 10},
			Hard:   {MinDividend: 100, MaxDividend: 999, MinDivisor: 2, MaxDivisor: 12},
		},
		MaxRetries:      50,
		MinOperand:      2,
		MinSumRatio:     0.2,
		FallbackDivisor: 1.5,
	}
}

// SumLimitsFor returns the addition/subtraction limits for d, falling back
// to medium for unknown difficulties.
func (c Config) SumLimitsFor(d Difficulty) SumLimits {
	if l, ok := c.Problem[d]; ok {
		return l
	}
	return c.Problem[Medium]
}

// MultiplicationLimitsFor returns the multiplication limits for d.
func (c Config) MultiplicationLimitsFor(d Difficulty) MultiplicationLimits {
	if l, ok := c.Multiplication[d]; ok {
		return l
	}
	return c.Multiplication[Medium]
}

// DivisionLimitsFor returns the division limits for d.
func (c Config) DivisionLimitsFor(d Difficulty) DivisionLimits {
	if l, ok := c.Division[d]; ok {
		return l
	}
	return c.Division[Medium]
}
