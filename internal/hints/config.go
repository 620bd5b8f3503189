package hints

import "github.com/abhisek/numbernexus/internal/problemgen"

// Config holds the classification thresholds.
type Config struct {
	BridgeBase       int
	FoundationMaxSum int
	BridgeMaxSum     int
}

// DefaultConfig returns the compiled-in thresholds. BridgeMaxSum follows the
// medium addition ceiling of the problem generator.
func DefaultConfig() Config {
	return Config{
		BridgeBase:       10,
		FoundationMaxSum: 10,
		BridgeMaxSum:     problemgen.DefaultConfig().SumLimitsFor(problemgen.Medium).Max,
	}
}

func (c Config) base() int {
	if c.BridgeBase <= 0 {
		return 10
	}
	return c.BridgeBase
}
