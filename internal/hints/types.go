package hints

// Category is the pedagogical band a sum falls into.
type Category string

const (
	Foundation    Category = "Foundation"
	Bridge        Category = "Bridge"
	Decomposition Category = "Decomposition"
)

// StrategyType names a hint strategy.
type StrategyType string

const (
	StrategyCount      StrategyType = "count"
	StrategyMakeTen    StrategyType = "make-ten"
	StrategyDecompose  StrategyType = "decompose"
	StrategyFactFamily StrategyType = "fact-family"
)

// VisualCues are presentation flags. The classifier only sets them; what a
// pulse or bridge looks like is up to the front end.
type VisualCues struct {
	PulseAddend1 bool `json:"pulseAddend1"`
	PulseAddend2 bool `json:"pulseAddend2"`
	BridgeActive bool `json:"bridgeActive"`
}

// HintStrategy is a step-by-step explanation for one problem.
type HintStrategy struct {
	Type        StrategyType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Steps       []string     `json:"steps"`
	VisualCues  VisualCues   `json:"visualCues"`

	// Family is only set for fact-family strategies.
	Family FactFamily `json:"family,omitempty"`
}

// Breakdown is how the second addend is split to complete the first to ten.
type Breakdown struct {
	Needs     int `json:"needs"`
	Remainder int `json:"remainder"`
}
