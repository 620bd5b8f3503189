package diagnosis

// Classifier is a rule-based error classifier.
// Returns a category, misconception ID (for misconceptions) and confidence
// (0.0–1.0), or ("", "", 0) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (ErrorCategory, string, float64)
}

// DefaultClassifiers returns classifiers in priority order.
// Speed-rush has highest priority since a fast wrong answer is more likely
// a rush than a misconception. Careless comes last so a recognisable
// pattern wins over a high-accuracy learner's slip.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&SpeedRushClassifier{},
		&OffByOneClassifier{},
		&WrongOperationClassifier{},
		&NoCarryClassifier{},
		&CarelessClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order and returns the
// first match, or an unclassified result if no rule applies.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) *DiagnosisResult {
	for _, c := range classifiers {
		cat, id, conf := c.Classify(input)
		if cat != "" {
			return &DiagnosisResult{
				Category:        cat,
				MisconceptionID: id,
				Confidence:      conf,
				ClassifierName:  c.Name(),
			}
		}
	}
	return &DiagnosisResult{Category: CategoryUnclassified, ClassifierName: "none"}
}
