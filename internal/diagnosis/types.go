package diagnosis

import "github.com/abhisek/numbernexus/internal/problemgen"

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategoryCareless      ErrorCategory = "careless"
	CategorySpeedRush     ErrorCategory = "speed-rush"
	CategoryMisconception ErrorCategory = "misconception"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Problem        problemgen.Problem
	LearnerAnswer  string
	ResponseTimeMs int
	Accuracy       float64 // Historical accuracy for this student (0.0–1.0)
}

// answer parses the learner's answer. ok is false for non-numeric input.
func (in *ClassifyInput) answer() (int, bool) {
	n, err := problemgen.ParseAnswer(in.LearnerAnswer)
	return n, err == nil
}

// DiagnosisResult is the output of classifying a wrong answer.
type DiagnosisResult struct {
	Category        ErrorCategory `json:"category"`
	MisconceptionID string        `json:"misconceptionId,omitempty"` // Non-empty only when Category == misconception
	Confidence      float64       `json:"confidence"`
	ClassifierName  string        `json:"classifier"`
}
