package diagnosis

import "github.com/abhisek/numbernexus/internal/problemgen"

// Service classifies wrong answers with the rule-based classifiers.
type Service struct {
	classifiers []Classifier
}

// NewService creates a diagnosis service with the default classifiers.
func NewService() *Service {
	return &Service{classifiers: DefaultClassifiers()}
}

// Diagnose classifies a wrong answer. It never returns nil.
func (s *Service) Diagnose(p problemgen.Problem, learnerAnswer string, responseTimeMs int, accuracy float64) *DiagnosisResult {
	return RunClassifiers(s.classifiers, &ClassifyInput{
		Problem:        p,
		LearnerAnswer:  learnerAnswer,
		ResponseTimeMs: responseTimeMs,
		Accuracy:       accuracy,
	})
}
