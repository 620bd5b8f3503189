package session

import (
	"time"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/diagnosis"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/topic"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // Waiting for an answer
	PhaseFeedback                     // Current problem resolved, showing feedback
	PhaseSummary                      // Session ended
)

// DefaultMaxAttempts is the number of answers allowed per problem before
// the answer is revealed and the problem counts as missed.
const DefaultMaxAttempts = 3

// SessionState tracks the runtime state of an active practice session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	// StudentID owns every recorded solve.
	StudentID string

	Plan *Plan

	// CurrentSlotIndex is the index into Plan.Slots for the current topic.
	CurrentSlotIndex int

	// QuestionsInSlot is the number of questions served in the current slot.
	QuestionsInSlot int

	Difficulty problemgen.Difficulty

	// CurrentProblem is the problem being displayed (nil before the first).
	CurrentProblem *problemgen.Problem

	// PreviousPairs holds the last pair served per topic, passed to the
	// generator as the exclusion so a problem never repeats back to back.
	PreviousPairs map[topic.ID]problemgen.OperandPair

	// Attempts and WrongCount reset with every new problem.
	Attempts   int
	WrongCount int

	// HintShown is true if the hint was shown for the current problem.
	HintShown bool

	// LastDiagnosis is the most recent diagnosis (nil after a correct answer).
	LastDiagnosis *diagnosis.DiagnosisResult

	TotalQuestions int
	TotalCorrect   int
	PointsEarned   int

	// ConsecutiveCorrect is the in-session streak.
	ConsecutiveCorrect int

	// PerTopicResults tracks per-topic stats for the summary.
	PerTopicResults map[topic.ID]*TopicResult

	// Unlocked and Achievements collect what the session earned.
	Unlocked     []topic.ID
	Achievements []achievements.Achievement

	Phase SessionPhase

	StartTime         time.Time
	QuestionStartTime time.Time
}

// TopicResult tracks per-topic performance within a single session.
type TopicResult struct {
	Topic     topic.ID
	Category  PlanCategory
	Attempted int
	Correct   int
	HintsUsed int
}

// NewSessionState creates a new session state with initialized maps.
func NewSessionState(plan *Plan, sessionID, studentID string, difficulty problemgen.Difficulty, now time.Time) *SessionState {
	perTopic := make(map[topic.ID]*TopicResult, len(plan.Slots))
	for _, slot := range plan.Slots {
		if _, exists := perTopic[slot.Topic]; !exists {
			perTopic[slot.Topic] = &TopicResult{Topic: slot.Topic, Category: slot.Category}
		}
	}

	return &SessionState{
		SessionID:       sessionID,
		StudentID:       studentID,
		Plan:            plan,
		Difficulty:      difficulty,
		PreviousPairs:   make(map[topic.ID]problemgen.OperandPair),
		PerTopicResults: perTopic,
		Phase:           PhaseActive,
		StartTime:       now,
	}
}

// HintAvailable reports whether a hint may be shown: at least one wrong
// attempt on the unresolved current problem.
func (s *SessionState) HintAvailable() bool {
	return s.CurrentProblem != nil && s.Phase == PhaseActive && s.WrongCount >= 1
}

// CurrentSlot returns the current plan slot, or nil if invalid.
func (s *SessionState) CurrentSlot() *PlanSlot {
	if s.CurrentSlotIndex < 0 || s.CurrentSlotIndex >= len(s.Plan.Slots) {
		return nil
	}
	return &s.Plan.Slots[s.CurrentSlotIndex]
}

// advanceSlot moves to the next slot once the current mini-block is done.
func (s *SessionState) advanceSlot() {
	if s.QuestionsInSlot < QuestionsPerSlot || len(s.Plan.Slots) < 2 {
		return
	}
	s.QuestionsInSlot = 0
	s.CurrentSlotIndex = (s.CurrentSlotIndex + 1) % len(s.Plan.Slots)
}
