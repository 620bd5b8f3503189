package hints

import (
	"strings"
	"testing"

	"github.com/abhisek/numbernexus/internal/problemgen"
)

func TestCategory(t *testing.T) {
	c := New(DefaultConfig())
	bridgeMax := DefaultConfig().BridgeMaxSum

	tests := []struct {
		sum  int
		want Category
	}{
		{0, Foundation},
		{10, Foundation},
		{11, Bridge},
		{bridgeMax, Bridge},
		{bridgeMax + 1, Decomposition},
		{99, Decomposition},
	}
	for _, tt := range tests {
		if got := c.Category(tt.sum); got != tt.want {
			t.Errorf("Category(%d) = %q, want %q", tt.sum, got, tt.want)
		}
	}
}

func TestDefaultConfig_BridgeMaxFollowsMedium(t *testing.T) {
	if got := DefaultConfig().BridgeMaxSum; got != 20 {
		t.Errorf("BridgeMaxSum = %d, want 20", got)
	}
}

func TestIsBridgeThroughTen(t *testing.T) {
	c := New(DefaultConfig())
	tests := []struct {
		n1, n2 int
		want   bool
	}{
		{8, 5, true},
		{3, 4, false},
		{10, 5, false},
		{20, 9, false},
		{15, 7, true},
		{15, 5, false}, // ones sum exactly 10
		{27, 14, true},
	}
	for _, tt := range tests {
		if got := c.IsBridgeThroughTen(tt.n1, tt.n2); got != tt.want {
			t.Errorf("IsBridgeThroughTen(%d, %d) = %v, want %v", tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestMakeTenBreakdown(t *testing.T) {
	c := New(DefaultConfig())
	tests := []struct {
		n1, n2 int
		want   Breakdown
	}{
		{8, 5, Breakdown{Needs: 2, Remainder: 3}},
		{10, 5, Breakdown{Needs: 0, Remainder: 5}},
		{9, 9, Breakdown{Needs: 1, Remainder: 8}},
		{7, 1, Breakdown{Needs: 3, Remainder: 0}},
		{17, 6, Breakdown{Needs: 3, Remainder: 3}},
	}
	for _, tt := range tests {
		if got := c.MakeTenBreakdown(tt.n1, tt.n2); got != tt.want {
			t.Errorf("MakeTenBreakdown(%d, %d) = %+v, want %+v", tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestStrategy_Type(t *testing.T) {
	c := New(DefaultConfig())
	tests := []struct {
		n1, n2 int
		want   StrategyType
	}{
		{3, 4, StrategyCount},
		{5, 5, StrategyCount},
		{8, 5, StrategyMakeTen},
		{9, 9, StrategyMakeTen},
		{15, 12, StrategyDecompose},
		{10, 3, StrategyDecompose},
		{0, 0, StrategyCount},
	}
	for _, tt := range tests {
		if got := c.Strategy(tt.n1, tt.n2).Type; got != tt.want {
			t.Errorf("Strategy(%d, %d).Type = %q, want %q", tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestStrategy_Count(t *testing.T) {
	s := New(DefaultConfig()).Strategy(3, 4)

	want := []string{"Start at 3", "Count up 4 more", "3 + 4 = 7"}
	assertSteps(t, s.Steps, want)
	if !s.VisualCues.PulseAddend1 || !s.VisualCues.PulseAddend2 || s.VisualCues.BridgeActive {
		t.Errorf("cues = %+v, want both pulses and no bridge", s.VisualCues)
	}
}

func TestStrategy_MakeTen(t *testing.T) {
	s := New(DefaultConfig()).Strategy(8, 5)

	want := []string{"8 needs 2 more to make 10", "Take 2 from 5, leaving 3", "10 + 3 = 13"}
	assertSteps(t, s.Steps, want)
	if s.VisualCues.PulseAddend1 || s.VisualCues.PulseAddend2 || !s.VisualCues.BridgeActive {
		t.Errorf("cues = %+v, want bridge only", s.VisualCues)
	}
}

func TestStrategy_Decompose(t *testing.T) {
	c := New(DefaultConfig())

	s := c.Strategy(15, 12)
	assertSteps(t, s.Steps, []string{"Tens: 10 + 10 = 20", "Ones: 5 + 2 = 7", "Total: 20 + 7 = 27"})
	if !s.VisualCues.PulseAddend1 || !s.VisualCues.PulseAddend2 {
		t.Errorf("cues = %+v, want both pulses", s.VisualCues)
	}

	s = c.Strategy(27, 16)
	if len(s.Steps) != 3 || !strings.HasPrefix(s.Steps[2], "Bridge:") {
		t.Errorf("expected bridging final step, got %v", s.Steps)
	}
	if !strings.HasSuffix(s.Steps[2], "= 43") {
		t.Errorf("final step %q should total 43", s.Steps[2])
	}
}

func TestStrategy_TotalOverInputs(t *testing.T) {
	c := New(DefaultConfig())
	for n1 := 0; n1 <= 100; n1++ {
		for n2 := 0; n2 <= 100; n2 += 7 {
			s := c.Strategy(n1, n2)
			if len(s.Steps) == 0 {
				t.Fatalf("Strategy(%d, %d) has no steps", n1, n2)
			}
		}
	}
}

func TestZeroBridgeBase(t *testing.T) {
	c := New(Config{FoundationMaxSum: 10, BridgeMaxSum: 20})
	if got := c.MakeTenBreakdown(8, 5); got.Needs != 2 {
		t.Errorf("zero BridgeBase should behave as 10, got %+v", got)
	}
}

func TestClassifyFactFamily(t *testing.T) {
	tests := []struct {
		name   string
		op     problemgen.Operation
		n1, n2 int
		want   FactFamily
	}{
		{"doubles", problemgen.OpAddition, 5, 5, FamilyDoubles},
		{"near doubles", problemgen.OpAddition, 5, 6, FamilyNearDoubles},
		{"near doubles reverse", problemgen.OpAddition, 6, 5, FamilyNearDoubles},
		{"plus one", problemgen.OpAddition, 7, 1, FamilyPlusOne},
		{"plus nine", problemgen.OpAddition, 9, 4, FamilyPlusNine},
		{"make ten", problemgen.OpAddition, 7, 3, FamilyMakeTen},
		{"other addition", problemgen.OpAddition, 8, 5, FamilyOther},
		{"minus same", problemgen.OpSubtraction, 6, 6, FamilyMinusSame},
		{"minus one", problemgen.OpSubtraction, 9, 1, FamilyMinusOne},
		{"from ten", problemgen.OpSubtraction, 10, 4, FamilyFromTen},
		{"times zero", problemgen.OpMultiplication, 0, 7, FamilyTimesZero},
		{"times two", problemgen.OpMultiplication, 2, 8, FamilyTimesTwo},
		{"times nine", problemgen.OpMultiplication, 9, 7, FamilyTimesNine},
		{"squares", problemgen.OpMultiplication, 7, 7, FamilySquares},
		{"other multiplication", problemgen.OpMultiplication, 3, 6, FamilyOther},
		{"division via partner", problemgen.OpDivision, 45, 5, FamilyTimesFive},
		{"division by zero", problemgen.OpDivision, 4, 0, FamilyOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFactFamily(tt.op, tt.n1, tt.n2); got != tt.want {
				t.Errorf("ClassifyFactFamily(%s, %d, %d) = %q, want %q", tt.op, tt.n1, tt.n2, got, tt.want)
			}
		})
	}
}

func TestStrategyFor(t *testing.T) {
	c := New(DefaultConfig())

	s := c.StrategyFor(problemgen.OpAddition, 8, 5)
	if s.Type != StrategyMakeTen {
		t.Errorf("addition type = %q, want make-ten", s.Type)
	}

	s = c.StrategyFor(problemgen.OpSubtraction, 12, 5)
	if s.Type != StrategyFactFamily || s.Title != "Think Addition" {
		t.Errorf("subtraction strategy = %q/%q", s.Type, s.Title)
	}
	if last := s.Steps[len(s.Steps)-1]; last != "5 + 7 = 12, so 12 - 5 = 7" {
		t.Errorf("last step = %q", last)
	}

	s = c.StrategyFor(problemgen.OpMultiplication, 9, 3)
	if s.Family != FamilyTimesNine || s.Description != FamilyTimesNine.Tip() {
		t.Errorf("multiplication family = %q, description %q", s.Family, s.Description)
	}
	if s.Steps[1] != "Count by 3s: 3, 6, 9, 12, 15, 18, ..." {
		t.Errorf("skip count step = %q", s.Steps[1])
	}

	s = c.StrategyFor(problemgen.OpDivision, 17, 5)
	assertSteps(t, s.Steps, []string{
		"What times 5 gets close to 17 without going over?",
		"3 × 5 = 15",
		"17 - 15 = 2 left over",
		"17 ÷ 5 = 3 R 2",
	})

	s = c.StrategyFor(problemgen.OpDivision, 5, 0)
	if len(s.Steps) == 0 {
		t.Error("division by zero should still produce a hint")
	}
}

func assertSteps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d steps %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, got[i], want[i])
		}
	}
}
