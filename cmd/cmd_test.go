package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/topic"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	return c, &buf
}

func TestPrintProblems(t *testing.T) {
	c, buf := testCommand()
	gen := problemgen.New(problemgen.DefaultConfig())

	require.NoError(t, printProblems(c, gen, problemgen.OpMultiplication, problemgen.ForDifficulty(problemgen.Easy), 5, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.Contains(t, l, "×")
		assert.Contains(t, l, "= ?")
	}
	assert.True(t, strings.HasPrefix(lines[0], " 1. "))
}

func TestPrintHint_MakeTen(t *testing.T) {
	c, buf := testCommand()
	require.NoError(t, printHint(c, hints.New(hints.DefaultConfig()), problemgen.OpAddition, 8, 5))

	out := buf.String()
	assert.Contains(t, out, "8 + 5 = ?")
	assert.Contains(t, out, "category: Bridge")
	assert.Contains(t, out, "make ten: 8 + 2, then + 3")
}

func TestPrintHint_Division(t *testing.T) {
	c, buf := testCommand()
	require.NoError(t, printHint(c, hints.New(hints.DefaultConfig()), problemgen.OpDivision, 42, 6))

	out := buf.String()
	assert.Contains(t, out, "42 ÷ 6 = ?")
	assert.NotContains(t, out, "category:")
	assert.Contains(t, out, "fact family:")
}

func testDashboard() *dashboard.Dashboard {
	first, _ := achievements.Get("first-steps")
	return &dashboard.Dashboard{
		StudentID:  "kid",
		Difficulty: "medium",
		Topics: []progression.MathTopicData{
			{ID: topic.Addition, Progress: 40, IsUnlocked: true, Level: 3},
			{ID: topic.Subtraction, Level: 1},
		},
		Earned: []achievements.Achievement{first},
		Totals: dashboard.Totals{TotalScore: 40, ProblemsSolved: 5, CorrectAnswers: 4, Accuracy: 0.8},
	}
}

func TestWriteDashboard_Formats(t *testing.T) {
	d := testDashboard()

	var js bytes.Buffer
	require.NoError(t, writeDashboard(&js, d, "json", nil))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "kid", decoded["studentId"])

	var ym bytes.Buffer
	require.NoError(t, writeDashboard(&ym, d, "yaml", nil))
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &doc))
	assert.Equal(t, "medium", doc["difficulty"])
	totals, ok := doc["totals"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 40, totals["totalScore"])

	var tbl bytes.Buffer
	require.NoError(t, writeDashboard(&tbl, d, "table", nil))
	out := tbl.String()
	assert.Contains(t, out, "Score:       40")
	assert.Contains(t, out, "Solved:      5 (4 correct, 80%)")
	assert.Contains(t, out, "Addition")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "First Steps")
}

func TestRootCommand_ResetAndStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nexus.db")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"reset", "--db", db, "--student", "kid", "--yes", "--log-level", "error"})
	require.NoError(t, Execute())
	assert.Contains(t, out.String(), `Progress for "kid" reset.`)

	out.Reset()
	rootCmd.SetArgs([]string{"stats", "--db", db, "--student", "kid", "-o", "json", "--log-level", "error"})
	require.NoError(t, Execute())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "kid", decoded["studentId"])

	rootCmd.SetArgs([]string{"stats", "--db", db, "-o", "xml"})
	assert.Error(t, Execute())
}
