package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/numbernexus/internal/problemgen"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Print generated problems",
	Example: `  numbernexus problem --operation multiplication --difficulty hard --count 5
  numbernexus problem --max-sum 20 --answers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		opName, _ := f.GetString("operation")
		diffName, _ := f.GetString("difficulty")
		maxSum, _ := f.GetInt("max-sum")
		count, _ := f.GetInt("count")
		answers, _ := f.GetBool("answers")

		if count < 1 {
			return fmt.Errorf("count must be at least 1, got %d", count)
		}
		bound := problemgen.ForDifficulty(problemgen.ParseDifficulty(diffName))
		if f.Changed("max-sum") {
			if maxSum < 1 {
				return fmt.Errorf("max-sum must be positive, got %d", maxSum)
			}
			bound = problemgen.ForMaxSum(maxSum)
		}

		return printProblems(cmd, problemgen.New(problemgen.DefaultConfig()),
			problemgen.ParseOperation(opName), bound, count, answers)
	},
}

func init() {
	f := problemCmd.Flags()
	f.StringP("operation", "o", "addition", "addition, subtraction, multiplication or division")
	f.StringP("difficulty", "d", "medium", "easy, medium or hard")
	f.Int("max-sum", 0, "Use a raw ceiling instead of a difficulty")
	f.IntP("count", "n", 10, "Number of problems")
	f.Bool("answers", false, "Print answers")
	problemCmd.MarkFlagsMutuallyExclusive("difficulty", "max-sum")
}

// printProblems prints count problems, never repeating a pair twice in a
// row.
func printProblems(cmd *cobra.Command, gen *problemgen.Generator, op problemgen.Operation, bound problemgen.Bound, count int, answers bool) error {
	out := cmd.OutOrStdout()
	var prev *problemgen.OperandPair
	for i := range count {
		p := gen.Problem(op, bound, prev)
		prev = &p.Operands
		line := fmt.Sprintf("%2d. %s", i+1, p.Text)
		if answers {
			line += "   " + problemgen.FormatAnswer(p)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
