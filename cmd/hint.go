package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/problemgen"
)

var hintCmd = &cobra.Command{
	Use:     "hint <num1> <num2>",
	Short:   "Explain how to solve a problem",
	Example: "  numbernexus hint 8 5\n  numbernexus hint 42 6 --operation division",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n1, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("num1: %w", err)
		}
		n2, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("num2: %w", err)
		}
		opName, _ := cmd.Flags().GetString("operation")
		return printHint(cmd, hints.New(hints.DefaultConfig()), problemgen.ParseOperation(opName), n1, n2)
	},
}

func init() {
	hintCmd.Flags().StringP("operation", "o", "addition", "addition, subtraction, multiplication or division")
}

func printHint(cmd *cobra.Command, c *hints.Classifier, op problemgen.Operation, n1, n2 int) error {
	out := cmd.OutOrStdout()
	p := problemgen.Build(op, problemgen.OperandPair{Num1: n1, Num2: n2})
	h := c.StrategyFor(op, n1, n2)

	fmt.Fprintf(out, "%s\n\n%s\n%s\n", p.Text, h.Title, h.Description)
	for i, step := range h.Steps {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
	if op == problemgen.OpAddition {
		fmt.Fprintf(out, "\ncategory: %s\n", c.Category(n1+n2))
		if c.IsBridgeThroughTen(n1, n2) {
			b := c.MakeTenBreakdown(n1, n2)
			fmt.Fprintf(out, "make ten: %d + %d, then + %d\n", n1, b.Needs, b.Remainder)
		}
	}
	if h.Family != "" {
		fmt.Fprintf(out, "fact family: %s\n", h.Family)
	}
	return nil
}
