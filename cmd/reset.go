package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a student's progress",
	Long:  "Clears score, topic progress, streaks, achievements and solve history. The student's name and difficulty are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset all progress for %q? [y/N] ", student)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		rt, err := openRuntime(nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		if _, err := rt.stats.Reset(cmd.Context(), student); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %q reset.\n", student)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
