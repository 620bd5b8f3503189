package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/topic"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a student's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		switch output {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("output must be table, json or yaml, got %q", output)
		}

		rt, err := openRuntime(nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		student, _ := cmd.Flags().GetString("student")
		d, err := rt.dashboard.Build(cmd.Context(), student, time.Now())
		if err != nil {
			return err
		}
		return writeDashboard(cmd.OutOrStdout(), d, output, rt.translator.Localizer(cfg.Lang))
	},
}

func init() {
	statsCmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

func writeDashboard(w io.Writer, d *dashboard.Dashboard, output string, loc *i18n.Localizer) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		// Round-trip through JSON so YAML keys match the API field names.
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeDashboardTable(w, d, loc)
}

func writeDashboardTable(w io.Writer, d *dashboard.Dashboard, loc *i18n.Localizer) error {
	t := d.Totals
	fmt.Fprintf(w, "Student:     %s\n", d.StudentID)
	fmt.Fprintf(w, "Difficulty:  %s\n", d.Difficulty)
	fmt.Fprintf(w, "Score:       %d\n", t.TotalScore)
	fmt.Fprintf(w, "Solved:      %d (%d correct, %.0f%%)\n", t.ProblemsSolved, t.CorrectAnswers, t.Accuracy*100)
	fmt.Fprintf(w, "Streak:      %d (best %d)\n\n", t.CurrentStreak, t.BestStreak)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOPIC\tSTATUS\tPROGRESS\tLEVEL")
	for _, tp := range d.Topics {
		status := "unlocked"
		if !tp.IsUnlocked {
			status = "locked"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d\n",
			loc.TopicName(string(tp.ID), topic.DisplayName(tp.ID)), status, tp.Progress, tp.Level)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAchievements: %d of %d\n", len(d.Earned), len(d.Earned)+len(d.Locked))
	for _, a := range d.Earned {
		fmt.Fprintf(w, "  🏆 %s\n", loc.AchievementName(a.ID, a.Name))
	}
	return nil
}
