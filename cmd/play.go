package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/numbernexus/internal/app"
	"github.com/abhisek/numbernexus/internal/screen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay launches the TUI. Logs go to the log file only so they never
// draw over the screen.
func runPlay(cmd *cobra.Command) error {
	rt, err := openRuntime(io.Discard)
	if err != nil {
		return err
	}
	defer rt.Close()

	student, _ := cmd.Flags().GetString("student")
	return app.Run(screen.Env{
		StudentID: student,
		Stats:     rt.stats,
		Dashboard: rt.dashboard,
		Generator: rt.generator,
		Hints:     rt.hints,
		Metrics:   rt.metrics,
		Localizer: rt.translator.Localizer(cfg.Lang),
		Logger:    rt.logger,
	})
}
