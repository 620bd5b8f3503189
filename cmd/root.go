package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/numbernexus/internal/config"
)

var (
	// settings holds flags, env and config file values; cfg is the merged result,
	// loaded before any subcommand runs.
	settings = config.New()
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "numbernexus",
	Short: "Math practice for kids",
	Long:  "NumberNexus generates arithmetic problems, explains them with hints and tracks progress through addition, subtraction, multiplication and division.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(settings, configFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default: numbernexus.{yaml,toml,json} in ., ~/.config/numbernexus, /etc/numbernexus)")
	pf.String(config.KeyDB, "", "Path to SQLite database file (overrides NUMBERNEXUS_DB env var)")
	pf.String(config.KeyLogLevel, "info", "Log level: debug, info, warn, error")
	pf.String(config.KeyLogFormat, "console", "Console log format: console or json")
	pf.String(config.KeyLogFile, "", "Also write JSON logs to this file (rotated)")
	pf.String(config.KeyLang, "en", "Language for topic, hint and achievement names")
	bindFlags(pf, config.KeyDB, config.KeyLogLevel, config.KeyLogFormat, config.KeyLogFile, config.KeyLang)

	rootCmd.PersistentFlags().String("student", "local", "Student id")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindFlags binds each named flag to the viper key of the same name.
func bindFlags(fs *pflag.FlagSet, keys ...string) {
	for _, k := range keys {
		if err := settings.BindPFlag(k, fs.Lookup(k)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", k, err))
		}
	}
}
