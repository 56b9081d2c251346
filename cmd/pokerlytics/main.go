package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "pokerlytics: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	debugPath  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	var a analyzeFlags

	root := &cobra.Command{
		Use:   "pokerlytics",
		Short: "Poker session analytics",
		Long: "pokerlytics reads a poker session history (JSON or YAML) and produces\n" +
			"per-session rates, a performance trend, totals, and the current streak.\n" +
			"Without a subcommand it runs analyze on stdin.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, &g, &a)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/pokerlytics/config.toml)")
	root.PersistentFlags().StringVar(&g.debugPath, "debug", "", "write a JSONL trace of normalized sessions to this file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	bindAnalyzeFlags(root, &a)

	root.AddCommand(newAnalyzeCmd(&g))
	root.AddCommand(newViewCmd(&g))
	root.AddCommand(newExportCmd(&g))
	return root
}
