package main

import (
	"github.com/spf13/cobra"

	"github.com/nixlim/pokerlytics/internal/export"
)

type analyzeFlags struct {
	input  string
	format string
	pretty bool
}

func bindAnalyzeFlags(cmd *cobra.Command, a *analyzeFlags) {
	cmd.Flags().StringVarP(&a.input, "input", "i", "", "session file (.json, .yaml, .yml); stdin when empty or -")
	cmd.Flags().StringVarP(&a.format, "format", "f", "", "output format: json|otlp (overrides config)")
	cmd.Flags().BoolVar(&a.pretty, "pretty", false, "indent the output")
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var a analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a session history and write the result to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, g, &a)
		},
	}
	bindAnalyzeFlags(cmd, &a)
	return cmd
}

func runAnalyze(cmd *cobra.Command, g *globalFlags, flags *analyzeFlags) error {
	a, err := newApp(cmd, g)
	if err != nil {
		return err
	}
	defer a.Close()

	formatName := a.cfg.Output.Format
	if flags.format != "" {
		formatName = flags.format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	pretty := a.cfg.Output.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty = flags.pretty
	}

	result, _, err := a.analyze(cmd, flags.input)
	if err != nil {
		return err
	}

	return export.Encode(cmd.OutOrStdout(), result, format, pretty, export.Meta{
		ServiceName: a.cfg.Export.ServiceName,
		RunID:       a.runID,
	})
}
