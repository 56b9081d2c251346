package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nixlim/pokerlytics/internal/tui"
)

func newViewCmd(g *globalFlags) *cobra.Command {
	var input string
	var bb bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the analytics in an interactive terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			result, source, err := a.analyze(cmd, input)
			if err != nil {
				return err
			}

			opts := []tui.ModelOption{tui.WithSource(source)}
			if bb {
				opts = append(opts, tui.WithMetric(tui.MetricBB))
			}
			model := tui.NewModel(result, a.cfg.Display, opts...)

			programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout())}
			if source == "stdin" {
				// stdin carried the sessions; read keys from the terminal.
				programOpts = append(programOpts, tea.WithInputTTY())
			}

			if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "session file (.json, .yaml, .yml); stdin when empty or -")
	cmd.Flags().BoolVar(&bb, "bb", false, "start in big-blind mode")
	return cmd
}
