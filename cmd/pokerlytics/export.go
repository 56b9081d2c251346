package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nixlim/pokerlytics/internal/export"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	var input, endpoint string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Push the analytics as OTLP metrics to a collector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			if endpoint == "" {
				endpoint = a.cfg.Export.Endpoint
			}

			result, _, err := a.analyze(cmd, input)
			if err != nil {
				return err
			}

			exp, err := export.NewExporter(endpoint, time.Duration(a.cfg.Export.TimeoutSeconds)*time.Second, a.logger)
			if err != nil {
				return err
			}
			defer exp.Close()

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			req := export.BuildRequest(result, export.Meta{
				ServiceName: a.cfg.Export.ServiceName,
				RunID:       a.runID,
			})
			if err := exp.Export(ctx, req); err != nil {
				return err
			}

			a.logger.Info("exported metrics", zap.String("endpoint", endpoint))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", len(result.Sessions), endpoint)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "session file (.json, .yaml, .yml); stdin when empty or -")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "OTLP/gRPC collector host:port (overrides config)")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
