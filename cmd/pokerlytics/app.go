package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nixlim/pokerlytics/internal/analytics"
	"github.com/nixlim/pokerlytics/internal/config"
	"github.com/nixlim/pokerlytics/internal/logging"
	"github.com/nixlim/pokerlytics/internal/session"
	"github.com/nixlim/pokerlytics/internal/stats"
	"github.com/nixlim/pokerlytics/internal/trend"
)

// app carries the per-run configuration, logger, and debug trace.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	runID  string
	debug  logging.DebugLogger

	closers []io.Closer
}

func newApp(cmd *cobra.Command, g *globalFlags) (*app, error) {
	var (
		loadResult *config.LoadResult
		err        error
	)
	if g.configPath != "" {
		loadResult, err = config.LoadFrom(g.configPath)
	} else {
		loadResult, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	cfg := loadResult.Config

	level := cfg.Logging.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	logger, runID := logging.WithRun(logging.New(level, cmd.ErrOrStderr()))

	for _, w := range loadResult.Warnings {
		logger.Warn("config warning", zap.String("detail", w))
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		runID:  runID,
		debug:  logging.NopLogger{},
	}

	if g.debugPath != "" {
		f, err := os.OpenFile(g.debugPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening debug log %q: %w", g.debugPath, err)
		}
		a.closers = append(a.closers, f)
		a.debug = logging.NewFileLogger(f)
	}

	return a, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func (a *app) analyticsOptions() analytics.Options {
	return analytics.Options{
		DefaultBigBlind: a.cfg.Analysis.DefaultBigBlind,
		ZeroBigBlind:    stats.ZeroBigBlindPolicy(a.cfg.Analysis.ZeroBigBlind),
		Trend: trend.Config{
			Window:      a.cfg.Analysis.TrendWindow,
			SlopePoints: a.cfg.Analysis.SlopePoints,
		},
		DateLayout: a.cfg.Analysis.DateLayout,
		Debug:      a.debug,
	}
}

// readRecords decodes the session history from path, or from the command's
// stdin when path is empty or "-". It returns a label for the source.
func (a *app) readRecords(cmd *cobra.Command, path string) ([]session.Record, string, error) {
	if path == "" || path == "-" {
		records, err := session.Decode(cmd.InOrStdin(), session.FormatJSON)
		if err != nil {
			return nil, "", fmt.Errorf("stdin: %w", err)
		}
		return records, "stdin", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	records, err := session.Decode(f, session.FormatFromPath(path))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return records, filepath.Base(path), nil
}

// analyze reads the input and runs the analytics pipeline once.
func (a *app) analyze(cmd *cobra.Command, path string) (*analytics.Result, string, error) {
	records, source, err := a.readRecords(cmd, path)
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug("decoded sessions", zap.String("source", source), zap.Int("records", len(records)))

	result, err := analytics.Process(records, a.analyticsOptions())
	if err != nil {
		return nil, "", err
	}

	for _, w := range result.Warnings {
		a.logger.Warn("input warning",
			zap.Int("record", w.Index),
			zap.String("field", w.Field),
			zap.String("detail", w.Message))
	}
	a.logger.Info("analysis complete",
		zap.Int("sessions", result.GamesPlayed),
		zap.Float64("total_profit", result.TotalProfit),
		zap.String("trend_method", result.Trend.Method.String()))

	return result, source, nil
}
