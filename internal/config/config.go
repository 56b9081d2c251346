package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Analysis AnalysisConfig
	Output   OutputConfig
	Export   ExportConfig
	Display  DisplayConfig
	Logging  LoggingConfig
}

type AnalysisConfig struct {
	DefaultBigBlind float64 `toml:"default_big_blind"`
	ZeroBigBlind    string  `toml:"zero_big_blind"`
	TrendWindow     int     `toml:"trend_window"`
	SlopePoints     int     `toml:"slope_points"`
	DateLayout      string  `toml:"date_layout"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Pretty bool   `toml:"pretty"`
}

type ExportConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ServiceName    string `toml:"service_name"`
}

type DisplayConfig struct {
	LossStreakWarning int `toml:"loss_streak_warning"`
	ChartWidth        int `toml:"chart_width"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

// knownKeys lists the accepted keys per top-level section.
var knownKeys = map[string][]string{
	"analysis": {"default_big_blind", "zero_big_blind", "trend_window", "slope_points", "date_layout"},
	"output":   {"format", "pretty"},
	"export":   {"endpoint", "timeout_seconds", "service_name"},
	"display":  {"loss_streak_warning", "chart_width"},
	"logging":  {"level"},
}

// DefaultConfigPath returns ~/.config/pokerlytics/config.toml, or "" when
// the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pokerlytics", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	result, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return result, nil
}

func LoadFromString(data string) (*LoadResult, error) {
	if data == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}
	return parse(data)
}

func parse(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	result.Warnings = unknownKeyWarnings(raw)

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	mergeFromRaw(&result.Config, &tf, raw)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func unknownKeyWarnings(raw map[string]any) []string {
	var warnings []string
	for key, val := range raw {
		allowed, ok := knownKeys[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown config key: %q", key))
			continue
		}
		section, ok := val.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("config key %q must be a table", key))
			continue
		}
		for field := range section {
			if !contains(allowed, field) {
				warnings = append(warnings, fmt.Sprintf("unknown config key: \"%s.%s\"", key, field))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type tomlFile struct {
	Analysis *AnalysisConfig `toml:"analysis"`
	Output   *OutputConfig   `toml:"output"`
	Export   *ExportConfig   `toml:"export"`
	Display  *DisplayConfig  `toml:"display"`
	Logging  *LoggingConfig  `toml:"logging"`
}

// mergeFromRaw copies only the keys that are explicitly present in the
// file, so omitted keys keep their defaults.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Analysis != nil {
		if section, ok := rawSection(raw, "analysis"); ok {
			if _, exists := section["default_big_blind"]; exists {
				cfg.Analysis.DefaultBigBlind = tf.Analysis.DefaultBigBlind
			}
			if _, exists := section["zero_big_blind"]; exists {
				cfg.Analysis.ZeroBigBlind = tf.Analysis.ZeroBigBlind
			}
			if _, exists := section["trend_window"]; exists {
				cfg.Analysis.TrendWindow = tf.Analysis.TrendWindow
			}
			if _, exists := section["slope_points"]; exists {
				cfg.Analysis.SlopePoints = tf.Analysis.SlopePoints
			}
			if _, exists := section["date_layout"]; exists {
				cfg.Analysis.DateLayout = tf.Analysis.DateLayout
			}
		}
	}
	if tf.Output != nil {
		if section, ok := rawSection(raw, "output"); ok {
			if _, exists := section["format"]; exists {
				cfg.Output.Format = tf.Output.Format
			}
			if _, exists := section["pretty"]; exists {
				cfg.Output.Pretty = tf.Output.Pretty
			}
		}
	}
	if tf.Export != nil {
		if section, ok := rawSection(raw, "export"); ok {
			if _, exists := section["endpoint"]; exists {
				cfg.Export.Endpoint = tf.Export.Endpoint
			}
			if _, exists := section["timeout_seconds"]; exists {
				cfg.Export.TimeoutSeconds = tf.Export.TimeoutSeconds
			}
			if _, exists := section["service_name"]; exists {
				cfg.Export.ServiceName = tf.Export.ServiceName
			}
		}
	}
	if tf.Display != nil {
		if section, ok := rawSection(raw, "display"); ok {
			if _, exists := section["loss_streak_warning"]; exists {
				cfg.Display.LossStreakWarning = tf.Display.LossStreakWarning
			}
			if _, exists := section["chart_width"]; exists {
				cfg.Display.ChartWidth = tf.Display.ChartWidth
			}
		}
	}
	if tf.Logging != nil {
		if section, ok := rawSection(raw, "logging"); ok {
			if _, exists := section["level"]; exists {
				cfg.Logging.Level = tf.Logging.Level
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	return validate(c)
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Analysis.DefaultBigBlind <= 0 {
		errs = append(errs, fmt.Sprintf("default_big_blind must be positive, got %g", cfg.Analysis.DefaultBigBlind))
	}
	switch cfg.Analysis.ZeroBigBlind {
	case "error", "default":
	default:
		errs = append(errs, fmt.Sprintf("zero_big_blind must be \"error\" or \"default\", got %q", cfg.Analysis.ZeroBigBlind))
	}
	if cfg.Analysis.TrendWindow < 1 {
		errs = append(errs, fmt.Sprintf("trend_window must be positive, got %d", cfg.Analysis.TrendWindow))
	}
	if cfg.Analysis.SlopePoints < 2 {
		errs = append(errs, fmt.Sprintf("slope_points must be at least 2, got %d", cfg.Analysis.SlopePoints))
	}
	if strings.TrimSpace(cfg.Analysis.DateLayout) == "" {
		errs = append(errs, "date_layout must not be empty")
	}

	switch cfg.Output.Format {
	case "json", "otlp":
	default:
		errs = append(errs, fmt.Sprintf("output format must be \"json\" or \"otlp\", got %q", cfg.Output.Format))
	}

	if strings.TrimSpace(cfg.Export.Endpoint) == "" {
		errs = append(errs, "export endpoint must not be empty")
	}
	if cfg.Export.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("export timeout_seconds must be positive, got %d", cfg.Export.TimeoutSeconds))
	}
	if strings.TrimSpace(cfg.Export.ServiceName) == "" {
		errs = append(errs, "export service_name must not be empty")
	}

	if cfg.Display.LossStreakWarning < 1 {
		errs = append(errs, fmt.Sprintf("loss_streak_warning must be positive, got %d", cfg.Display.LossStreakWarning))
	}
	if cfg.Display.ChartWidth < 8 {
		errs = append(errs, fmt.Sprintf("chart_width must be at least 8, got %d", cfg.Display.ChartWidth))
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging level must be debug, info, warn, or error, got %q", cfg.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
