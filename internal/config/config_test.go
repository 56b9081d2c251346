package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigParser_Defaults(t *testing.T) {
	result, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("expected no error for missing config file, got: %v", err)
	}

	cfg := result.Config

	if cfg.Analysis.DefaultBigBlind != 0.2 {
		t.Errorf("default default_big_blind: want 0.2, got %f", cfg.Analysis.DefaultBigBlind)
	}
	if cfg.Analysis.ZeroBigBlind != "error" {
		t.Errorf("default zero_big_blind: want error, got %s", cfg.Analysis.ZeroBigBlind)
	}
	if cfg.Analysis.TrendWindow != 3 {
		t.Errorf("default trend_window: want 3, got %d", cfg.Analysis.TrendWindow)
	}
	if cfg.Analysis.SlopePoints != 5 {
		t.Errorf("default slope_points: want 5, got %d", cfg.Analysis.SlopePoints)
	}
	if cfg.Analysis.DateLayout != "2006-01-02" {
		t.Errorf("default date_layout: want 2006-01-02, got %s", cfg.Analysis.DateLayout)
	}
	if cfg.Output.Format != "json" || cfg.Output.Pretty {
		t.Errorf("default output: want json/false, got %s/%v", cfg.Output.Format, cfg.Output.Pretty)
	}
	if cfg.Export.Endpoint != "127.0.0.1:4317" {
		t.Errorf("default endpoint: want 127.0.0.1:4317, got %s", cfg.Export.Endpoint)
	}
	if cfg.Export.TimeoutSeconds != 5 {
		t.Errorf("default timeout_seconds: want 5, got %d", cfg.Export.TimeoutSeconds)
	}
	if cfg.Export.ServiceName != "pokerlytics" {
		t.Errorf("default service_name: want pokerlytics, got %s", cfg.Export.ServiceName)
	}
	if cfg.Display.LossStreakWarning != 3 {
		t.Errorf("default loss_streak_warning: want 3, got %d", cfg.Display.LossStreakWarning)
	}
	if cfg.Display.ChartWidth != 48 {
		t.Errorf("default chart_width: want 48, got %d", cfg.Display.ChartWidth)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("default logging level: want warn, got %s", cfg.Logging.Level)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestConfigParser_PartialConfig(t *testing.T) {
	tomlData := `
[analysis]
default_big_blind = 0.5
zero_big_blind = "default"

[display]
chart_width = 60
`
	result, err := LoadFromString(tomlData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := result.Config
	if cfg.Analysis.DefaultBigBlind != 0.5 {
		t.Errorf("default_big_blind: want 0.5, got %f", cfg.Analysis.DefaultBigBlind)
	}
	if cfg.Analysis.ZeroBigBlind != "default" {
		t.Errorf("zero_big_blind: want default, got %s", cfg.Analysis.ZeroBigBlind)
	}
	// Omitted keys in a present section keep their defaults.
	if cfg.Analysis.TrendWindow != 3 {
		t.Errorf("trend_window should keep default 3, got %d", cfg.Analysis.TrendWindow)
	}
	if cfg.Display.ChartWidth != 60 {
		t.Errorf("chart_width: want 60, got %d", cfg.Display.ChartWidth)
	}
	if cfg.Display.LossStreakWarning != 3 {
		t.Errorf("loss_streak_warning should keep default 3, got %d", cfg.Display.LossStreakWarning)
	}
	if cfg.Export.Endpoint != "127.0.0.1:4317" {
		t.Errorf("export section should keep defaults, got %s", cfg.Export.Endpoint)
	}
}

func TestConfigParser_FullConfig(t *testing.T) {
	tomlData := `
[analysis]
default_big_blind = 1.0
zero_big_blind = "error"
trend_window = 4
slope_points = 7
date_layout = "02 Jan 2006"

[output]
format = "otlp"
pretty = true

[export]
endpoint = "collector:4317"
timeout_seconds = 10
service_name = "home-game"

[display]
loss_streak_warning = 5
chart_width = 80

[logging]
level = "debug"
`
	result, err := LoadFromString(tomlData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := result.Config
	if cfg.Analysis.TrendWindow != 4 || cfg.Analysis.SlopePoints != 7 {
		t.Errorf("trend settings: want 4/7, got %d/%d", cfg.Analysis.TrendWindow, cfg.Analysis.SlopePoints)
	}
	if cfg.Analysis.DateLayout != "02 Jan 2006" {
		t.Errorf("date_layout: want 02 Jan 2006, got %s", cfg.Analysis.DateLayout)
	}
	if cfg.Output.Format != "otlp" || !cfg.Output.Pretty {
		t.Errorf("output: want otlp/true, got %s/%v", cfg.Output.Format, cfg.Output.Pretty)
	}
	if cfg.Export.Endpoint != "collector:4317" || cfg.Export.TimeoutSeconds != 10 || cfg.Export.ServiceName != "home-game" {
		t.Errorf("export: unexpected %+v", cfg.Export)
	}
	if cfg.Display.LossStreakWarning != 5 || cfg.Display.ChartWidth != 80 {
		t.Errorf("display: unexpected %+v", cfg.Display)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level: want debug, got %s", cfg.Logging.Level)
	}
}

func TestConfigParser_InvalidValue(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "zero default_big_blind",
			toml: `[analysis]
default_big_blind = 0.0`,
		},
		{
			name: "unknown zero_big_blind policy",
			toml: `[analysis]
zero_big_blind = "ignore"`,
		},
		{
			name: "zero trend_window",
			toml: `[analysis]
trend_window = 0`,
		},
		{
			name: "single slope point",
			toml: `[analysis]
slope_points = 1`,
		},
		{
			name: "empty date_layout",
			toml: `[analysis]
date_layout = ""`,
		},
		{
			name: "unknown output format",
			toml: `[output]
format = "xml"`,
		},
		{
			name: "empty endpoint",
			toml: `[export]
endpoint = ""`,
		},
		{
			name: "negative timeout",
			toml: `[export]
timeout_seconds = -1`,
		},
		{
			name: "narrow chart",
			toml: `[display]
chart_width = 4`,
		},
		{
			name: "unknown log level",
			toml: `[logging]
level = "verbose"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromString(tt.toml)
			if err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigParser_CollectsAllErrors(t *testing.T) {
	_, err := LoadFromString(`
[analysis]
trend_window = 0
slope_points = 0
`)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "trend_window") || !strings.Contains(msg, "slope_points") {
		t.Errorf("expected both problems in error, got: %s", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("expected problems joined with '; ', got: %s", msg)
	}
}

func TestConfigParser_UnknownKey(t *testing.T) {
	tomlData := `
[analysis]
default_big_blind = 0.5
small_blind = 0.25

[mysterious_section]
foo = "bar"
`
	result, err := LoadFromString(tomlData)
	if err != nil {
		t.Fatalf("unknown keys should not cause errors, got: %v", err)
	}

	want := []string{
		`unknown config key: "analysis.small_blind"`,
		`unknown config key: "mysterious_section"`,
	}
	if len(result.Warnings) != len(want) {
		t.Fatalf("expected %d warnings, got %v", len(want), result.Warnings)
	}
	for i, w := range want {
		if result.Warnings[i] != w {
			t.Errorf("warning %d: want %s, got %s", i, w, result.Warnings[i])
		}
	}

	if result.Config.Analysis.DefaultBigBlind != 0.5 {
		t.Errorf("default_big_blind should still be loaded: want 0.5, got %f", result.Config.Analysis.DefaultBigBlind)
	}
}

func TestConfigParser_MalformedTOML(t *testing.T) {
	if _, err := LoadFromString("[analysis\ndefault_big_blind = "); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestConfigParser_FileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[output]
pretty = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	result, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Config.Output.Pretty {
		t.Error("expected pretty=true from file")
	}
}

func TestConfigParser_FileLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[display]\nchart_width = 1\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name the file, got: %v", err)
	}
}

func TestConfigParser_EmptyString(t *testing.T) {
	result, err := LoadFromString("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Config != DefaultConfig() {
		t.Errorf("expected defaults for empty config, got %+v", result.Config)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}
