package config

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			DefaultBigBlind: 0.2,
			ZeroBigBlind:    "error",
			TrendWindow:     3,
			SlopePoints:     5,
			DateLayout:      "2006-01-02",
		},
		Output: OutputConfig{
			Format: "json",
		},
		Export: ExportConfig{
			Endpoint:       "127.0.0.1:4317",
			TimeoutSeconds: 5,
			ServiceName:    "pokerlytics",
		},
		Display: DisplayConfig{
			LossStreakWarning: 3,
			ChartWidth:        48,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
