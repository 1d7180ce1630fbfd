// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) layering (defaults -> file -> env).
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration for both the serving binary and the
// offline trainer.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ModelPath is where the serialized model artifact lives.
	ModelPath string `koanf:"model_path"`

	// DataDir is where the trainer writes generated datasets.
	DataDir string `koanf:"data_dir"`

	// Seed drives every RNG in the offline pipeline for reproducible runs.
	Seed int64 `koanf:"seed"`

	// TrainingDays is the calendar span of synthesized data; weekends
	// inside the span are skipped.
	TrainingDays int `koanf:"training_days"`

	// TestFraction is the held-out share used for model selection.
	TestFraction float64 `koanf:"test_fraction"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8080",
		ModelPath:    "models/wait_time_model.json",
		DataDir:      "data",
		Seed:         42,
		TrainingDays: 60,
		TestFraction: 0.2,
	}
}
