package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides:
// decompose.workers is read from STABDECOMP_DECOMPOSE_WORKERS.
const EnvPrefix = "STABDECOMP"

// Config is the complete stabdecomp configuration.
type Config struct {
	Decompose DecomposeConfig `mapstructure:"decompose"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DecomposeConfig controls the decomposer.
type DecomposeConfig struct {
	// Simplify is the simplification hook applied to each child diagram.
	// Options: "full", "none"
	Simplify string `mapstructure:"simplify"`
	// RandomT picks T-vertices with a seeded random source instead of in order
	RandomT bool `mapstructure:"random_t"`
	// Seed for the random selection policy
	Seed uint64 `mapstructure:"seed"`
	// Save keeps terminal diagrams so they can be archived or verified
	Save bool `mapstructure:"save"`
	// ParallelDepth is the breadth-first depth before forking (0 = sequential)
	ParallelDepth int `mapstructure:"parallel_depth"`
	// Workers bounds the parallel map (0 = GOMAXPROCS)
	Workers int `mapstructure:"workers"`
	// MaxComponent is the largest closed Clifford component the simplifier
	// evaluates away
	MaxComponent int `mapstructure:"max_component"`
	// MaxSteps bounds rewrite steps per decomposer (0 = unlimited)
	MaxSteps int `mapstructure:"max_steps"`
}

// ArchiveConfig controls the run archive.
type ArchiveConfig struct {
	// Path of the SQLite archive; empty disables archiving
	Path string `mapstructure:"path"`
}

// LoggingConfig controls the slog handler installed by the CLI.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format: "text", "json"
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Decompose: DecomposeConfig{
			Simplify:      "full",
			RandomT:       false,
			Seed:          1,
			Save:          false,
			ParallelDepth: 0,
			Workers:       0,
			MaxComponent:  16,
			MaxSteps:      0,
		},
		Archive: ArchiveConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("decompose.simplify", defaults.Decompose.Simplify)
	v.SetDefault("decompose.random_t", defaults.Decompose.RandomT)
	v.SetDefault("decompose.seed", defaults.Decompose.Seed)
	v.SetDefault("decompose.save", defaults.Decompose.Save)
	v.SetDefault("decompose.parallel_depth", defaults.Decompose.ParallelDepth)
	v.SetDefault("decompose.workers", defaults.Decompose.Workers)
	v.SetDefault("decompose.max_component", defaults.Decompose.MaxComponent)
	v.SetDefault("decompose.max_steps", defaults.Decompose.MaxSteps)

	v.SetDefault("archive.path", defaults.Archive.Path)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// Load layers defaults, the optional config file at path (YAML, TOML or
// JSON by extension) and STABDECOMP_* environment variables, then validates
// the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}
