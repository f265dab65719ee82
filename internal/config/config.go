package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/fragment-bingo/internal/binomial"
	"github.com/eugenenazirov/fragment-bingo/internal/harness"
	"github.com/eugenenazirov/fragment-bingo/internal/oracle"
)

const (
	defaultSweepMax     = 6
	defaultSampleTrials = 100_000
	defaultLogLevel     = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	TableBound       int
	LogLevel         string
	CacheSize        int
	Tolerance        float64
	SweepMaxA        int
	SweepMaxB        int
	BelowPicture     bool
	ProgressInterval time.Duration
	SampleTrials     int
	Seed             uint64
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	TableBound int        `yaml:"table_bound"`
	LogLevel   string     `yaml:"log_level"`
	CacheSize  int        `yaml:"cache_size"`
	Sweep      yamlSweep  `yaml:"sweep"`
	Sample     yamlSample `yaml:"sample"`
}

// yamlSweep represents the sweep section in YAML.
type yamlSweep struct {
	MaxA             int      `yaml:"max_a"`
	MaxB             int      `yaml:"max_b"`
	Tolerance        *float64 `yaml:"tolerance"`
	BelowPicture     *bool    `yaml:"below_picture"`
	ProgressInterval string   `yaml:"progress_interval"`
}

// yamlSample represents the sample section in YAML.
type yamlSample struct {
	Trials int     `yaml:"trials"`
	Seed   *uint64 `yaml:"seed"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile   string
	TableBound   *int
	LogLevel     *string
	Tolerance    *float64
	SweepMaxA    *int
	SweepMaxB    *int
	BelowPicture *bool
	SampleTrials *int
	Seed         *uint64
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		TableBound:       binomial.DefaultBound,
		LogLevel:         defaultLogLevel,
		CacheSize:        oracle.DefaultCacheSize,
		Tolerance:        harness.DefaultTolerance,
		SweepMaxA:        defaultSweepMax,
		SweepMaxB:        defaultSweepMax,
		ProgressInterval: harness.DefaultProgressInterval,
		SampleTrials:     defaultSampleTrials,
		Seed:             1,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.TableBound != 0 {
		cfg.TableBound = yamlCfg.TableBound
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.CacheSize != 0 {
		cfg.CacheSize = yamlCfg.CacheSize
	}

	if yamlCfg.Sweep.MaxA != 0 {
		cfg.SweepMaxA = yamlCfg.Sweep.MaxA
	}

	if yamlCfg.Sweep.MaxB != 0 {
		cfg.SweepMaxB = yamlCfg.Sweep.MaxB
	}

	if yamlCfg.Sweep.Tolerance != nil {
		cfg.Tolerance = *yamlCfg.Sweep.Tolerance
	}

	if yamlCfg.Sweep.BelowPicture != nil {
		cfg.BelowPicture = *yamlCfg.Sweep.BelowPicture
	}

	if yamlCfg.Sweep.ProgressInterval != "" {
		d, err := time.ParseDuration(yamlCfg.Sweep.ProgressInterval)
		if err != nil {
			return fmt.Errorf("parse progress_interval: %w", err)
		}
		cfg.ProgressInterval = d
	}

	if yamlCfg.Sample.Trials != 0 {
		cfg.SampleTrials = yamlCfg.Sample.Trials
	}

	if yamlCfg.Sample.Seed != nil {
		cfg.Seed = *yamlCfg.Sample.Seed
	}

	return nil
}

// applyEnvConfig applies environment variable configuration. Malformed
// values are ignored.
func applyEnvConfig(cfg *Config) {
	if bound := strings.TrimSpace(os.Getenv("BINGO_TABLE_BOUND")); bound != "" {
		if value, err := strconv.Atoi(bound); err == nil {
			cfg.TableBound = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("BINGO_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if tolerance := strings.TrimSpace(os.Getenv("BINGO_TOLERANCE")); tolerance != "" {
		if value, err := strconv.ParseFloat(tolerance, 64); err == nil && value >= 0 {
			cfg.Tolerance = value
		}
	}

	if maxA := strings.TrimSpace(os.Getenv("BINGO_MAX_A")); maxA != "" {
		if value, err := strconv.Atoi(maxA); err == nil {
			cfg.SweepMaxA = value
		}
	}

	if maxB := strings.TrimSpace(os.Getenv("BINGO_MAX_B")); maxB != "" {
		if value, err := strconv.Atoi(maxB); err == nil {
			cfg.SweepMaxB = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.TableBound != nil {
		cfg.TableBound = *overrides.TableBound
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.Tolerance != nil {
		cfg.Tolerance = *overrides.Tolerance
	}

	if overrides.SweepMaxA != nil {
		cfg.SweepMaxA = *overrides.SweepMaxA
	}

	if overrides.SweepMaxB != nil {
		cfg.SweepMaxB = *overrides.SweepMaxB
	}

	if overrides.BelowPicture != nil {
		cfg.BelowPicture = *overrides.BelowPicture
	}

	if overrides.SampleTrials != nil {
		cfg.SampleTrials = *overrides.SampleTrials
	}

	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.TableBound < 1 {
		return fmt.Errorf("table bound must be >= 1, got %d", cfg.TableBound)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0")
	}
	if cfg.SweepMaxA < 1 || cfg.SweepMaxB < 1 {
		return fmt.Errorf("sweep bounds must be >= 1")
	}
	if (cfg.SweepMaxA-1)*(cfg.SweepMaxB-1) >= cfg.TableBound {
		return fmt.Errorf("sweep bounds %dx%d exceed table bound %d", cfg.SweepMaxA, cfg.SweepMaxB, cfg.TableBound)
	}
	if cfg.CacheSize < 1 {
		return fmt.Errorf("cache size must be >= 1")
	}
	if cfg.SampleTrials < 1 {
		return fmt.Errorf("sample trials must be >= 1")
	}
	if cfg.ProgressInterval < 0 {
		return fmt.Errorf("progress interval must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return nil
}
