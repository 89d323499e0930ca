// Package config loads termgate configuration from defaults, an optional
// .termgate.yaml file, and TERMGATE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for termgate
type Config struct {
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
}

// CorpusConfig locates the published term corpus
type CorpusConfig struct {
	Dir      string   `mapstructure:"dir"`
	Patterns []string `mapstructure:"patterns"`
}

// ManifestConfig controls manifest persistence
type ManifestConfig struct {
	Path string `mapstructure:"path"`
	// TimestampSource selects where a merged entry's createdAt comes from:
	// "merge-time" (time of the merge operation) or "batch-name" (date
	// embedded in the batch filename, when parseable).
	TimestampSource string `mapstructure:"timestamp_source"`
}

// QuizConfig holds quiz-readiness thresholds
type QuizConfig struct {
	MinTerms int `mapstructure:"min_terms"`
}

// AdvisoryConfig holds content-quality advisory thresholds
type AdvisoryConfig struct {
	// TruncationLimit is the character count beyond which section content
	// is flagged; downstream consumers truncate at this boundary.
	TruncationLimit int `mapstructure:"truncation_limit"`
}

// TimestampSource values accepted by manifest.timestamp_source.
const (
	TimestampMergeTime = "merge-time"
	TimestampBatchName = "batch-name"
)

var defaultConfig = Config{
	Corpus: CorpusConfig{
		Dir:      "terms",
		Patterns: []string{"**/*.json"},
	},
	Manifest: ManifestConfig{
		Path:            "manifest.json",
		TimestampSource: TimestampMergeTime,
	},
	Quiz: QuizConfig{
		MinTerms: 4,
	},
	Advisory: AdvisoryConfig{
		TruncationLimit: 240,
	},
}

// LoadConfig loads configuration from defaults, config file, and environment
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("corpus.dir", defaultConfig.Corpus.Dir)
	v.SetDefault("corpus.patterns", defaultConfig.Corpus.Patterns)
	v.SetDefault("manifest.path", defaultConfig.Manifest.Path)
	v.SetDefault("manifest.timestamp_source", defaultConfig.Manifest.TimestampSource)
	v.SetDefault("quiz.min_terms", defaultConfig.Quiz.MinTerms)
	v.SetDefault("advisory.truncation_limit", defaultConfig.Advisory.TruncationLimit)

	v.SetConfigName(".termgate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("TERMGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

func (c *Config) validate() error {
	switch c.Manifest.TimestampSource {
	case TimestampMergeTime, TimestampBatchName:
	default:
		return fmt.Errorf("manifest.timestamp_source must be %q or %q, got %q",
			TimestampMergeTime, TimestampBatchName, c.Manifest.TimestampSource)
	}
	if c.Quiz.MinTerms < 1 {
		return fmt.Errorf("quiz.min_terms must be positive, got %d", c.Quiz.MinTerms)
	}
	if c.Advisory.TruncationLimit < 1 {
		return fmt.Errorf("advisory.truncation_limit must be positive, got %d", c.Advisory.TruncationLimit)
	}
	return nil
}
