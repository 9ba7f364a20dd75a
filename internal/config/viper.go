// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Currency struct {
		Default string `mapstructure:"default" yaml:"default"`
	} `mapstructure:"currency" yaml:"currency"`

	Taxonomy struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"taxonomy" yaml:"taxonomy"`

	Classifier struct {
		PhraseThreshold int `mapstructure:"phrase_threshold" yaml:"phrase_threshold"`
		WordThreshold   int `mapstructure:"word_threshold" yaml:"word_threshold"`
	} `mapstructure:"classifier" yaml:"classifier"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Forecast struct {
		WindowSize      int     `mapstructure:"window_size" yaml:"window_size"`
		ConfidenceLevel float64 `mapstructure:"confidence_level" yaml:"confidence_level"`
	} `mapstructure:"forecast" yaml:"forecast"`

	Savings struct {
		AnnualReturnMean float64 `mapstructure:"annual_return_mean" yaml:"annual_return_mean"`
		AnnualVolatility float64 `mapstructure:"annual_volatility" yaml:"annual_volatility"`
		Trials           int     `mapstructure:"trials" yaml:"trials"`
	} `mapstructure:"savings" yaml:"savings"`

	Emergency struct {
		MinMonths int `mapstructure:"min_months" yaml:"min_months"`
		MaxMonths int `mapstructure:"max_months" yaml:"max_months"`
	} `mapstructure:"emergency" yaml:"emergency"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then FINTRACK_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fintrack")
	v.AddConfigPath(".fintrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key is always read from the unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.file", "ledger.csv")
	v.SetDefault("currency.default", "INR")
	v.SetDefault("taxonomy.file", "")

	v.SetDefault("classifier.phrase_threshold", 80)
	v.SetDefault("classifier.word_threshold", 85)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")

	v.SetDefault("forecast.window_size", 3)
	v.SetDefault("forecast.confidence_level", 0.95)

	v.SetDefault("savings.annual_return_mean", 0.07)
	v.SetDefault("savings.annual_volatility", 0.15)
	v.SetDefault("savings.trials", 1000)

	v.SetDefault("emergency.min_months", 3)
	v.SetDefault("emergency.max_months", 6)
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Ledger.File == "" {
		return fmt.Errorf("ledger.file must not be empty")
	}
	if config.Currency.Default == "" {
		return fmt.Errorf("currency.default must not be empty")
	}

	if config.Classifier.PhraseThreshold < 0 || config.Classifier.PhraseThreshold > 100 {
		return fmt.Errorf("classifier.phrase_threshold must be between 0 and 100, got: %d", config.Classifier.PhraseThreshold)
	}
	if config.Classifier.WordThreshold < 0 || config.Classifier.WordThreshold > 100 {
		return fmt.Errorf("classifier.word_threshold must be between 0 and 100, got: %d", config.Classifier.WordThreshold)
	}

	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}

	if config.Forecast.WindowSize < 1 {
		return fmt.Errorf("forecast.window_size must be at least 1, got: %d", config.Forecast.WindowSize)
	}
	if config.Forecast.ConfidenceLevel <= 0 || config.Forecast.ConfidenceLevel >= 1 {
		return fmt.Errorf("forecast.confidence_level must be between 0 and 1, got: %f", config.Forecast.ConfidenceLevel)
	}

	if config.Savings.AnnualVolatility < 0 {
		return fmt.Errorf("savings.annual_volatility must be non-negative, got: %f", config.Savings.AnnualVolatility)
	}
	if config.Savings.Trials < 1 {
		return fmt.Errorf("savings.trials must be at least 1, got: %d", config.Savings.Trials)
	}

	if config.Emergency.MinMonths < 1 || config.Emergency.MaxMonths < config.Emergency.MinMonths {
		return fmt.Errorf("emergency fund months must satisfy 1 <= min <= max, got: %d..%d",
			config.Emergency.MinMonths, config.Emergency.MaxMonths)
	}
	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
