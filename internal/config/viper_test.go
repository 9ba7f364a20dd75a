package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "ledger.csv", config.Ledger.File)
	assert.Equal(t, "INR", config.Currency.Default)
	assert.Equal(t, "", config.Taxonomy.File)
	assert.Equal(t, 80, config.Classifier.PhraseThreshold)
	assert.Equal(t, 85, config.Classifier.WordThreshold)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 3, config.Forecast.WindowSize)
	assert.Equal(t, 0.95, config.Forecast.ConfidenceLevel)
	assert.Equal(t, 0.07, config.Savings.AnnualReturnMean)
	assert.Equal(t, 0.15, config.Savings.AnnualVolatility)
	assert.Equal(t, 1000, config.Savings.Trials)
	assert.Equal(t, 3, config.Emergency.MinMonths)
	assert.Equal(t, 6, config.Emergency.MaxMonths)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"FINTRACK_LOG_LEVEL":            "debug",
		"FINTRACK_LOG_FORMAT":           "json",
		"FINTRACK_LEDGER_FILE":          "custom.csv",
		"FINTRACK_CURRENCY_DEFAULT":     "USD",
		"FINTRACK_AI_ENABLED":           "true",
		"FINTRACK_AI_MODEL":             "gemini-1.5-pro",
		"FINTRACK_FORECAST_WINDOW_SIZE": "6",
		"GEMINI_API_KEY":                "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "custom.csv", config.Ledger.File)
	assert.Equal(t, "USD", config.Currency.Default)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 6, config.Forecast.WindowSize)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
ledger:
  file: "household.csv"
classifier:
  phrase_threshold: 75
forecast:
  window_size: 4
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "household.csv", config.Ledger.File)
	assert.Equal(t, 75, config.Classifier.PhraseThreshold)
	assert.Equal(t, 4, config.Forecast.WindowSize)
	// Unset keys keep their defaults.
	assert.Equal(t, "INR", config.Currency.Default)
	assert.Equal(t, 85, config.Classifier.WordThreshold)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
ledger:
  file: "household.csv"
forecast:
  window_size: 4
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	t.Setenv("FINTRACK_LOG_LEVEL", "error")
	t.Setenv("FINTRACK_FORECAST_WINDOW_SIZE", "6")
	t.Setenv("GEMINI_API_KEY", "env-api-key")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)           // env var wins
	assert.Equal(t, "household.csv", config.Ledger.File) // config file value
	assert.Equal(t, 6, config.Forecast.WindowSize)       // env var wins
	assert.Equal(t, "env-api-key", config.AI.APIKey)     // env var (API key)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "empty ledger file",
			modifyConfig: func(c *Config) { c.Ledger.File = "" },
			expectError:  "ledger.file must not be empty",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name:         "phrase threshold out of range",
			modifyConfig: func(c *Config) { c.Classifier.PhraseThreshold = 120 },
			expectError:  "classifier.phrase_threshold",
		},
		{
			name:         "confidence level out of range",
			modifyConfig: func(c *Config) { c.Forecast.ConfidenceLevel = 1.5 },
			expectError:  "forecast.confidence_level",
		},
		{
			name: "inverted emergency fund months",
			modifyConfig: func(c *Config) {
				c.Emergency.MinMonths = 6
				c.Emergency.MaxMonths = 3
			},
			expectError: "emergency fund months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)
			config, err := InitializeConfig()
			require.NoError(t, err)

			tt.modifyConfig(config)
			err = validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	clearTestEnvVars(t)
	config, err := InitializeConfig()
	require.NoError(t, err)

	logger := ConfigureLoggingFromConfig(config)
	assert.NotNil(t, logger)

	config.Log.Level = "debug"
	config.Log.Format = "json"
	logger = ConfigureLoggingFromConfig(config)
	assert.NotNil(t, logger)
}

// Helper function to clear test environment variables.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"FINTRACK_LOG_LEVEL",
		"FINTRACK_LOG_FORMAT",
		"FINTRACK_LEDGER_FILE",
		"FINTRACK_CURRENCY_DEFAULT",
		"FINTRACK_TAXONOMY_FILE",
		"FINTRACK_CLASSIFIER_PHRASE_THRESHOLD",
		"FINTRACK_CLASSIFIER_WORD_THRESHOLD",
		"FINTRACK_AI_ENABLED",
		"FINTRACK_AI_MODEL",
		"FINTRACK_FORECAST_WINDOW_SIZE",
		"FINTRACK_FORECAST_CONFIDENCE_LEVEL",
		"FINTRACK_SAVINGS_TRIALS",
		"FINTRACK_EMERGENCY_MIN_MONTHS",
		"FINTRACK_EMERGENCY_MAX_MONTHS",
		"GEMINI_API_KEY",
	}
	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
