// Package root contains the root command for the application
package root

import (
	"fintrack/internal/advisor"
	"fintrack/internal/categories"
	"fintrack/internal/classifier"
	"fintrack/internal/config"
	"fintrack/internal/nlparser"
	"fintrack/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Flag overrides for the config file values
	LedgerFile   string
	TaxonomyFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "A CLI tool to record plain-language transactions and get financial guidance.",
		Long: `fintrack parses sentences like "paid 20 rupees for panipuris and 50 for a movie ticket"
into categorized transaction records, keeps them in a CSV ledger, and offers
budget forecasts, debt payoff plans, savings simulations and emergency fund advice.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintrack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			if LedgerFile != "" {
				cfg.Ledger.File = LedgerFile
			}
			if TaxonomyFile != "" {
				cfg.Taxonomy.File = TaxonomyFile
			}
			Cfg = cfg

			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger everywhere
			classifier.SetLogger(Log)
			nlparser.SetLogger(Log)
			store.SetLogger(Log)
			advisor.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&LedgerFile, "ledger", "l", "", "Ledger CSV file (overrides config)")
	Cmd.PersistentFlags().StringVar(&TaxonomyFile, "taxonomy", "", "Taxonomy YAML file (overrides config)")
}

// Taxonomy loads the category taxonomy configured for this invocation.
func Taxonomy() (*categories.Taxonomy, error) {
	return store.LoadTaxonomy(Cfg.Taxonomy.File)
}

// Ledger opens the configured CSV ledger.
func Ledger(taxonomy *categories.Taxonomy) *store.CSVLedger {
	return store.NewCSVLedger(Cfg.Ledger.File, taxonomy)
}

// Classifier builds the category classifier with the configured thresholds
// and, when enabled, the Gemini suggestion client.
func Classifier(taxonomy *categories.Taxonomy) *classifier.Classifier {
	opts := []classifier.Option{
		classifier.WithThresholds(Cfg.Classifier.PhraseThreshold, Cfg.Classifier.WordThreshold),
	}
	if Cfg.AI.Enabled {
		opts = append(opts, classifier.WithAIClient(classifier.NewGeminiClient(Cfg.AI.APIKey, Cfg.AI.Model)))
	}
	return classifier.New(taxonomy, opts...)
}

// Parser builds the natural-language transaction parser.
func Parser(c *classifier.Classifier) *nlparser.Parser {
	return nlparser.New(c, nlparser.WithDefaultCurrency(Cfg.Currency.Default))
}
