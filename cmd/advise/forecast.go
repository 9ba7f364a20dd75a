package advise

import (
	"fmt"

	"fintrack/cmd/root"
	"fintrack/internal/advisor"
	"fintrack/internal/models"

	"github.com/spf13/cobra"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast next month's spending from the ledger",
	Run:   forecastFunc,
}

func init() {
	forecastCmd.Flags().IntVarP(&forecastDays, "days", "d", 365, "How many days of history to use")
}

func forecastFunc(cmd *cobra.Command, args []string) {
	taxonomy, err := root.Taxonomy()
	if err != nil {
		root.Log.Fatalf("Failed to load taxonomy: %v", err)
	}
	history, err := root.Ledger(taxonomy).FetchTransactions(forecastDays, models.TypeExpense)
	if err != nil {
		root.Log.Errorf("Failed to fetch expense history: %v", err)
		return
	}

	forecaster := advisor.NewForecaster(root.Cfg.Forecast.WindowSize, root.Cfg.Forecast.ConfidenceLevel)
	report, err := forecaster.Forecast(history)
	if err != nil {
		root.Log.Errorf("Forecast failed: %v", err)
		return
	}

	fmt.Printf("Predicted monthly spending: %.2f (%s)\n", report.Prediction, report.Method)
	if report.Degraded {
		fmt.Println("Not enough history for a confidence interval yet")
		return
	}
	fmt.Printf("%.0f%% confidence interval: %.2f .. %.2f\n",
		report.ConfidenceLevel*100, report.IntervalLow, report.IntervalHigh)
}
