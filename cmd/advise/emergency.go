package advise

import (
	"fmt"

	"fintrack/cmd/root"
	"fintrack/internal/advisor"
	"fintrack/internal/models"

	"github.com/spf13/cobra"
)

var (
	emergencyStability  string
	emergencyDependents int
	emergencyDays       int
)

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Size an emergency fund from your expense history",
	Run:   emergencyFunc,
}

func init() {
	emergencyCmd.Flags().StringVar(&emergencyStability, "stability", "stable", "Income stability: stable or variable")
	emergencyCmd.Flags().IntVar(&emergencyDependents, "dependents", 0, "Number of dependents")
	emergencyCmd.Flags().IntVarP(&emergencyDays, "days", "d", 365, "How many days of history to use")
}

func emergencyFunc(cmd *cobra.Command, args []string) {
	taxonomy, err := root.Taxonomy()
	if err != nil {
		root.Log.Fatalf("Failed to load taxonomy: %v", err)
	}
	expenses, err := root.Ledger(taxonomy).FetchTransactions(emergencyDays, models.TypeExpense)
	if err != nil {
		root.Log.Errorf("Failed to fetch expense history: %v", err)
		return
	}

	a := advisor.NewEmergencyFundAdvisor()
	a.MinMonths = root.Cfg.Emergency.MinMonths
	a.MaxMonths = root.Cfg.Emergency.MaxMonths

	fund, err := a.Recommend(expenses, advisor.IncomeStability(emergencyStability), emergencyDependents)
	if err != nil {
		root.Log.Errorf("Emergency fund recommendation failed: %v", err)
		return
	}

	fmt.Printf("Average monthly expenses: %.2f\n", fund.AvgMonthlyExpense)
	fmt.Printf("Recommended fund:         %.2f .. %.2f\n", fund.RecommendedMin, fund.RecommendedMax)
	fmt.Printf("Sufficiency probability:  %.0f%%\n", fund.ProbabilitySufficient*100)
}
