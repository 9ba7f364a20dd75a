package advise

import (
	"fmt"

	"fintrack/cmd/root"
	"fintrack/internal/advisor"

	"github.com/spf13/cobra"
)

var (
	savingsCurrent float64
	savingsGoal    float64
	savingsMonths  int
	savingsIncome  float64
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Plan monthly contributions toward a savings goal",
	Run:   savingsFunc,
}

func init() {
	savingsCmd.Flags().Float64Var(&savingsCurrent, "current", 0, "Current savings")
	savingsCmd.Flags().Float64Var(&savingsGoal, "goal", 0, "Goal amount")
	savingsCmd.Flags().IntVar(&savingsMonths, "months", 12, "Timeframe in months")
	savingsCmd.Flags().Float64Var(&savingsIncome, "income", 0, "Monthly income")
	if err := savingsCmd.MarkFlagRequired("goal"); err != nil {
		panic(err)
	}
}

func savingsFunc(cmd *cobra.Command, args []string) {
	optimizer := advisor.NewSavingsOptimizer()
	optimizer.AnnualReturnMean = root.Cfg.Savings.AnnualReturnMean
	optimizer.AnnualVolatility = root.Cfg.Savings.AnnualVolatility
	optimizer.Trials = root.Cfg.Savings.Trials

	plan, err := optimizer.CalculatePlan(savingsCurrent, savingsGoal, savingsMonths, savingsIncome)
	if err != nil {
		root.Log.Errorf("Savings plan failed: %v", err)
		return
	}

	fmt.Printf("Required monthly:    %.2f\n", plan.RequiredMonthly)
	fmt.Printf("Recommended monthly: %.2f\n", plan.RecommendedMonthly)
	fmt.Printf("Success probability: %.0f%%\n", plan.SuccessProbability*100)
	if plan.ReconsiderPlan {
		fmt.Println("The goal looks unlikely on this plan; consider a longer timeframe or a smaller goal")
	}
}
