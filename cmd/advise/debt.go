package advise

import (
	"fmt"
	"strconv"
	"strings"

	"fintrack/cmd/root"
	"fintrack/internal/advisor"

	"github.com/spf13/cobra"
)

var (
	debtSpecs  []string
	debtMethod string
)

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Plan debt repayment with the avalanche or snowball method",
	Long: `Debt simulates paying off a set of debts month by month.

Each --debt takes "name:balance:annual_rate:min_payment", for example
--debt "credit card:10000:0.18:200".`,
	Run: debtFunc,
}

func init() {
	debtCmd.Flags().StringArrayVar(&debtSpecs, "debt", nil, "Debt as name:balance:annual_rate:min_payment (repeatable)")
	debtCmd.Flags().StringVarP(&debtMethod, "method", "m", "avalanche", "Repayment method: avalanche or snowball")
	if err := debtCmd.MarkFlagRequired("debt"); err != nil {
		panic(err)
	}
}

func debtFunc(cmd *cobra.Command, args []string) {
	debts := make([]advisor.Debt, 0, len(debtSpecs))
	for _, spec := range debtSpecs {
		debt, err := parseDebtSpec(spec)
		if err != nil {
			root.Log.Errorf("Bad --debt value %q: %v", spec, err)
			return
		}
		debts = append(debts, debt)
	}

	method := advisor.PayoffMethod(strings.ToLower(debtMethod))
	if method != advisor.MethodAvalanche && method != advisor.MethodSnowball {
		root.Log.Errorf("Unknown method %q: use avalanche or snowball", debtMethod)
		return
	}

	plan, err := advisor.NewDebtOptimizer().Optimize(debts, method)
	if err != nil {
		root.Log.Errorf("Debt optimization failed: %v", err)
		return
	}

	fmt.Printf("Method:         %s\n", plan.Method)
	fmt.Printf("Months to free: %d\n", plan.TotalMonths)
	fmt.Printf("Total interest: %.2f\n", plan.TotalInterest)
}

func parseDebtSpec(spec string) (advisor.Debt, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return advisor.Debt{}, fmt.Errorf("expected name:balance:annual_rate:min_payment")
	}
	balance, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return advisor.Debt{}, fmt.Errorf("bad balance: %w", err)
	}
	rate, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return advisor.Debt{}, fmt.Errorf("bad annual rate: %w", err)
	}
	minPayment, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return advisor.Debt{}, fmt.Errorf("bad minimum payment: %w", err)
	}
	return advisor.Debt{
		Name:       strings.TrimSpace(parts[0]),
		Balance:    balance,
		AnnualRate: rate,
		MinPayment: minPayment,
	}, nil
}
