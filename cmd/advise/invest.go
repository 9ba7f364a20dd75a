package advise

import (
	"fmt"
	"strings"

	"fintrack/cmd/root"
	"fintrack/internal/advisor"

	"github.com/spf13/cobra"
)

var (
	investProfile string
	investHorizon int
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Suggest an asset allocation for a risk profile and horizon",
	Run:   investFunc,
}

func init() {
	investCmd.Flags().StringVarP(&investProfile, "profile", "p", "moderate", "Risk profile: conservative, moderate or aggressive")
	investCmd.Flags().IntVar(&investHorizon, "horizon", 10, "Investment horizon in years")
}

func investFunc(cmd *cobra.Command, args []string) {
	profile := advisor.RiskProfile(strings.ToLower(investProfile))
	alloc, err := advisor.NewInvestmentAdvisor().Strategy(profile, investHorizon)
	if err != nil {
		root.Log.Errorf("Investment strategy failed: %v", err)
		return
	}

	fmt.Printf("Stocks: %d%%\n", alloc.Stocks)
	fmt.Printf("Bonds:  %d%%\n", alloc.Bonds)
	fmt.Printf("Gold:   %d%%\n", alloc.Gold)
	fmt.Printf("Cash:   %d%%\n", alloc.Cash)
	for _, note := range alloc.Notes {
		fmt.Println(note)
	}
}
