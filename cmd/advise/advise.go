// Package advise exposes the planning advisors as subcommands
package advise

import (
	"github.com/spf13/cobra"
)

// Cmd represents the advise command
var Cmd = &cobra.Command{
	Use:   "advise",
	Short: "Get quantitative financial guidance",
	Long: `Advise runs one of the planning models: a spending forecast, a debt payoff
plan, a savings goal simulation, an emergency fund recommendation or an
investment allocation.`,
}

func init() {
	Cmd.AddCommand(forecastCmd)
	Cmd.AddCommand(debtCmd)
	Cmd.AddCommand(savingsCmd)
	Cmd.AddCommand(emergencyCmd)
	Cmd.AddCommand(investCmd)
}
