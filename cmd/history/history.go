// Package history handles listing and summarizing recorded transactions
package history

import (
	"fmt"
	"sort"

	"fintrack/cmd/root"
	"fintrack/internal/models"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	daysBack int
	txType   string
	summary  bool
	balances bool
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded transactions",
	Long: `History lists transactions from the ledger, most recent first. It can also
print the current month's spending by category and the net balance per
counterparty.`,
	Run: historyFunc,
}

func init() {
	Cmd.Flags().IntVarP(&daysBack, "days", "d", 30, "How many days back to list (0 = all)")
	Cmd.Flags().StringVarP(&txType, "type", "t", "", "Filter by type: income or expense")
	Cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print this month's spending by category")
	Cmd.Flags().BoolVarP(&balances, "balances", "b", false, "Print net balances per person")
}

func historyFunc(cmd *cobra.Command, args []string) {
	taxonomy, err := root.Taxonomy()
	if err != nil {
		root.Log.Fatalf("Failed to load taxonomy: %v", err)
	}
	ledger := root.Ledger(taxonomy)

	if summary {
		printSummary(ledger)
		return
	}
	if balances {
		printBalances(ledger)
		return
	}

	transactions, err := ledger.FetchTransactions(daysBack, models.TransactionType(txType))
	if err != nil {
		root.Log.Errorf("Failed to fetch transactions: %v", err)
		return
	}
	if len(transactions) == 0 {
		root.Log.Info("No transactions found")
		return
	}

	for _, tx := range transactions {
		sign := "-"
		if tx.Type == models.TypeIncome {
			sign = "+"
		}
		line := fmt.Sprintf("%s  %s%s %s  %-30s %s/%s",
			tx.Date.Format("2006-01-02"), sign, tx.Amount.StringFixed(2), tx.Currency,
			tx.Description, tx.MainCategory, tx.SubCategory)
		if tx.Person != "" {
			line += fmt.Sprintf("  (%s)", tx.Person)
		}
		fmt.Println(line)
	}
	root.Log.Infof("%d transactions", len(transactions))
}

func printSummary(ledger *store.CSVLedger) {
	totals, err := ledger.SpendingSummary()
	if err != nil {
		root.Log.Errorf("Failed to compute spending summary: %v", err)
		return
	}
	if len(totals) == 0 {
		root.Log.Info("No expenses recorded this month")
		return
	}
	for _, category := range sortedCategories(totals) {
		fmt.Printf("%-20s %s\n", category, totals[category].StringFixed(2))
	}
}

func printBalances(ledger *store.CSVLedger) {
	owed, err := ledger.PersonBalances()
	if err != nil {
		root.Log.Errorf("Failed to compute person balances: %v", err)
		return
	}
	if len(owed) == 0 {
		root.Log.Info("No transactions involve other people")
		return
	}
	for _, person := range sortedCategories(owed) {
		fmt.Printf("%-20s %s\n", person, owed[person].StringFixed(2))
	}
}

func sortedCategories(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
