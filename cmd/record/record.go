// Package record handles recording transactions from plain language
package record

import (
	"strings"

	"fintrack/cmd/root"
	"fintrack/internal/nlparser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record <text>",
	Short: "Record transactions described in plain language",
	Long: `Record parses a sentence describing one or more financial events and stores
the resulting transactions in the ledger.

Example:
  fintrack record "paid 20 rupees for panipuris and 50 rupees for a movie ticket"`,
	Args: cobra.MinimumNArgs(1),
	Run:  recordFunc,
}

func recordFunc(cmd *cobra.Command, args []string) {
	utterance := strings.Join(args, " ")

	taxonomy, err := root.Taxonomy()
	if err != nil {
		root.Log.Fatalf("Failed to load taxonomy: %v", err)
	}
	parser := root.Parser(root.Classifier(taxonomy))
	ledger := root.Ledger(taxonomy)

	result := parser.Parse(utterance)
	for _, parseErr := range result.Errors {
		root.Log.Warnf("Skipped clause: %v", parseErr)
	}
	if result.Status == nlparser.StatusError {
		root.Log.Error("Nothing could be recorded from the input")
		return
	}

	added, err := ledger.BulkAdd(result.Transactions)
	if err != nil {
		root.Log.Errorf("Failed to store transactions: %v", err)
		return
	}

	for _, tx := range result.Transactions {
		root.Log.WithFields(logrus.Fields{
			"date":     tx.Date.Format("2006-01-02"),
			"amount":   tx.Amount.String(),
			"currency": tx.Currency,
			"category": tx.MainCategory + "/" + tx.SubCategory,
			"type":     tx.Type,
		}).Infof("Recorded: %s", tx.Description)
	}
	if added < len(result.Transactions) {
		root.Log.Infof("%d of %d transactions were already in the ledger", len(result.Transactions)-added, len(result.Transactions))
	}
	if result.Status == nlparser.StatusPartial {
		root.Log.Warn("Some clauses could not be interpreted; see warnings above")
	}
}
