// Package advisor implements the quantitative planning models: budget
// forecasting, debt payoff optimization, savings goal simulation, emergency
// fund sizing and risk-profile asset allocation. Every advisor is stateless;
// a call either returns a report or an error, never both.
package advisor

import (
	"fmt"
	"math"
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// monthlyTotals buckets transaction amounts into calendar months and returns
// the totals in chronological order. Calendar months between the first and
// last transaction with no activity count as zero; a quiet month is real
// data, not a gap to skip over. Records missing a date or carrying a
// non-positive amount are malformed input.
func monthlyTotals(history []models.Transaction) ([]float64, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no transaction history available")
	}

	buckets := make(map[time.Time]float64)
	var first, last time.Time
	for _, tx := range history {
		if tx.Date.IsZero() {
			return nil, fmt.Errorf("transaction %s has no date", tx.ID)
		}
		if !tx.Amount.IsPositive() {
			return nil, fmt.Errorf("transaction %s has non-positive amount", tx.ID)
		}
		month := dateutils.MonthStart(tx.Date)
		buckets[month] += tx.Amount.InexactFloat64()
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
	}

	var totals []float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		totals = append(totals, buckets[m])
	}
	return totals, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
