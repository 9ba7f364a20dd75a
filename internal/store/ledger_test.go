package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/categories"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerNow = time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *CSVLedger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	return NewCSVLedger(path, categories.NewDefault(),
		WithLedgerClock(func() time.Time { return ledgerNow }))
}

func expense(date time.Time, description string, amount int64, main, sub string) models.Transaction {
	return models.Transaction{
		ID:           models.NewID(),
		Date:         date,
		Description:  description,
		Amount:       decimal.NewFromInt(amount),
		Currency:     models.DefaultCurrency,
		MainCategory: main,
		SubCategory:  sub,
		Type:         models.TypeExpense,
		SplitRatio:   1,
	}
}

func income(date time.Time, description string, amount int64, person string) models.Transaction {
	tx := models.Transaction{
		ID:           models.NewID(),
		Date:         date,
		Description:  description,
		Amount:       decimal.NewFromInt(amount),
		Currency:     models.DefaultCurrency,
		MainCategory: "Other",
		SubCategory:  "reimbursement",
		Type:         models.TypeIncome,
		Person:       person,
		SplitRatio:   1,
	}
	return tx
}

func TestLedgerRoundTrip(t *testing.T) {
	l := newTestLedger(t)

	tx := expense(ledgerNow.AddDate(0, 0, -1), "panipuris", 20, "Food", "panipuris")
	require.NoError(t, l.AddTransaction(tx))

	got, err := l.FetchTransactions(0, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tx.ID, got[0].ID)
	assert.Equal(t, "panipuris", got[0].Description)
	assert.True(t, got[0].Amount.Equal(tx.Amount))
	assert.True(t, got[0].Date.Equal(time.Date(2025, time.April, 14, 0, 0, 0, 0, time.UTC)))
}

func TestLedgerMostRecentFirst(t *testing.T) {
	l := newTestLedger(t)

	oldest := expense(ledgerNow.AddDate(0, 0, -10), "old", 10, "Food", "groceries")
	newest := expense(ledgerNow.AddDate(0, 0, -1), "new", 30, "Food", "groceries")
	middle := expense(ledgerNow.AddDate(0, 0, -5), "middle", 20, "Food", "groceries")
	for _, tx := range []models.Transaction{oldest, newest, middle} {
		require.NoError(t, l.AddTransaction(tx))
	}

	got, err := l.FetchTransactions(30, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].Description)
	assert.Equal(t, "middle", got[1].Description)
	assert.Equal(t, "old", got[2].Description)
}

func TestLedgerFilters(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -2), "sabji", 50, "Food", "sabji")))
	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -60), "old rent", 5000, "Housing", "rent")))
	require.NoError(t, l.AddTransaction(income(ledgerNow.AddDate(0, 0, -3), "repayment", 200, "Deepak")))

	recent, err := l.FetchTransactions(30, "")
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	expenses, err := l.FetchTransactions(30, models.TypeExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "sabji", expenses[0].Description)

	all, err := l.FetchTransactions(0, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = l.FetchTransactions(30, "transfer")
	assert.Error(t, err)
}

func TestLedgerRejectsInvalidRecords(t *testing.T) {
	l := newTestLedger(t)

	bad := expense(ledgerNow, "mystery", 10, "Food", "rent")
	assert.Error(t, l.AddTransaction(bad), "subcategory from another main must be rejected")

	zero := expense(ledgerNow, "free", 0, "Food", "groceries")
	assert.Error(t, l.AddTransaction(zero))

	got, err := l.FetchTransactions(0, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLedgerBulkAddDeduplicates(t *testing.T) {
	l := newTestLedger(t)

	a := expense(ledgerNow.AddDate(0, 0, -1), "groceries", 100, "Food", "groceries")
	b := expense(ledgerNow.AddDate(0, 0, -2), "rent", 5000, "Housing", "rent")
	added, err := l.BulkAdd([]models.Transaction{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Same date, description and amount counts as a duplicate even with a
	// fresh ID.
	dup := expense(ledgerNow.AddDate(0, 0, -1), "groceries", 100, "Food", "groceries")
	c := expense(ledgerNow.AddDate(0, 0, -3), "auto", 40, "Transportation", "auto rickshaw")
	added, err = l.BulkAdd([]models.Transaction{dup, c})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	got, err := l.FetchTransactions(0, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLedgerSpendingSummary(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -1), "groceries", 100, "Food", "groceries")))
	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -2), "sabji", 50, "Food", "sabji")))
	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -3), "rent", 5000, "Housing", "rent")))
	// Last month's spending and income stay out of the summary.
	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, -1, 0), "old rent", 5000, "Housing", "rent")))
	require.NoError(t, l.AddTransaction(income(ledgerNow.AddDate(0, 0, -1), "repayment", 200, "Deepak")))

	summary, err := l.SpendingSummary()
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.True(t, summary["Food"].Equal(decimal.NewFromInt(150)))
	assert.True(t, summary["Housing"].Equal(decimal.NewFromInt(5000)))
}

func TestLedgerPersonBalances(t *testing.T) {
	l := newTestLedger(t)

	paidFor := expense(ledgerNow.AddDate(0, 0, -1), "dinner", 300, "Food", "dining out")
	paidFor.Person = "Deepak"
	require.NoError(t, l.AddTransaction(paidFor))
	require.NoError(t, l.AddTransaction(income(ledgerNow.AddDate(0, 0, -1), "repayment", 100, "Deepak")))
	require.NoError(t, l.AddTransaction(expense(ledgerNow.AddDate(0, 0, -2), "solo lunch", 80, "Food", "dining out")))

	balances, err := l.PersonBalances()
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, balances["Deepak"].Equal(decimal.NewFromInt(200)), "got %s", balances["Deepak"])
}

func TestLedgerMissingFileReadsEmpty(t *testing.T) {
	l := newTestLedger(t)

	got, err := l.FetchTransactions(0, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTaxonomyDefaults(t *testing.T) {
	taxonomy, err := LoadTaxonomy("")
	require.NoError(t, err)
	assert.True(t, taxonomy.Validate(models.TypeExpense, "Food", "panipuris"))

	taxonomy, err = LoadTaxonomy(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, taxonomy.Validate(models.TypeIncome, "Employment", "salary"))
}

func TestLoadTaxonomyOverride(t *testing.T) {
	content := `
expense:
  Essentials: [groceries, rent]
  Miscellaneous: [unexpected]
income:
  Work: [salary]
  Other: [reimbursement]
keywords:
  - keyword: kirana
    main: Essentials
    sub: groceries
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	taxonomy, err := LoadTaxonomy(path)
	require.NoError(t, err)
	assert.True(t, taxonomy.Validate(models.TypeExpense, "Essentials", "groceries"))
	assert.False(t, taxonomy.Validate(models.TypeExpense, "Food", "panipuris"))
}

func TestLoadTaxonomyRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("expense: [not, a, map]"), 0600))
	_, err := LoadTaxonomy(path)
	assert.Error(t, err)

	incomplete := filepath.Join(t.TempDir(), "incomplete.yaml")
	require.NoError(t, os.WriteFile(incomplete, []byte("expense:\n  Food: [groceries]\n"), 0600))
	_, err = LoadTaxonomy(incomplete)
	assert.Error(t, err)
}
