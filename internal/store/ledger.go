// Package store persists transaction records and taxonomy overrides. The
// ledger is a CSV file; every write rewrites the whole file, which is fine
// for household-sized histories.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fintrack/internal/categories"
	"fintrack/internal/dateutils"
	"fintrack/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Ledger is the storage contract the parser and advisors depend on.
type Ledger interface {
	AddTransaction(tx models.Transaction) error
	// FetchTransactions returns records no older than daysBack days,
	// most recent first. daysBack <= 0 means no age limit; an empty
	// txType returns both types.
	FetchTransactions(daysBack int, txType models.TransactionType) ([]models.Transaction, error)
}

// ledgerRow is the CSV representation of one transaction.
type ledgerRow struct {
	ID           string  `csv:"Id"`
	Date         string  `csv:"Date"`
	Description  string  `csv:"Description"`
	Amount       string  `csv:"Amount"`
	Currency     string  `csv:"Currency"`
	MainCategory string  `csv:"MainCategory"`
	SubCategory  string  `csv:"SubCategory"`
	Type         string  `csv:"Type"`
	Person       string  `csv:"Person"`
	Group        string  `csv:"Group"`
	SplitRatio   float64 `csv:"SplitRatio"`
}

// CSVLedger implements Ledger on a single CSV file. All methods are safe for
// concurrent use.
type CSVLedger struct {
	path     string
	taxonomy *categories.Taxonomy
	now      func() time.Time

	mu sync.Mutex
}

// LedgerOption configures a CSVLedger.
type LedgerOption func(*CSVLedger)

// WithLedgerClock overrides the time source used for age filtering and the
// current-month summary.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(l *CSVLedger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewCSVLedger creates a ledger backed by the CSV file at path. The file is
// created on first write; a missing file reads as an empty ledger.
func NewCSVLedger(path string, taxonomy *categories.Taxonomy, opts ...LedgerOption) *CSVLedger {
	l := &CSVLedger{path: path, taxonomy: taxonomy, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddTransaction validates and appends one record.
func (l *CSVLedger) AddTransaction(tx models.Transaction) error {
	if err := l.validate(tx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.load()
	if err != nil {
		return err
	}
	rows = append(rows, toRow(tx))
	if err := l.save(rows); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"id":     tx.ID,
		"amount": tx.Amount.String(),
	}).Debug("Transaction added to ledger")
	return nil
}

// BulkAdd validates and appends the records that are not already present,
// where presence is the (date, description, amount) triple. It returns how
// many records were actually written. Validation failures reject the whole
// batch before anything is written.
func (l *CSVLedger) BulkAdd(txs []models.Transaction) (int, error) {
	for _, tx := range txs {
		if err := l.validate(tx); err != nil {
			return 0, err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.load()
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(rows))
	for _, r := range rows {
		existing[dedupKey(r.Date, r.Description, r.Amount)] = true
	}

	added := 0
	for _, tx := range txs {
		row := toRow(tx)
		key := dedupKey(row.Date, row.Description, row.Amount)
		if existing[key] {
			continue
		}
		existing[key] = true
		rows = append(rows, row)
		added++
	}
	if added == 0 {
		log.Debug("No new transactions to add (all duplicates)")
		return 0, nil
	}
	if err := l.save(rows); err != nil {
		return 0, err
	}
	log.WithField("count", added).Debug("Bulk transactions added to ledger")
	return added, nil
}

// FetchTransactions implements Ledger.
func (l *CSVLedger) FetchTransactions(daysBack int, txType models.TransactionType) ([]models.Transaction, error) {
	if txType != "" && !txType.Valid() {
		return nil, fmt.Errorf("invalid transaction type %q", txType)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.load()
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	if daysBack > 0 {
		cutoff = l.now().AddDate(0, 0, -daysBack)
	}

	var out []models.Transaction
	for _, r := range rows {
		tx, err := fromRow(r)
		if err != nil {
			return nil, fmt.Errorf("ledger %s: %w", l.path, err)
		}
		if txType != "" && tx.Type != txType {
			continue
		}
		if daysBack > 0 && tx.Date.Before(cutoff) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// SpendingSummary totals the current calendar month's expenses by main
// category.
func (l *CSVLedger) SpendingSummary() (map[string]decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.load()
	if err != nil {
		return nil, err
	}
	month := dateutils.MonthStart(l.now())

	summary := make(map[string]decimal.Decimal)
	for _, r := range rows {
		tx, err := fromRow(r)
		if err != nil {
			return nil, fmt.Errorf("ledger %s: %w", l.path, err)
		}
		if tx.Type != models.TypeExpense || !dateutils.MonthStart(tx.Date).Equal(month) {
			continue
		}
		summary[tx.MainCategory] = summary[tx.MainCategory].Add(tx.Amount)
	}
	return summary, nil
}

// PersonBalances nets what each counterparty owes: expenses they are named
// on add to their balance, income received from them subtracts.
func (l *CSVLedger) PersonBalances() (map[string]decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.load()
	if err != nil {
		return nil, err
	}

	balances := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if r.Person == "" {
			continue
		}
		tx, err := fromRow(r)
		if err != nil {
			return nil, fmt.Errorf("ledger %s: %w", l.path, err)
		}
		if tx.Type == models.TypeExpense {
			balances[tx.Person] = balances[tx.Person].Add(tx.Amount)
		} else {
			balances[tx.Person] = balances[tx.Person].Sub(tx.Amount)
		}
	}
	return balances, nil
}

func (l *CSVLedger) validate(tx models.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if l.taxonomy != nil && !l.taxonomy.Validate(tx.Type, tx.MainCategory, tx.SubCategory) {
		return fmt.Errorf("category pair (%s, %s) is not valid for %s transactions",
			tx.MainCategory, tx.SubCategory, tx.Type)
	}
	return nil
}

func (l *CSVLedger) load() ([]ledgerRow, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	var rows []ledgerRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return nil, nil
		}
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}
	return rows, nil
}

func (l *CSVLedger) save(rows []ledgerRow) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating ledger directory: %w", err)
		}
	}
	file, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("error creating ledger file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	return nil
}

func toRow(tx models.Transaction) ledgerRow {
	return ledgerRow{
		ID:           tx.ID,
		Date:         dateutils.ToISODate(tx.Date),
		Description:  tx.Description,
		Amount:       tx.Amount.StringFixed(2),
		Currency:     tx.Currency,
		MainCategory: tx.MainCategory,
		SubCategory:  tx.SubCategory,
		Type:         string(tx.Type),
		Person:       tx.Person,
		Group:        tx.Group,
		SplitRatio:   tx.SplitRatio,
	}
}

func fromRow(r ledgerRow) (models.Transaction, error) {
	date, err := dateutils.FromISODate(r.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("row %s has a bad date %q: %w", r.ID, r.Date, err)
	}
	return models.Transaction{
		ID:           r.ID,
		Date:         date,
		Description:  r.Description,
		Amount:       models.ParseAmount(r.Amount),
		Currency:     r.Currency,
		MainCategory: r.MainCategory,
		SubCategory:  r.SubCategory,
		Type:         models.TransactionType(r.Type),
		Person:       r.Person,
		Group:        r.Group,
		SplitRatio:   r.SplitRatio,
	}, nil
}

func dedupKey(date, description, amount string) string {
	return date + "|" + strings.ToLower(description) + "|" + amount
}
