// Package models defines the transaction record shared by the parser,
// the advisors and the ledger store.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DefaultCurrency is used when an utterance carries no currency token and no
// override is configured.
const DefaultCurrency = "INR"

// Transaction is the unit of financial history. Records are immutable once
// emitted by the parser or constructed by a caller; any later mutation
// (budget rollups and the like) belongs to the storage layer.
type Transaction struct {
	ID           string          `yaml:"id"`
	Date         time.Time       `yaml:"date"`
	Description  string          `yaml:"description"`
	Amount       decimal.Decimal `yaml:"amount"`
	Currency     string          `yaml:"currency"`
	MainCategory string          `yaml:"main_category"`
	SubCategory  string          `yaml:"sub_category"`
	Type         TransactionType `yaml:"type"`

	// Person is an optional counterparty label. It is not an identity;
	// resolving it to one is the storage layer's concern.
	Person string `yaml:"person,omitempty"`

	// Group marks a shared expense; SplitRatio is this party's share of
	// Amount and is meaningful only when Group is set.
	Group      string  `yaml:"group,omitempty"`
	SplitRatio float64 `yaml:"split_ratio"`
}

// NewID returns a fresh transaction identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the record's intrinsic invariants. Taxonomy membership of
// the category pair is validated separately by the ledger, which owns the
// taxonomy reference.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("transaction description is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("type must be %q or %q, got %q", TypeIncome, TypeExpense, t.Type)
	}
	if t.MainCategory == "" || t.SubCategory == "" {
		return errors.New("main and sub category are required")
	}
	if t.SplitRatio <= 0 || t.SplitRatio > 1 {
		return fmt.Errorf("split ratio must be in (0, 1], got %v", t.SplitRatio)
	}
	return nil
}

// ParseAmount converts a free-form amount string to a decimal, tolerating
// thousands separators and surrounding whitespace. Unparseable input yields
// decimal.Zero rather than an error; callers treat a non-positive amount as
// invalid anyway.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
