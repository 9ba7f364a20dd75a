// Package categories holds the two-level category taxonomy used to classify
// transactions: a main category maps to a set of subcategory labels, kept in
// separate tables for expenses and income. The taxonomy is built once and
// never mutated afterwards, so it is safe to share across goroutines.
package categories

import (
	"fmt"
	"strings"

	"fintrack/internal/models"
)

// KeywordRule is an exact-substring shortcut that bypasses fuzzy matching.
// Rules are evaluated in declaration order.
type KeywordRule struct {
	Keyword string `yaml:"keyword"`
	Main    string `yaml:"main"`
	Sub     string `yaml:"sub"`
}

// Taxonomy is the immutable category configuration. Construct it with New or
// NewDefault and pass it by reference into the classifier and the ledger.
type Taxonomy struct {
	expense map[string][]string
	income  map[string][]string

	// ordered main-category names, preserving declaration order so that
	// subcategory enumeration (and therefore fuzzy tie-breaking) is
	// deterministic
	expenseMains []string
	incomeMains  []string

	// lowercase subcategory -> canonical main category, per type; when a
	// subcategory appears under several mains the first declaration wins
	expenseSubIndex map[string]string
	incomeSubIndex  map[string]string

	keywords []KeywordRule
}

// Fallback pairs returned by the classifier when nothing matches.
const (
	FallbackExpenseMain = "Miscellaneous"
	FallbackExpenseSub  = "unexpected"
	FallbackIncomeMain  = "Other"
	FallbackIncomeSub   = "reimbursement"
)

// New builds a Taxonomy from explicit tables. The declaration order of mains
// follows the order slices; every main in the order slices must exist in its
// table, and the fallback pairs must be present.
func New(expense, income map[string][]string, expenseOrder, incomeOrder []string, keywords []KeywordRule) (*Taxonomy, error) {
	t := &Taxonomy{
		expense:         make(map[string][]string, len(expense)),
		income:          make(map[string][]string, len(income)),
		expenseMains:    append([]string(nil), expenseOrder...),
		incomeMains:     append([]string(nil), incomeOrder...),
		expenseSubIndex: make(map[string]string),
		incomeSubIndex:  make(map[string]string),
		keywords:        append([]KeywordRule(nil), keywords...),
	}

	for _, main := range expenseOrder {
		subs, ok := expense[main]
		if !ok {
			return nil, fmt.Errorf("expense order lists unknown main category %q", main)
		}
		t.expense[main] = append([]string(nil), subs...)
		for _, sub := range subs {
			key := strings.ToLower(sub)
			if _, exists := t.expenseSubIndex[key]; !exists {
				t.expenseSubIndex[key] = main
			}
		}
	}
	for _, main := range incomeOrder {
		subs, ok := income[main]
		if !ok {
			return nil, fmt.Errorf("income order lists unknown main category %q", main)
		}
		t.income[main] = append([]string(nil), subs...)
		for _, sub := range subs {
			key := strings.ToLower(sub)
			if _, exists := t.incomeSubIndex[key]; !exists {
				t.incomeSubIndex[key] = main
			}
		}
	}

	if !t.Validate(models.TypeExpense, FallbackExpenseMain, FallbackExpenseSub) {
		return nil, fmt.Errorf("expense taxonomy must contain the fallback pair (%s, %s)",
			FallbackExpenseMain, FallbackExpenseSub)
	}
	if !t.Validate(models.TypeIncome, FallbackIncomeMain, FallbackIncomeSub) {
		return nil, fmt.Errorf("income taxonomy must contain the fallback pair (%s, %s)",
			FallbackIncomeMain, FallbackIncomeSub)
	}
	return t, nil
}

// Validate reports whether (main, sub) is a declared pair for the given
// transaction type. Both sides compare case-insensitively.
func (t *Taxonomy) Validate(txType models.TransactionType, main, sub string) bool {
	table := t.tableFor(txType)
	if table == nil {
		return false
	}
	mainLower := strings.ToLower(main)
	subLower := strings.ToLower(sub)
	for declaredMain, subs := range table {
		if strings.ToLower(declaredMain) != mainLower {
			continue
		}
		for _, declaredSub := range subs {
			if strings.ToLower(declaredSub) == subLower {
				return true
			}
		}
	}
	return false
}

// MainFor resolves a subcategory label to its canonical main category for the
// given transaction type.
func (t *Taxonomy) MainFor(txType models.TransactionType, sub string) (string, bool) {
	index := t.indexFor(txType)
	if index == nil {
		return "", false
	}
	main, ok := index[strings.ToLower(sub)]
	return main, ok
}

// Subcategories returns every subcategory label valid for the given type, in
// declaration order.
func (t *Taxonomy) Subcategories(txType models.TransactionType) []string {
	table := t.tableFor(txType)
	var out []string
	for _, main := range t.mainsFor(txType) {
		out = append(out, table[main]...)
	}
	return out
}

// Hierarchy returns a copy of the main -> subcategories table for the given
// type, for display purposes.
func (t *Taxonomy) Hierarchy(txType models.TransactionType) map[string][]string {
	table := t.tableFor(txType)
	out := make(map[string][]string, len(table))
	for main, subs := range table {
		out[main] = append([]string(nil), subs...)
	}
	return out
}

// Keywords returns the exact-keyword shortcut rules in declaration order.
func (t *Taxonomy) Keywords() []KeywordRule {
	return t.keywords
}

// Fallback returns the default pair for the given transaction type.
func (t *Taxonomy) Fallback(txType models.TransactionType) (main, sub string) {
	if txType == models.TypeIncome {
		return FallbackIncomeMain, FallbackIncomeSub
	}
	return FallbackExpenseMain, FallbackExpenseSub
}

// CanonicalPairs returns every (main, sub) pair reachable through the reverse
// index for the given type. Subcategories declared under several mains yield
// only their canonical pair.
func (t *Taxonomy) CanonicalPairs(txType models.TransactionType) [][2]string {
	var out [][2]string
	seen := make(map[string]bool)
	table := t.tableFor(txType)
	for _, main := range t.mainsFor(txType) {
		for _, sub := range table[main] {
			key := strings.ToLower(sub)
			if seen[key] {
				continue
			}
			seen[key] = true
			canonical, _ := t.MainFor(txType, sub)
			out = append(out, [2]string{canonical, sub})
		}
	}
	return out
}

func (t *Taxonomy) tableFor(txType models.TransactionType) map[string][]string {
	switch txType {
	case models.TypeExpense:
		return t.expense
	case models.TypeIncome:
		return t.income
	default:
		return nil
	}
}

func (t *Taxonomy) indexFor(txType models.TransactionType) map[string]string {
	switch txType {
	case models.TypeExpense:
		return t.expenseSubIndex
	case models.TypeIncome:
		return t.incomeSubIndex
	default:
		return nil
	}
}

func (t *Taxonomy) mainsFor(txType models.TransactionType) []string {
	switch txType {
	case models.TypeExpense:
		return t.expenseMains
	case models.TypeIncome:
		return t.incomeMains
	default:
		return nil
	}
}
