package store

import (
	"fmt"
	"os"
	"sort"

	"fintrack/internal/categories"

	"gopkg.in/yaml.v3"
)

// taxonomyFile is the YAML shape of a taxonomy override. The order lists are
// optional; when absent the main categories are sorted alphabetically.
type taxonomyFile struct {
	Expense      map[string][]string      `yaml:"expense"`
	Income       map[string][]string      `yaml:"income"`
	ExpenseOrder []string                 `yaml:"expense_order"`
	IncomeOrder  []string                 `yaml:"income_order"`
	Keywords     []categories.KeywordRule `yaml:"keywords"`
}

// LoadTaxonomy builds the category taxonomy from a YAML override file. An
// empty path or a missing file yields the built-in taxonomy; a file that
// exists but does not parse or validate is an error, since silently falling
// back would misclassify every record.
func LoadTaxonomy(path string) (*categories.Taxonomy, error) {
	if path == "" {
		return categories.NewDefault(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Warn("Taxonomy file not found, using built-in taxonomy")
			return categories.NewDefault(), nil
		}
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy file %s: %w", path, err)
	}
	if len(tf.Expense) == 0 || len(tf.Income) == 0 {
		return nil, fmt.Errorf("taxonomy file %s must declare both expense and income categories", path)
	}

	expenseOrder := tf.ExpenseOrder
	if len(expenseOrder) == 0 {
		expenseOrder = sortedKeys(tf.Expense)
	}
	incomeOrder := tf.IncomeOrder
	if len(incomeOrder) == 0 {
		incomeOrder = sortedKeys(tf.Income)
	}

	taxonomy, err := categories.New(tf.Expense, tf.Income, expenseOrder, incomeOrder, tf.Keywords)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy file %s: %w", path, err)
	}
	log.WithField("file", path).Info("Loaded taxonomy overrides")
	return taxonomy, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
