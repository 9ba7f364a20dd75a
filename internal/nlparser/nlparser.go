// Package nlparser turns free-form descriptions of financial events into
// structured transaction records. Parsing is rule based: an utterance is
// split into clauses on the conjunction "and", and each clause is matched
// against small verb, preposition, time-phrase and group-keyword tables.
package nlparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/classifier"
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

// ParseError describes a clause that could not be interpreted. It is a
// diagnostic for the caller and is never persisted.
type ParseError struct {
	Clause string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Clause, e.Reason)
}

// Status summarizes a parse over all clauses of one utterance.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

// Result aggregates the per-clause outcomes of one Parse call.
type Result struct {
	Transactions []models.Transaction
	Errors       []ParseError
	Status       Status
}

// Messages returns the error reasons as plain strings.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

type actionVerb struct {
	word   string
	txType models.TransactionType
}

// Verb table in evaluation order. Matching is by substring, so "prepaid"
// resolves like "paid"; that is accepted imprecision.
var actionVerbs = []actionVerb{
	{"paid", models.TypeExpense},
	{"bought", models.TypeExpense},
	{"spent", models.TypeExpense},
	{"received", models.TypeIncome},
	{"earned", models.TypeIncome},
	{"got", models.TypeIncome},
}

type timePhrase struct {
	phrase string
	days   int
}

var timePhrases = []timePhrase{
	{"today", 0},
	{"yesterday", -1},
	{"tomorrow", 1},
	{"last week", -7},
	{"next week", 7},
}

type groupRule struct {
	name         string
	defaultSplit int
}

var groupRules = []groupRule{
	{"common", 2},
	{"family", 3},
	{"friends", 4},
}

var currencyWords = map[string]string{
	"rupee": "INR", "rupees": "INR", "rs": "INR", "inr": "INR",
	"dollar": "USD", "dollars": "USD", "usd": "USD",
	"euro": "EUR", "euros": "EUR", "eur": "EUR",
}

var (
	clauseSplitRe  = regexp.MustCompile(`\s+and\s+`)
	amountRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:\s*(rupees?|rs|inr|dollars?|usd|euros?|eur)\b)?`)
	itemRe         = regexp.MustCompile(`(?:^|\s)(?:for|on|from|of|worth of)\s+(.+?)(?:\s+(?:by|for|with|from|and)\b|$)`)
	personRe       = regexp.MustCompile(`(?:^|\s)(?:by|from)\s+([a-z]+)`)
	splitCountRe   = regexp.MustCompile(`(\d+)\s*(?:people|persons|members)`)
	absoluteDateRe = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}[-/.]\d{1,2}[-/.]\d{4})\b`)
	alphaRe        = regexp.MustCompile(`^[a-z]+$`)
)

// Parser converts utterances into transaction records. It is stateless
// across calls; the only state during a call is the verb accumulator that
// lets later clauses inherit the action of an earlier one.
type Parser struct {
	classifier      *classifier.Classifier
	defaultCurrency string
	now             func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultCurrency overrides the currency used when an utterance names
// none.
func WithDefaultCurrency(code string) Option {
	return func(p *Parser) {
		if code != "" {
			p.defaultCurrency = code
		}
	}
}

// WithClock overrides the time source used for relative date resolution.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Parser that classifies item phrases through the given
// classifier.
func New(c *classifier.Classifier, opts ...Option) *Parser {
	p := &Parser{
		classifier:      c,
		defaultCurrency: models.DefaultCurrency,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse interprets an utterance. It never panics and always returns at least
// one entry: a clause that cannot be interpreted contributes a ParseError
// without affecting its siblings.
func (p *Parser) Parse(utterance string) Result {
	text := strings.ToLower(strings.TrimSpace(utterance))
	log.WithField("input", text).Debug("Parsing utterance")

	var result Result
	currentAction := ""
	for _, clause := range clauseSplitRe.Split(text, -1) {
		if verb, ok := findVerb(clause); ok {
			currentAction = verb
		}
		if currentAction == "" {
			result.Errors = append(result.Errors, ParseError{Clause: clause, Reason: "no action found"})
			continue
		}
		tx, err := p.parseClause(clause, currentAction)
		if err != nil {
			result.Errors = append(result.Errors, ParseError{Clause: clause, Reason: err.Error()})
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	switch {
	case len(result.Errors) == 0:
		result.Status = StatusSuccess
	case len(result.Transactions) == 0:
		result.Status = StatusError
	default:
		result.Status = StatusPartial
	}
	return result
}

// findVerb returns the first verb of the table occurring in the clause.
func findVerb(clause string) (string, bool) {
	for _, v := range actionVerbs {
		if strings.Contains(clause, v.word) {
			return v.word, true
		}
	}
	return "", false
}

func verbType(verb string) (models.TransactionType, bool) {
	for _, v := range actionVerbs {
		if v.word == verb {
			return v.txType, true
		}
	}
	return "", false
}

// parseClause extracts all fields of one clause. action is the clause's own
// verb or one inherited from an earlier clause.
func (p *Parser) parseClause(clause, action string) (models.Transaction, error) {
	txType, ok := verbType(action)
	if !ok {
		return models.Transaction{}, fmt.Errorf("unknown action %q", action)
	}

	tx := models.Transaction{
		ID:         models.NewID(),
		Date:       truncateToDay(p.now()),
		Currency:   p.defaultCurrency,
		Type:       txType,
		SplitRatio: 1,
	}

	amountMatch := amountRe.FindStringSubmatch(clause)
	if amountMatch == nil {
		return models.Transaction{}, fmt.Errorf("no amount found")
	}
	tx.Amount = models.ParseAmount(amountMatch[1])
	if !tx.Amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("amount must be positive")
	}
	if code, ok := currencyWords[amountMatch[2]]; ok {
		tx.Currency = code
	}

	if itemMatch := itemRe.FindStringSubmatch(clause); itemMatch != nil {
		item := strings.TrimSpace(itemMatch[1])
		tx.MainCategory, tx.SubCategory = p.classifier.Classify(item, txType)
		tx.Description = item
	} else {
		// No preposition phrase: the remainder after the verb becomes the
		// literal description and the category stays at the type's default.
		tx.Description = remainderAfter(clause, action)
		if tx.Description == "" {
			tx.Description = clause
		}
		tx.MainCategory, tx.SubCategory = p.classifier.Fallback(txType)
	}

	tx.Person = extractPerson(clause, action)
	tx.Date = p.resolveDate(clause, tx.Date)

	for _, group := range groupRules {
		if strings.Contains(clause, group.name) {
			tx.Group = group.name
			n := group.defaultSplit
			if m := splitCountRe.FindStringSubmatch(clause); m != nil {
				if parsed, err := strconv.Atoi(m[1]); err == nil && parsed > 0 {
					n = parsed
				}
			}
			tx.SplitRatio = 1 / float64(n)
			break
		}
	}

	log.WithFields(logrus.Fields{
		"amount":   tx.Amount.String(),
		"type":     tx.Type,
		"category": tx.MainCategory + "/" + tx.SubCategory,
	}).Debug("Parsed clause")
	return tx, nil
}

// extractPerson finds a counterparty: a name after "by"/"from", or the
// leading alphabetic token of a clause that is neither first person nor the
// action verb. The leading-token heuristic is known to misfire on ordinary
// adjectives; that imprecision is accepted.
func extractPerson(clause, action string) string {
	if m := personRe.FindStringSubmatch(clause); m != nil {
		return capitalize(m[1])
	}
	fields := strings.Fields(clause)
	if len(fields) == 0 {
		return ""
	}
	lead := fields[0]
	if lead == "i" || strings.Contains(lead, action) || !alphaRe.MatchString(lead) {
		return ""
	}
	if _, isVerb := verbType(lead); isVerb {
		return ""
	}
	return capitalize(lead)
}

// resolveDate applies the first relative time phrase found in the clause, or
// an absolute date token when no relative phrase is present.
func (p *Parser) resolveDate(clause string, fallback time.Time) time.Time {
	for _, tp := range timePhrases {
		if strings.Contains(clause, tp.phrase) {
			return truncateToDay(p.now().AddDate(0, 0, tp.days))
		}
	}
	if m := absoluteDateRe.FindStringSubmatch(clause); m != nil {
		if parsed, _, err := dateutils.ParseDate(m[1]); err == nil {
			return parsed
		}
	}
	return fallback
}

// remainderAfter mirrors splitting the clause on the last occurrence of the
// action word. When the verb was inherited and is absent from this clause,
// the whole clause is the remainder.
func remainderAfter(clause, action string) string {
	idx := strings.LastIndex(clause, action)
	if idx < 0 {
		return strings.TrimSpace(clause)
	}
	return strings.TrimSpace(clause[idx+len(action):])
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
