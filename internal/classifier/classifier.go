// Package classifier resolves a free-text description to a (main, sub)
// category pair using layered matching:
//  1. Exact keyword shortcuts from the taxonomy
//  2. Phrase-level fuzzy match against every subcategory valid for the type
//  3. Word-level fuzzy match per whitespace token
//  4. Optional AI suggestion (accepted only if it validates)
//  5. A fixed per-type fallback pair
//
// Classify is total: it always returns a pair that validates against the
// taxonomy for the requested transaction type.
package classifier

import (
	"context"
	"strings"

	"fintrack/internal/categories"
	"fintrack/internal/models"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Default similarity thresholds on the 0-100 scale. Tunable constants, not
// derived.
const (
	DefaultPhraseThreshold = 80
	DefaultWordThreshold   = 85
)

// Classifier maps descriptions to taxonomy pairs. It is stateless apart from
// its configuration and safe for concurrent use.
type Classifier struct {
	taxonomy        *categories.Taxonomy
	phraseThreshold int
	wordThreshold   int
	ai              AIClient
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithThresholds overrides the phrase- and word-level similarity thresholds.
func WithThresholds(phrase, word int) Option {
	return func(c *Classifier) {
		if phrase > 0 {
			c.phraseThreshold = phrase
		}
		if word > 0 {
			c.wordThreshold = word
		}
	}
}

// WithAIClient enables AI suggestions as a pre-fallback step. Suggestions
// that do not validate against the taxonomy are discarded.
func WithAIClient(client AIClient) Option {
	return func(c *Classifier) {
		c.ai = client
	}
}

// New creates a Classifier bound to the given taxonomy.
func New(taxonomy *categories.Taxonomy, opts ...Option) *Classifier {
	c := &Classifier{
		taxonomy:        taxonomy,
		phraseThreshold: DefaultPhraseThreshold,
		wordThreshold:   DefaultWordThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves description to a category pair for the given transaction
// type. It never fails; when nothing matches it returns the type's fallback
// pair.
func (c *Classifier) Classify(description string, txType models.TransactionType) (main, sub string) {
	desc := strings.ToLower(strings.TrimSpace(description))

	// Step 1: exact keyword shortcuts.
	for _, rule := range c.taxonomy.Keywords() {
		if strings.Contains(desc, rule.Keyword) && c.taxonomy.Validate(txType, rule.Main, rule.Sub) {
			log.WithFields(logrus.Fields{
				"keyword":  rule.Keyword,
				"category": rule.Main + "/" + rule.Sub,
			}).Debug("Keyword match")
			return rule.Main, rule.Sub
		}
	}

	subs := c.taxonomy.Subcategories(txType)

	// Step 2: phrase-level fuzzy match against the full description.
	if match, score := bestMatch(desc, subs); score >= c.phraseThreshold {
		if canonical, ok := c.taxonomy.MainFor(txType, match); ok {
			log.WithFields(logrus.Fields{
				"match": match,
				"score": score,
			}).Debug("Phrase-level fuzzy match")
			return canonical, match
		}
	}

	// Step 3: word-level fuzzy match, tokens in original order.
	for _, word := range strings.Fields(desc) {
		if match, score := bestMatch(word, subs); score >= c.wordThreshold {
			if canonical, ok := c.taxonomy.MainFor(txType, match); ok {
				log.WithFields(logrus.Fields{
					"word":  word,
					"match": match,
					"score": score,
				}).Debug("Word-level fuzzy match")
				return canonical, match
			}
		}
	}

	// Step 4: optional AI suggestion.
	if c.ai != nil {
		if suggested, err := c.ai.SuggestCategory(context.Background(), description, txType, subs); err != nil {
			log.WithError(err).Warn("AI category suggestion failed")
		} else if canonical, ok := c.taxonomy.MainFor(txType, suggested); ok {
			log.WithField("match", suggested).Debug("AI suggestion accepted")
			return canonical, suggested
		}
	}

	// Step 5: deterministic fallback.
	return c.taxonomy.Fallback(txType)
}

// Fallback exposes the taxonomy's default pair for the given type, for
// callers that skip classification entirely.
func (c *Classifier) Fallback(txType models.TransactionType) (main, sub string) {
	return c.taxonomy.Fallback(txType)
}

// bestMatch scores s against every choice and returns the highest scorer.
// Scores are on the fuzzywuzzy 0-100 scale.
func bestMatch(s string, choices []string) (string, int) {
	best, bestScore := "", 0
	for _, choice := range choices {
		if score := fuzzy.WRatio(s, choice); score > bestScore {
			best, bestScore = choice, score
		}
	}
	return best, bestScore
}
