package services

import "strings"

// Classifier maps a raw free-text stock label to an in-stock verdict using
// ordered substring patterns. In-stock patterns deliberately take priority
// over sold-out patterns so that an ambiguous label containing both (e.g.
// "在庫" inside a longer sold-out string) still counts as in stock.
type Classifier struct {
	inStock       []string
	soldOut       []string
	assumeInStock bool
}

// NewClassifier builds a Classifier from ordered pattern lists. Patterns are
// lowercased once here; matching is case-insensitive substring containment.
func NewClassifier(inStockPatterns, soldOutPatterns []string, assumeInStockIfNoLabel bool) *Classifier {
	return &Classifier{
		inStock:       lowerAll(inStockPatterns),
		soldOut:       lowerAll(soldOutPatterns),
		assumeInStock: assumeInStockIfNoLabel,
	}
}

// Classify returns the in-stock verdict for a raw label. Evaluation order:
// in-stock patterns, sold-out patterns, the empty-label assumption, then a
// conservative false for anything unrecognised.
func (c *Classifier) Classify(rawLabel string) bool {
	text := strings.ToLower(rawLabel)

	for _, p := range c.inStock {
		if strings.Contains(text, p) {
			return true
		}
	}
	for _, p := range c.soldOut {
		if strings.Contains(text, p) {
			return false
		}
	}
	if strings.TrimSpace(text) == "" {
		return c.assumeInStock
	}
	return false
}

func lowerAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}
