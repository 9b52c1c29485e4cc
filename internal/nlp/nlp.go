// Package nlp defines the externally-supplied language capabilities the
// pipeline depends on. Implementations are interchangeable: a deterministic
// keyword engine for offline runs and tests, or an LLM gateway for
// production.
package nlp

import (
	"context"

	"brand-insights-go/internal/types"
)

// BrandExtractor finds the brand names actually mentioned in a transcript.
// knownBrands is a hint, not a constraint; the returned names may include
// brands discovered in the text.
type BrandExtractor interface {
	Extract(ctx context.Context, text string, knownBrands []string) ([]string, error)
}

// SentimentScorer scores one statement in the context of one brand,
// returning a categorical label and a score in [-1, 1].
type SentimentScorer interface {
	Score(ctx context.Context, statement types.Statement, brand string) (types.SentimentResult, error)
}
