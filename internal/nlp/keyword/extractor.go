// Package keyword provides deterministic, fully offline implementations of
// the nlp capability contracts: lexicon-based sentiment scoring and
// known-brand token matching. They back tests and the no-gateway
// configuration.
package keyword

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"brand-insights-go/internal/types"
)

// Trailing product nouns stripped off heuristic brand candidates.
var productSuffixes = []string{" brand", " protein", " powder", " supplement"}

// Capitalized word run followed by a product noun, e.g. "Transparent Labs
// protein". Used only when no known brands are supplied.
var reCandidate = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:brand|protein|powder|supplement)\b`)

// Extractor matches known brand names (and catalog aliases) against the
// transcript, falling back to a capitalized-phrase heuristic when it has
// nothing to match against. Catalog names act as the default candidate set
// when the caller supplies none.
type Extractor struct {
	names   []string
	aliases map[string][]string
}

func NewExtractor(names []string, aliases map[string][]string) *Extractor {
	return &Extractor{names: names, aliases: aliases}
}

func (e *Extractor) Extract(ctx context.Context, text string, knownBrands []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found []string
	seen := map[string]struct{}{}
	add := func(name string) {
		key := types.NormalizeBrand(name)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		found = append(found, name)
	}

	candidates := knownBrands
	if len(candidates) == 0 {
		candidates = e.names
	}
	for _, brand := range candidates {
		if e.mentioned(text, brand) {
			add(brand)
		}
	}
	if len(candidates) == 0 {
		for _, m := range reCandidate.FindAllString(text, -1) {
			add(stripProductSuffix(m))
		}
	}
	sort.Strings(found)
	return found, nil
}

func (e *Extractor) mentioned(text, brand string) bool {
	forms := append([]string{brand}, e.aliases[types.NormalizeBrand(brand)]...)
	for _, f := range forms {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		words := strings.Fields(regexp.QuoteMeta(f))
		re := regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`)
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func stripProductSuffix(candidate string) string {
	lower := strings.ToLower(candidate)
	for _, suffix := range productSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(candidate[:len(candidate)-len(suffix)])
		}
	}
	return candidate
}
