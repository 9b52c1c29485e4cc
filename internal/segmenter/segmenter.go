// Package segmenter attributes transcript statements to the brands they
// discuss. It never invents brand names; discovery belongs to the extractor.
package segmenter

import (
	"regexp"
	"sort"
	"strings"

	"brand-insights-go/internal/types"
)

// Segmenter matches statements against known brand names and their aliases
// with case-insensitive whole-token matching.
type Segmenter struct {
	// aliases maps a normalized brand name to additional surface forms that
	// count as a mention (catalog-sourced, e.g. "ON" for Optimum Nutrition).
	aliases map[string][]string
}

func New(aliases map[string][]string) Segmenter {
	return Segmenter{aliases: aliases}
}

// Segment assigns each statement to every brand it mentions. A statement may
// land in zero, one, or several brand lists; statements matching no brand are
// simply absent from the mapping. Order inside each list follows the original
// statement order. An empty brand set yields an empty mapping.
func (s Segmenter) Segment(statements []types.Statement, brands []string) map[string][]types.Statement {
	out := make(map[string][]types.Statement, len(brands))
	if len(brands) == 0 {
		return out
	}
	matchers := make(map[string]*regexp.Regexp, len(brands))
	for _, b := range brands {
		matchers[b] = s.matcher(b)
	}
	for _, st := range statements {
		for _, b := range brands {
			if matchers[b].MatchString(st.Text) {
				out[b] = append(out[b], st)
			}
		}
	}
	return out
}

// matcher builds one case-insensitive pattern covering the brand name and all
// of its aliases, anchored on word boundaries so "Accent" does not match
// "accentuate".
func (s Segmenter) matcher(brand string) *regexp.Regexp {
	forms := []string{brand}
	forms = append(forms, s.aliases[types.NormalizeBrand(brand)]...)

	quoted := make([]string, 0, len(forms))
	seen := map[string]struct{}{}
	for _, f := range forms {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := types.NormalizeBrand(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		// Allow any whitespace run between words of a multi-word brand.
		words := strings.Fields(regexp.QuoteMeta(f))
		quoted = append(quoted, strings.Join(words, `\s+`))
	}
	sort.Strings(quoted)
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
