// Package splitter turns raw transcript text into ordered candidate
// statements for brand attribution.
package splitter

import (
	"regexp"
	"strings"

	"brand-insights-go/internal/types"
)

// Statements are cut on terminal punctuation and line breaks. A run of
// boundary characters counts as a single boundary.
var reBoundary = regexp.MustCompile(`[.!?\n]+`)

// Split is a pure function of the input text. It preserves original order,
// drops pieces that are empty after trimming, and assigns each statement its
// position index. Text with no boundary at all comes back as one statement;
// empty or whitespace-only input yields an empty slice.
func Split(text string) []types.Statement {
	parts := reBoundary.Split(text, -1)
	out := make([]types.Statement, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, types.Statement{Index: len(out), Text: p})
	}
	return out
}
