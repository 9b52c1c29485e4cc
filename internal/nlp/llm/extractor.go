package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"brand-insights-go/internal/types"
)

const extractPromptTemplate = `You are an assistant that reads the transcript of a product review video and extracts every brand name mentioned.

Only include real or recognizable product brands.%s

Output the result as a valid JSON array of strings like:
["Kirkland", "Isopure", "Transparent Labs"]

Do NOT include commentary, markdown, or explanation. Return only valid JSON.

Transcript:
%s`

// Extract asks the gateway for the mentioned brand names and deduplicates
// the answer under normalized comparison.
func (c *Client) Extract(ctx context.Context, text string, knownBrands []string) ([]string, error) {
	hint := ""
	if len(knownBrands) > 0 {
		hint = fmt.Sprintf(" Brands known to possibly appear: %s.", strings.Join(knownBrands, ", "))
	}
	content, err := c.complete(ctx, fmt.Sprintf(extractPromptTemplate, hint, text))
	if err != nil {
		return nil, err
	}
	raw, err := jsonFragment(content, '[', ']')
	if err != nil {
		return nil, err
	}
	var brands []string
	if err := json.Unmarshal(raw, &brands); err != nil {
		return nil, fmt.Errorf("parse brand list: %w", err)
	}

	seen := map[string]struct{}{}
	out := brands[:0]
	for _, b := range brands {
		key := types.NormalizeBrand(b)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(b))
	}
	sort.Strings(out)
	c.log.WithField("brands", len(out)).Debug("brand extraction complete")
	return out, nil
}
