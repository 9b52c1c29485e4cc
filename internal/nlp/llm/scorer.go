package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"brand-insights-go/internal/types"
)

const scorePromptTemplate = `Rate the sentiment this statement expresses about the brand "%s".

Statement:
"""%s"""

Return ONLY a JSON object, no commentary:
{"label": "positive" | "neutral" | "negative", "score": <number in [-1.0, 1.0]>}`

// Score asks the gateway to rate one statement for one brand. Out-of-range
// scores are clamped; unknown labels fall back to the score's sign.
func (c *Client) Score(ctx context.Context, statement types.Statement, brand string) (types.SentimentResult, error) {
	content, err := c.complete(ctx, fmt.Sprintf(scorePromptTemplate, brand, statement.Text))
	if err != nil {
		return types.SentimentResult{}, err
	}
	raw, err := jsonFragment(content, '{', '}')
	if err != nil {
		return types.SentimentResult{}, err
	}
	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return types.SentimentResult{}, fmt.Errorf("parse sentiment: %w", err)
	}

	if parsed.Score > 1 {
		parsed.Score = 1
	}
	if parsed.Score < -1 {
		parsed.Score = -1
	}
	label := types.SentimentLabel(parsed.Label)
	switch label {
	case types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative:
	default:
		switch {
		case parsed.Score > 0.2:
			label = types.SentimentPositive
		case parsed.Score < -0.2:
			label = types.SentimentNegative
		default:
			label = types.SentimentNeutral
		}
	}

	return types.SentimentResult{
		StatementIndex: statement.Index,
		Brand:          brand,
		Label:          label,
		Score:          parsed.Score,
	}, nil
}
