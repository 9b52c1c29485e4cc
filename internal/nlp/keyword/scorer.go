package keyword

import (
	"context"
	"strings"

	"brand-insights-go/internal/types"
)

var positiveCues = []string{
	"excellent", "great", "good", "best", "outstanding", "impressive",
	"recommend", "love", "enjoy", "smooth", "delicious", "rich",
	"high quality", "solid", "versatile", "convenient", "effective",
	"affordable", "amazing", "favorite",
}

var negativeCues = []string{
	"bad", "poor", "worst", "terrible", "disappointing", "awful",
	"expensive", "overpriced", "clumpy", "gritty", "artificial",
	"aftertaste", "discomfort", "drawback", "downside", "mediocre",
	"avoid", "waste",
}

var neutralCues = []string{
	"offers", "contains", "delivers", "provides", "includes",
	"available", "priced", "costs", "flavors", "serving",
}

// labelBand is the score distance from zero beyond which a statement stops
// counting as neutral.
const labelBand = 0.2

// Scorer is a cue-lexicon sentiment scorer. Scores land in [-1, 1]:
// (positive hits - negative hits) / total hits, zero when nothing matches.
// Deterministic by construction, which is what the aggregation tests lean on.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

func (s *Scorer) Score(ctx context.Context, statement types.Statement, brand string) (types.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return types.SentimentResult{}, err
	}
	text := strings.ToLower(statement.Text)

	pos := countHits(text, positiveCues)
	neg := countHits(text, negativeCues)
	neu := countHits(text, neutralCues)

	score := 0.0
	if total := pos + neg + neu; total > 0 {
		score = float64(pos-neg) / float64(total)
	}

	label := types.SentimentNeutral
	switch {
	case score > labelBand:
		label = types.SentimentPositive
	case score < -labelBand:
		label = types.SentimentNegative
	}

	return types.SentimentResult{
		StatementIndex: statement.Index,
		Brand:          brand,
		Label:          label,
		Score:          score,
	}, nil
}

func countHits(text string, cues []string) int {
	n := 0
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			n++
		}
	}
	return n
}
