package types

import (
	"strings"
	"time"
)

// Transcript is the immutable input to one analysis run.
type Transcript struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Statement is one attributable unit of transcript text. Index is the
// statement's position in the original transcript and stays stable through
// the whole run.
type Statement struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentResult is the scored outcome for one (statement, brand) pair.
// Score is bounded to [-1, 1].
type SentimentResult struct {
	StatementIndex int            `json:"statement_index"`
	Brand          string         `json:"brand"`
	Label          SentimentLabel `json:"label"`
	Score          float64        `json:"score"`
}

type PriceCategory string

const (
	PriceBudget   PriceCategory = "budget"
	PriceMidRange PriceCategory = "mid_range"
	PricePremium  PriceCategory = "premium"
	PriceUnknown  PriceCategory = "unknown"
)

type QualityCategory string

const (
	QualityBasic    QualityCategory = "basic"
	QualityStandard QualityCategory = "standard"
	QualityPremium  QualityCategory = "premium"
	QualityUnknown  QualityCategory = "unknown"
)

// Segment holds the qualitative category tags assigned to a brand.
type Segment struct {
	PriceCategory   PriceCategory   `json:"price_category"`
	QualityCategory QualityCategory `json:"quality_category"`
	Features        []string        `json:"features,omitempty"`
}

// Insight is the short structured summary generated per brand.
type Insight struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	TargetAudience  []string `json:"target_audience,omitempty"`
}

// BrandProfile is the aggregated per-brand record. Rating lives on a
// [ScaleMin, ScaleMax] scale (1–5 by default) and is only meaningful when
// InsufficientData is false.
type BrandProfile struct {
	Brand            string            `json:"brand"`
	Statements       []Statement       `json:"statements"`
	Sentiments       []SentimentResult `json:"sentiments"`
	Rating           float64           `json:"rating,omitempty"`
	Confidence       float64           `json:"confidence,omitempty"`
	InsufficientData bool              `json:"insufficient_data,omitempty"`
	PositiveCount    int               `json:"positive_count"`
	NegativeCount    int               `json:"negative_count"`
	NeutralCount     int               `json:"neutral_count"`
	Segment          Segment           `json:"segment"`
	Insight          Insight           `json:"insight"`
}

// BrandMetadata is catalog-sourced data about a brand, independent of any
// transcript. Zero PricePerServing means the price is unknown.
type BrandMetadata struct {
	Name                 string   `json:"name"`
	Aliases              []string `json:"aliases,omitempty"`
	PricePerServing      float64  `json:"price_per_serving,omitempty"`
	ProteinGrams         int      `json:"protein_grams,omitempty"`
	ThirdPartyTested     bool     `json:"third_party_tested,omitempty"`
	ArtificialSweeteners bool     `json:"artificial_sweeteners,omitempty"`
	Features             []string `json:"features,omitempty"`
}

// RatingBucket is one slot of the cross-brand rating distribution.
type RatingBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// ComparativeReport ranks the current run's brands against each other.
// Rankings reference brands by name; every referenced name must exist in the
// run's profile set.
type ComparativeReport struct {
	BrandCount         int            `json:"brand_count"`
	RatedBrandCount    int            `json:"rated_brand_count"`
	RankingByRating    []string       `json:"ranking_by_rating"`
	RankingByVolume    []string       `json:"ranking_by_volume"`
	MeanRating         float64        `json:"mean_rating"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`

	BestValue         string `json:"best_value,omitempty"`
	HighestRated      string `json:"highest_rated,omitempty"`
	MostAffordable    string `json:"most_affordable,omitempty"`
	PremiumChoice     string `json:"premium_choice,omitempty"`
	ComparisonSummary string `json:"comparison_summary,omitempty"`
}

// RunMetadata identifies one analysis run.
type RunMetadata struct {
	RunID        string    `json:"run_id"`
	TranscriptID string    `json:"transcript_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Summary is the top-level rollup returned alongside the full report.
type Summary struct {
	TotalBrands   int     `json:"total_brands"`
	AverageRating float64 `json:"average_rating"`
	HighestRated  string  `json:"highest_rated,omitempty"`
	LowestRated   string  `json:"lowest_rated,omitempty"`
}

// AnalysisResult is the unit returned and persisted per run. It owns its
// profiles exclusively; nothing in it is shared across runs.
type AnalysisResult struct {
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Brands        []string          `json:"brands"`
	BrandProfiles []BrandProfile    `json:"brand_profiles"`
	Comparative   ComparativeReport `json:"comparative"`
	Summary       Summary           `json:"summary"`
	Metadata      RunMetadata       `json:"metadata"`
}

// NormalizeBrand is the canonical key form for brand names: trimmed,
// lower-cased, inner whitespace collapsed. All brand lookups and uniqueness
// checks go through it.
func NormalizeBrand(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
