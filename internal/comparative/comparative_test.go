package comparative

import (
	"reflect"
	"testing"

	"brand-insights-go/internal/types"
)

func profile(name string, rating, confidence float64, statements int) types.BrandProfile {
	p := types.BrandProfile{Brand: name, Rating: rating, Confidence: confidence}
	for i := 0; i < statements; i++ {
		p.Statements = append(p.Statements, types.Statement{Index: i, Text: "s"})
	}
	return p
}

func TestCompare_Empty(t *testing.T) {
	r := Compare(nil, nil)
	if r.BrandCount != 0 || r.RatedBrandCount != 0 {
		t.Fatalf("expected zero counts, got %+v", r)
	}
	if len(r.RankingByRating) != 0 || len(r.RankingByVolume) != 0 {
		t.Fatalf("expected empty rankings, got %+v", r)
	}
	if len(r.RatingDistribution) != 4 {
		t.Fatalf("distribution buckets must always be present, got %v", r.RatingDistribution)
	}
}

func TestCompare_SingleProfile(t *testing.T) {
	r := Compare([]types.BrandProfile{profile("Solo", 4.4, 0.66, 2)}, nil)
	if r.BrandCount != 1 || r.RatedBrandCount != 1 {
		t.Fatalf("counts wrong: %+v", r)
	}
	if !reflect.DeepEqual(r.RankingByRating, []string{"Solo"}) {
		t.Fatalf("ranking wrong: %v", r.RankingByRating)
	}
	if r.MeanRating != 4.4 {
		t.Fatalf("mean rating must equal the single profile's rating, got %v", r.MeanRating)
	}
	if r.HighestRated != "Solo" {
		t.Fatalf("highest rated wrong: %q", r.HighestRated)
	}
}

func TestCompare_RankingOrder(t *testing.T) {
	profiles := []types.BrandProfile{
		profile("Charlie", 3.0, 0.5, 1),
		profile("Alpha", 4.4, 0.66, 2),
		profile("Bravo", 4.4, 0.75, 3),
	}
	r := Compare(profiles, nil)
	// rating desc, confidence breaks the 4.4 tie
	want := []string{"Bravo", "Alpha", "Charlie"}
	if !reflect.DeepEqual(r.RankingByRating, want) {
		t.Fatalf("ranking by rating: got %v, want %v", r.RankingByRating, want)
	}
	wantVolume := []string{"Bravo", "Alpha", "Charlie"}
	if !reflect.DeepEqual(r.RankingByVolume, wantVolume) {
		t.Fatalf("ranking by volume: got %v, want %v", r.RankingByVolume, wantVolume)
	}
}

func TestCompare_TieBreakByName(t *testing.T) {
	profiles := []types.BrandProfile{
		profile("Zeta", 4.0, 0.5, 1),
		profile("Alpha", 4.0, 0.5, 1),
	}
	r := Compare(profiles, nil)
	want := []string{"Alpha", "Zeta"}
	if !reflect.DeepEqual(r.RankingByRating, want) {
		t.Fatalf("identical rating and confidence must order by name: got %v", r.RankingByRating)
	}
}

func TestCompare_InsufficientDataExcludedFromStats(t *testing.T) {
	flagged := types.BrandProfile{Brand: "Ghost", InsufficientData: true}
	profiles := []types.BrandProfile{profile("Alpha", 4.0, 0.5, 2), flagged}
	r := Compare(profiles, nil)

	if r.BrandCount != 2 || r.RatedBrandCount != 1 {
		t.Fatalf("counts wrong: %+v", r)
	}
	if r.MeanRating != 4.0 {
		t.Fatalf("mean must only cover rated brands, got %v", r.MeanRating)
	}
	if !reflect.DeepEqual(r.RankingByRating, []string{"Alpha"}) {
		t.Fatalf("unrated brand must not appear in rating ranking: %v", r.RankingByRating)
	}
	// but it still shows up in the volume ranking
	if len(r.RankingByVolume) != 2 {
		t.Fatalf("volume ranking must include all brands: %v", r.RankingByVolume)
	}
}

func TestCompare_Distribution(t *testing.T) {
	profiles := []types.BrandProfile{
		profile("A", 1.5, 0.5, 1),
		profile("B", 3.0, 0.5, 1),
		profile("C", 4.4, 0.5, 1),
		profile("D", 5.0, 0.5, 1),
	}
	r := Compare(profiles, nil)
	counts := []int{r.RatingDistribution[0].Count, r.RatingDistribution[1].Count,
		r.RatingDistribution[2].Count, r.RatingDistribution[3].Count}
	if !reflect.DeepEqual(counts, []int{1, 0, 1, 2}) {
		t.Fatalf("distribution wrong: %v", r.RatingDistribution)
	}
}

func TestCompare_ValuePicksUseCatalogPricing(t *testing.T) {
	cheapGood := profile("Cheap Good", 4.5, 0.8, 3)
	cheapGood.Segment.QualityCategory = types.QualityStandard
	fancy := profile("Fancy", 4.8, 0.8, 3)
	fancy.Segment.QualityCategory = types.QualityPremium

	meta := map[string]types.BrandMetadata{
		"cheap good": {Name: "Cheap Good", PricePerServing: 0.62},
		"fancy":      {Name: "Fancy", PricePerServing: 1.35},
	}
	r := Compare([]types.BrandProfile{cheapGood, fancy}, meta)
	if r.BestValue != "Cheap Good" {
		t.Errorf("best value: got %q", r.BestValue)
	}
	if r.MostAffordable != "Cheap Good" {
		t.Errorf("most affordable: got %q", r.MostAffordable)
	}
	if r.PremiumChoice != "Fancy" {
		t.Errorf("premium choice: got %q", r.PremiumChoice)
	}
	if r.ComparisonSummary == "" {
		t.Error("expected a comparison summary line")
	}
}
