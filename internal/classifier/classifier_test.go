package classifier

import (
	"testing"

	"brand-insights-go/internal/types"
)

func profileWith(rating float64, texts ...string) types.BrandProfile {
	p := types.BrandProfile{Brand: "Test", Rating: rating}
	for i, txt := range texts {
		p.Statements = append(p.Statements, types.Statement{Index: i, Text: txt})
	}
	return p
}

func TestClassify_PriceFromCues(t *testing.T) {
	c := New(DefaultThresholds())

	tests := []struct {
		name string
		text string
		want types.PriceCategory
	}{
		{"budget cue", "Kirkland is really affordable and great value", types.PriceBudget},
		{"premium cue", "Isopure is quite expensive for what you get", types.PricePremium},
		{"no cue no metadata", "It mixes with milk", types.PriceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := c.Classify(profileWith(4.0, tt.text), nil)
			if seg.PriceCategory != tt.want {
				t.Errorf("got %q, want %q", seg.PriceCategory, tt.want)
			}
		})
	}
}

func TestClassify_PriceFromCatalogMetadata(t *testing.T) {
	c := New(DefaultThresholds())
	tests := []struct {
		name  string
		price float64
		want  types.PriceCategory
	}{
		{"budget price", 0.78, types.PriceBudget},
		{"mid-range price", 1.05, types.PriceMidRange},
		{"premium price", 1.30, types.PricePremium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &types.BrandMetadata{Name: "Test", PricePerServing: tt.price}
			seg := c.Classify(profileWith(4.0, "no price talk here"), meta)
			if seg.PriceCategory != tt.want {
				t.Errorf("got %q, want %q", seg.PriceCategory, tt.want)
			}
		})
	}
}

func TestClassify_QualityNeverGuessedFromRatingAlone(t *testing.T) {
	c := New(DefaultThresholds())
	// very high rating but zero quality language
	seg := c.Classify(profileWith(4.9, "I bought it yesterday", "arrived fast"), nil)
	if seg.QualityCategory != types.QualityUnknown {
		t.Fatalf("got %q, want unknown when no cue present", seg.QualityCategory)
	}
}

func TestClassify_QualityBandsRatingWhenCued(t *testing.T) {
	c := New(DefaultThresholds())
	tests := []struct {
		name   string
		rating float64
		text   string
		want   types.QualityCategory
	}{
		{"premium", 4.6, "the quality is outstanding", types.QualityPremium},
		{"standard", 4.0, "solid quality overall", types.QualityStandard},
		{"basic by rating", 2.8, "quality is mentioned at least", types.QualityBasic},
		{"negative cue caps tier", 4.8, "great quality but so clumpy", types.QualityBasic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := c.Classify(profileWith(tt.rating, tt.text), nil)
			if seg.QualityCategory != tt.want {
				t.Errorf("got %q, want %q", seg.QualityCategory, tt.want)
			}
		})
	}
}

func TestClassify_InsufficientDataStaysUnknown(t *testing.T) {
	c := New(DefaultThresholds())
	p := profileWith(0, "quality talk without any scores")
	p.InsufficientData = true
	seg := c.Classify(p, nil)
	if seg.QualityCategory != types.QualityUnknown {
		t.Fatalf("got %q, want unknown for insufficient data", seg.QualityCategory)
	}
}

func TestClassify_CarriesCatalogFeatures(t *testing.T) {
	c := New(DefaultThresholds())
	meta := &types.BrandMetadata{Name: "Test", Features: []string{"Third party tested"}}
	seg := c.Classify(profileWith(4.0, "whatever"), meta)
	if len(seg.Features) != 1 || seg.Features[0] != "Third party tested" {
		t.Fatalf("features not carried: %v", seg.Features)
	}
}
