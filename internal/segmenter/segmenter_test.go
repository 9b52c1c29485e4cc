package segmenter

import (
	"testing"

	"brand-insights-go/internal/splitter"
	"brand-insights-go/internal/types"
)

func TestSegment_AttributesStatementsToBrands(t *testing.T) {
	statements := splitter.Split(
		"Kirkland is great value. Isopure tastes amazing. Kirkland and Isopure both mix well. The weather is nice.",
	)
	seg := New(nil)
	got := seg.Segment(statements, []string{"Kirkland", "Isopure"})

	if len(got["Kirkland"]) != 2 {
		t.Fatalf("Kirkland: got %d statements, want 2", len(got["Kirkland"]))
	}
	if len(got["Isopure"]) != 2 {
		t.Fatalf("Isopure: got %d statements, want 2", len(got["Isopure"]))
	}
	// shared statement appears in both lists
	if got["Kirkland"][1].Index != got["Isopure"][1].Index {
		t.Errorf("expected shared statement, got indexes %d and %d",
			got["Kirkland"][1].Index, got["Isopure"][1].Index)
	}
	// order follows original statement order
	if got["Kirkland"][0].Index > got["Kirkland"][1].Index {
		t.Errorf("statement order not preserved: %v", got["Kirkland"])
	}
}

func TestSegment_EmptyBrandSet(t *testing.T) {
	statements := []types.Statement{{Index: 0, Text: "Kirkland is great"}}
	got := New(nil).Segment(statements, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty mapping for empty brand set, got %v", got)
	}
}

func TestSegment_CaseInsensitiveAndWordBounded(t *testing.T) {
	statements := splitter.Split("I love KIRKLAND protein. Accentuate the positive. accent is fine too.")
	got := New(nil).Segment(statements, []string{"Kirkland", "Accent"})

	if len(got["Kirkland"]) != 1 {
		t.Errorf("Kirkland: got %d statements, want 1 (case-insensitive match)", len(got["Kirkland"]))
	}
	if len(got["Accent"]) != 1 {
		t.Errorf("Accent: got %d statements, want 1 (no substring match inside Accentuate)", len(got["Accent"]))
	}
}

func TestSegment_MatchesAliases(t *testing.T) {
	aliases := map[string][]string{
		"optimum nutrition": {"ON", "Optimum"},
	}
	statements := splitter.Split("ON gold standard is a classic. Nothing else here.")
	got := New(aliases).Segment(statements, []string{"Optimum Nutrition"})

	if len(got["Optimum Nutrition"]) != 1 {
		t.Fatalf("expected alias match, got %v", got)
	}
}

func TestSegment_MultiWordBrand(t *testing.T) {
	statements := splitter.Split("Transparent  Labs has clean ingredients.")
	got := New(nil).Segment(statements, []string{"Transparent Labs"})
	if len(got["Transparent Labs"]) != 1 {
		t.Fatalf("expected multi-word brand match across whitespace runs, got %v", got)
	}
}
