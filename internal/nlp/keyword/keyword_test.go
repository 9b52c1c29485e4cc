package keyword

import (
	"context"
	"reflect"
	"testing"

	"brand-insights-go/internal/types"
)

func TestExtractor_MatchesKnownBrands(t *testing.T) {
	e := NewExtractor(nil, nil)
	text := "I tried Kirkland and isopure this month. Never touched Datiz."
	got, err := e.Extract(context.Background(), text, []string{"Kirkland", "Isopure", "Optimum Nutrition"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{"Isopure", "Kirkland"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractor_UsesAliases(t *testing.T) {
	e := NewExtractor(nil, map[string][]string{"optimum nutrition": {"ON"}})
	got, err := e.Extract(context.Background(), "ON is a classic pick.", []string{"Optimum Nutrition"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 1 || got[0] != "Optimum Nutrition" {
		t.Fatalf("alias match failed: %v", got)
	}
}

func TestExtractor_CatalogNamesAsDefaultCandidates(t *testing.T) {
	e := NewExtractor([]string{"Kirkland", "Isopure"}, nil)
	got, err := e.Extract(context.Background(), "Kirkland was on sale.", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Kirkland"}) {
		t.Fatalf("catalog default extraction failed: %v", got)
	}
}

func TestExtractor_HeuristicWithoutKnownBrands(t *testing.T) {
	e := NewExtractor(nil, nil)
	got, err := e.Extract(context.Background(), "The Transparent Labs powder was fine.", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 1 || got[0] != "Transparent Labs" {
		t.Fatalf("heuristic extraction failed: %v", got)
	}
}

func TestExtractor_DeduplicatesUnderNormalization(t *testing.T) {
	e := NewExtractor(nil, nil)
	got, err := e.Extract(context.Background(), "kirkland is fine", []string{"Kirkland", "KIRKLAND", " kirkland "})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one brand after normalization, got %v", got)
	}
}

func TestScorer_Labels(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name      string
		text      string
		wantLabel types.SentimentLabel
		wantSign  int
	}{
		{"positive", "This is an excellent and smooth shake, I love it", types.SentimentPositive, 1},
		{"negative", "Terrible aftertaste and way too expensive", types.SentimentNegative, -1},
		{"neutral no cues", "It comes in a tub", types.SentimentNeutral, 0},
		{"neutral balanced", "Good flavor but gritty texture overall costs a lot", types.SentimentNeutral, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Score(context.Background(), types.Statement{Index: 3, Text: tt.text}, "Brand")
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if res.Label != tt.wantLabel {
				t.Errorf("label: got %q, want %q (score %v)", res.Label, tt.wantLabel, res.Score)
			}
			if tt.wantSign > 0 && res.Score <= 0 {
				t.Errorf("expected positive score, got %v", res.Score)
			}
			if tt.wantSign < 0 && res.Score >= 0 {
				t.Errorf("expected negative score, got %v", res.Score)
			}
			if res.Score < -1 || res.Score > 1 {
				t.Errorf("score out of bounds: %v", res.Score)
			}
			if res.StatementIndex != 3 || res.Brand != "Brand" {
				t.Errorf("result identity wrong: %+v", res)
			}
		})
	}
}

func TestScorer_Deterministic(t *testing.T) {
	s := NewScorer()
	st := types.Statement{Index: 0, Text: "Great value but a bit clumpy"}
	first, _ := s.Score(context.Background(), st, "B")
	for i := 0; i < 5; i++ {
		again, _ := s.Score(context.Background(), st, "B")
		if again != first {
			t.Fatalf("scorer not deterministic: %+v vs %+v", again, first)
		}
	}
}
