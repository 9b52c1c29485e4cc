package splitter

import "testing"

func TestSplit_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \n\t  ", nil},
		{"single sentence", "Brand A is great.", []string{"Brand A is great"}},
		{
			"multiple terminators",
			"Brand A is great. Brand A is also affordable. Brand B is mediocre.",
			[]string{"Brand A is great", "Brand A is also affordable", "Brand B is mediocre"},
		},
		{"no boundary punctuation", "one long unterminated thought", []string{"one long unterminated thought"}},
		{"newlines as boundaries", "first line\nsecond line\n\nthird", []string{"first line", "second line", "third"}},
		{"mixed punctuation runs", "Wow!! Really?! Yes.", []string{"Wow", "Really", "Yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d statements, want %d: %v", len(got), len(tt.want), got)
			}
			for i, s := range got {
				if s.Text != tt.want[i] {
					t.Errorf("statement %d: got %q, want %q", i, s.Text, tt.want[i])
				}
				if s.Index != i {
					t.Errorf("statement %d: got index %d, want %d", i, s.Index, i)
				}
			}
		})
	}
}

func TestSplit_IsRestartable(t *testing.T) {
	text := "Brand A is great. Brand B is fine."
	first := Split(text)
	second := Split(text)
	if len(first) != len(second) {
		t.Fatalf("repeated split disagrees: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("statement %d differs across runs: %v vs %v", i, first[i], second[i])
		}
	}
}
