package shared

import "testing"

func TestNormalizeArtistKey(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic normalization",
			input: "Metallica",
			want:  "metallica",
		},
		{
			name:  "surrounding whitespace",
			input: "  Iron Maiden  ",
			want:  "iron maiden",
		},
		{
			name:  "mixed case",
			input: "DaFt PuNk",
			want:  "daft punk",
		},
		{
			name:  "interior whitespace preserved",
			input: "The  Beatles",
			want:  "the  beatles",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeArtistKey(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeArtistKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}
}
