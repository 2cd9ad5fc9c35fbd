package models

import (
	"errors"
	"testing"

	"ytsm/internal/shared"
)

func TestArtistFromLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantTags []string
		wantErr  bool
	}{
		{name: "name only", line: "Metallica", wantName: "Metallica"},
		{name: "name with tags", line: "Metallica|metal|thrash", wantName: "Metallica", wantTags: []string{"metal", "thrash"}},
		{name: "whitespace trimmed", line: "  Daft Punk | electronic ", wantName: "Daft Punk", wantTags: []string{"electronic"}},
		{name: "empty tag segments dropped", line: "Metallica||metal|", wantName: "Metallica", wantTags: []string{"metal"}},
		{name: "empty name", line: "", wantErr: true},
		{name: "tags without name", line: "|metal", wantErr: true},
		{name: "whitespace only name", line: "   |metal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, err := ArtistFromLine(tt.line)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.line)
				}
				if !errors.Is(err, shared.ErrEmptyArtistName) {
					t.Errorf("expected ErrEmptyArtistName, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ArtistFromLine(%q) error = %v", tt.line, err)
			}
			if artist.Name != tt.wantName {
				t.Errorf("name = %q, want %q", artist.Name, tt.wantName)
			}
			if len(artist.Tags) != len(tt.wantTags) {
				t.Fatalf("tags = %v, want %v", artist.Tags, tt.wantTags)
			}
			for i := range tt.wantTags {
				if artist.Tags[i] != tt.wantTags[i] {
					t.Errorf("tag %d = %q, want %q", i, artist.Tags[i], tt.wantTags[i])
				}
			}
			if artist.Status != StatusUnknown {
				t.Errorf("status = %s, want unknown", artist.Status)
			}
		})
	}
}

func TestSyncResultCounts(t *testing.T) {
	result := &SyncResult{
		ActionsTaken: []SyncAction{
			{Artist: Artist{Name: "A"}, Kind: ActionSubscribe},
			{Artist: Artist{Name: "B"}, Kind: ActionSkip},
			{Artist: Artist{Name: "C"}, Kind: ActionUnsubscribe},
			{Artist: Artist{Name: "D"}, Kind: ActionSkip},
		},
		Errors: []string{"Failed to subscribe E"},
	}

	if got := result.SuccessCount(); got != 2 {
		t.Errorf("SuccessCount() = %d, want 2", got)
	}
	if got := result.SkipCount(); got != 2 {
		t.Errorf("SkipCount() = %d, want 2", got)
	}
	if got := result.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount() = %d, want 1", got)
	}
	if got := result.TotalProcessed(); got != 4 {
		t.Errorf("TotalProcessed() = %d, want 4", got)
	}
}
