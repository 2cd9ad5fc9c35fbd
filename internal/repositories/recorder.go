package repositories

import (
	"context"
	"fmt"
	"time"

	"ytsm/internal/models"
)

// Recorder implements tasks.RunRecorder on top of the two repositories.
type Recorder struct {
	artists *ArtistRepository
	runs    *SyncRunRepository
}

// NewRecorder creates a Recorder over the given repositories.
func NewRecorder(artists *ArtistRepository, runs *SyncRunRepository) *Recorder {
	return &Recorder{artists: artists, runs: runs}
}

// RecordSyncRun persists the outcome of a sync run.
func (r *Recorder) RecordSyncRun(ctx context.Context, runID string, dryRun bool, result *models.SyncResult) error {
	if result == nil {
		return fmt.Errorf("sync run requires a result")
	}

	return r.runs.Create(ctx, models.SyncRun{
		ID:           runID,
		RanAt:        time.Now(),
		DryRun:       dryRun,
		SuccessCount: result.SuccessCount(),
		SkipCount:    result.SkipCount(),
		ErrorCount:   result.ErrorCount(),
	})
}

// RefreshArtistCache replaces the cache with the latest subscription
// snapshot.
func (r *Recorder) RefreshArtistCache(ctx context.Context, artists []models.Artist) error {
	return r.artists.ReplaceAll(ctx, artists)
}
