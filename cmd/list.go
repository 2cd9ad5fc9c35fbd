package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"ytsm/internal/formatter"
	"ytsm/internal/models"
	"ytsm/internal/repositories"
)

// List lists current artist subscriptions, from the service or the local
// cache.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	var (
		artists []models.Artist
		err     error
	)

	if cmd.Bool("cached") {
		artists, err = r.listCached(ctx, cmd.Int("limit"))
	} else {
		engine := r.newEngine()
		artists, err = engine.FetchSubscriptions(ctx)
	}
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteArtistsExport(artists, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d artists to %s\n", len(artists), path)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, true)
	}

	r.writePlain("%s", formatter.RenderSubscriptionList(artists, r.config.Sync.Verbose))
	return nil
}

// listCached reads artists from the local cache, ordered by subscriber
// count.
func (r *Runner) listCached(ctx context.Context, limit int) ([]models.Artist, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return repositories.NewArtistRepository(db).List(ctx, limit)
}
