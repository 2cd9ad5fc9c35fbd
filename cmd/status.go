package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"ytsm/internal/formatter"
	"ytsm/internal/repositories"
	"ytsm/internal/services"
)

// Status reports proxy health, cache size, and recent sync runs.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Status")

	r.writePlain("Proxy: %s\n", r.config.YouTube.ProxyURL)
	if svc, ok := r.service.(*services.YTMusicService); ok {
		if err := svc.Health(ctx); err != nil {
			r.writePlain("  ✗ unreachable: %v\n", err)
		} else {
			r.writePlain("  ✓ healthy\n")
		}
	}

	db, err := r.openDatabase()
	if err != nil {
		r.writePlain("\nDatabase: not initialized (%v)\n", err)
		return nil
	}
	defer db.Close()

	artists := repositories.NewArtistRepository(db)
	count, err := artists.Count(ctx)
	if err != nil {
		return err
	}
	r.writePlain("\nCached artists: %d\n", count)

	runs, err := repositories.NewSyncRunRepository(db).Recent(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	r.writePlain("\nRecent runs:\n")
	r.writePlain("%s", formatter.RenderSyncRuns(runs))
	return nil
}
