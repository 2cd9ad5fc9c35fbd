package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ytsm/internal/models"
)

// ArtistRepository persists the artist_cache table.
//
// The cache is a snapshot of what the remote service last reported, keyed
// by artist name with NOCASE collation so lookups follow the same
// case-insensitive matching as the planner.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Upsert inserts or refreshes a single cached artist, bumping last_seen.
func (r *ArtistRepository) Upsert(ctx context.Context, artist models.Artist) error {
	query := `
		INSERT INTO artist_cache (name, artist_id, url, tags, subscriber_count, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			artist_id = excluded.artist_id,
			url = excluded.url,
			tags = excluded.tags,
			subscriber_count = excluded.subscriber_count,
			last_seen = excluded.last_seen
	`

	_, err := r.db.ExecContext(ctx, query,
		artist.Name,
		artist.ID,
		artist.URL,
		joinTags(artist.Tags),
		artist.Subscribers,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert artist: %w", err)
	}

	return nil
}

// GetByName retrieves a cached artist by name. Matching is case-insensitive
// via the column collation.
func (r *ArtistRepository) GetByName(ctx context.Context, name string) (*models.Artist, error) {
	query := `
		SELECT name, artist_id, url, tags, subscriber_count
		FROM artist_cache
		WHERE name = ?
	`

	var (
		artist      models.Artist
		artistID    sql.NullString
		artistURL   sql.NullString
		tags        sql.NullString
		subscribers sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, name).Scan(&artist.Name, &artistID, &artistURL, &tags, &subscribers)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist not cached: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}

	artist.ID = artistID.String
	artist.URL = artistURL.String
	artist.Tags = splitTags(tags.String)
	artist.Subscribers = subscribers.Int64
	artist.Status = models.StatusSubscribed

	return &artist, nil
}

// List retrieves cached artists ordered by subscriber count, largest first.
// A limit of 0 returns everything.
func (r *ArtistRepository) List(ctx context.Context, limit int) ([]models.Artist, error) {
	query := `
		SELECT name, artist_id, url, tags, subscriber_count
		FROM artist_cache
		ORDER BY subscriber_count DESC, name ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist cache: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var (
			artist      models.Artist
			artistID    sql.NullString
			artistURL   sql.NullString
			tags        sql.NullString
			subscribers sql.NullInt64
		)
		if err := rows.Scan(&artist.Name, &artistID, &artistURL, &tags, &subscribers); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		artist.ID = artistID.String
		artist.URL = artistURL.String
		artist.Tags = splitTags(tags.String)
		artist.Subscribers = subscribers.Int64
		artist.Status = models.StatusSubscribed
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// ReplaceAll swaps the entire cache for the given snapshot in one
// transaction, so readers never observe a partially refreshed cache.
func (r *ArtistRepository) ReplaceAll(ctx context.Context, artists []models.Artist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM artist_cache"); err != nil {
		return fmt.Errorf("failed to clear artist cache: %w", err)
	}

	query := `
		INSERT INTO artist_cache (name, artist_id, url, tags, subscriber_count, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			artist_id = excluded.artist_id,
			subscriber_count = excluded.subscriber_count,
			last_seen = excluded.last_seen
	`

	now := time.Now()
	for _, artist := range artists {
		_, err := tx.ExecContext(ctx, query,
			artist.Name,
			artist.ID,
			artist.URL,
			joinTags(artist.Tags),
			artist.Subscribers,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to cache artist %s: %w", artist.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache refresh: %w", err)
	}

	return nil
}

// Count returns the number of cached artists.
func (r *ArtistRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artist_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artist cache: %w", err)
	}
	return count, nil
}
