// package repositories provides the SQLite persistence layer.
//
// ArtistRepository maintains the local artist cache refreshed from the
// remote service; SyncRunRepository records the outcome of sync runs.
// Recorder glues both behind the engine's persistence hook.
package repositories

import "strings"

// joinTags flattens an artist's tags into a single cache column.
func joinTags(tags []string) string {
	return strings.Join(tags, "|")
}

// splitTags reverses joinTags; an empty column yields nil.
func splitTags(column string) []string {
	if column == "" {
		return nil
	}
	return strings.Split(column, "|")
}
