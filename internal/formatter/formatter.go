// package formatter renders sync plans, results, and artist lists for the
// CLI, and exports the subscription list to text and CSV.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ytsm/internal/models"
	"ytsm/internal/shared"
)

// RenderSyncPlan produces the human-readable plan listing shown before
// execution, one line per action in plan order.
func RenderSyncPlan(actions []models.SyncAction) string {
	var buf bytes.Buffer

	if len(actions) == 0 {
		buf.WriteString("Nothing to do.\n")
		return buf.String()
	}

	for _, action := range actions {
		buf.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", planLabel(action.Kind), action.Artist.Name, action.Reason))
	}

	subscribe, unsubscribe, skip := 0, 0, 0
	for _, action := range actions {
		switch action.Kind {
		case models.ActionSubscribe:
			subscribe++
		case models.ActionUnsubscribe:
			unsubscribe++
		case models.ActionSkip:
			skip++
		}
	}

	buf.WriteString(fmt.Sprintf("\n%d to subscribe, %d to unsubscribe, %d already in sync\n", subscribe, unsubscribe, skip))
	return buf.String()
}

func planLabel(kind models.ActionKind) string {
	switch kind {
	case models.ActionSubscribe:
		return "+"
	case models.ActionUnsubscribe:
		return "-"
	default:
		return "="
	}
}

// RenderSyncResult summarizes a completed run: counts first, then every
// recorded error as a bullet.
func RenderSyncResult(result *models.SyncResult, dryRun bool) string {
	var buf bytes.Buffer

	if dryRun {
		buf.WriteString("Dry run complete (no changes made)\n")
	} else {
		buf.WriteString("Sync complete\n")
	}

	buf.WriteString(fmt.Sprintf("  Successful: %d\n", result.SuccessCount()))
	buf.WriteString(fmt.Sprintf("  Skipped:    %d\n", result.SkipCount()))
	buf.WriteString(fmt.Sprintf("  Errors:     %d\n", result.ErrorCount()))

	if result.ErrorCount() > 0 {
		buf.WriteString("\nErrors:\n")
		for _, msg := range result.Errors {
			buf.WriteString(fmt.Sprintf("  - %s\n", msg))
		}
	}

	return buf.String()
}

// RenderSubscriptionList renders artists one per line. Verbose mode adds
// channel IDs and subscriber counts.
func RenderSubscriptionList(artists []models.Artist, verbose bool) string {
	var buf bytes.Buffer

	if len(artists) == 0 {
		buf.WriteString("No subscriptions found.\n")
		return buf.String()
	}

	for i, artist := range artists {
		if verbose {
			detail := artist.ID
			if artist.Subscribers > 0 {
				detail = fmt.Sprintf("%s, %d subscribers", artist.ID, artist.Subscribers)
			}
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, artist.Name, detail))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, artist.Name))
		}
	}

	buf.WriteString(fmt.Sprintf("\nTotal: %d\n", len(artists)))
	return buf.String()
}

// RenderSyncRuns renders recent run history, newest first.
func RenderSyncRuns(runs []models.SyncRun) string {
	var buf bytes.Buffer

	if len(runs) == 0 {
		buf.WriteString("No sync runs recorded.\n")
		return buf.String()
	}

	for _, run := range runs {
		mode := "live"
		if run.DryRun {
			mode = "dry-run"
		}
		buf.WriteString(fmt.Sprintf("%s  %-7s  ok=%d skip=%d err=%d\n",
			run.RanAt.Format("2006-01-02 15:04:05"), mode,
			run.SuccessCount, run.SkipCount, run.ErrorCount))
	}

	return buf.String()
}

// ExportArtistsText serializes artists in the desired-state file format:
// one "Name|tag1|tag2" line per artist. The output round-trips through
// models.ArtistFromLine.
func ExportArtistsText(artists []models.Artist) []byte {
	var buf bytes.Buffer

	for _, artist := range artists {
		buf.WriteString(artist.Name)
		for _, tag := range artist.Tags {
			buf.WriteString("|")
			buf.WriteString(tag)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// ExportArtistsCSV serializes artists to CSV with columns:
// Name, ChannelID, URL, Tags, Subscribers
func ExportArtistsCSV(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "ChannelID", "URL", "Tags", "Subscribers"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range artists {
		record := []string{
			artist.Name,
			artist.ID,
			artist.URL,
			strings.Join(artist.Tags, "|"),
			strconv.FormatInt(artist.Subscribers, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToArtistsJSON generates a JSON representation of the artist list.
func ToArtistsJSON(artists []models.Artist) ([]byte, error) {
	return shared.MarshalJSON(artists, true)
}

// WriteArtistsExport writes the subscription list to a file in the format
// implied by the extension (.csv or .json), defaulting to the text format.
// Returns the path written.
func WriteArtistsExport(artists []models.Artist, path string) (string, error) {
	if path == "" {
		path = "subscriptions.txt"
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasSuffix(path, ".csv"):
		data, err = ExportArtistsCSV(artists)
	case strings.HasSuffix(path, ".json"):
		data, err = ToArtistsJSON(artists)
	default:
		data = ExportArtistsText(artists)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
