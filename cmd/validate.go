package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"ytsm/internal/models"
	"ytsm/internal/shared"
)

// Validate checks the artists file line by line without contacting the
// service. Invalid lines are reported with their line numbers; any invalid
// line fails the command.
func (r *Runner) Validate(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Sync.ArtistsFile
	if file := cmd.String("artists-file"); file != "" {
		path = file
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", shared.ErrArtistsFileNotFound, path)
		}
		return fmt.Errorf("failed to open artists file: %w", err)
	}
	defer f.Close()

	var (
		valid    int
		invalid  int
		names    = map[string]int{}
		dupes    int
		problems []string
	)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		artist, err := models.ArtistFromLine(line)
		if err != nil {
			invalid++
			problems = append(problems, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}

		valid++
		key := shared.NormalizeArtistKey(artist.Name)
		if first, seen := names[key]; seen {
			dupes++
			problems = append(problems, fmt.Sprintf("line %d: duplicate of %q on line %d", lineNum, artist.Name, first))
		} else {
			names[key] = lineNum
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read artists file: %w", err)
	}

	r.writePlain("Validated %s\n", path)
	r.writePlain("  Valid entries:   %d\n", valid)
	r.writePlain("  Unique artists:  %d\n", len(names))
	r.writePlain("  Invalid lines:   %d\n", invalid)
	r.writePlain("  Duplicates:      %d\n", dupes)

	if len(problems) > 0 {
		r.writePlain("\n")
		for _, problem := range problems {
			r.writePlain("  %s\n", problem)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("artists file has %d invalid lines", invalid)
	}

	r.writePlain("\n✓ Artists file is valid\n")
	return nil
}
