// package models defines the data model for the subscription manager
package models

import (
	"fmt"
	"strings"
	"time"

	"ytsm/internal/shared"
)

// SubscriptionStatus describes what we know about an artist's subscription
// state on YouTube Music.
type SubscriptionStatus string

const (
	StatusSubscribed    SubscriptionStatus = "subscribed"
	StatusNotSubscribed SubscriptionStatus = "not_subscribed"
	StatusUnknown       SubscriptionStatus = "unknown"
)

// ActionKind is the kind of action the planner can emit for an artist.
type ActionKind string

const (
	ActionSubscribe   ActionKind = "subscribe"
	ActionUnsubscribe ActionKind = "unsubscribe"
	ActionSkip        ActionKind = "skip"
)

// Artist represents a music artist, identified by name.
//
// Name matching is case-insensitive everywhere; ID and URL are filled in
// lazily as the remote service reports them. Tags are informational only
// and never participate in matching.
type Artist struct {
	Name        string             `json:"name"`
	ID          string             `json:"id,omitempty"`
	URL         string             `json:"url,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Subscribers int64              `json:"subscribers,omitempty"`
	Status      SubscriptionStatus `json:"status"`
}

func (a Artist) String() string {
	return a.Name
}

// ArtistFromLine parses a single desired-state file line into an Artist.
//
// The format is "Name" or "Name|tag1|tag2|...". Segments are trimmed and
// empty tag segments are dropped, so doubled or trailing pipes are harmless.
// The name must be non-empty after trimming.
func ArtistFromLine(line string) (Artist, error) {
	parts := strings.Split(line, "|")

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Artist{}, fmt.Errorf("%w: %q", shared.ErrEmptyArtistName, line)
	}

	var tags []string
	for _, part := range parts[1:] {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return Artist{Name: name, Tags: tags, Status: StatusUnknown}, nil
}

// SyncAction is a single planned step: do Kind to Artist because Reason.
// Actions are created by the planner and consumed by the executor.
type SyncAction struct {
	Artist Artist     `json:"artist"`
	Kind   ActionKind `json:"kind"`
	Reason string     `json:"reason"`
}

// SyncResult accumulates the outcome of one sync run.
//
// ActionsTaken holds completed and skipped actions in execution order.
// Errors is a separate channel: a failed action lands in Errors and is
// NOT counted in ActionsTaken.
type SyncResult struct {
	ActionsTaken []SyncAction `json:"actions_taken"`
	Errors       []string     `json:"errors"`
}

// SuccessCount returns the number of completed non-skip actions.
func (r *SyncResult) SuccessCount() int {
	n := 0
	for _, a := range r.ActionsTaken {
		if a.Kind != ActionSkip {
			n++
		}
	}
	return n
}

// SkipCount returns the number of skipped actions.
func (r *SyncResult) SkipCount() int {
	n := 0
	for _, a := range r.ActionsTaken {
		if a.Kind == ActionSkip {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of recorded errors.
func (r *SyncResult) ErrorCount() int {
	return len(r.Errors)
}

// TotalProcessed returns the number of actions taken (skips included,
// failures excluded).
func (r *SyncResult) TotalProcessed() int {
	return len(r.ActionsTaken)
}

// SyncRun is the persisted record of one completed reconciliation run.
type SyncRun struct {
	ID           string    `json:"id"`
	RanAt        time.Time `json:"ran_at"`
	DryRun       bool      `json:"dry_run"`
	SuccessCount int       `json:"success_count"`
	SkipCount    int       `json:"skip_count"`
	ErrorCount   int       `json:"error_count"`
}
