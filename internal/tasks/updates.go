package tasks

import (
	"fmt"

	"ytsm/internal/models"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Action  *models.SyncAction
}

// Operation phase enumeration
type Phase int

const (
	LoadTargets Phase = iota
	FetchSubscriptions
	Plan
	Execute
)

func (p Phase) String() string {
	switch p {
	case LoadTargets:
		return "load_targets"
	case FetchSubscriptions:
		return "fetch_subscriptions"
	case Plan:
		return "plan"
	case Execute:
		return "execute"
	default:
		return ""
	}
}

func loadTargetsUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadTargets,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading target artists from %s...", path),
	}
}

func fetchSubscriptionsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSubscriptions,
		Step:    1,
		Total:   1,
		Message: "Fetching current subscriptions...",
	}
}

func planUpdate(targets, current int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Plan,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Planning sync actions (%d targets, %d subscribed)...", targets, current),
	}
}

func executeUpdate(step, total int, action models.SyncAction) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Execute,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, action.Kind, action.Artist.Name),
		Action:  &action,
	}
}
