// package tasks implements subscription reconciliation against YouTube Music.
//
// The core abstraction is SyncEngine, which loads the desired artist list,
// fetches current subscriptions, plans the difference, and applies it.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"ytsm/internal/models"
	"ytsm/internal/services"
	"ytsm/internal/shared"
)

// RunRecorder persists the outcome of sync runs and refreshes the local
// artist cache. Implemented by the repositories package; nil disables
// persistence entirely.
type RunRecorder interface {
	RecordSyncRun(ctx context.Context, runID string, dryRun bool, result *models.SyncResult) error
	RefreshArtistCache(ctx context.Context, artists []models.Artist) error
}

// SyncEngine orchestrates one reconciliation run: load desired state,
// fetch actual state, plan, execute.
type SyncEngine struct {
	service  services.SubscriptionService
	config   *shared.Config
	logger   *log.Logger
	recorder RunRecorder
}

// NewSyncEngine creates a SyncEngine. recorder may be nil when no database
// is configured.
func NewSyncEngine(service services.SubscriptionService, config *shared.Config, logger *log.Logger, recorder RunRecorder) *SyncEngine {
	if config == nil {
		config = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SyncEngine{
		service:  service,
		config:   config,
		logger:   logger,
		recorder: recorder,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls execution.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// LoadTargetArtists reads the desired-state file configured in
// [shared.SyncConfig] into an ordered artist list.
//
// A missing file is fatal and reported as [shared.ErrArtistsFileNotFound].
// Blank lines and #-comments are skipped; a line that fails to parse is
// logged as a warning and dropped without failing the load. Duplicates are
// kept in file order.
func (e *SyncEngine) LoadTargetArtists() ([]models.Artist, error) {
	path := e.config.Sync.ArtistsFile

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrArtistsFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open artists file: %w", err)
	}
	defer f.Close()

	var artists []models.Artist

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := trimmedLine(scanner.Text())
		if line == "" {
			continue
		}

		artist, err := models.ArtistFromLine(line)
		if err != nil {
			e.logger.Warn("skipping invalid line", "line", lineNum, "content", line, "error", err)
			continue
		}

		e.logger.Debug("loaded artist", "name", artist.Name, "tags", artist.Tags)
		artists = append(artists, artist)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artists file: %w", err)
	}

	e.logger.Info("loaded target artists", "count", len(artists), "file", path)
	return artists, nil
}

// FetchSubscriptions retrieves the current subscriptions from the service.
func (e *SyncEngine) FetchSubscriptions(ctx context.Context) ([]models.Artist, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: subscription service not initialized", shared.ErrServiceUnavailable)
	}

	e.logger.Info("fetching current subscriptions")
	current, err := e.service.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	e.logger.Info("found current subscriptions", "count", len(current))
	return current, nil
}

// PlanSync computes the actions needed to converge current subscriptions
// onto the target list.
//
// Pure function: no I/O, inputs are not mutated. Matching is
// case-insensitive exact name equality. Output order is all Skip/Subscribe
// actions in target order, then all Unsubscribe actions in subscription
// order; consumers rely on that grouping.
func (e *SyncEngine) PlanSync(targetArtists, currentSubscriptions []models.Artist) []models.SyncAction {
	currentNames := make(map[string]struct{}, len(currentSubscriptions))
	for _, sub := range currentSubscriptions {
		currentNames[shared.NormalizeArtistKey(sub.Name)] = struct{}{}
	}

	targetNames := make(map[string]struct{}, len(targetArtists))
	for _, artist := range targetArtists {
		targetNames[shared.NormalizeArtistKey(artist.Name)] = struct{}{}
	}

	var actions []models.SyncAction

	for _, artist := range targetArtists {
		if _, ok := currentNames[shared.NormalizeArtistKey(artist.Name)]; ok {
			actions = append(actions, models.SyncAction{
				Artist: artist,
				Kind:   models.ActionSkip,
				Reason: "Already subscribed",
			})
		} else {
			actions = append(actions, models.SyncAction{
				Artist: artist,
				Kind:   models.ActionSubscribe,
				Reason: "Not currently subscribed",
			})
		}
	}

	for _, subscription := range currentSubscriptions {
		if _, ok := targetNames[shared.NormalizeArtistKey(subscription.Name)]; !ok {
			actions = append(actions, models.SyncAction{
				Artist: subscription,
				Kind:   models.ActionUnsubscribe,
				Reason: "Not in target list",
			})
		}
	}

	subscribe, unsubscribe, skip := countKinds(actions)
	e.logger.Info("planned actions", "subscribe", subscribe, "unsubscribe", unsubscribe, "skip", skip)

	return actions
}

// ExecuteSync applies planned actions strictly in order, one at a time.
//
// Failures are isolated per action: an error is recorded in the result and
// execution continues. In dry-run mode non-skip actions are reported as
// taken without touching the service.
func (e *SyncEngine) ExecuteSync(ctx context.Context, actions []models.SyncAction, progress chan<- ProgressUpdate) *models.SyncResult {
	result := &models.SyncResult{}

	dryRun := e.config.Sync.DryRun
	if dryRun {
		e.logger.Info("DRY RUN MODE - no changes will be made")
	}

	total := len(actions)
	for i, planned := range actions {
		e.sendProgress(progress, executeUpdate(i+1, total, planned))

		if planned.Kind == models.ActionSkip {
			e.logger.Debug("skipping artist", "name", planned.Artist.Name, "reason", planned.Reason)
			result.ActionsTaken = append(result.ActionsTaken, planned)
			continue
		}

		e.logger.Info("executing action", "kind", planned.Kind, "artist", planned.Artist.Name, "step", i+1, "total", total)

		if dryRun {
			result.ActionsTaken = append(result.ActionsTaken, planned)
			continue
		}

		switch planned.Kind {
		case models.ActionSubscribe:
			e.executeSubscribe(ctx, planned, result)
		case models.ActionUnsubscribe:
			// Deliberate stub: upstream never implemented unsubscription.
			e.logger.Warn("unsubscribe not yet implemented", "artist", planned.Artist.Name)
			result.Errors = append(result.Errors, fmt.Sprintf("Unsubscribe not implemented: %s", planned.Artist.Name))
		}
	}

	e.logger.Info("sync complete",
		"successful", result.SuccessCount(),
		"errors", result.ErrorCount(),
		"skipped", result.SkipCount(),
	)

	return result
}

// executeSubscribe performs one subscribe attempt: search to resolve the
// channel, then subscribe. The configured delay applies only after a
// completed subscribe attempt, successful or not.
func (e *SyncEngine) executeSubscribe(ctx context.Context, planned models.SyncAction, result *models.SyncResult) {
	name := planned.Artist.Name

	found, err := e.service.SearchArtist(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrArtistNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("Could not find artist: %s", name))
		} else {
			e.recordActionError(result, planned, err)
		}
		return
	}

	planned.Artist.URL = found.URL
	planned.Artist.ID = found.ID

	ok, err := e.service.SubscribeArtist(ctx, &planned.Artist)
	if err != nil {
		e.recordActionError(result, planned, err)
		return
	}

	if ok {
		result.ActionsTaken = append(result.ActionsTaken, planned)
		e.logger.Info("subscribed", "artist", name)
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to subscribe %s", name))
		e.logger.Error("subscribe rejected", "artist", name)
	}

	if delay := e.config.Sync.Delay(); delay > 0 {
		time.Sleep(delay)
	}
}

// recordActionError downgrades an adapter failure to a result error so the
// remaining actions still run.
func (e *SyncEngine) recordActionError(result *models.SyncResult, planned models.SyncAction, err error) {
	msg := fmt.Sprintf("Error %sing %s: %v", planned.Kind, planned.Artist.Name, err)
	result.Errors = append(result.Errors, msg)
	e.logger.Error("action failed", "artist", planned.Artist.Name, "error", err)
}

// Sync performs a complete reconciliation run.
//
// Load or fetch failures short-circuit into a result carrying a single
// "Sync failed" error; everything past planning is contained by
// ExecuteSync's per-action isolation. The caller always receives a result.
func (e *SyncEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate) *models.SyncResult {
	e.logger.Info("starting YouTube Music sync")

	e.sendProgress(progress, loadTargetsUpdate(e.config.Sync.ArtistsFile))
	targets, err := e.LoadTargetArtists()
	if err != nil {
		return syncFailed(err)
	}

	e.sendProgress(progress, fetchSubscriptionsUpdate())
	current, err := e.FetchSubscriptions(ctx)
	if err != nil {
		return syncFailed(err)
	}

	e.sendProgress(progress, planUpdate(len(targets), len(current)))
	actions := e.PlanSync(targets, current)

	result := e.ExecuteSync(ctx, actions, progress)

	e.record(ctx, current, result)
	return result
}

// record persists the run and refreshes the artist cache when a recorder
// is configured. Recording failures are logged, never surfaced: the sync
// outcome is already decided.
func (e *SyncEngine) record(ctx context.Context, current []models.Artist, result *models.SyncResult) {
	if e.recorder == nil {
		return
	}

	runID := shared.GenerateID()
	if err := e.recorder.RecordSyncRun(ctx, runID, e.config.Sync.DryRun, result); err != nil {
		e.logger.Warn("failed to record sync run", "error", err)
	}

	if e.config.Sync.DryRun {
		return
	}
	if err := e.recorder.RefreshArtistCache(ctx, current); err != nil {
		e.logger.Warn("failed to refresh artist cache", "error", err)
	}
}

func syncFailed(err error) *models.SyncResult {
	return &models.SyncResult{
		Errors: []string{fmt.Sprintf("Sync failed: %v", err)},
	}
}

// trimmedLine trims a raw file line, treating #-comments as blank.
func trimmedLine(raw string) string {
	line := strings.TrimSpace(raw)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	return line
}

func countKinds(actions []models.SyncAction) (subscribe, unsubscribe, skip int) {
	for _, a := range actions {
		switch a.Kind {
		case models.ActionSubscribe:
			subscribe++
		case models.ActionUnsubscribe:
			unsubscribe++
		case models.ActionSkip:
			skip++
		}
	}
	return subscribe, unsubscribe, skip
}
