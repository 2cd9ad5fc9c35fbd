package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"ytsm/internal/formatter"
	"ytsm/internal/shared"
	"ytsm/internal/tasks"
	"ytsm/internal/ui"
)

// applySyncFlags folds command line overrides into the runner's config.
func (r *Runner) applySyncFlags(cmd *cli.Command) {
	if file := cmd.String("artists-file"); file != "" {
		r.config.Sync.ArtistsFile = file
	}
	if cmd.Bool("apply") {
		r.config.Sync.DryRun = false
	} else if cmd.IsSet("dry-run") {
		r.config.Sync.DryRun = cmd.Bool("dry-run")
	}
	if cmd.IsSet("delay") {
		if delay := cmd.Float("delay"); delay >= 0 {
			r.config.Sync.DelaySeconds = delay
		}
	}
}

// Sync runs a full reconciliation of subscriptions against the artists file.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	r.applySyncFlags(cmd)

	if cmd.Bool("interactive") {
		return r.syncInteractive(ctx)
	}

	dryRun := r.config.Sync.DryRun
	r.logger.Info("starting sync", "file", r.config.Sync.ArtistsFile, "dry_run", dryRun)

	if dryRun {
		r.writePlain("Dry run: no changes will be made (pass --apply to subscribe)\n\n")
	}

	engine := r.newEngine()

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadTargets, tasks.FetchSubscriptions, tasks.Plan:
				r.writePlain("%s\n", update.Message)
			case tasks.Execute:
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	result := engine.Sync(ctx, progressCh)
	close(progressCh)
	<-done

	r.writePlain("\n")
	r.writePlainHeader("Sync Summary")
	r.writePlain("%s", formatter.RenderSyncResult(result, dryRun))

	if result.ErrorCount() > 0 {
		return fmt.Errorf("sync completed with %d errors", result.ErrorCount())
	}
	return nil
}

// syncInteractive runs the sync through the TUI.
func (r *Runner) syncInteractive(ctx context.Context) error {
	if r.service == nil {
		return fmt.Errorf("%w: subscription service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ytsm-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine := r.newEngine()
	model := ui.NewModel(ctx, engine, r.config.Sync.DryRun)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := final.(*ui.Model); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if result := m.Result(); result != nil && result.ErrorCount() > 0 {
			return fmt.Errorf("sync completed with %d errors", result.ErrorCount())
		}
	}

	return nil
}

// Plan prints the planned actions without executing anything.
func (r *Runner) Plan(ctx context.Context, cmd *cli.Command) error {
	r.applySyncFlags(cmd)

	engine := r.newEngine()

	targets, err := engine.LoadTargetArtists()
	if err != nil {
		return err
	}

	current, err := engine.FetchSubscriptions(ctx)
	if err != nil {
		return err
	}

	actions := engine.PlanSync(targets, current)

	if cmd.Bool("json") {
		return r.writeJSON(actions, true)
	}

	r.writePlainHeader("Planned Actions")
	r.writePlain("%s", formatter.RenderSyncPlan(actions))
	return nil
}
