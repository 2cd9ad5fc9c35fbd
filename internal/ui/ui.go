package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ytsm/internal/models"
	"ytsm/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlanView ViewState = iota
	ConfirmView
	SyncView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.SyncEngine
	dryRun       bool
	width        int
	height       int
	actionList   list.Model
	actions      []models.SyncAction
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *models.SyncResult
	err          error
	help         help.Model
	keys         keyMap
}

type planReadyMsg struct {
	actions []models.SyncAction
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type syncCompleteMsg struct {
	result *models.SyncResult
}

// NewModel creates a new TUI model with the provided dependencies.
// dryRun labels the confirm and result views; execution semantics follow
// the engine's own configuration.
func NewModel(ctx context.Context, engine *tasks.SyncEngine, dryRun bool) *Model {
	return &Model{
		ctx:    ctx,
		view:   PlanView,
		engine: engine,
		dryRun: dryRun,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init builds the plan by loading the target list and fetching current
// subscriptions.
func (m *Model) Init() tea.Cmd {
	return m.buildPlan()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.actionList.Width() == 0 {
			m.actionList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlanView:
			return m.handlePlanKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case planReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.actions = msg.actions
		items := make([]list.Item, len(msg.actions))
		for i, action := range msg.actions {
			items[i] = actionItem{action: action}
		}
		m.actionList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.actionList.Title = "Planned Actions"
		m.actionList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case syncCompleteMsg:
		m.result = msg.result
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlanView:
		return m.renderPlan()
	case ConfirmView:
		return m.renderConfirm()
	case SyncView:
		return m.renderSync()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// Err reports the fatal error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Result reports the sync outcome, nil when execution never ran.
func (m *Model) Result() *models.SyncResult {
	return m.result
}

func (m *Model) handlePlanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if len(m.actions) == 0 {
			return m, tea.Quit
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.actionList, cmd = m.actionList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = PlanView
		return m, nil
	case "y":
		m.view = SyncView
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = PlanView
		m.result = nil
		m.err = nil
		return m, m.buildPlan()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != PlanView {
		return m, nil
	}
	var cmd tea.Cmd
	m.actionList, cmd = m.actionList.Update(msg)
	return m, cmd
}

func (m *Model) buildPlan() tea.Cmd {
	return func() tea.Msg {
		targets, err := m.engine.LoadTargetArtists()
		if err != nil {
			return planReadyMsg{err: err}
		}
		current, err := m.engine.FetchSubscriptions(m.ctx)
		if err != nil {
			return planReadyMsg{err: err}
		}
		return planReadyMsg{actions: m.engine.PlanSync(targets, current)}
	}
}

func (m *Model) startSync() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		m.result = m.engine.ExecuteSync(m.ctx, m.actions, progress)
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return syncCompleteMsg{result: m.result}
		}

		update, ok := <-m.progressChan
		if !ok {
			return syncCompleteMsg{result: m.result}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlan() string {
	if len(m.actions) == 0 {
		title := styles.title.Render("Nothing to do")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
		return fmt.Sprintf("%s\nSubscriptions already match the target list.\n\n%s", title, helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.actionList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	mode := "Apply"
	if m.dryRun {
		mode = "Dry-run"
	}
	title := styles.title.Render(fmt.Sprintf("%s %d planned actions?", mode, len(m.actions)))

	subscribe, unsubscribe, skip := 0, 0, 0
	for _, action := range m.actions {
		switch action.Kind {
		case models.ActionSubscribe:
			subscribe++
		case models.ActionUnsubscribe:
			unsubscribe++
		case models.ActionSkip:
			skip++
		}
	}
	info := fmt.Sprintf("\nSubscribe: %d\nUnsubscribe: %d\nAlready in sync: %d\n", subscribe, unsubscribe, skip)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Subscriptions")

	var phase string
	switch m.progress.Phase {
	case tasks.LoadTargets:
		phase = "Loading target artists..."
	case tasks.FetchSubscriptions:
		phase = "Fetching current subscriptions..."
	case tasks.Plan:
		phase = "Planning actions..."
	case tasks.Execute:
		phase = fmt.Sprintf("Executing actions (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to replan, q to quit")
	}

	banner := styles.ok.Render("✓ Sync Complete")
	if m.dryRun {
		banner = styles.ok.Render("✓ Dry Run Complete")
	}

	info := fmt.Sprintf(
		"\nSuccessful: %d\nSkipped: %d\nErrors: %d",
		m.result.SuccessCount(),
		m.result.SkipCount(),
		m.result.ErrorCount(),
	)

	var failed string
	if m.result.ErrorCount() > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("%d errors:", m.result.ErrorCount())))
		for _, msg := range m.result.Errors {
			failed += fmt.Sprintf("\n  • %s", msg)
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s%s\n\n%s", banner, info, failed, helpView)
}
