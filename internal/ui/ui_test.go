package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ytsm/internal/models"
	"ytsm/internal/tasks"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	engine := tasks.NewSyncEngine(nil, nil, nil, nil)
	return NewModel(context.Background(), engine, true)
}

func planMsg(actions ...models.SyncAction) planReadyMsg {
	return planReadyMsg{actions: actions}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Update(t *testing.T) {
	action := models.SyncAction{
		Artist: models.Artist{Name: "Metallica"},
		Kind:   models.ActionSubscribe,
		Reason: "Not currently subscribed",
	}

	t.Run("plan ready populates action list", func(t *testing.T) {
		m := testModel(t)

		updated, _ := m.Update(planMsg(action))
		model := updated.(*Model)

		if len(model.actions) != 1 {
			t.Fatalf("expected 1 action, got %d", len(model.actions))
		}
		if model.view != PlanView {
			t.Errorf("view = %d, want PlanView", model.view)
		}
	})

	t.Run("plan error quits", func(t *testing.T) {
		m := testModel(t)

		updated, cmd := m.Update(planReadyMsg{err: context.Canceled})
		model := updated.(*Model)

		if model.Err() == nil {
			t.Error("expected error to be recorded")
		}
		if cmd == nil {
			t.Error("expected quit command")
		}
	})

	t.Run("enter on plan advances to confirm", func(t *testing.T) {
		m := testModel(t)
		m.Update(planMsg(action))

		updated, _ := m.Update(keyMsg("enter"))
		if updated.(*Model).view != ConfirmView {
			t.Errorf("view = %d, want ConfirmView", updated.(*Model).view)
		}
	})

	t.Run("declining confirm returns to plan", func(t *testing.T) {
		m := testModel(t)
		m.Update(planMsg(action))
		m.Update(keyMsg("enter"))

		updated, _ := m.Update(keyMsg("n"))
		if updated.(*Model).view != PlanView {
			t.Errorf("view = %d, want PlanView", updated.(*Model).view)
		}
	})

	t.Run("sync complete shows result", func(t *testing.T) {
		m := testModel(t)
		m.Update(planMsg(action))

		result := &models.SyncResult{
			ActionsTaken: []models.SyncAction{action},
		}
		updated, _ := m.Update(syncCompleteMsg{result: result})
		model := updated.(*Model)

		if model.view != ResultView {
			t.Errorf("view = %d, want ResultView", model.view)
		}
		if model.Result() != result {
			t.Error("result not recorded")
		}
	})
}

func TestModel_View(t *testing.T) {
	t.Run("empty plan renders nothing to do", func(t *testing.T) {
		m := testModel(t)
		m.Update(planMsg())

		view := m.View()
		if view == "" {
			t.Fatal("expected non-empty view")
		}
	})

	t.Run("result view lists errors", func(t *testing.T) {
		m := testModel(t)
		m.Update(planMsg())
		m.Update(syncCompleteMsg{result: &models.SyncResult{
			Errors: []string{"Could not find artist: Ghost"},
		}})

		view := m.View()
		if view == "" {
			t.Fatal("expected non-empty view")
		}
	})
}
