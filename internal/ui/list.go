package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"ytsm/internal/models"
)

var _ list.Item = actionItem{}

// actionItem wraps [models.SyncAction] to implement [list.Item].
type actionItem struct {
	action models.SyncAction
}

func (i actionItem) FilterValue() string { return i.action.Artist.Name }

func (i actionItem) Title() string {
	return fmt.Sprintf("%s %s", actionGlyph(i.action.Kind), i.action.Artist.Name)
}

func (i actionItem) Description() string {
	desc := i.action.Reason
	if len(i.action.Artist.Tags) > 0 {
		desc = fmt.Sprintf("%s • %v", desc, i.action.Artist.Tags)
	}
	return desc
}

func actionGlyph(kind models.ActionKind) string {
	switch kind {
	case models.ActionSubscribe:
		return "+"
	case models.ActionUnsubscribe:
		return "-"
	default:
		return "="
	}
}
