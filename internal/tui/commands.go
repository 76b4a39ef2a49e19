package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/library"
)

// summaryDeadline bounds a summary request from the UI side; the provider
// applies its own, usually shorter, timeout
const summaryDeadline = 2 * time.Minute

// Player opens an item at an offset
type Player interface {
	Open(item domain.GalleryItem, offset time.Duration) error
}

// Command factories for async operations

// SummarizeCmd asks the summary provider about an item
func SummarizeCmd(svc *library.Service, item domain.GalleryItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryDeadline)
		defer cancel()

		return SummaryMsg{ItemID: item.ID, Text: svc.Summarize(ctx, item)}
	}
}

// PlayCmd launches the item in the player at offset
func PlayCmd(player Player, item domain.GalleryItem, offset time.Duration) tea.Cmd {
	return func() tea.Msg {
		if err := player.Open(item, offset); err != nil {
			return ErrMsg{Err: err, Context: "playing " + item.Title}
		}
		return PlaybackStartedMsg{Title: item.Title}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
