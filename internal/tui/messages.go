package tui

// Message types for the TUI

// ErrMsg represents an error from an async command
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SummaryMsg carries a finished summary for an item
type SummaryMsg struct {
	ItemID string
	Text   string
}

// PlaybackStartedMsg signals that the player or viewer was launched
type PlaybackStartedMsg struct {
	Title string
}

// TickMsg advances the spinner
type TickMsg struct{}

// ClearStatusMsg clears the footer status line
type ClearStatusMsg struct{}
