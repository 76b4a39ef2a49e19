package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// PlaylistPurpose says what choosing a playlist does
type PlaylistPurpose int

const (
	// PurposeAdd appends the modal's item to the chosen playlist
	PurposeAdd PlaylistPurpose = iota
	// PurposeOpen shows the chosen playlist's items
	PurposeOpen
)

// PlaylistOutcome is the result of a key press in the playlist modal
type PlaylistOutcome int

const (
	PlaylistNone PlaylistOutcome = iota
	PlaylistClosed
	PlaylistChosen
	PlaylistCreate // user picked the "new playlist" row
)

const playlistModalWidth = 40

// PlaylistModal picks a playlist, filtered as the user types
type PlaylistModal struct {
	visible    bool
	purpose    PlaylistPurpose
	item       domain.GalleryItem
	playlists  []domain.Playlist
	membership map[string]bool

	filter  textinput.Model
	matches []int // indexes into playlists, best match first
	cursor  int   // len(matches) selects the "new playlist" row
}

// NewPlaylistModal creates a new playlist modal
func NewPlaylistModal() PlaylistModal {
	ti := textinput.New()
	ti.Placeholder = "Filter playlists..."
	ti.Prompt = "> "
	ti.CharLimit = 50
	ti.PromptStyle = styles.FilterPromptStyle

	return PlaylistModal{filter: ti, membership: map[string]bool{}}
}

// Show opens the modal. item is only used with PurposeAdd.
func (m *PlaylistModal) Show(purpose PlaylistPurpose, playlists []domain.Playlist, membership map[string]bool, item domain.GalleryItem) tea.Cmd {
	m.visible = true
	m.purpose = purpose
	m.playlists = playlists
	m.membership = membership
	if m.membership == nil {
		m.membership = map[string]bool{}
	}
	m.item = item
	m.cursor = 0
	m.filter.SetValue("")
	m.refilter()
	return m.filter.Focus()
}

// Hide dismisses the modal
func (m *PlaylistModal) Hide() {
	m.visible = false
	m.filter.Blur()
}

// IsVisible returns whether the modal is shown
func (m PlaylistModal) IsVisible() bool {
	return m.visible
}

// Purpose returns what the current session of the modal is for
func (m PlaylistModal) Purpose() PlaylistPurpose {
	return m.purpose
}

// Item returns the item being added
func (m PlaylistModal) Item() domain.GalleryItem {
	return m.item
}

// Filter returns the current filter text
func (m PlaylistModal) Filter() string {
	return strings.TrimSpace(m.filter.Value())
}

// Selected returns the highlighted playlist name
func (m PlaylistModal) Selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return "", false
	}
	return m.playlists[m.matches[m.cursor]].Name, true
}

// refilter recomputes matches for the current filter text
func (m *PlaylistModal) refilter() {
	m.matches = m.matches[:0]
	pattern := m.Filter()
	if pattern == "" {
		for i := range m.playlists {
			m.matches = append(m.matches, i)
		}
	} else {
		names := make([]string, len(m.playlists))
		for i, p := range m.playlists {
			names[i] = p.Name
		}
		for _, match := range fuzzy.Find(pattern, names) {
			m.matches = append(m.matches, match.Index)
		}
	}
	m.cursor = min(m.cursor, len(m.matches))
	if len(m.matches) > 0 && m.cursor == len(m.matches) && pattern != "" {
		m.cursor = 0
	}
}

// HandleKey processes a key message while the modal is open
func (m *PlaylistModal) HandleKey(msg tea.KeyMsg) (PlaylistOutcome, tea.Cmd) {
	if !m.visible {
		return PlaylistNone, nil
	}

	switch msg.String() {
	case "esc":
		m.Hide()
		return PlaylistClosed, nil
	case "down", "ctrl+n", "tab":
		if m.cursor < m.lastRow() {
			m.cursor++
		}
		return PlaylistNone, nil
	case "up", "ctrl+p", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		return PlaylistNone, nil
	case "enter":
		if _, ok := m.Selected(); ok {
			m.Hide()
			return PlaylistChosen, nil
		}
		if m.purpose == PurposeAdd {
			m.Hide()
			return PlaylistCreate, nil
		}
		return PlaylistNone, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return PlaylistNone, cmd
}

// lastRow is the highest cursor position; adding offers a "new playlist" row
func (m PlaylistModal) lastRow() int {
	if m.purpose == PurposeAdd {
		return len(m.matches)
	}
	return max(len(m.matches)-1, 0)
}

// View renders the playlist modal
func (m PlaylistModal) View() string {
	if !m.visible {
		return ""
	}

	inner := playlistModalWidth - 4
	title := "Open Playlist"
	if m.purpose == PurposeAdd {
		title = "Add to Playlist: " + styles.Truncate(m.item.Title, inner-17)
	}

	lines := []string{styles.ModalTitleStyle.Render(title), m.filter.View(), ""}

	if len(m.playlists) == 0 {
		lines = append(lines, styles.DimStyle.Render("No playlists yet"))
	} else if len(m.matches) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matching playlists"))
	}

	for row, idx := range m.matches {
		p := m.playlists[idx]
		check := "[ ]"
		if m.membership[p.Name] {
			check = "[x]"
		}
		text := fmt.Sprintf("%s %s (%d)", check, p.Name, p.ItemCount())
		lines = append(lines, m.renderRow(text, row == m.cursor, m.membership[p.Name]))
	}

	if m.purpose == PurposeAdd {
		lines = append(lines, "", m.renderRow("[+] New playlist...", m.cursor == len(m.matches), false))
	}

	lines = append(lines, "", styles.DimStyle.Render("↑/↓: Move  Enter: Choose  Esc: Close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(1, 2).
		Width(playlistModalWidth).
		Render(strings.Join(lines, "\n"))
}

func (m PlaylistModal) renderRow(text string, selected, member bool) string {
	text = styles.Pad(text, playlistModalWidth-4)
	switch {
	case selected:
		return lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight).Render(text)
	case member:
		return lipgloss.NewStyle().Foreground(styles.Amber).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(styles.LightGray).Render(text)
	}
}
