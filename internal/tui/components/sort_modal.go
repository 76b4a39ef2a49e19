package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/tui/styles"
)

const sortModalWidth = 20

// SortModal is a small popup for choosing the result order
type SortModal struct {
	visible bool
	options []query.SortOption
	cursor  int
	active  query.SortOption
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: query.SortOptions()}
}

// Show displays the modal with the cursor on the active option
func (m *SortModal) Show(active query.SortOption) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press. The returned option is non-nil when the
// user confirmed a choice; closed reports whether the modal went away.
func (m *SortModal) HandleKey(key string) (selection *query.SortOption, closed bool) {
	if !m.visible {
		return nil, true
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return &chosen, true
	case "esc", "s", "q":
		m.visible = false
		return nil, true
	}
	return nil, false
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.String(), sortModalWidth)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case opt == m.active:
			style = lipgloss.NewStyle().Foreground(styles.Amber)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
