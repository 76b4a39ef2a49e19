package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/tui/styles"
)

const inputModalWidth = 36

// InputModal is a single line text prompt
type InputModal struct {
	visible bool
	title   string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = inputModalWidth - 6
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti}
}

// Show displays the modal with a title and placeholder
func (m *InputModal) Show(title, placeholder string) tea.Cmd {
	m.visible = true
	m.title = title
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the trimmed input
func (m InputModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Update handles input events, returns (modal, cmd, submitted). Esc hides the
// modal without submitting.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	row := lipgloss.NewStyle().Width(inputModalWidth).Background(styles.SlateDark)
	content := lipgloss.JoinVertical(lipgloss.Left,
		row.Foreground(styles.White).Bold(true).Render(m.title),
		row.Render(""),
		row.Render(m.input.View()),
	)

	return styles.ModalStyle.Render(content)
}
