package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/tui/styles"
	"github.com/mmcdole/vista/internal/upload"
)

// form field order; fieldType is a toggle, the rest are text inputs
const (
	fieldTitle = iota
	fieldCategory
	fieldType
	fieldDescription
	fieldURL
	fieldFile
	fieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Category", "Type", "Description", "URL", "File", "Tags",
}

const formLabelWidth = 12

// ItemForm collects a new gallery item
type ItemForm struct {
	visible  bool
	inputs   [fieldCount]textinput.Model
	itemType domain.ItemType
	category int // index into upload.Categories
	focus    int
	err      string
}

// NewItemForm creates a new add-item form
func NewItemForm() ItemForm {
	f := ItemForm{itemType: domain.ItemTypeVideo}
	placeholders := [fieldCount]string{
		fieldTitle:       "Required",
		fieldDescription: "What is it about?",
		fieldURL:         "YouTube or direct link",
		fieldFile:        "Path to a jpg, png, gif, mp4 or webm",
		fieldTags:        "Comma separated",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		ti.Placeholder = placeholders[i]
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	f.category = len(upload.Categories) - 1
	return f
}

// Show resets and displays the form
func (f *ItemForm) Show() tea.Cmd {
	*f = NewItemForm()
	f.visible = true
	return f.inputs[fieldTitle].Focus()
}

// Hide dismisses the form
func (f *ItemForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f ItemForm) IsVisible() bool {
	return f.visible
}

// SetError shows a validation message under the fields
func (f *ItemForm) SetError(msg string) {
	f.err = msg
}

// Form returns the entered values
func (f ItemForm) Form() upload.Form {
	return upload.Form{
		Title:       f.inputs[fieldTitle].Value(),
		Category:    upload.Categories[f.category],
		Type:        f.itemType,
		Description: f.inputs[fieldDescription].Value(),
		URL:         f.inputs[fieldURL].Value(),
		FilePath:    f.inputs[fieldFile].Value(),
		Tags:        f.inputs[fieldTags].Value(),
	}
}

func (f *ItemForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	if f.isToggle(f.focus) {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

func (f ItemForm) isToggle(i int) bool {
	return i == fieldType || i == fieldCategory
}

// Update handles a message, returns (form, cmd, submitted, cancelled)
func (f ItemForm) Update(msg tea.Msg) (ItemForm, tea.Cmd, bool, bool) {
	if !f.visible {
		return f, nil, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false, true
		case "ctrl+s":
			return f, nil, true, false
		case "enter":
			if f.focus == fieldCount-1 {
				return f, nil, true, false
			}
			return f, f.setFocus(f.focus + 1), false, false
		case "tab", "down":
			return f, f.setFocus(f.focus + 1), false, false
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1), false, false
		case " ", "left", "right":
			if f.isToggle(f.focus) {
				f.toggle(keyMsg.String() == "left")
				return f, nil, false, false
			}
		}
	}

	if f.isToggle(f.focus) {
		return f, nil, false, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false, false
}

func (f *ItemForm) toggle(back bool) {
	switch f.focus {
	case fieldType:
		if f.itemType == domain.ItemTypeVideo {
			f.itemType = domain.ItemTypeImage
		} else {
			f.itemType = domain.ItemTypeVideo
		}
	case fieldCategory:
		step := 1
		if back {
			step = -1
		}
		n := len(upload.Categories)
		f.category = (f.category + step + n) % n
	}
}

// View renders the form
func (f ItemForm) View() string {
	if !f.visible {
		return ""
	}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Add Item"))

	for i := 0; i < fieldCount; i++ {
		label := styles.Pad(fieldLabels[i], formLabelWidth)
		labelStyle := styles.DimStyle
		if i == f.focus {
			labelStyle = styles.AccentStyle
		}

		var value string
		switch i {
		case fieldType:
			value = toggleView(string(f.itemType), i == f.focus)
		case fieldCategory:
			value = toggleView(upload.Categories[f.category], i == f.focus)
		default:
			value = f.inputs[i].View()
		}
		lines = append(lines, labelStyle.Render(label)+value)
	}

	if f.err != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(f.err))
	}
	lines = append(lines, "", styles.DimStyle.Render("Tab: Next  ←/→: Change  Ctrl+S: Save  Esc: Cancel"))

	return styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func toggleView(value string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight).Render("‹ " + value + " ›")
	}
	return styles.SubtitleStyle.Render("  " + value)
}
