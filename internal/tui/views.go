package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/tui/styles"
)

const (
	videoIcon = "▶"
	imageIcon = "▣"

	categoryColumnWidth = 12
	ratingColumnWidth   = 11 // stars + space + "4.5"
)

// typeIcon returns the list glyph for an item type
func typeIcon(t domain.ItemType) string {
	if t == domain.ItemTypeImage {
		return imageIcon
	}
	return videoIcon
}

// RenderItemRow renders one gallery item for the list
func RenderItemRow(v domain.ItemView, selected bool, width int) string {
	// icon + spaces + margins
	titleWidth := max(width-categoryColumnWidth-ratingColumnWidth-8, 10)

	accent := styles.Amber
	dim := styles.DimGray
	iconColor := &dim
	if selected {
		iconColor = &accent
	}

	parts := []styles.RowPart{
		{Text: typeIcon(v.Item.Type) + " ", Foreground: iconColor},
		{Text: styles.Pad(styles.Truncate(v.Item.Title, titleWidth), titleWidth) + " "},
		{Text: styles.Pad(styles.Truncate(v.Item.Category, categoryColumnWidth), categoryColumnWidth) + " ", Foreground: &dim},
		{Text: ratingText(v), Foreground: &accent},
	}
	return styles.RenderListRow(parts, selected, width)
}

// ratingText renders plain stars so RenderListRow controls the colors
func ratingText(v domain.ItemView) string {
	if !v.HasRating {
		return "☆☆☆☆☆  -"
	}
	full := max(0, min(5, int(v.Average+0.5)))
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + " " + v.FormattedRating()
}

// detailContext is the extra state the detail view shows next to the item
type detailContext struct {
	actionCursor int
	playlists    []string
	summary      string
	summarizing  bool
	spinnerFrame int
}

// RenderDetail renders an item's full details
func RenderDetail(v domain.ItemView, dc detailContext, width int) string {
	item := v.Item
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(item.Title))
	b.WriteString("\n")

	meta := []string{item.Category, string(item.Type)}
	if item.Duration != "" {
		meta = append(meta, item.Duration)
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	b.WriteString(styles.Stars(v.Average, v.HasRating))
	b.WriteString(styles.DimStyle.Render(" " + v.FormattedRating()))
	b.WriteString("\n")

	if len(item.Tags) > 0 {
		tags := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			tags[i] = styles.DimBadgeStyle.Render(t)
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	if len(dc.playlists) > 0 {
		b.WriteString(styles.DimStyle.Render("In playlists: " + strings.Join(dc.playlists, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(styles.DimStyle.Render("Source: " + styles.Truncate(item.SourceOrPlaceholder(), width-8)))
	b.WriteString("\n\n")

	if item.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(item.Description, width-2)))
		b.WriteString("\n\n")
	}

	if len(item.Actions) > 0 {
		b.WriteString(styles.AccentStyle.Render("Actions"))
		b.WriteString("\n")
		for i, a := range item.Actions {
			line := fmt.Sprintf("%s  %s", a.StartTime, a.Name)
			if i == dc.actionCursor {
				b.WriteString(styles.RenderListRow([]styles.RowPart{{Text: line}}, true, width))
			} else {
				b.WriteString(" " + styles.SubtitleStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if item.Transcript != "" {
		b.WriteString(styles.AccentStyle.Render("Transcript"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(wordWrap(item.Transcript, width-2)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentStyle.Render("AI Summary"))
	b.WriteString("\n")
	switch {
	case dc.summarizing:
		b.WriteString(RenderSpinner(dc.spinnerFrame) + styles.DimStyle.Render(" Summarizing..."))
	case dc.summary != "":
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(dc.summary, width-2)))
	default:
		b.WriteString(styles.DimStyle.Render("Press S to summarize"))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)
		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// errorText turns domain errors into short status messages
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		return "Title is required"
	case errors.Is(err, domain.ErrSourceRequired):
		return "A video needs a URL or a file"
	case errors.Is(err, domain.ErrUnsupportedUpload):
		return "Unsupported file (jpg, png, gif, mp4, webm)"
	case errors.Is(err, domain.ErrRatingOutOfRange):
		return "Rating must be 1-5"
	case errors.Is(err, domain.ErrPlaylistNameRequired):
		return "Playlist name is required"
	case errors.Is(err, domain.ErrItemNotFound):
		return "Item no longer exists"
	case errors.Is(err, domain.ErrInvalidType):
		return "Type must be video or image"
	default:
		return err.Error()
	}
}
