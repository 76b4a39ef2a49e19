package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/tui/components"
)

// handleKeyMsg routes keyboard input by state
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateSearching:
		return m.handleSearchKey(msg)
	case StateSort:
		return m.handleSortKey(msg)
	case StatePlaylistPicker:
		return m.handlePickerKey(msg)
	case StateNewPlaylist:
		return m.handleNewPlaylistKey(msg)
	case StateAddItem:
		return m.handleFormKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmDelete(msg)
	case StateConfirmClear:
		return m.handleConfirmClear(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, Keys.Home):
		m.moveCursor(-len(m.Views))
	case key.Matches(msg, Keys.End):
		m.moveCursor(len(m.Views))

	case key.Matches(msg, Keys.Reset):
		if m.ActivePlaylist != "" {
			m.ActivePlaylist = ""
		} else {
			m.Request.Query = ""
			m.Request.Category = query.All
			m.Request.Type = query.All
			m.Search.SetValue("")
		}
		m.Cursor = 0
		m.reload()

	case key.Matches(msg, Keys.Enter):
		if item, ok := m.Selected(); ok {
			m.openDetail(item.ID)
		}

	case key.Matches(msg, Keys.Search):
		m.ActivePlaylist = ""
		m.State = StateSearching
		m.Search.SetValue(m.Request.Query)
		m.Search.CursorEnd()
		return m, m.Search.Focus()

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Request.Sort)
		m.State = StateSort

	case key.Matches(msg, Keys.NextCategory):
		m.ActivePlaylist = ""
		m.Request.Category = cycle(m.LibrarySvc.Categories(), orAll(m.Request.Category))
		m.Cursor = 0
		m.reload()

	case key.Matches(msg, Keys.NextType):
		m.ActivePlaylist = ""
		m.Request.Type = cycle(query.Types(), orAll(m.Request.Type))
		m.Cursor = 0
		m.reload()

	case key.Matches(msg, Keys.Rate):
		if item, ok := m.Selected(); ok {
			return m, m.rate(item, msg.String())
		}

	case key.Matches(msg, Keys.Play):
		if item, ok := m.Selected(); ok {
			return m, PlayCmd(m.Player, item, 0)
		}

	case key.Matches(msg, Keys.Summarize):
		if item, ok := m.Selected(); ok {
			m.openDetail(item.ID)
			return m, m.summarize(item)
		}

	case key.Matches(msg, Keys.AddToList):
		if item, ok := m.Selected(); ok {
			return m, m.openPicker(components.PurposeAdd, item)
		}

	case key.Matches(msg, Keys.OpenList):
		return m, m.openPicker(components.PurposeOpen, domain.GalleryItem{})

	case key.Matches(msg, Keys.Add):
		m.State = StateAddItem
		return m, m.ItemForm.Show()

	case key.Matches(msg, Keys.Delete):
		if item, ok := m.Selected(); ok {
			m.DetailID = item.ID
			m.returnState = StateBrowsing
			m.State = StateConfirmDelete
		}

	case key.Matches(msg, Keys.ClearAll):
		if m.total > 0 {
			m.State = StateConfirmClear
		}
	}
	return m, nil
}

func (m *Model) openDetail(id string) {
	m.DetailID = id
	m.ActionCursor = 0
	m.State = StateDetail
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.LibrarySvc.Get(m.DetailID)
	if !ok {
		m.State = StateBrowsing
		m.reload()
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Back):
		m.State = StateBrowsing
		m.reload()
		m.selectID(item.ID)
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
	case key.Matches(msg, Keys.NextAction):
		if m.ActionCursor < len(item.Actions)-1 {
			m.ActionCursor++
		}
	case key.Matches(msg, Keys.PrevAction):
		if m.ActionCursor > 0 {
			m.ActionCursor--
		}
	case key.Matches(msg, Keys.Enter):
		var offset time.Duration
		if m.ActionCursor < len(item.Actions) {
			offset = time.Duration(item.Actions[m.ActionCursor].TimestampSec) * time.Second
		}
		return m, PlayCmd(m.Player, item, offset)
	case key.Matches(msg, Keys.Play):
		return m, PlayCmd(m.Player, item, 0)
	case key.Matches(msg, Keys.Rate):
		return m, m.rate(item, msg.String())
	case key.Matches(msg, Keys.Summarize):
		return m, m.summarize(item)
	case key.Matches(msg, Keys.AddToList):
		return m, m.openPicker(components.PurposeAdd, item)
	case key.Matches(msg, Keys.Delete):
		m.returnState = StateDetail
		m.State = StateConfirmDelete
	}
	return m, nil
}

// rate records the digit key as the default user's rating
func (m *Model) rate(item domain.GalleryItem, digit string) tea.Cmd {
	rating, err := strconv.Atoi(digit)
	if err == nil {
		err = m.LibrarySvc.Rate(item.ID, rating, "")
	}
	if err != nil {
		return m.setStatus(errorText(err), true)
	}
	m.reload()
	m.selectID(item.ID)
	return m.setStatus(fmt.Sprintf("Rated %s %d/5", item.Title, rating), false)
}

// summarize starts a summary unless one is already running for the item
func (m *Model) summarize(item domain.GalleryItem) tea.Cmd {
	if m.Summarizing[item.ID] {
		return nil
	}
	wasIdle := len(m.Summarizing) == 0
	m.Summarizing[item.ID] = true
	delete(m.Summaries, item.ID)

	cmds := []tea.Cmd{SummarizeCmd(m.LibrarySvc, item)}
	if wasIdle {
		cmds = append(cmds, TickCmd(tickInterval))
	}
	return tea.Batch(cmds...)
}

func (m *Model) openPicker(purpose components.PlaylistPurpose, item domain.GalleryItem) tea.Cmd {
	lists := m.PlaylistSvc.Playlists()
	if purpose == components.PurposeOpen && len(lists) == 0 {
		return m.setStatus("No playlists yet. Press space on an item to start one.", false)
	}

	var membership map[string]bool
	if purpose == components.PurposeAdd {
		membership = m.PlaylistSvc.Membership(item.ID)
	}
	m.returnState = m.State
	m.pendingItem = item
	m.State = StatePlaylistPicker
	return m.PlaylistModal.Show(purpose, lists, membership, item)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.State = StateBrowsing
		m.Search.Blur()
		return m, nil
	case "esc":
		m.State = StateBrowsing
		m.Search.Blur()
		m.Search.SetValue("")
		m.Request.Query = ""
		m.Cursor = 0
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != m.Request.Query {
		m.Request.Query = m.Search.Value()
		m.Cursor = 0
		m.reload()
	}
	return m, cmd
}

func (m Model) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selection, closed := m.SortModal.HandleKey(msg.String())
	if selection != nil {
		m.Request.Sort = *selection
		m.Cursor = 0
		m.reload()
	}
	if closed {
		m.State = StateBrowsing
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.PlaylistModal.HandleKey(msg)

	switch outcome {
	case components.PlaylistClosed:
		m.State = m.returnState

	case components.PlaylistChosen:
		name, _ := m.PlaylistModal.Selected()
		m.State = m.returnState
		if m.PlaylistModal.Purpose() == components.PurposeOpen {
			m.ActivePlaylist = name
			m.State = StateBrowsing
			m.Cursor = 0
			m.reload()
			return m, nil
		}
		return m, m.addToPlaylist(name, m.pendingItem)

	case components.PlaylistCreate:
		m.State = StateNewPlaylist
		return m, m.InputModal.Show("New Playlist", "Playlist name...")
	}
	return m, cmd
}

func (m Model) handleNewPlaylistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.InputModal, cmd, submitted = m.InputModal.Update(msg)

	if !m.InputModal.IsVisible() {
		m.State = m.returnState
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	name := m.InputModal.Value()
	if err := m.PlaylistSvc.Create(name); err != nil {
		return m, m.setStatus(errorText(err), true)
	}
	m.InputModal.Hide()
	m.State = m.returnState
	return m, m.addToPlaylist(name, m.pendingItem)
}

func (m *Model) addToPlaylist(name string, item domain.GalleryItem) tea.Cmd {
	if err := m.PlaylistSvc.AddItem(name, item.ID); err != nil {
		m.logger.Error("failed to add to playlist", "playlist", name, "itemID", item.ID, "error", err)
		return m.setStatus(errorText(err), true)
	}
	if m.ActivePlaylist == name {
		m.reload()
	}
	return m.setStatus(fmt.Sprintf("Added %s to %s", item.Title, name), false)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd                  tea.Cmd
		submitted, cancelled bool
	)
	m.ItemForm, cmd, submitted, cancelled = m.ItemForm.Update(msg)

	if cancelled {
		m.State = StateBrowsing
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	form := m.ItemForm.Form()
	id, err := m.LibrarySvc.Upload(form)
	if err != nil {
		m.ItemForm.SetError(errorText(err))
		return m, nil
	}

	m.ItemForm.Hide()
	m.State = StateBrowsing
	m.ActivePlaylist = ""
	m.reload()
	m.selectID(id)
	return m, m.setStatus("Added "+form.Title, false)
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		item, _ := m.LibrarySvc.Get(m.DetailID)
		m.State = StateBrowsing
		if err := m.LibrarySvc.Delete(m.DetailID); err != nil {
			m.reload()
			return m, m.setStatus(errorText(err), true)
		}
		delete(m.Summaries, m.DetailID)
		m.DetailID = ""
		m.reload()
		return m, m.setStatus("Deleted "+item.Title, false)
	case key.Matches(msg, Keys.Deny):
		m.State = m.returnState
	}
	return m, nil
}

func (m Model) handleConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		m.State = StateBrowsing
		if err := m.LibrarySvc.ClearAll(); err != nil {
			return m, m.setStatus(errorText(err), true)
		}
		m.Summaries = make(map[string]string)
		m.Cursor = 0
		m.reload()
		return m, m.setStatus("Gallery cleared", false)
	case key.Matches(msg, Keys.Deny):
		m.State = StateBrowsing
	}
	return m, nil
}
