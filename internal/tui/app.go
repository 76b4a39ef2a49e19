package tui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/library"
	"github.com/mmcdole/vista/internal/playlist"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/tui/components"
	"github.com/mmcdole/vista/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateDetail
	StateConfirmDelete
	StateConfirmClear
	StatePlaylistPicker
	StateNewPlaylist
	StateAddItem
	StateSort
	StateHelp
)

// Layout
const (
	HeaderHeight = 2
	FooterHeight = 1

	statusDuration = 3 * time.Second
	tickInterval   = 100 * time.Millisecond
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	LibrarySvc  *library.Service
	PlaylistSvc *playlist.Service
	Player      Player
	logger      *slog.Logger

	// UI Components
	Search        textinput.Model
	SortModal     components.SortModal
	PlaylistModal components.PlaylistModal
	InputModal    components.InputModal
	ItemForm      components.ItemForm

	// Query and results
	Request        query.Request
	ActivePlaylist string // non-empty shows a playlist instead of the gallery
	Views          []domain.ItemView
	Suggestions    []string
	total          int // items in the gallery, for the empty state
	Cursor         int
	offset         int

	// Detail state
	DetailID     string
	ActionCursor int
	Summaries    map[string]string // item id -> last summary
	Summarizing  map[string]bool

	// returnState is where modals go back to when closed
	returnState ApplicationState
	// pendingItem is added to the playlist created in StateNewPlaylist
	pendingItem domain.GalleryItem

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(
	librarySvc *library.Service,
	playlistSvc *playlist.Service,
	player Player,
	defaultSort query.SortOption,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.PromptStyle = styles.FilterPromptStyle
	search.Placeholder = "Search descriptions, titles and actions"
	search.CharLimit = 100

	m := Model{
		State:         StateBrowsing,
		LibrarySvc:    librarySvc,
		PlaylistSvc:   playlistSvc,
		Player:        player,
		logger:        logger,
		Search:        search,
		SortModal:     components.NewSortModal(),
		PlaylistModal: components.NewPlaylistModal(),
		InputModal:    components.NewInputModal(),
		ItemForm:      components.NewItemForm(),
		Request:       query.Request{Category: query.All, Type: query.All, Sort: defaultSort},
		Summaries:     make(map[string]string),
		Summarizing:   make(map[string]bool),
	}
	m.reload()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if len(m.Summarizing) == 0 {
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case SummaryMsg:
		delete(m.Summarizing, msg.ItemID)
		m.Summaries[msg.ItemID] = msg.Text
		return m, nil

	case PlaybackStartedMsg:
		return m, m.setStatus("Opened "+msg.Title, false)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input plumbing for whichever input has focus
	var cmd tea.Cmd
	switch m.State {
	case StateSearching:
		m.Search, cmd = m.Search.Update(msg)
	case StateNewPlaylist:
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
	case StateAddItem:
		m.ItemForm, cmd, _, _ = m.ItemForm.Update(msg)
	}
	return m, cmd
}

// reload re-runs the query (or resolves the active playlist) and keeps the
// cursor in range
func (m *Model) reload() {
	m.Suggestions = nil

	if m.ActivePlaylist != "" {
		items, ok := m.PlaylistSvc.Items(m.ActivePlaylist)
		if !ok {
			m.ActivePlaylist = ""
			m.reload()
			return
		}
		views := make([]domain.ItemView, 0, len(items))
		for _, item := range items {
			if v, found := m.LibrarySvc.View(item.ID); found {
				views = append(views, v)
			}
		}
		m.Views = views
	} else {
		m.Views = m.LibrarySvc.Browse(m.Request)
		if len(m.Views) == 0 && strings.TrimSpace(m.Request.Query) != "" {
			m.Suggestions = m.LibrarySvc.Suggest(m.Request.Query)
		}
	}
	m.total = len(m.LibrarySvc.Browse(query.Request{}))

	m.Cursor = max(0, min(m.Cursor, len(m.Views)-1))
	m.clampOffset()
}

// listHeight is the number of rows available to the list
func (m Model) listHeight() int {
	return max(m.Height-HeaderHeight-FooterHeight, 1)
}

// clampOffset scrolls so the cursor stays visible
func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.Cursor < m.offset {
		m.offset = m.Cursor
	}
	if m.Cursor >= m.offset+h {
		m.offset = m.Cursor - h + 1
	}
	m.offset = max(0, min(m.offset, max(len(m.Views)-h, 0)))
}

func (m *Model) moveCursor(delta int) {
	if len(m.Views) == 0 {
		return
	}
	m.Cursor = max(0, min(m.Cursor+delta, len(m.Views)-1))
	m.clampOffset()
}

// Selected returns the highlighted item
func (m Model) Selected() (domain.GalleryItem, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Views) {
		return domain.GalleryItem{}, false
	}
	return m.Views[m.Cursor].Item, true
}

// selectID moves the cursor to the item with id if it is listed
func (m *Model) selectID(id string) {
	for i, v := range m.Views {
		if v.Item.ID == id {
			m.Cursor = i
			m.clampOffset()
			return
		}
	}
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}

// cycle returns the choice after current, wrapping around
func cycle(choices []string, current string) string {
	if len(choices) == 0 {
		return query.All
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// playlistNames returns the sorted names of playlists containing itemID
func (m Model) playlistNames(itemID string) []string {
	var names []string
	for name := range m.PlaylistSvc.Membership(itemID) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	bodyHeight := m.Height - HeaderHeight - FooterHeight

	var body string
	switch m.State {
	case StateHelp:
		body = m.centered(styles.ModalStyle.Render(helpText), bodyHeight)
	case StateConfirmDelete:
		item, _ := m.LibrarySvc.Get(m.DetailID)
		body = m.centered(renderConfirm("Delete Item?", item.Title, "Ratings and playlist entries are kept."), bodyHeight)
	case StateConfirmClear:
		body = m.centered(renderConfirm("Clear Gallery?", fmt.Sprintf("This removes all %d items.", m.total), "Ratings and playlists are kept."), bodyHeight)
	case StateSort:
		body = m.centered(m.SortModal.View(), bodyHeight)
	case StatePlaylistPicker:
		body = m.centered(m.PlaylistModal.View(), bodyHeight)
	case StateNewPlaylist:
		body = m.centered(m.InputModal.View(), bodyHeight)
	case StateAddItem:
		body = m.centered(m.ItemForm.View(), bodyHeight)
	case StateDetail:
		body = m.renderDetail(bodyHeight)
	default:
		body = m.renderList(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		m.renderFooter(),
	)
}

func (m Model) centered(content string, height int) string {
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the title bar and active filters
func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("Vista")

	var badges []string
	if m.ActivePlaylist != "" {
		badges = append(badges, styles.BadgeStyle.Render("Playlist: "+m.ActivePlaylist))
	} else {
		if q := strings.TrimSpace(m.Request.Query); q != "" {
			badges = append(badges, styles.BadgeStyle.Render("/"+q))
		}
		badges = append(badges,
			styles.DimBadgeStyle.Render("Category: "+orAll(m.Request.Category)),
			styles.DimBadgeStyle.Render("Type: "+orAll(m.Request.Type)),
			styles.DimBadgeStyle.Render("Sort: "+m.Request.Sort.String()),
		)
	}
	count := styles.DimStyle.Render(fmt.Sprintf("%d of %d", len(m.Views), m.total))

	line := title + " " + strings.Join(badges, " ")
	gap := max(m.Width-lipgloss.Width(line)-lipgloss.Width(count), 1)
	return line + strings.Repeat(" ", gap) + count + "\n"
}

func orAll(s string) string {
	if s == "" {
		return query.All
	}
	return s
}

// renderList renders the visible window of results or an empty state
func (m Model) renderList(height int) string {
	if len(m.Views) == 0 {
		return m.renderEmpty()
	}

	end := min(m.offset+height, len(m.Views))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, RenderItemRow(m.Views[i], i == m.Cursor, m.Width))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderEmpty() string {
	var lines []string
	switch {
	case m.ActivePlaylist != "":
		lines = append(lines, styles.DimStyle.Render("This playlist is empty. Press esc to go back."))
	case m.total == 0:
		lines = append(lines, styles.DimStyle.Render("The gallery is empty. Press a to add an item, or start with -seed for sample content."))
	case strings.TrimSpace(m.Request.Query) != "":
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("No results for %q.", strings.TrimSpace(m.Request.Query))))
		if len(m.Suggestions) > 0 {
			lines = append(lines, styles.SubtitleStyle.Render("Did you mean: ")+styles.AccentStyle.Render(strings.Join(m.Suggestions, ", "))+"?")
		}
	default:
		lines = append(lines, styles.DimStyle.Render("Nothing matches these filters. Press esc to reset."))
	}
	return "  " + strings.Join(lines, "\n  ")
}

func (m Model) renderDetail(height int) string {
	v, ok := m.LibrarySvc.View(m.DetailID)
	if !ok {
		return styles.DimStyle.Render("  Item no longer exists.")
	}
	dc := detailContext{
		actionCursor: m.ActionCursor,
		playlists:    m.playlistNames(m.DetailID),
		summary:      m.Summaries[m.DetailID],
		summarizing:  m.Summarizing[m.DetailID],
		spinnerFrame: m.SpinnerFrame,
	}
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(RenderDetail(v, dc, m.Width-4))
}

// renderFooter renders the search input or status line with key hints
func (m Model) renderFooter() string {
	if m.State == StateSearching {
		return m.Search.View()
	}

	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	switch m.State {
	case StateDetail:
		hints = []string{"enter play", "1-5 rate", "S summarize", "space playlist", "x delete", "esc back"}
	case StateBrowsing:
		hints = []string{"/ search", "c category", "t type", "s sort", "a add", "P playlists"}
	}
	var center string
	for i, h := range hints {
		k, desc, _ := strings.Cut(h, " ")
		if i > 0 {
			center += "  "
		}
		center += styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)
	if leftWidth+centerWidth+rightWidth+2 >= m.Width {
		center, centerWidth = "", 0
	}
	if left == "" {
		left, leftWidth = " ", 1
	}

	gap := max(m.Width-leftWidth-centerWidth-rightWidth, 0)
	return left + strings.Repeat(" ", gap/2) + center + strings.Repeat(" ", gap-gap/2) + right
}

func renderConfirm(title, subject, note string) string {
	body := styles.ModalTitleStyle.Render(title) + "\n" +
		styles.SubtitleStyle.Render(subject) + "\n" +
		styles.DimStyle.Render(note) + "\n\n" +
		styles.HelpKeyStyle.Render("[Y]") + " Yes      " + styles.HelpKeyStyle.Render("[N]") + " No"
	return styles.ModalStyle.Render(body)
}

const helpText = `BROWSE                          ITEM
  j/k        Up/down              enter  Open / play action
  g/G        First/last item      1-5    Rate
  PgUp/PgDn  Scroll page          p      Play from start
  /          Search               S      AI summary
  c          Next category        space  Add to playlist
  t          Next type            x      Delete
  s          Sort

GALLERY                         OTHER
  a          Add item             esc    Back / reset filters
  P          Open playlist        ?      This help
  X          Clear gallery        q      Quit

Press any key to return...`
