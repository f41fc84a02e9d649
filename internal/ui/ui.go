package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/player"
	"github.com/nexusaudio/nexus/internal/search"
	"github.com/nexusaudio/nexus/internal/shared"
)

// Searcher executes a keyword search against the catalog.
type Searcher func(ctx context.Context, keyword string) ([]models.Track, error)

// Model represents the search overlay state.
type Model struct {
	ctx      context.Context
	logger   *log.Logger
	searcher Searcher
	session  *search.Session
	overlay  *search.Overlay
	playback *player.Session
	input    textinput.Model
	results  list.Model
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// keyMap defines the key bindings for the overlay.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	play  key.Binding
	stop  key.Binding
	close key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play preview"),
		),
		stop: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "stop"),
		),
		close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.close, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play},
		{k.stop, k.close, k.quit},
	}
}

// trackItem wraps [models.Track] to implement list.Item.
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := fmt.Sprintf("%s • $%s", i.track.Artist, i.track.PriceBasic)
	if i.track.Bpm > 0 {
		desc = fmt.Sprintf("%s • %d BPM", desc, i.track.Bpm)
	}
	desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.track.DurationSec))
	return desc
}

type debounceElapsedMsg struct {
	query string
}

type searchResultMsg struct {
	generation int
	tracks     []models.Track
	err        error
}

type openFinishedMsg struct{}

type closeFinishedMsg struct{}

// NewModel creates a new overlay model with the provided dependencies. A nil
// sink disables playback but leaves search usable.
func NewModel(ctx context.Context, logger *log.Logger, searcher Searcher, sink player.Sink) *Model {
	input := textinput.New()
	input.Placeholder = "Search tracks..."
	input.Focus()

	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Results"
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)

	return &Model{
		ctx:      ctx,
		logger:   logger,
		searcher: searcher,
		session:  search.NewSession(0),
		overlay:  search.NewOverlay(0, nil),
		playback: player.NewSession(sink),
		input:    input,
		results:  results,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init opens the overlay and starts cursor blinking.
func (m *Model) Init() tea.Cmd {
	m.overlay.RequestOpen(nil)
	return tea.Batch(textinput.Blink, func() tea.Msg { return openFinishedMsg{} })
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.results.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case openFinishedMsg:
		m.overlay.OpenFinished()
		return m, nil

	case debounceElapsedMsg:
		if issue, generation := m.session.DebounceElapsed(msg.query); issue {
			return m, m.runSearch(msg.query, generation)
		}
		return m, nil

	case searchResultMsg:
		if msg.err != nil {
			if m.session.Fail(msg.generation, msg.err) {
				m.logger.Error("search failed", "error", msg.err)
				m.results.SetItems([]list.Item{})
			}
			return m, nil
		}
		if m.session.Resolve(msg.generation, msg.tracks) {
			items := make([]list.Item, len(msg.tracks))
			for i, track := range msg.tracks {
				items[i] = trackItem{track: track}
			}
			m.results.SetItems(items)
		}
		return m, nil

	case closeFinishedMsg:
		m.overlay.CloseFinished()
		m.playback.Stop()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.close):
		if m.overlay.RequestClose() {
			return m, tea.Tick(m.overlay.CloseDuration(), func(time.Time) tea.Msg {
				return closeFinishedMsg{}
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.play):
		return m, m.playSelected()

	case key.Matches(msg, m.keys.stop):
		m.playback.Stop()
		return m, nil

	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.session.Input(m.input.Value()) {
		query := m.session.Query()
		tick := tea.Tick(m.session.Debounce(), func(time.Time) tea.Msg {
			return debounceElapsedMsg{query: query}
		})
		return m, tea.Batch(cmd, tick)
	}

	m.results.SetItems([]list.Item{})
	return m, cmd
}

func (m *Model) playSelected() tea.Cmd {
	selected := m.results.SelectedItem()
	if selected == nil {
		return nil
	}

	item, ok := selected.(trackItem)
	if !ok {
		return nil
	}

	previewURL := ""
	if item.track.PreviewURL != nil {
		previewURL = *item.track.PreviewURL
	}

	if err := m.playback.Play(item.track.ID, previewURL); err != nil {
		m.logger.Warn("preview unavailable", "track", item.track.ID, "error", err)
	}
	return nil
}

func (m *Model) runSearch(query string, generation int) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.searcher(m.ctx, query)
		return searchResultMsg{generation: generation, tracks: tracks, err: err}
	}
}

// View renders the overlay.
func (m *Model) View() string {
	title := styles.title.Render("Track Search")
	status := m.statusLine()
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n%s", title, m.input.View(), status, m.results.View(), helpView)
}

func (m *Model) statusLine() string {
	switch m.session.State() {
	case search.Loading:
		return styles.warn.Render("Searching...")
	case search.Results:
		return styles.ok.Render(fmt.Sprintf("%d tracks", len(m.session.Results())))
	case search.Empty:
		return styles.warn.Render(fmt.Sprintf("No tracks match %q", m.session.Query()))
	case search.Error:
		return styles.err.Render("Search unavailable, showing no results")
	default:
		return styles.help.Render("Type to search the catalog")
	}
}
