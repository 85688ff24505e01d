package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ScanView ViewState = iota
	ArtistListView
	EventDetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.ScanEngine
	request      tasks.ScanRequest
	width        int
	height       int
	artistList   list.Model
	selected     *models.ArtistResult
	progressChan chan tasks.ProgressUpdate
	doneChan     chan scanCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.ScanResult
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.quit},
	}
}

// artistItem wraps [models.ArtistResult] to implement list.Item.
type artistItem struct {
	result models.ArtistResult
}

func (i artistItem) FilterValue() string { return i.result.Artist.Name }
func (i artistItem) Title() string {
	return fmt.Sprintf("%s (%d concerts)", i.result.Artist.Name, len(i.result.Events))
}
func (i artistItem) Description() string {
	return fmt.Sprintf("popularity %d/100 • %d followers", i.result.Artist.Popularity, i.result.Artist.Followers)
}

type progressUpdateMsg tasks.ProgressUpdate

type scanCompleteMsg struct {
	result *tasks.ScanResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.ScanEngine, request tasks.ScanRequest) *Model {
	return &Model{
		ctx:     ctx,
		view:    ScanView,
		engine:  engine,
		request: request,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the scan in the background.
func (m *Model) Init() tea.Cmd {
	return m.startScan()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The list exists only once the scan has produced results
		if m.view != ScanView {
			m.artistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ScanView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case ArtistListView:
			return m.handleArtistListKeys(msg)
		case EventDetailView:
			return m.handleDetailKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case scanCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.progressChan = nil
		m.doneChan = nil
		if m.err != nil || m.result == nil || m.result.Outcome != tasks.OutcomeOK {
			return m, nil
		}

		items := make([]list.Item, len(m.result.Aggregation.Results))
		for i, res := range m.result.Aggregation.Results {
			items[i] = artistItem{result: res}
		}
		m.artistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.artistList.Title = fmt.Sprintf("Artists with upcoming concerts (%d)", len(items))
		m.artistList.SetSize(m.width-4, m.height-8)
		m.view = ArtistListView
		return m, nil
	}

	if m.view == ArtistListView {
		var cmd tea.Cmd
		m.artistList, cmd = m.artistList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.error.Render(fmt.Sprintf("Scan failed: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ScanView:
		return m.renderScan()
	case ArtistListView:
		return m.renderArtistList()
	case EventDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleArtistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.artistList.SelectedItem()
		if selected != nil {
			if it, ok := selected.(artistItem); ok {
				res := it.result
				m.selected = &res
				m.view = EventDetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ArtistListView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

// startScan launches the engine in the background. The goroutine communicates
// only over channels; model fields are mutated exclusively in [Model.Update].
func (m *Model) startScan() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.doneChan = make(chan scanCompleteMsg, 1)
	progress, done := m.progressChan, m.doneChan

	go func() {
		result, err := m.engine.Run(m.ctx, m.request, progress)
		done <- scanCompleteMsg{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}

		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderScan() string {
	if m.result != nil && m.err == nil && m.result.Outcome != tasks.OutcomeOK {
		switch m.result.Outcome {
		case tasks.OutcomeEmptyPlaylist:
			return styles.warning.Render("The playlist has no tracks.\n\nPress q to quit")
		case tasks.OutcomeNoMatches:
			return styles.warning.Render("No artists from this playlist have upcoming concerts in the window.\n\nPress q to quit")
		}
	}

	title := styles.title.Render("Scanning playlist for concerts")

	var phase string
	switch m.progress.Phase {
	case tasks.AcquireToken:
		phase = "Acquiring Spotify token..."
	case tasks.ResolvePlaylist:
		phase = "Resolving playlist artists..."
	case tasks.SearchEvents:
		phase = fmt.Sprintf("Searching events (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.FetchArtist:
		phase = fmt.Sprintf("Fetching artist info (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Aggregate:
		phase = "Aggregating results..."
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderArtistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.artistList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	title := styles.title.Render(fmt.Sprintf("%s: %d upcoming concert(s)", m.selected.Artist.Name, len(m.selected.Events)))
	body := fmt.Sprintf("Popularity: %d/100  Followers: %d\n", m.selected.Artist.Popularity, m.selected.Artist.Followers)

	for _, ev := range m.selected.Events {
		body += fmt.Sprintf("\n%s\n  %s (%s, %s)\n  %s\n", ev.Name, ev.Venue, ev.City, ev.Country, ev.FormattedDate())
		if link := ev.CalendarLink(); link != "" {
			body += styles.help.Render("  "+link) + "\n"
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, body, helpView)
}
