// Package tui is the interactive terminal surface: a now-playing panel and
// the queue, with keys to advance playback and flip subtitles.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/playback"
	"github.com/voxfeld/reel/internal/tui/components"
	"github.com/voxfeld/reel/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelQueue
)

// App holds the TUI application state
type App struct {
	orchestrator *playback.Orchestrator
	storage      *playback.StateStorage
	refreshRate  time.Duration
}

// NewApp creates a new TUI application
func NewApp(orchestrator *playback.Orchestrator, storage *playback.StateStorage, refreshRate time.Duration) *App {
	if refreshRate == 0 {
		refreshRate = time.Second
	}
	return &App{
		orchestrator: orchestrator,
		storage:      storage,
		refreshRate:  refreshRate,
	}
}

// Run starts the TUI event loop.
func (a *App) Run() error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	snap *playback.Snapshot

	// Components
	nowPlaying *components.NowPlaying
	queueView  *components.Queue
	spinner    spinner.Model

	// Overlays
	showHelp bool

	// Error handling
	lastError   error
	errorExpiry time.Time

	advancing bool
	quitting  bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return Model{
		app:          app,
		focusedPanel: PanelNowPlaying,
		nowPlaying:   components.NewNowPlaying(),
		queueView:    components.NewQueue(),
		spinner:      sp,
	}
}

// Messages
type tickMsg time.Time
type snapshotMsg *playback.Snapshot
type advancedMsg struct{}
type errMsg error

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap := m.app.orchestrator.Store().Snapshot()
		return snapshotMsg(&snap)
	}
}

func (m Model) advance(target playback.Target) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.app.orchestrator.Advance(ctx, target); err != nil {
			return errMsg(err)
		}
		m.persist()
		return advancedMsg{}
	}
}

func (m Model) changeSubtitle(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg(err)
		}
		m.persist()
		return advancedMsg{}
	}
}

// persist writes the committed state so one-shot commands and tail
// followers observe what the TUI did.
func (m Model) persist() {
	if m.app.storage == nil {
		return
	}
	_ = m.app.storage.Save(m.app.orchestrator.Store().Snapshot())
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchSnapshot(), m.tick())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchSnapshot(), m.tick())

	case snapshotMsg:
		m.snap = msg
		return m, nil

	case advancedMsg:
		m.advancing = false
		return m, m.fetchSnapshot()

	case errMsg:
		m.advancing = false
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second)
		return m, nil

	case spinner.TickMsg:
		if !m.advancing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "tab":
		if m.focusedPanel == PanelNowPlaying {
			m.focusedPanel = PanelQueue
		} else {
			m.focusedPanel = PanelNowPlaying
		}
		return m, nil

	case "n", "right":
		if m.advancing {
			return m, nil
		}
		m.advancing = true
		return m, tea.Batch(m.advance(playback.Next()), m.spinner.Tick)

	case "p", "left":
		if m.advancing {
			return m, nil
		}
		m.advancing = true
		return m, tea.Batch(m.advance(playback.Previous()), m.spinner.Tick)

	case "s":
		return m, m.changeSubtitle(m.app.orchestrator.ToggleSubtitle)

	case "S":
		return m, m.changeSubtitle(func() error {
			return m.app.orchestrator.ChangeSubtitleTrack(core.NoSubtitle())
		})

	case "j", "down":
		if m.focusedPanel == PanelQueue {
			m.queueView.ScrollDown()
		}
		return m, nil

	case "k", "up":
		if m.focusedPanel == PanelQueue {
			m.queueView.ScrollUp()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var queue *core.Queue
	if m.snap != nil {
		queue = &m.snap.Queue
	}

	contentHeight := m.height - 3
	topHeight := contentHeight / 2
	bottomHeight := contentHeight - topHeight

	top := m.nowPlaying.Render(m.snap, m.width-2, topHeight, m.focusedPanel == PanelNowPlaying)
	bottom := m.queueView.Render(queue, m.width-2, bottomHeight, m.focusedPanel == PanelQueue)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		bottom,
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	if m.lastError != nil && time.Now().Before(m.errorExpiry) {
		msg := m.lastError.Error()
		if len(msg) > m.width-10 {
			msg = msg[:m.width-10]
		}
		return lipgloss.NewStyle().Foreground(styles.Error).Render(" ✗ " + msg)
	}

	if m.advancing {
		return " " + m.spinner.View() + styles.Dim.Render(" advancing...")
	}
	return styles.Dim.Render(" n next  p previous  s subtitles  tab focus  ? help  q quit")
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"n / →", "Play next item in queue"},
		{"p / ←", "Play previous item in queue"},
		{"s", "Toggle subtitles"},
		{"S", "Disable subtitles"},
		{"j / k", "Scroll queue"},
		{"tab", "Switch panel focus"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.Highlight.Render(fmt.Sprintf("%-6s", r.key)),
			r.desc))
	}
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("Press ? to close"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}
