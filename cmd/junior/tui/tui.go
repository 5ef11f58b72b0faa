// Package tui implements the interactive task dashboard: a live task
// list, a detail panel with agent output and diffs, and modals for
// submitting tasks, sending feedback, deleting tasks, and opening pull
// requests.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/github"
	"github.com/vinayakankugoyal/junior/internal/outputfmt"
)

// Tick intervals for adaptive list polling
const (
	tickIntervalActive = 2 * time.Second  // Poll frequently while tasks are running
	tickIntervalIdle   = 10 * time.Second // Poll less when nothing is running
)

// detailTickInterval is the poll cadence for the task open in the
// detail view.
const detailTickInterval = 1 * time.Second

// TUI styles using AdaptiveColor for light/dark terminal support.
// Light colors are chosen for dark-on-light terminals; Dark colors for light-on-dark.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "125", Dark: "205"}) // Magenta/Pink

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "246"}) // Gray

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "153", Dark: "24"}) // Light blue background

	runningStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "33"})   // Blue
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "46"})   // Green
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"}) // Red

	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "46"})   // Green
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"}) // Red
	renamedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "51"})   // Cyan

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "246"}) // Gray
	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "248", Dark: "240"}) // Dimmer gray for descriptions
)

// renderHelpTable renders helpItem entries as an aligned table. Keys
// and descriptions are two-tone gray, separated by a thin ▕ border that
// is hidden for column 0.
func renderHelpTable(rows [][]helpItem) string {
	if len(rows) == 0 {
		return ""
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	// Minimum visible width per column: key + space + desc.
	colMinW := make([]int, maxCols)
	for _, row := range rows {
		for c, item := range row {
			w := runewidth.StringWidth(item.key)
			if item.desc != "" {
				w += 1 + runewidth.StringWidth(item.desc)
			}
			if w > colMinW[c] {
				colMinW[c] = w
			}
		}
	}

	borderColor := lipgloss.AdaptiveColor{Light: "248", Dark: "242"}
	cellStyle := lipgloss.NewStyle()
	cellWithBorder := lipgloss.NewStyle().
		PaddingLeft(1).
		Border(lipgloss.Border{Left: "▕"}, false, false, false, true).
		BorderForeground(borderColor)

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			minW := 0
			if col < len(colMinW) {
				minW = colMinW[col]
			}
			if col == 0 {
				return cellStyle.Width(minW)
			}
			return cellWithBorder.Width(minW + 2) // +2 for ▕ border + padding
		}).
		Wrap(false)

	for _, row := range rows {
		styled := make([]string, maxCols)
		for i, item := range row {
			if item.desc != "" {
				styled[i] = helpKeyStyle.Render(item.key) + " " + helpDescStyle.Render(item.desc)
			} else {
				styled[i] = helpKeyStyle.Render(item.key)
			}
		}
		t = t.Row(styled...)
	}

	return t.Render()
}

type model struct {
	serverAddr   string
	client       api.Client
	session      *github.Session
	glamourStyle gansi.StyleConfig // detected once at init

	tasks       []api.Task
	filter      api.ListFilter
	selectedIdx int
	selectedID  string // Track selection by ID to maintain position on refresh
	currentView viewKind

	// Detail panel state
	current        *api.Task
	content        *api.TaskContent
	contentErr     error
	contentLoading bool
	detailScroll   int
	detailErr      error // last non-silent refresh failure for the open task
	detailSeq      int   // incremented when the panel opens or closes; stale ticks are dropped

	width  int
	height int
	err    error

	loadingTasks     bool
	tasksFetchedOnce bool
	fetchSeq         int // incremented on filter changes; stale fetch responses are discarded

	listInterval   time.Duration
	detailInterval time.Duration

	// Submit form state
	submitText    string
	submitRepoIdx int
	submitPending bool // request in flight
	submitErr     string

	// Delete confirmation state
	deleteTaskID  string
	deletePending bool // request in flight
	deleteErr     string

	// PR modal state
	prTitle   string
	prBody    string
	prField   int // 0 = title, 1 = body
	prPending bool
	prErr     string

	// Feedback modal state
	feedbackText    string
	feedbackPending bool
	feedbackErr     string

	// Help view state
	helpFromView viewKind

	// Flash message (temporary status message shown briefly)
	flashMessage   string
	flashExpiresAt time.Time
	flashView      viewKind // View where flash was triggered (only show in same view)

	clipboard ClipboardWriter
}

func newModel(cfg Config) model {
	listInterval := cfg.ListInterval
	if listInterval <= 0 {
		listInterval = tickIntervalActive
	}
	detailInterval := cfg.DetailInterval
	if detailInterval <= 0 {
		detailInterval = detailTickInterval
	}

	client := cfg.client
	if client == nil {
		client = api.NewHTTPClient(cfg.ServerAddr)
	}

	session := github.NewSession()
	session.SetToken(cfg.GitHubToken)

	return model{
		serverAddr:     cfg.ServerAddr,
		client:         client,
		session:        session,
		glamourStyle:   outputfmt.GlamourStyle(),
		tasks:          []api.Task{},
		filter:         api.FilterAll,
		currentView:    viewList,
		width:          80, // sensible defaults until we get WindowSizeMsg
		height:         24,
		loadingTasks:   true, // Init() calls fetchTasks, so mark as loading
		listInterval:   listInterval,
		detailInterval: detailInterval,
		clipboard:      &realClipboard{},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(), // request initial window size
		m.tick(),
		m.fetchTasks(),
		m.loadSession(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTickMsg(msg)
	case detailTickMsg:
		return m.handleDetailTickMsg(msg)
	case tasksMsg:
		return m.handleTasksMsg(msg)
	case tasksErrMsg:
		return m.handleTasksErrMsg(msg)
	case taskMsg:
		return m.handleTaskMsg(msg)
	case contentMsg:
		return m.handleContentMsg(msg)
	case sessionMsg:
		return m.handleSessionMsg(msg)
	case submitResultMsg:
		return m.handleSubmitResultMsg(msg)
	case deleteResultMsg:
		return m.handleDeleteResultMsg(msg)
	case prResultMsg:
		return m.handlePRResultMsg(msg)
	case feedbackResultMsg:
		return m.handleFeedbackResultMsg(msg)
	case clipboardResultMsg:
		return m.handleClipboardResultMsg(msg)
	}
	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case viewSubmit:
		return m.renderSubmitView()
	case viewConfirmDelete:
		return m.renderConfirmDeleteView()
	case viewPR:
		return m.renderPRView()
	case viewFeedback:
		return m.renderFeedbackView()
	case viewHelp:
		return m.renderHelpView()
	case viewDetail:
		if m.current != nil {
			return m.renderDetailView()
		}
	}
	return m.renderListView()
}

// Config holds resolved parameters for running the dashboard.
type Config struct {
	ServerAddr     string
	GitHubToken    string
	ListInterval   time.Duration
	DetailInterval time.Duration

	// client overrides the API client, for tests.
	client api.Client
}

// Run starts the interactive dashboard.
func Run(cfg Config) error {
	p := tea.NewProgram(
		newModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
