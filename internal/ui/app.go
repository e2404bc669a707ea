// Package ui provides terminal user interface components for the pomotodo app.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"pomotodo/internal/config"
	"pomotodo/internal/notify"
	"pomotodo/internal/pomodoro"
	"pomotodo/internal/sound"
	"pomotodo/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTimer PaneID = iota
	PaneTasks
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows both panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	Theme                 *config.ThemeConfig
	Timer                 pomodoro.Config
	ConfirmDeletions      bool
	ShowOnboarding        bool
	NarrowLayoutThreshold int

	// Notifications controls desktop notifications on phase completion.
	Notifications bool
	// Chime controls the completion sound.
	Chime bool

	Notifier notify.Notifier
	Player   sound.Player
}

// App is the main application model that coordinates all panes.
type App struct {
	storage     *storage.Storage
	styles      *Styles
	config      *AppConfig
	taskPane    *TaskPane
	timerPane   *TimerPane
	helpOverlay *HelpOverlay
	undoManager *UndoManager
	undoBusy    bool
	confirmDel  *confirmDeleteState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	showWelcome bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection (x coordinates)
	timerPaneStart int
	timerPaneEnd   int
	tasksPaneStart int
	tasksPaneEnd   int
	contentTop     int // Y coordinate where content starts
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, styles *Styles, cfg *AppConfig) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			Timer:                 pomodoro.DefaultConfig(),
			ConfirmDeletions:      true,
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	// Create panes with config-aware key bindings
	timerPane := NewTimerPaneWithKeys(store, styles, cfg.Keys, cfg.Timer)
	taskPane := NewTaskPaneWithKeys(store, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	// Determine if we should show welcome screen
	showWelcome := cfg.ShowOnboarding && isFirstRun(store)

	app := &App{
		storage:     store,
		styles:      styles,
		config:      cfg,
		taskPane:    taskPane,
		timerPane:   timerPane,
		helpOverlay: helpOverlay,
		undoManager: NewUndoManager(),
		activePane:  PaneTimer,
		showHelp:    false,
		showWelcome: showWelcome,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	// Set initial focus
	timerPane.SetFocused(true)
	taskPane.SetFocused(false)

	return app
}

// isFirstRun checks if this appears to be the first time running the app.
// We detect this by checking if data files exist and are empty.
func isFirstRun(store *storage.Storage) bool {
	tasks, err := store.LoadTasks()
	if err != nil {
		return false
	}
	if len(tasks.Tasks) > 0 {
		return false
	}

	sessions, err := store.LoadSessions()
	if err != nil {
		return false
	}
	return len(sessions.Entries) == 0
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.taskPane.LoadTasksCmd(),
		a.timerPane.LoadSessionsCmd(),
		loadSettingsCmd(a.storage),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Route async messages to all panes first (before key handling).
	// This ensures storage operation results are processed regardless
	// of which pane is active.
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Tasks: "+msg.err.Error(), true)
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskEditedMsg:
		if msg.err != nil {
			a.SetStatus("Edit task: "+msg.err.Error(), true)
		} else if msg.prev != nil {
			// Push undo action on successful edit (only if prior state was captured)
			a.undoManager.Push(NewEditTaskAction(a.storage, *msg.prev, msg.text, msg.estimate))
			if msg.id == a.timerPane.ActiveTaskID() {
				a.timerPane.SetActiveTask(msg.id, msg.text)
			}
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskCompletedMsg:
		if msg.err != nil {
			a.SetStatus("Complete task: "+msg.err.Error(), true)
		} else {
			// Push undo action on successful completion
			a.undoManager.Push(NewCompleteTaskAction(a.storage, msg.id, msg.text))
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskUncompletedMsg:
		if msg.err != nil {
			a.SetStatus("Uncomplete task: "+msg.err.Error(), true)
		} else {
			// Push undo action on successful uncompletion
			a.undoManager.Push(NewUncompleteTaskAction(a.storage, msg.id, msg.text))
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete task: "+msg.err.Error(), true)
		} else if msg.task != nil {
			// Push undo action on successful deletion (only if task was captured)
			a.undoManager.Push(NewDeleteTaskAction(a.storage, *msg.task))
			if msg.id == a.timerPane.ActiveTaskID() {
				a.timerPane.SetActiveTask("", "")
				a.taskPane.SetActiveID("")
			}
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case taskMovedMsg:
		if msg.err != nil {
			a.SetStatus("Move task: "+msg.err.Error(), true)
		} else {
			text := ""
			if task := a.taskPane.TaskByID(msg.id); task != nil {
				text = task.Text
			}
			a.undoManager.Push(NewMoveTaskAction(a.storage, msg.id, text, msg.from, msg.to))
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case pomodoroRecordedMsg:
		if msg.err != nil {
			a.SetStatus("Record pomodoro: "+msg.err.Error(), true)
		} else if msg.task != nil {
			if msg.task.Done {
				a.SetStatus(fmt.Sprintf("🍅 %s — all %d done!", truncateText(msg.task.Text, 30), msg.task.Estimate), false)
			} else {
				a.SetStatus(fmt.Sprintf("🍅 %s (%d/%d)", truncateText(msg.task.Text, 30), msg.task.Completed, msg.task.Estimate), false)
			}
		}
		cmd := a.taskPane.Update(msg)
		return a, cmd

	case setActiveTaskMsg:
		a.timerPane.SetActiveTask(msg.id, msg.text)
		a.taskPane.SetActiveID(msg.id)
		if msg.id == "" {
			a.SetStatus("Active task cleared", false)
		} else {
			a.SetStatus("Working on: "+truncateText(msg.text, 40), false)
		}
		return a, nil

	case settingsLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Settings: "+msg.err.Error(), true)
		}
		var cmd tea.Cmd
		if msg.settings != nil {
			if err := a.timerPane.Timer().SetConfig(msg.settings.TimerConfig()); err != nil {
				a.SetStatus("Settings: "+err.Error(), true)
			}
			if msg.settings.DarkMode != a.styles.Dark {
				a.setStyles(NewStylesFromTheme(a.config.Theme, msg.settings.DarkMode))
			}
			cmd = a.timerPane.Update(msg)
		}
		return a, cmd

	case settingsSavedMsg:
		if msg.err != nil {
			a.SetStatus("Save settings: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Settings saved", false)
		}
		cmd := a.timerPane.Update(msg)
		return a, cmd

	case darkModeToggledMsg:
		if msg.err != nil {
			a.SetStatus("Dark mode: "+msg.err.Error(), true)
		} else if msg.settings != nil {
			a.setStyles(NewStylesFromTheme(a.config.Theme, msg.settings.DarkMode))
			if msg.settings.DarkMode {
				a.SetStatus("Dark mode on", false)
			} else {
				a.SetStatus("Dark mode off", false)
			}
		}
		return a, nil

	case sessionsLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Sessions: "+msg.err.Error(), true)
		}
		cmd := a.timerPane.Update(msg)
		return a, cmd

	case sessionLoggedMsg:
		if msg.err != nil {
			a.SetStatus("Log session: "+msg.err.Error(), true)
		}
		cmd := a.timerPane.Update(msg)
		return a, cmd

	case phaseSkippedMsg:
		return a, tea.Batch(a.phaseCompleteCmds(msg.ev)...)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmDel.cmd
				a.confirmDel = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Check if any pane is in input mode
		inInputMode := a.taskPane.IsAdding() || a.timerPane.IsEditing()

		if !inInputMode {
			// Confirm deletions if enabled.
			if a.config.ConfirmDeletions && a.activePane == PaneTasks {
				if key.Matches(msg, a.taskPane.keys.Delete) {
					if len(a.taskPane.tasks) == 0 || a.taskPane.cursor < 0 || a.taskPane.cursor >= len(a.taskPane.tasks) {
						a.SetStatus("No task selected", true)
						return a, nil
					}
					task := a.taskPane.tasks[a.taskPane.cursor]
					a.confirmDel = &confirmDeleteState{
						title: "Delete task?",
						body:  truncateText(task.Text, 60),
						cmd:   deleteTaskCmd(a.storage, task.ID),
					}
					return a, nil
				}
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneTimer)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneTasks)
				return a, nil

			case key.Matches(msg, a.keys.DarkMode):
				return a, toggleDarkModeCmd(a.storage, !a.styles.Dark)

			case key.Matches(msg, a.keys.Undo):
				if a.undoBusy {
					a.SetStatus("Undo: busy", true)
					return a, nil
				}
				a.undoBusy = true
				return a, undoCmd(a.undoManager)

			case key.Matches(msg, a.keys.Redo):
				if a.undoBusy {
					a.SetStatus("Redo: busy", true)
					return a, nil
				}
				a.undoBusy = true
				return a, redoCmd(a.undoManager)
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		if a.showWelcome {
			if msg.Action == tea.MouseActionPress {
				a.showWelcome = false
			}
			return a, nil
		}

		if a.confirmDel != nil {
			if msg.Action == tea.MouseActionPress {
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
			}
			return a, nil
		}

		// Ignore mouse events when help overlay is shown
		if a.showHelp {
			// Any click closes help
			if msg.Action == tea.MouseActionPress {
				a.showHelp = false
			}
			return a, nil
		}

		// Handle mouse events
		switch msg.Action {
		case tea.MouseActionPress:
			// In narrow mode, check for tab bar clicks
			if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
				// Tab bar click - determine which tab based on X position
				if msg.X < a.width/2 {
					a.setActivePane(PaneTimer)
				} else {
					a.setActivePane(PaneTasks)
				}
				return a, nil
			}

			// Determine which pane was clicked (in wide mode)
			clickedPane := a.paneAtPosition(msg.X)
			if clickedPane >= 0 && clickedPane != a.activePane {
				a.setActivePane(clickedPane)
			}

			// Forward click to active pane with adjusted coordinates
			if msg.Y >= a.contentTop {
				localMsg := msg
				localMsg.Y = msg.Y - a.contentTop
				// Adjust X for the tasks pane in wide mode
				if a.layoutMode == LayoutWide && a.activePane == PaneTasks {
					localMsg.X = msg.X - a.tasksPaneStart
				}

				switch a.activePane {
				case PaneTimer:
					cmd := a.timerPane.Update(localMsg)
					return a, cmd
				case PaneTasks:
					cmd := a.taskPane.Update(localMsg)
					return a, cmd
				}
			}

		case tea.MouseActionMotion:
			// Ignore motion events for now

		}

		// Handle scroll wheel
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			// Forward scroll to the tasks pane only; the timer has nothing to scroll
			if a.activePane == PaneTasks {
				localMsg := msg
				localMsg.Y = msg.Y - a.contentTop
				cmd := a.taskPane.Update(localMsg)
				return a, cmd
			}
		}

		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}

		cmds = append(cmds, tickCmd())

		// Advance the pomodoro clock. A non-nil event means a phase just
		// completed and fans out to the session log, task credit, and
		// the notification/chime hooks.
		if ev := a.timerPane.Tick(); ev != nil {
			cmds = append(cmds, a.phaseCompleteCmds(ev)...)
		}
		return a, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case undoResultMsg:
		a.undoBusy = false
		if msg.err != nil {
			a.SetStatus("Undo failed: "+msg.err.Error(), true)
		} else if msg.desc != "" {
			a.SetStatus("Undid: "+msg.desc, false)
		} else {
			a.SetStatus("Nothing to undo", false)
		}
		return a, a.taskPane.LoadTasksCmd()

	case redoResultMsg:
		a.undoBusy = false
		if msg.err != nil {
			a.SetStatus("Redo failed: "+msg.err.Error(), true)
		} else if msg.desc != "" {
			a.SetStatus("Redid: "+msg.desc, false)
		} else {
			a.SetStatus("Nothing to redo", false)
		}
		return a, a.taskPane.LoadTasksCmd()
	}

	// Forward to active pane (only if help is not shown)
	if !a.showHelp {
		switch a.activePane {
		case PaneTimer:
			cmd := a.timerPane.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneTasks:
			cmd := a.taskPane.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// phaseCompleteCmds builds the command fan-out for a completed phase:
// append to the session log, credit the active task after a focus phase,
// and fire the notification and chime.
func (a *App) phaseCompleteCmds(ev *pomodoro.Event) []tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, logSessionCmd(a.storage, a.timerPane.PhaseEntry(ev.Ended)))

	if ev.Ended == pomodoro.PhaseFocus && a.timerPane.ActiveTaskID() != "" {
		cmds = append(cmds, recordPomodoroCmd(a.storage, a.timerPane.ActiveTaskID()))
	}

	if a.config.Notifications {
		cmds = append(cmds, notifyPhaseCmd(a.config.Notifier, ev.Ended, ev.Next, a.timerPane.ActiveTaskText(), a.config.Chime))
	}
	if a.config.Chime {
		cmds = append(cmds, playChimeCmd(a.config.Player))
	}

	title, _ := notify.PhaseMessage(ev.Ended, ev.Next, a.timerPane.ActiveTaskText())
	a.SetStatus(title, false)

	return cmds
}

// setStyles swaps the style set on the app and every pane.
func (a *App) setStyles(styles *Styles) {
	a.styles = styles
	a.taskPane.styles = styles
	a.timerPane.styles = styles
	a.helpOverlay.styles = styles
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	if a.activePane == PaneTimer {
		a.setActivePane(PaneTasks)
	} else {
		a.setActivePane(PaneTimer)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.timerPane.SetFocused(pane == PaneTimer)
	a.taskPane.SetFocused(pane == PaneTasks)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		// In narrow mode, return the active pane
		return a.activePane
	}

	if x >= a.timerPaneStart && x < a.timerPaneEnd {
		return PaneTimer
	}
	if x >= a.tasksPaneStart && x < a.tasksPaneEnd {
		return PaneTasks
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	// Update help overlay size
	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	// Determine layout mode based on configured threshold
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		// In narrow mode, leave room for tab bar (1 line)
		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		// Give full width to both panes (only focused one will be shown)
		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.timerPane.SetSize(paneWidth, narrowHeight)
		a.taskPane.SetSize(paneWidth, narrowHeight)

		// In narrow mode, both panes occupy the same space
		a.timerPaneStart = 0
		a.timerPaneEnd = a.width
		a.tasksPaneStart = 0
		a.tasksPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: two panes side-by-side
		a.layoutMode = LayoutWide

		var timerWidth, tasksWidth int
		if totalWidth < 120 {
			// Medium: timer takes a bit less than half
			timerWidth = (totalWidth * 42) / 100
			tasksWidth = totalWidth - timerWidth - 1
		} else {
			// Wide: comfortable two-column with max widths
			timerWidth = min((totalWidth*40)/100, 48)
			tasksWidth = min(totalWidth-timerWidth-1, 64)
		}

		a.timerPane.SetSize(timerWidth, contentHeight)
		a.taskPane.SetSize(tasksWidth, contentHeight)

		// Calculate pane positions (with 1 space gap between panes)
		a.timerPaneStart = 0
		a.timerPaneEnd = timerWidth
		a.tasksPaneStart = timerWidth + 1
		a.tasksPaneEnd = a.tasksPaneStart + tasksWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	titleBar := a.renderTitleBar()
	b.WriteString(titleBar)
	b.WriteString("\n")

	// Main content - switch based on layout mode
	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	// Help bar
	helpBar := a.renderHelpBar()
	b.WriteString(helpBar)

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to pomotodo"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Tab switches panes. ? opens help.\n"))
	b.WriteString(bodyStyle.Render("Add your first task with 'a', pick it with space,\n"))
	b.WriteString(bodyStyle.Render("then start a pomodoro with space in the timer pane.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders both panes side by side.
func (a *App) renderWideContent() string {
	timerView := a.timerPane.View()
	tasksView := a.taskPane.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, timerView, " ", tasksView)
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	// Tab bar at top
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	// Only render the active pane
	switch a.activePane {
	case PaneTimer:
		b.WriteString(a.timerPane.View())
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	// Tab labels
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTimer, "Timer"},
		{PaneTasks, "Tasks"},
	}

	// Create tab styles
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			// Active tab: highlighted with brackets
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			// Inactive tab: muted
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	// Center the tabs
	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows a nice exit message with session summary.
func (a *App) renderGoodbye() string {
	tasksDone, tasksTotal := a.taskPane.Stats()
	sessions := a.timerPane.Sessions()
	pomodoros := a.storage.PomodorosToday(sessions)
	focus := a.storage.FocusTotalToday(sessions)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if tasksTotal > 0 || pomodoros > 0 {
		b.WriteString("  Today's progress:\n")
		if pomodoros > 0 {
			b.WriteString(fmt.Sprintf("     Pomodoros: %d (%s focused)\n", pomodoros, formatDurationShort(focus)))
		}
		if tasksTotal > 0 {
			pct := (tasksDone * 100) / tasksTotal
			b.WriteString(fmt.Sprintf("     Tasks:     %d/%d (%d%%)\n", tasksDone, tasksTotal, pct))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with stats and timer status.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" pomotodo ")

	// Stats summary
	tasksDone, tasksTotal := a.taskPane.Stats()

	var statsItems []string
	if tasksTotal > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Tasks: %d/%d", tasksDone, tasksTotal))
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))

	// Timer status indicator
	var timerStatus string
	timer := a.timerPane.Timer()
	if timer.Phase() != pomodoro.PhaseIdle {
		glyph := "▶"
		if !timer.Running() {
			glyph = "⏸"
		}
		label := timer.Phase().Label()
		timerStatus = a.styles.TimerRunningStyle.Render(fmt.Sprintf("%s %s %s", glyph, label, formatClock(timer.Remaining())))
	}

	// Current date/time
	now := time.Now()
	dateStr := now.Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	// Calculate spacing
	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	timerWidth := lipgloss.Width(timerStatus)
	dateWidth := lipgloss.Width(date)

	usedWidth := titleWidth + statsWidth + timerWidth + dateWidth
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	// Build the title bar
	var parts []string
	parts = append(parts, title)

	if stats != "" {
		parts = append(parts, "  "+stats)
	}

	// Distribute spacing
	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	parts = append(parts, leftSpacer)

	if timerStatus != "" {
		parts = append(parts, timerStatus)
	}

	parts = append(parts, rightSpacer)
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.taskPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "next/save",
			"tab", "field",
			"esc", "cancel",
		)
	}

	if a.timerPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "next/save",
			"tab", "field",
			"esc", "cancel",
		)
	}

	// Normal mode help based on active pane
	switch a.activePane {
	case PaneTimer:
		if a.timerPane.Timer().Running() {
			return a.styles.RenderHelp(
				"space", "pause",
				"r", "reset",
				"n", "skip",
				"tab", "pane",
				"?", "help",
			)
		}
		return a.styles.RenderHelp(
			"space", "start",
			"f/b/B", "mode",
			"s", "settings",
			"tab", "pane",
			"?", "help",
		)
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"space", "pick",
			"d", "done",
			"x", "del",
			"J/K", "move",
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given storage backend, styles, and config.
func Run(store *storage.Storage, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
