// Package ui provides terminal user interface components for the pomotodo app.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"pomotodo/internal/config"
	"pomotodo/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// setActiveTaskMsg tells the app shell which task future focus sessions
// should be credited to.
type setActiveTaskMsg struct {
	id   string
	text string
}

// TaskPane handles the task ledger display and interactions.
type TaskPane struct {
	tasks   []storage.Task
	cursor  int
	focused bool
	width   int
	height  int

	// Input state for add/edit. editingID is empty when adding.
	adding        bool
	editingID     string
	fieldCursor   int
	textInput     textinput.Model
	estimateInput textinput.Model

	// activeID marks the task the timer credits.
	activeID string

	storage *storage.Storage
	styles  *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(store *storage.Storage, styles *Styles) *TaskPane {
	return NewTaskPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewTaskPaneWithKeys creates a new task pane with custom key bindings.
func NewTaskPaneWithKeys(store *storage.Storage, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 100
	ti.Width = 40

	ei := textinput.New()
	ei.Placeholder = "1"
	ei.CharLimit = 2
	ei.Width = 4

	return &TaskPane{
		tasks:         []storage.Task{},
		cursor:        0,
		focused:       true,
		textInput:     ti,
		estimateInput: ei,
		storage:       store,
		styles:        styles,
		keys:          NewTaskKeyMap(keyCfg),
		inputKeys:     NewInputKeyMap(keyCfg),
	}
}

// LoadTasksCmd returns a command that loads tasks asynchronously.
func (p *TaskPane) LoadTasksCmd() tea.Cmd {
	return loadTasksCmd(p.storage)
}

// setTasks updates the task list and adjusts cursor bounds.
// The ledger's slice order is the display order.
func (p *TaskPane) setTasks(tasks []storage.Task) {
	p.tasks = tasks
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetActiveID marks the task currently credited by the timer.
func (p *TaskPane) SetActiveID(id string) {
	p.activeID = id
}

// TaskByID returns the task with the given id, or nil.
func (p *TaskPane) TaskByID(id string) *storage.Task {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return &p.tasks[i]
		}
	}
	return nil
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.textInput.Width = max(10, width-12)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add or edit mode.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	// Handle async messages first
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.tasks != nil {
			p.setTasks(msg.tasks)
		}
		return nil

	case taskAddedMsg:
		if msg.err == nil {
			// Reload to get updated list with new task
			return p.LoadTasksCmd()
		}
		return nil

	case taskEditedMsg, taskCompletedMsg, taskUncompletedMsg, taskMovedMsg:
		// Reload to refresh task state
		return p.LoadTasksCmd()

	case taskDeletedMsg:
		// Reload to refresh list
		return p.LoadTasksCmd()

	case pomodoroRecordedMsg:
		// Reflect the new completed count (and possible auto-done)
		return p.LoadTasksCmd()
	}

	// If we're adding or editing, handle input
	if p.adding {
		return p.updateInput(msg)
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.tasks) > 0 {
				p.cursor = len(p.tasks) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.openInput(nil)
			return textinput.Blink

		case key.Matches(msg, p.keys.Edit):
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				task := p.tasks[p.cursor]
				p.openInput(&task)
				return textinput.Blink
			}

		case key.Matches(msg, p.keys.Toggle):
			// Toggle done asynchronously
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				task := p.tasks[p.cursor]
				if task.Done {
					return uncompleteTaskCmd(p.storage, task.ID)
				}
				return completeTaskCmd(p.storage, task.ID)
			}

		case key.Matches(msg, p.keys.Delete):
			// Delete task asynchronously
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				task := p.tasks[p.cursor]
				return deleteTaskCmd(p.storage, task.ID)
			}

		case key.Matches(msg, p.keys.MoveUp):
			if len(p.tasks) > 0 && p.cursor > 0 {
				task := p.tasks[p.cursor]
				from := p.cursor
				p.cursor--
				return moveTaskCmd(p.storage, task.ID, from, from-1)
			}

		case key.Matches(msg, p.keys.MoveDown):
			if len(p.tasks) > 0 && p.cursor < len(p.tasks)-1 {
				task := p.tasks[p.cursor]
				from := p.cursor
				p.cursor++
				return moveTaskCmd(p.storage, task.ID, from, from+1)
			}

		case key.Matches(msg, p.keys.SetActive):
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				task := p.tasks[p.cursor]
				if task.ID == p.activeID {
					// Toggling the active task off
					return func() tea.Msg { return setActiveTaskMsg{} }
				}
				return func() tea.Msg { return setActiveTaskMsg{id: task.ID, text: task.Text} }
			}
		}
	}

	return nil
}

// openInput opens the add form, or the edit form prefilled from task.
func (p *TaskPane) openInput(task *storage.Task) {
	p.adding = true
	p.fieldCursor = 0
	if task != nil {
		p.editingID = task.ID
		p.textInput.SetValue(task.Text)
		p.estimateInput.SetValue(strconv.Itoa(task.Estimate))
	} else {
		p.editingID = ""
		p.textInput.Reset()
		p.estimateInput.Reset()
	}
	p.estimateInput.Blur()
	p.textInput.Focus()
}

// closeInput dismisses the add/edit form.
func (p *TaskPane) closeInput() {
	p.adding = false
	p.editingID = ""
	p.textInput.Reset()
	p.estimateInput.Reset()
	p.textInput.Blur()
	p.estimateInput.Blur()
}

// updateInput routes messages to the add/edit form.
func (p *TaskPane) updateInput(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p.updateFocusedField(msg)
	}

	switch {
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.closeInput()
		return nil

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		if p.fieldCursor == 0 {
			// Enter on the text field moves to the estimate field.
			if strings.TrimSpace(p.textInput.Value()) == "" {
				p.closeInput()
				return nil
			}
			p.fieldCursor = 1
			p.textInput.Blur()
			p.estimateInput.Focus()
			return textinput.Blink
		}
		return p.submitInput()

	case keyMsg.String() == "tab":
		p.fieldCursor = 1 - p.fieldCursor
		if p.fieldCursor == 0 {
			p.estimateInput.Blur()
			p.textInput.Focus()
		} else {
			p.textInput.Blur()
			p.estimateInput.Focus()
		}
		return textinput.Blink
	}

	return p.updateFocusedField(msg)
}

func (p *TaskPane) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if p.fieldCursor == 0 {
		p.textInput, cmd = p.textInput.Update(msg)
	} else {
		p.estimateInput, cmd = p.estimateInput.Update(msg)
	}
	return cmd
}

// submitInput validates the form and dispatches the add or edit.
func (p *TaskPane) submitInput() tea.Cmd {
	text := strings.TrimSpace(p.textInput.Value())
	if text == "" {
		p.closeInput()
		return nil
	}

	estimate := 1
	if v := strings.TrimSpace(p.estimateInput.Value()); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			estimate = n
		}
	}

	editingID := p.editingID
	p.closeInput()

	if editingID != "" {
		return editTaskCmd(p.storage, editingID, text, estimate)
	}
	return addTaskCmd(p.storage, text, estimate)
}

// handleMouse processes mouse events for the task pane.
func (p *TaskPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.tasks) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) = row 2
	const headerRows = 2

	// Mirror the view windowing logic so clicks map to the visible slice.
	maxTasks := p.height - 6 // Account for title, separator, input, stats
	if maxTasks < 3 {
		maxTasks = 5
	}
	startIdx := 0
	if p.cursor >= maxTasks {
		startIdx = p.cursor - maxTasks + 1
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.tasks)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		// Calculate which task was clicked
		taskRow := msg.Y - headerRows
		if taskRow < 0 || taskRow >= maxTasks {
			return nil
		}

		taskIdx := startIdx + taskRow
		if taskIdx < 0 || taskIdx >= len(p.tasks) {
			return nil
		}

		// Move cursor to clicked task
		p.cursor = taskIdx

		// Check if click was on the checkbox area (first few chars)
		// Line format: "▶[ ] " - about 5 chars
		if msg.X < 5 {
			// Toggle the clicked task
			task := p.tasks[taskIdx]
			if task.Done {
				return uncompleteTaskCmd(p.storage, task.ID)
			}
			return completeTaskCmd(p.storage, task.ID)
		}
	}

	return nil
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("✅ TASKS")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	// Tasks list
	if len(p.tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		// Calculate how many tasks we can show
		maxTasks := p.height - 6 // Account for title, separator, input, stats
		if maxTasks < 3 {
			maxTasks = 5
		}

		// Show tasks
		startIdx := 0
		if p.cursor >= maxTasks {
			startIdx = p.cursor - maxTasks + 1
		}

		doneCount := 0

		for i, task := range p.tasks {
			if task.Done {
				doneCount++
			}

			if i < startIdx || i >= startIdx+maxTasks {
				continue
			}

			// Active marker (1 char: "▶" or " ")
			marker := " "
			if task.ID == p.activeID {
				marker = p.styles.TaskActiveMarker
			}

			// Checkbox
			var checkbox string
			if task.Done {
				checkbox = p.styles.TaskCheckboxDone
			} else {
				checkbox = p.styles.TaskCheckboxPending
			}

			// Pomodoro tally, e.g. "1/4"
			tally := fmt.Sprintf("%d/%d", task.Completed, task.Estimate)
			tallyWidth := len(tally)

			// Calculate available width for task text
			// Layout: [space][marker][checkbox][space][text][space][tally]
			fixedWidth := 6 + tallyWidth + 1
			availableTextWidth := p.width - 4 - fixedWidth // 4 for pane padding/borders
			if availableTextWidth < 5 {
				availableTextWidth = 5
			}

			taskText := runewidth.Truncate(task.Text, availableTextWidth, "..")
			taskTextWidth := runewidth.StringWidth(taskText)

			padding := availableTextWidth - taskTextWidth
			if padding < 1 {
				padding = 1
			}
			styledTally := p.styles.TaskEstimateStyle.Render(tally)

			// Build the line
			var line string
			if i == p.cursor && p.focused && !p.adding {
				// Selected: highlight entire line
				textPart := fmt.Sprintf("%s%s %s%s%s", marker, checkbox, taskText, strings.Repeat(" ", padding), tally)
				line = p.styles.TaskSelectedStyle.Render(" " + textPart + " ")
			} else {
				// Normal: assemble with styles
				var styledText string
				if task.Done {
					styledText = p.styles.TaskDoneStyle.Render(taskText)
				} else {
					styledText = p.styles.TaskPendingStyle.Render(taskText)
				}

				line = fmt.Sprintf(" %s%s %s%s%s", marker, checkbox, styledText, strings.Repeat(" ", padding), styledTally)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Stats
		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", doneCount, len(p.tasks)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	// Input fields when adding or editing
	if p.adding {
		b.WriteString("\n")
		prompt := "+ "
		if p.editingID != "" {
			prompt = "✎ "
		}
		b.WriteString(p.styles.InputPromptStyle.Render(prompt) + p.textInput.View())
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Pomodoros: ") + p.estimateInput.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// Stats returns task statistics.
func (p *TaskPane) Stats() (done, total int) {
	for _, task := range p.tasks {
		if task.Done {
			done++
		}
	}
	return done, len(p.tasks)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
