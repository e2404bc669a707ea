// Package ui provides terminal user interface components for the pomotodo app.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomotodo/internal/config"
	"pomotodo/internal/pomodoro"
	"pomotodo/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// settingsFieldCount is the number of inputs in the settings form.
const settingsFieldCount = 4

// TimerPane owns the Pomodoro state machine and renders the countdown,
// cycle progress, and the in-app settings form.
type TimerPane struct {
	timer    *pomodoro.Timer
	sessions *storage.SessionStore
	focused  bool
	width    int
	height   int

	// Settings form state
	editing     bool
	fieldCursor int
	fields      [settingsFieldCount]textinput.Model
	formErr     string

	// Active task shown under the clock and credited on focus completion.
	activeTaskID   string
	activeTaskText string

	storage  *storage.Storage
	styles   *Styles
	progress progress.Model

	// Key bindings
	keys      TimerKeyMap
	inputKeys InputKeyMap
}

// NewTimerPane creates a new timer pane with default key bindings.
func NewTimerPane(store *storage.Storage, styles *Styles, cfg pomodoro.Config) *TimerPane {
	return NewTimerPaneWithKeys(store, styles, &config.KeysConfig{}, cfg)
}

// NewTimerPaneWithKeys creates a new timer pane with custom key bindings.
func NewTimerPaneWithKeys(store *storage.Storage, styles *Styles, keyCfg *config.KeysConfig, cfg pomodoro.Config) *TimerPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}

	timer, err := pomodoro.New(cfg)
	if err != nil {
		// Invalid settings never reach here (storage validates), but a
		// default timer beats a nil one.
		timer, _ = pomodoro.New(pomodoro.DefaultConfig())
	}

	var fields [settingsFieldCount]textinput.Model
	placeholders := [settingsFieldCount]string{"25", "5", "15", "4"}
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 3
		ti.Width = 4
		fields[i] = ti
	}

	bar := progress.New(progress.WithSolidFill(string(styles.ColorPrimary)))
	bar.ShowPercentage = false

	return &TimerPane{
		timer:     timer,
		sessions:  &storage.SessionStore{},
		fields:    fields,
		storage:   store,
		styles:    styles,
		progress:  bar,
		keys:      NewTimerKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// Timer exposes the Pomodoro state machine for the app shell.
func (p *TimerPane) Timer() *pomodoro.Timer {
	return p.timer
}

// Sessions returns the loaded session log, or nil before the first load.
func (p *TimerPane) Sessions() *storage.SessionStore {
	return p.sessions
}

// LoadSessionsCmd returns a command that loads the session log asynchronously.
func (p *TimerPane) LoadSessionsCmd() tea.Cmd {
	return loadSessionsCmd(p.storage)
}

// SetActiveTask sets the task the next focus session will be credited to.
func (p *TimerPane) SetActiveTask(id, text string) {
	p.activeTaskID = id
	p.activeTaskText = text
}

// ActiveTaskID returns the id of the active task, or "" if none.
func (p *TimerPane) ActiveTaskID() string {
	return p.activeTaskID
}

// ActiveTaskText returns the text of the active task, or "" if none.
func (p *TimerPane) ActiveTaskText() string {
	return p.activeTaskText
}

// SetSize sets the pane dimensions.
func (p *TimerPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.progress.Width = max(10, width-8)
}

// SetFocused sets whether this pane is focused.
func (p *TimerPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TimerPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether the settings form is open.
func (p *TimerPane) IsEditing() bool {
	return p.editing
}

// Tick advances the countdown by one second. The returned event is
// non-nil when the tick finished a phase; the app shell fans it out to
// the session log, the active task, and notifications.
func (p *TimerPane) Tick() *pomodoro.Event {
	return p.timer.Tick()
}

// PhaseEntry builds the session log entry for a phase that just ended.
func (p *TimerPane) PhaseEntry(ended pomodoro.Phase) storage.SessionEntry {
	now := p.storage.Now()
	start := now.Add(-p.timer.Config().PhaseDuration(ended))
	entry := storage.SessionEntry{
		Phase:     ended,
		StartedAt: start,
		EndedAt:   now,
	}
	if ended == pomodoro.PhaseFocus {
		entry.TaskID = p.activeTaskID
		entry.TaskText = p.activeTaskText
	}
	return entry
}

// Update handles messages for the timer pane.
func (p *TimerPane) Update(msg tea.Msg) tea.Cmd {
	// Handle async messages first
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		if msg.store != nil {
			p.sessions = msg.store
		}
		return nil

	case sessionLoggedMsg:
		// Reload totals after a phase lands in the log
		return p.LoadSessionsCmd()

	case settingsSavedMsg:
		if msg.err == nil && msg.settings != nil {
			// A fresh config stops the clock and stages a full focus session.
			_ = p.timer.SetConfig(msg.settings.TimerConfig())
		}
		return nil
	}

	// If the settings form is open, route keys to it
	if p.editing {
		return p.updateSettingsForm(msg)
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
		case key.Matches(msg, p.keys.StartPause):
			p.timer.Toggle()
			return nil

		case key.Matches(msg, p.keys.Reset):
			p.timer.Reset()
			return nil

		case key.Matches(msg, p.keys.Skip):
			// A skipped phase counts as completed, so surface the event
			// to the app for the same fan-out a natural expiry gets.
			if ev := p.timer.Skip(); ev != nil {
				return func() tea.Msg {
					return phaseSkippedMsg{ev: ev}
				}
			}
			return nil

		case key.Matches(msg, p.keys.ModeFocus):
			p.timer.SetPhase(pomodoro.PhaseFocus)
			return nil

		case key.Matches(msg, p.keys.ModeShort):
			p.timer.SetPhase(pomodoro.PhaseShortBreak)
			return nil

		case key.Matches(msg, p.keys.ModeLong):
			p.timer.SetPhase(pomodoro.PhaseLongBreak)
			return nil

		case key.Matches(msg, p.keys.Settings):
			p.openSettingsForm()
			return textinput.Blink
		}
	}

	return nil
}

// openSettingsForm prefills the form with the current timer config.
func (p *TimerPane) openSettingsForm() {
	cfg := p.timer.Config()
	values := [settingsFieldCount]string{
		strconv.Itoa(int(cfg.Focus / time.Minute)),
		strconv.Itoa(int(cfg.ShortBreak / time.Minute)),
		strconv.Itoa(int(cfg.LongBreak / time.Minute)),
		strconv.Itoa(cfg.LongBreakInterval),
	}
	for i := range p.fields {
		p.fields[i].SetValue(values[i])
		p.fields[i].Blur()
	}
	p.fieldCursor = 0
	p.fields[0].Focus()
	p.formErr = ""
	p.editing = true
}

// closeSettingsForm dismisses the form without saving.
func (p *TimerPane) closeSettingsForm() {
	for i := range p.fields {
		p.fields[i].Blur()
	}
	p.editing = false
	p.formErr = ""
}

// updateSettingsForm routes input to the settings form.
func (p *TimerPane) updateSettingsForm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.fields[p.fieldCursor], cmd = p.fields[p.fieldCursor].Update(msg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.closeSettingsForm()
		return nil

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		if p.fieldCursor < settingsFieldCount-1 {
			// Enter advances through the fields; the last one saves.
			p.fields[p.fieldCursor].Blur()
			p.fieldCursor++
			p.fields[p.fieldCursor].Focus()
			return textinput.Blink
		}
		return p.submitSettingsForm()

	case keyMsg.String() == "tab" || keyMsg.String() == "down":
		p.fields[p.fieldCursor].Blur()
		p.fieldCursor = (p.fieldCursor + 1) % settingsFieldCount
		p.fields[p.fieldCursor].Focus()
		return textinput.Blink

	case keyMsg.String() == "shift+tab" || keyMsg.String() == "up":
		p.fields[p.fieldCursor].Blur()
		p.fieldCursor = (p.fieldCursor + settingsFieldCount - 1) % settingsFieldCount
		p.fields[p.fieldCursor].Focus()
		return textinput.Blink
	}

	var cmd tea.Cmd
	p.fields[p.fieldCursor], cmd = p.fields[p.fieldCursor].Update(msg)
	return cmd
}

// submitSettingsForm validates the form and persists the settings.
func (p *TimerPane) submitSettingsForm() tea.Cmd {
	var values [settingsFieldCount]int
	for i := range p.fields {
		v, err := strconv.Atoi(strings.TrimSpace(p.fields[i].Value()))
		if err != nil || v < 1 {
			p.formErr = "all values must be positive numbers"
			return nil
		}
		values[i] = v
	}

	settings, err := p.storage.LoadSettings()
	if err != nil && settings == nil {
		p.formErr = err.Error()
		return nil
	}
	settings.FocusMinutes = values[0]
	settings.ShortBreakMinutes = values[1]
	settings.LongBreakMinutes = values[2]
	settings.LongBreakInterval = values[3]

	p.closeSettingsForm()
	return saveSettingsCmd(p.storage, *settings)
}

// handleMouse processes mouse events for the timer pane.
func (p *TimerPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Content starts after title (1) + separator (1) + blank (1) = row 3
	const headerRows = 3

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		// Click anywhere in the clock area toggles the countdown
		if msg.Y >= headerRows && msg.Y < headerRows+4 {
			p.timer.Toggle()
		}
	}

	return nil
}

// View renders the timer pane.
func (p *TimerPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("🍅 POMODORO")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	if p.editing {
		b.WriteString(p.viewSettingsForm())
	} else {
		b.WriteString(p.viewCountdown())
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// viewCountdown renders the phase label, clock, progress bar, cycle
// dots, active task, and session totals.
func (p *TimerPane) viewCountdown() string {
	var b strings.Builder

	// Phase label with run state
	var phaseLabel string
	switch {
	case p.timer.Phase() == pomodoro.PhaseIdle:
		phaseLabel = p.styles.PhaseIdleStyle.Render("■ " + p.timer.Phase().Label())
	case p.timer.Phase().IsBreak():
		phaseLabel = p.styles.PhaseBreakStyle.Render("☕ " + p.timer.Phase().Label())
	default:
		phaseLabel = p.styles.PhaseFocusStyle.Render("● " + p.timer.Phase().Label())
	}
	if p.timer.Phase() != pomodoro.PhaseIdle {
		if p.timer.Running() {
			phaseLabel += "  " + p.styles.TimerRunningStyle.Render("▶")
		} else {
			phaseLabel += "  " + p.styles.TimerPausedStyle.Render("⏸ paused")
		}
	}
	b.WriteString("  " + phaseLabel + "\n\n")

	// Clock. Idle shows the focus duration the next start would use.
	remaining := p.timer.Remaining()
	if p.timer.Phase() == pomodoro.PhaseIdle {
		remaining = p.timer.Config().Focus
	}
	b.WriteString("    " + p.styles.TimerClockStyle.Render(formatClock(remaining)))
	b.WriteString("\n\n")

	// Progress bar
	if p.timer.Phase() != pomodoro.PhaseIdle {
		b.WriteString("  " + p.progress.ViewAs(p.timer.Progress()))
		b.WriteString("\n\n")
	} else {
		b.WriteString("  " + p.styleMutedText("Press space to start a focus session"))
		b.WriteString("\n\n")
	}

	// Cycle dots toward the long break
	interval := p.timer.Config().LongBreakInterval
	done := p.timer.CompletedInCycle()
	var dots []string
	for i := 0; i < interval; i++ {
		if i < done {
			dots = append(dots, p.styles.CycleDotDone)
		} else {
			dots = append(dots, p.styles.CycleDotPending)
		}
	}
	b.WriteString("  " + strings.Join(dots, " "))
	b.WriteString("  " + p.styleMutedText(fmt.Sprintf("%d/%d until long break", done, interval)))
	b.WriteString("\n\n")

	// Active task
	if p.activeTaskText != "" {
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Working on: ") + p.styles.TimerTaskStyle.Render(truncateText(p.activeTaskText, max(10, p.width-18))))
	} else {
		b.WriteString("  " + p.styleMutedText("No active task (space in task pane to pick one)"))
	}
	b.WriteString("\n\n")

	// Session totals
	todayCount := p.storage.PomodorosToday(p.sessions)
	todayTotal := p.storage.FocusTotalToday(p.sessions)
	weekTotal := p.storage.FocusTotalWeek(p.sessions)
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Today: ") +
		p.styles.StatValueStyle.Render(fmt.Sprintf("%d 🍅 · %s", todayCount, formatDurationShort(todayTotal))))
	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Week:  ") +
		p.styles.StatValueStyle.Render(formatDurationShort(weekTotal)))
	b.WriteString("\n")

	return b.String()
}

// viewSettingsForm renders the in-app settings form.
func (p *TimerPane) viewSettingsForm() string {
	var b strings.Builder

	labels := [settingsFieldCount]string{
		"Focus (min)      ",
		"Short break (min)",
		"Long break (min) ",
		"Sessions / cycle ",
	}

	b.WriteString("  " + p.styles.InputPromptStyle.Render("Timer settings"))
	b.WriteString("\n\n")
	for i := range p.fields {
		cursor := "  "
		if i == p.fieldCursor {
			cursor = p.styles.InputPromptStyle.Render("> ")
		}
		b.WriteString("  " + cursor + p.styles.StatLabelStyle.Render(labels[i]) + " " + p.fields[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.formErr != "" {
		b.WriteString("  " + p.styles.ErrorStyle.Render(p.formErr))
		b.WriteString("\n")
	}
	b.WriteString("  " + p.styleMutedText("enter: next/save · esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

// formatClock formats a countdown as MM:SS (or H:MM:SS past an hour).
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatDurationShort formats a duration as Xh Xm.
func formatDurationShort(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// styleMutedText applies muted style to text.
func (p *TimerPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}
