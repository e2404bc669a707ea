// Package ui provides terminal user interface components for the pomotodo app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All storage operations should return these messages to keep
// the event loop non-blocking.
package ui

import (
	"pomotodo/internal/pomodoro"
	"pomotodo/internal/storage"
)

// =============================================================================
// Undo/Redo Messages
// =============================================================================

// undoResultMsg is sent when an undo operation completes.
type undoResultMsg struct {
	desc string
	err  error
}

// redoResultMsg is sent when a redo operation completes.
type redoResultMsg struct {
	desc string
	err  error
}

// =============================================================================
// Task Messages
// =============================================================================

// tasksLoadedMsg is sent when tasks are loaded from storage.
type tasksLoadedMsg struct {
	tasks []storage.Task
	err   error
}

// taskAddedMsg is sent when a new task is created.
type taskAddedMsg struct {
	task *storage.Task
	err  error
}

// taskEditedMsg is sent when a task's text or estimate is changed.
type taskEditedMsg struct {
	id       string
	text     string
	prev     *storage.Task // Previous state for undo
	err      error
	estimate int
}

// taskCompletedMsg is sent when a task is marked as done.
type taskCompletedMsg struct {
	id   string
	text string // Task text for undo description
	err  error
}

// taskUncompletedMsg is sent when a task is marked as not done.
type taskUncompletedMsg struct {
	id   string
	text string // Task text for undo description
	err  error
}

// taskDeletedMsg is sent when a task is removed.
type taskDeletedMsg struct {
	id   string
	task *storage.Task // Full task for restoration on undo
	err  error
}

// taskMovedMsg is sent when a task changes position in the ledger.
type taskMovedMsg struct {
	id   string
	from int
	to   int
	err  error
}

// pomodoroRecordedMsg is sent when a finished focus session is credited
// to a task.
type pomodoroRecordedMsg struct {
	task *storage.Task
	err  error
}

// =============================================================================
// Settings Messages
// =============================================================================

// settingsLoadedMsg is sent when timer settings are loaded from storage.
type settingsLoadedMsg struct {
	settings *storage.Settings
	err      error
}

// settingsSavedMsg is sent when timer settings are written to storage.
type settingsSavedMsg struct {
	settings *storage.Settings
	err      error
}

// darkModeToggledMsg is sent when the dark-mode flag is flipped and persisted.
type darkModeToggledMsg struct {
	settings *storage.Settings
	err      error
}

// =============================================================================
// Session Messages
// =============================================================================

// sessionsLoadedMsg is sent when the session log is loaded from storage.
type sessionsLoadedMsg struct {
	store *storage.SessionStore
	err   error
}

// sessionLoggedMsg is sent when a finished phase is appended to the
// session log.
type sessionLoggedMsg struct {
	entry storage.SessionEntry
	err   error
}

// phaseSkippedMsg is sent when the user skips ahead to the next phase.
// It carries the completion event so a skipped phase fans out the same
// way a phase that ran down on its own does.
type phaseSkippedMsg struct {
	ev *pomodoro.Event
}
