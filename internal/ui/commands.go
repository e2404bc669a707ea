// Package ui provides terminal user interface components for the pomotodo app.
// This file contains tea.Cmd factories that wrap storage operations. These
// commands run I/O operations asynchronously to keep the Bubble Tea event
// loop responsive. Each command returns a corresponding message type defined
// in messages.go.
package ui

import (
	"pomotodo/internal/notify"
	"pomotodo/internal/pomodoro"
	"pomotodo/internal/sound"
	"pomotodo/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Task Commands
// =============================================================================

// loadTasksCmd returns a command that loads all tasks from storage.
func loadTasksCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		taskStore, err := store.LoadTasks()
		if taskStore == nil {
			return tasksLoadedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: taskStore.Tasks, err: err}
	}
}

// addTaskCmd returns a command that creates a new task.
func addTaskCmd(store *storage.Storage, text string, estimate int) tea.Cmd {
	return func() tea.Msg {
		task, err := store.AddTask(text, estimate)
		return taskAddedMsg{task: task, err: err}
	}
}

// editTaskCmd returns a command that changes a task's text and estimate.
// Captures the previous state for undo.
func editTaskCmd(store *storage.Storage, id, text string, estimate int) tea.Cmd {
	return func() tea.Msg {
		var prev *storage.Task
		if tasks, err := store.LoadTasks(); err == nil {
			for _, t := range tasks.Tasks {
				if t.ID == id {
					taskCopy := t
					prev = &taskCopy
					break
				}
			}
		}

		err := store.EditTask(id, text, estimate)
		return taskEditedMsg{id: id, text: text, estimate: estimate, prev: prev, err: err}
	}
}

// completeTaskCmd returns a command that marks a task as done.
// Captures task text before completing for undo description.
func completeTaskCmd(store *storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		// Capture task text before completing for undo description
		var taskText string
		if tasks, err := store.LoadTasks(); err == nil {
			for _, t := range tasks.Tasks {
				if t.ID == id {
					taskText = t.Text
					break
				}
			}
		}

		err := store.CompleteTask(id)
		return taskCompletedMsg{id: id, text: taskText, err: err}
	}
}

// uncompleteTaskCmd returns a command that marks a task as not done.
// Captures task text before uncompleting for undo description.
func uncompleteTaskCmd(store *storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		// Capture task text before uncompleting for undo description
		var taskText string
		if tasks, err := store.LoadTasks(); err == nil {
			for _, t := range tasks.Tasks {
				if t.ID == id {
					taskText = t.Text
					break
				}
			}
		}

		err := store.UncompleteTask(id)
		return taskUncompletedMsg{id: id, text: taskText, err: err}
	}
}

// deleteTaskCmd returns a command that removes a task.
// Captures the full task before deletion for undo restoration.
func deleteTaskCmd(store *storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		// Capture full task before deletion for undo
		var deletedTask *storage.Task
		if tasks, err := store.LoadTasks(); err == nil {
			for _, t := range tasks.Tasks {
				if t.ID == id {
					taskCopy := t
					deletedTask = &taskCopy
					break
				}
			}
		}

		err := store.DeleteTask(id)
		return taskDeletedMsg{id: id, task: deletedTask, err: err}
	}
}

// moveTaskCmd returns a command that moves a task to a new position.
func moveTaskCmd(store *storage.Storage, id string, from, to int) tea.Cmd {
	return func() tea.Msg {
		err := store.MoveTask(id, to)
		return taskMovedMsg{id: id, from: from, to: to, err: err}
	}
}

// recordPomodoroCmd returns a command that credits a finished focus
// session to a task.
func recordPomodoroCmd(store *storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := store.RecordPomodoro(id)
		return pomodoroRecordedMsg{task: task, err: err}
	}
}

// =============================================================================
// Settings Commands
// =============================================================================

// loadSettingsCmd returns a command that loads timer settings from storage.
func loadSettingsCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		settings, err := store.LoadSettings()
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

// saveSettingsCmd returns a command that persists timer settings.
func saveSettingsCmd(store *storage.Storage, settings storage.Settings) tea.Cmd {
	return func() tea.Msg {
		err := store.SaveSettings(&settings)
		return settingsSavedMsg{settings: &settings, err: err}
	}
}

// toggleDarkModeCmd returns a command that flips and persists the
// dark-mode flag.
func toggleDarkModeCmd(store *storage.Storage, enabled bool) tea.Cmd {
	return func() tea.Msg {
		settings, err := store.SetDarkMode(enabled)
		return darkModeToggledMsg{settings: settings, err: err}
	}
}

// =============================================================================
// Session Commands
// =============================================================================

// loadSessionsCmd returns a command that loads the session log from storage.
func loadSessionsCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		sessionStore, err := store.LoadSessions()
		return sessionsLoadedMsg{store: sessionStore, err: err}
	}
}

// logSessionCmd returns a command that appends a finished phase to the
// session log.
func logSessionCmd(store *storage.Storage, entry storage.SessionEntry) tea.Cmd {
	return func() tea.Msg {
		err := store.AppendSession(entry)
		return sessionLoggedMsg{entry: entry, err: err}
	}
}

// =============================================================================
// Notification Commands
// =============================================================================

// notifyPhaseCmd returns a command that sends the end-of-phase desktop
// notification. Notification failures are silent: the status bar
// already announces the phase change in-app.
func notifyPhaseCmd(notifier notify.Notifier, ended, next pomodoro.Phase, taskText string, withSound bool) tea.Cmd {
	if notifier == nil {
		return nil
	}
	return func() tea.Msg {
		title, message := notify.PhaseMessage(ended, next, taskText)
		if withSound {
			_ = notifier.SendWithSound(title, message)
		} else {
			_ = notifier.Send(title, message)
		}
		return nil
	}
}

// playChimeCmd returns a command that plays the end-of-phase sound.
func playChimeCmd(player sound.Player) tea.Cmd {
	if player == nil {
		return nil
	}
	return func() tea.Msg {
		_ = player.PhaseEnded()
		return nil
	}
}

// =============================================================================
// Undo/Redo Commands
// =============================================================================

func undoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := manager.Undo()
		return undoResultMsg{desc: desc, err: err}
	}
}

func redoCmd(manager *UndoManager) tea.Cmd {
	return func() tea.Msg {
		desc, err := manager.Redo()
		return redoResultMsg{desc: desc, err: err}
	}
}
