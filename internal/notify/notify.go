// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux (notify-send).
package notify

import "pomotodo/internal/pomodoro"

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error {
	return nil
}

func (n *noopNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// PhaseMessage returns the notification title and message for the end
// of a timer phase. The message names the session that just finished
// and what comes next.
func PhaseMessage(ended, next pomodoro.Phase, taskText string) (title, message string) {
	switch ended {
	case pomodoro.PhaseFocus:
		title = "Pomodoro complete"
		if taskText != "" {
			message = "Finished a Pomodoro on \"" + taskText + "\". "
		}
		if next == pomodoro.PhaseLongBreak {
			message += "Time for a long break."
		} else {
			message += "Time for a short break."
		}
	case pomodoro.PhaseShortBreak, pomodoro.PhaseLongBreak:
		title = "Break over"
		message = "Back to focus."
	default:
		title = "Timer"
		message = "Phase complete."
	}
	return title, message
}
