package storage

import (
	"time"

	"pomotodo/internal/pomodoro"
)

// Task represents a single to-do item. Tasks live in TaskStore.Tasks in
// display order; the slice index is the task's position.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Estimate    int        `json:"estimate"`  // planned Pomodoros, >= 1
	Completed   int        `json:"completed"` // finished Pomodoros, >= 0
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskStore holds all tasks in display order.
type TaskStore struct {
	Tasks []Task `json:"tasks"`
}

// Settings is the persisted timer configuration plus the dark-mode flag.
// Durations are stored in whole minutes, matching what the settings form
// edits.
type Settings struct {
	FocusMinutes      int  `json:"focus_minutes"`
	ShortBreakMinutes int  `json:"short_break_minutes"`
	LongBreakMinutes  int  `json:"long_break_minutes"`
	LongBreakInterval int  `json:"long_break_interval"`
	DarkMode          bool `json:"dark_mode"`
}

// DefaultSettings returns the classic 25/5/15 configuration.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
		DarkMode:          false,
	}
}

// TimerConfig converts the persisted minutes into a timer configuration.
func (s Settings) TimerConfig() pomodoro.Config {
	return pomodoro.Config{
		Focus:             time.Duration(s.FocusMinutes) * time.Minute,
		ShortBreak:        time.Duration(s.ShortBreakMinutes) * time.Minute,
		LongBreak:         time.Duration(s.LongBreakMinutes) * time.Minute,
		LongBreakInterval: s.LongBreakInterval,
	}
}

// SessionEntry records one completed timer phase. TaskID and TaskText
// are set only for focus phases that had an active task; TaskText is a
// snapshot so reports survive task deletion.
type SessionEntry struct {
	TaskID    string         `json:"task_id,omitempty"`
	TaskText  string         `json:"task_text,omitempty"`
	Phase     pomodoro.Phase `json:"phase"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
}

// SessionStore holds the append-only session history.
type SessionStore struct {
	Entries []SessionEntry `json:"entries"`
}
