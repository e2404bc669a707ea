package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"pomotodo/internal/pomodoro"
)

// LoadSessions reads the session history from disk
func (s *Storage) LoadSessions() (*SessionStore, error) {
	store := SessionStore{Entries: []SessionEntry{}}
	err := s.loadJSONWithRecovery("sessions.json", &store)
	return &store, err
}

// SaveSessions writes the session history to disk
func (s *Storage) SaveSessions(store *SessionStore) error {
	return s.writeJSONAtomic("sessions.json", store)
}

// AppendSession records one completed timer phase.
func (s *Storage) AppendSession(entry SessionEntry) error {
	if entry.Phase == pomodoro.PhaseIdle {
		return fmt.Errorf("cannot record an idle session")
	}
	if entry.EndedAt.Before(entry.StartedAt) {
		return fmt.Errorf("session ends before it starts")
	}

	store, err := s.LoadSessions()
	if err != nil {
		return err
	}

	store.Entries = append(store.Entries, entry)
	return s.SaveSessions(store)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeekSunday(t time.Time) time.Time {
	dayStart := startOfDay(t)
	return dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
}

func overlapDuration(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	if aEnd.Before(aStart) || bEnd.Before(bStart) {
		return 0
	}
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.After(start) {
		return end.Sub(start)
	}
	return 0
}

// FocusTotalToday returns the focus time accumulated today.
func (s *Storage) FocusTotalToday(store *SessionStore) time.Duration {
	return s.focusTotalBetweenAt(store, s.Now(), func(now time.Time) (time.Time, time.Time) {
		day := startOfDay(now)
		return day, day.AddDate(0, 0, 1)
	})
}

// FocusTotalWeek returns the focus time accumulated this week
// (Sunday-based, like the original reports).
func (s *Storage) FocusTotalWeek(store *SessionStore) time.Duration {
	return s.focusTotalBetweenAt(store, s.Now(), func(now time.Time) (time.Time, time.Time) {
		week := startOfWeekSunday(now)
		return week, week.AddDate(0, 0, 7)
	})
}

func (s *Storage) focusTotalBetweenAt(store *SessionStore, now time.Time, window func(time.Time) (time.Time, time.Time)) time.Duration {
	start, end := window(now)
	var total time.Duration
	for _, entry := range store.Entries {
		if entry.Phase != pomodoro.PhaseFocus {
			continue
		}
		total += overlapDuration(start, end, entry.StartedAt, entry.EndedAt)
	}
	return total
}

// PomodorosToday counts focus phases that ended today.
func (s *Storage) PomodorosToday(store *SessionStore) int {
	dayStart := startOfDay(s.Now())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count := 0
	for _, entry := range store.Entries {
		if entry.Phase != pomodoro.PhaseFocus {
			continue
		}
		if !entry.EndedAt.Before(dayStart) && entry.EndedAt.Before(dayEnd) {
			count++
		}
	}
	return count
}

// DayBreakdown represents focus time for a specific day
type DayBreakdown struct {
	Date  string // YYYY-MM-DD format
	Total time.Duration
	Count int // focus phases ended that day
}

// DailyFocusBreakdown returns focus time per day for the last N days,
// newest first.
func (s *Storage) DailyFocusBreakdown(store *SessionStore, days int) []DayBreakdown {
	now := s.Now()

	var breakdown []DayBreakdown
	for i := 0; i < days; i++ {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)

		day := DayBreakdown{Date: dayStart.Format("2006-01-02")}
		for _, entry := range store.Entries {
			if entry.Phase != pomodoro.PhaseFocus {
				continue
			}
			day.Total += overlapDuration(dayStart, dayEnd, entry.StartedAt, entry.EndedAt)
			if !entry.EndedAt.Before(dayStart) && entry.EndedAt.Before(dayEnd) {
				day.Count++
			}
		}
		breakdown = append(breakdown, day)
	}

	return breakdown
}

// TaskTotal represents focus time credited to one task.
type TaskTotal struct {
	TaskID   string
	TaskText string
	Total    time.Duration
	Count    int
}

// TaskFocusTotals returns focus time per task, sorted by time
// (descending). Focus phases without an active task are grouped under
// an empty task id.
func (s *Storage) TaskFocusTotals(store *SessionStore) []TaskTotal {
	byTask := make(map[string]*TaskTotal)
	var order []string

	for _, entry := range store.Entries {
		if entry.Phase != pomodoro.PhaseFocus {
			continue
		}
		tt, ok := byTask[entry.TaskID]
		if !ok {
			tt = &TaskTotal{TaskID: entry.TaskID, TaskText: entry.TaskText}
			byTask[entry.TaskID] = tt
			order = append(order, entry.TaskID)
		}
		tt.Total += entry.EndedAt.Sub(entry.StartedAt)
		tt.Count++
	}

	totals := make([]TaskTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, *byTask[id])
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	return totals
}

// ============================================================================
// Data Export
// ============================================================================

// ExportTasksJSON exports tasks to JSON format
func (s *Storage) ExportTasksJSON() ([]byte, error) {
	store, err := s.LoadTasks()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(store, "", "  ")
}

// ExportSessionsJSON exports the session history to JSON format
func (s *Storage) ExportSessionsJSON() ([]byte, error) {
	store, err := s.LoadSessions()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(store, "", "  ")
}

// ExportTasksCSV exports tasks to CSV format
func (s *Storage) ExportTasksCSV() (string, error) {
	store, err := s.LoadTasks()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("ID,Text,Estimate,Completed,Done,CreatedAt,CompletedAt\n")

	for _, task := range store.Tasks {
		completedAt := ""
		if task.CompletedAt != nil {
			completedAt = task.CompletedAt.Format("2006-01-02 15:04:05")
		}

		b.WriteString(fmt.Sprintf("%s,%s,%d,%d,%t,%s,%s\n",
			task.ID,
			csvEscape(task.Text),
			task.Estimate,
			task.Completed,
			task.Done,
			task.CreatedAt.Format("2006-01-02 15:04:05"),
			completedAt,
		))
	}

	return b.String(), nil
}

// ExportSessionsCSV exports the session history to CSV format
func (s *Storage) ExportSessionsCSV() (string, error) {
	store, err := s.LoadSessions()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Phase,Task,StartedAt,EndedAt,Duration\n")

	for _, entry := range store.Entries {
		duration := entry.EndedAt.Sub(entry.StartedAt)
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			entry.Phase,
			csvEscape(entry.TaskText),
			entry.StartedAt.Format("2006-01-02 15:04:05"),
			entry.EndedAt.Format("2006-01-02 15:04:05"),
			duration,
		))
	}

	return b.String(), nil
}

// csvEscape wraps a field in quotes when it contains a comma, quote, or
// newline.
func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}
