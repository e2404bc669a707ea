// Package reports provides daily and weekly report generation for the
// pomotodo app. Reports aggregate data from tasks and the session history.
package reports

import (
	"time"

	"pomotodo/internal/storage"
)

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	Date        time.Time    `json:"date"`
	Tasks       TaskSummary  `json:"tasks"`
	Focus       FocusSummary `json:"focus"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WeeklyReport contains aggregated data for a week.
type WeeklyReport struct {
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Tasks          WeeklyTasks    `json:"tasks"`
	Focus          WeeklyFocus    `json:"focus"`
	DailyBreakdown []DailySummary `json:"daily_breakdown"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// TaskSummary contains task statistics for a period.
type TaskSummary struct {
	Completed      []storage.Task `json:"completed"`
	Pending        []storage.Task `json:"pending"`
	CompletedCount int            `json:"completed_count"`
	PendingCount   int            `json:"pending_count"`
	AddedCount     int            `json:"added_count"`
}

// FocusSummary contains focus-time statistics for a period.
type FocusSummary struct {
	Total     time.Duration `json:"total"`
	Pomodoros int           `json:"pomodoros"`
	ByTask    []TaskFocus   `json:"by_task"`
}

// TaskFocus represents focus time credited to a specific task. Entries
// without an active task are grouped under an empty task id.
type TaskFocus struct {
	TaskID     string        `json:"task_id"`
	TaskText   string        `json:"task_text"`
	Duration   time.Duration `json:"duration"`
	Pomodoros  int           `json:"pomodoros"`
	Percentage float64       `json:"percentage"`
}

// WeeklyTasks contains task statistics for a week.
type WeeklyTasks struct {
	TotalCompleted int            `json:"total_completed"`
	TotalAdded     int            `json:"total_added"`
	ByDay          []DayTaskCount `json:"by_day"`
}

// DayTaskCount represents task counts for a specific day.
type DayTaskCount struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Completed int    `json:"completed"`
	Added     int    `json:"added"`
}

// WeeklyFocus contains focus-time statistics for a week.
type WeeklyFocus struct {
	Total        time.Duration `json:"total"`
	DailyAverage time.Duration `json:"daily_average"`
	Pomodoros    int           `json:"pomodoros"`
	ByTask       []TaskFocus   `json:"by_task"`
	ByDay        []DayFocus    `json:"by_day"`
}

// DayFocus represents focus time for a specific day.
type DayFocus struct {
	Date      string        `json:"date"`
	DayOfWeek string        `json:"day_of_week"`
	Total     time.Duration `json:"total"`
	Pomodoros int           `json:"pomodoros"`
}

// DailySummary provides a quick overview of a single day within a week.
type DailySummary struct {
	Date           string        `json:"date"`
	DayOfWeek      string        `json:"day_of_week"`
	TasksCompleted int           `json:"tasks_completed"`
	FocusTime      time.Duration `json:"focus_time"`
	Pomodoros      int           `json:"pomodoros"`
}
