// Package reports provides daily and weekly report generation for the
// pomotodo app.
package reports

import (
	"sort"
	"time"

	"pomotodo/internal/pomodoro"
	"pomotodo/internal/storage"
)

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Storage
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{store: store}
}

// GenerateDaily generates a report for a specific date.
func (g *Generator) GenerateDaily(date time.Time) (*DailyReport, error) {
	date = startOfDay(date)
	end := date.AddDate(0, 0, 1)

	tasks, err := g.getTaskSummary(date, end)
	if err != nil {
		return nil, err
	}

	focus, err := g.getFocusSummary(date, end)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Date:        date,
		Tasks:       tasks,
		Focus:       focus,
		GeneratedAt: time.Now(),
	}, nil
}

// GenerateWeekly generates a report for a week starting on the given date.
func (g *Generator) GenerateWeekly(startDate time.Time) (*WeeklyReport, error) {
	// Align to start of week (Sunday)
	startDate = startOfWeekSunday(startDate)
	endDate := startDate.AddDate(0, 0, 7)

	weeklyTasks, err := g.getWeeklyTasks(startDate, endDate)
	if err != nil {
		return nil, err
	}

	weeklyFocus, err := g.getWeeklyFocus(startDate, endDate)
	if err != nil {
		return nil, err
	}

	dailyBreakdown, err := g.getDailyBreakdown(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &WeeklyReport{
		StartDate:      startDate,
		EndDate:        endDate.Add(-time.Nanosecond), // End of last day
		Tasks:          weeklyTasks,
		Focus:          weeklyFocus,
		DailyBreakdown: dailyBreakdown,
		GeneratedAt:    time.Now(),
	}, nil
}

// getTaskSummary returns task statistics for a date range.
func (g *Generator) getTaskSummary(start, end time.Time) (TaskSummary, error) {
	taskStore, err := g.store.LoadTasks()
	if err != nil {
		return TaskSummary{}, err
	}

	var completed, pending []storage.Task
	addedCount := 0

	for _, task := range taskStore.Tasks {
		// Check if task was added in this period
		if !task.CreatedAt.Before(start) && task.CreatedAt.Before(end) {
			addedCount++
		}

		// Check if task was completed in this period
		if task.Done && task.CompletedAt != nil {
			if !task.CompletedAt.Before(start) && task.CompletedAt.Before(end) {
				completed = append(completed, task)
			}
		} else if !task.Done {
			pending = append(pending, task)
		}
	}

	return TaskSummary{
		Completed:      completed,
		Pending:        pending,
		CompletedCount: len(completed),
		PendingCount:   len(pending),
		AddedCount:     addedCount,
	}, nil
}

// getFocusSummary returns focus statistics for a date range.
func (g *Generator) getFocusSummary(start, end time.Time) (FocusSummary, error) {
	sessions, err := g.store.LoadSessions()
	if err != nil {
		return FocusSummary{}, err
	}

	total, pomodoros, byTask := focusBetween(sessions, start, end)

	return FocusSummary{
		Total:     total,
		Pomodoros: pomodoros,
		ByTask:    byTask,
	}, nil
}

// getWeeklyTasks returns task statistics for a week.
func (g *Generator) getWeeklyTasks(start, end time.Time) (WeeklyTasks, error) {
	taskStore, err := g.store.LoadTasks()
	if err != nil {
		return WeeklyTasks{}, err
	}

	totalCompleted := 0
	totalAdded := 0
	byDay := make([]DayTaskCount, 7)

	// Initialize days
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		byDay[i] = DayTaskCount{
			Date:      day.Format("2006-01-02"),
			DayOfWeek: day.Format("Mon"),
		}
	}

	for _, task := range taskStore.Tasks {
		// Count added tasks
		if !task.CreatedAt.Before(start) && task.CreatedAt.Before(end) {
			totalAdded++
			dayIdx := dayIndexInRange(task.CreatedAt, start, 7)
			if dayIdx >= 0 && dayIdx < 7 {
				byDay[dayIdx].Added++
			}
		}

		// Count completed tasks
		if task.Done && task.CompletedAt != nil {
			if !task.CompletedAt.Before(start) && task.CompletedAt.Before(end) {
				totalCompleted++
				dayIdx := dayIndexInRange(*task.CompletedAt, start, 7)
				if dayIdx >= 0 && dayIdx < 7 {
					byDay[dayIdx].Completed++
				}
			}
		}
	}

	return WeeklyTasks{
		TotalCompleted: totalCompleted,
		TotalAdded:     totalAdded,
		ByDay:          byDay,
	}, nil
}

// getWeeklyFocus returns focus statistics for a week.
func (g *Generator) getWeeklyFocus(start, end time.Time) (WeeklyFocus, error) {
	sessions, err := g.store.LoadSessions()
	if err != nil {
		return WeeklyFocus{}, err
	}

	total, pomodoros, byTask := focusBetween(sessions, start, end)

	byDay := make([]DayFocus, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		byDay[i] = DayFocus{
			Date:      day.Format("2006-01-02"),
			DayOfWeek: day.Format("Mon"),
		}
	}

	for _, entry := range sessions.Entries {
		if entry.Phase != pomodoro.PhaseFocus {
			continue
		}
		for i := 0; i < 7; i++ {
			dayStart := start.AddDate(0, 0, i)
			dayEnd := start.AddDate(0, 0, i+1)
			if overlap := overlapDuration(entry.StartedAt, entry.EndedAt, dayStart, dayEnd); overlap > 0 {
				byDay[i].Total += overlap
			}
			if !entry.EndedAt.Before(dayStart) && entry.EndedAt.Before(dayEnd) {
				byDay[i].Pomodoros++
			}
		}
	}

	// Calculate daily average
	dailyAvg := time.Duration(0)
	if total > 0 {
		dailyAvg = total / 7
	}

	return WeeklyFocus{
		Total:        total,
		DailyAverage: dailyAvg,
		Pomodoros:    pomodoros,
		ByTask:       byTask,
		ByDay:        byDay,
	}, nil
}

// getDailyBreakdown returns a summary for each day in the period.
func (g *Generator) getDailyBreakdown(start, end time.Time) ([]DailySummary, error) {
	days := daysBetween(start, end)
	breakdown := make([]DailySummary, 0, days)

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		dayEnd := day.AddDate(0, 0, 1)

		tasks, err := g.getTaskSummary(day, dayEnd)
		if err != nil {
			return nil, err
		}

		focus, err := g.getFocusSummary(day, dayEnd)
		if err != nil {
			return nil, err
		}

		breakdown = append(breakdown, DailySummary{
			Date:           day.Format("2006-01-02"),
			DayOfWeek:      day.Format("Mon"),
			TasksCompleted: tasks.CompletedCount,
			FocusTime:      focus.Total,
			Pomodoros:      focus.Pomodoros,
		})
	}

	return breakdown, nil
}

// Helper functions

// focusBetween aggregates focus entries overlapping [start, end): total
// overlapped time, pomodoros ended inside the range, and per-task
// totals sorted by time descending.
func focusBetween(sessions *storage.SessionStore, start, end time.Time) (time.Duration, int, []TaskFocus) {
	byTask := make(map[string]*TaskFocus)
	var order []string
	var total time.Duration
	pomodoros := 0

	for _, entry := range sessions.Entries {
		if entry.Phase != pomodoro.PhaseFocus {
			continue
		}
		overlap := overlapDuration(entry.StartedAt, entry.EndedAt, start, end)
		ended := !entry.EndedAt.Before(start) && entry.EndedAt.Before(end)
		if overlap <= 0 && !ended {
			continue
		}
		total += overlap
		if ended {
			pomodoros++
		}

		tf, ok := byTask[entry.TaskID]
		if !ok {
			tf = &TaskFocus{TaskID: entry.TaskID, TaskText: entry.TaskText}
			byTask[entry.TaskID] = tf
			order = append(order, entry.TaskID)
		}
		tf.Duration += overlap
		if ended {
			tf.Pomodoros++
		}
	}

	totals := make([]TaskFocus, 0, len(order))
	for _, id := range order {
		tf := *byTask[id]
		if total > 0 {
			tf.Percentage = float64(tf.Duration) / float64(total) * 100
		}
		totals = append(totals, tf)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Duration > totals[j].Duration
	})

	return total, pomodoros, totals
}

// startOfDay returns the start of the day (midnight).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeekSunday returns the start of the week (Sunday).
func startOfWeekSunday(t time.Time) time.Time {
	t = startOfDay(t)
	weekday := int(t.Weekday())
	return t.AddDate(0, 0, -weekday)
}

func daysBetween(start, end time.Time) int {
	if end.Before(start) || end.Equal(start) {
		return 0
	}
	count := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		count++
		if count > 3660 {
			break
		}
	}
	return count
}

func dayIndexInRange(t time.Time, start time.Time, days int) int {
	for i := 0; i < days; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := start.AddDate(0, 0, i+1)
		if !t.Before(dayStart) && t.Before(dayEnd) {
			return i
		}
	}
	return -1
}

// overlapDuration calculates how much of [entryStart, entryEnd] overlaps with [rangeStart, rangeEnd].
func overlapDuration(entryStart, entryEnd, rangeStart, rangeEnd time.Time) time.Duration {
	// Find the overlap
	overlapStart := entryStart
	if rangeStart.After(overlapStart) {
		overlapStart = rangeStart
	}

	overlapEnd := entryEnd
	if rangeEnd.Before(overlapEnd) {
		overlapEnd = rangeEnd
	}

	// Check if there's any overlap
	if overlapEnd.Before(overlapStart) || overlapEnd.Equal(overlapStart) {
		return 0
	}

	return overlapEnd.Sub(overlapStart)
}
