// Package reports provides daily and weekly report generation for the
// pomotodo app.
package reports

import (
	"fmt"
	"strings"
	"time"
)

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report - %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	// Focus
	b.WriteString("## Focus\n\n")
	fmt.Fprintf(&b, "- **Pomodoros:** %d\n", report.Focus.Pomodoros)
	fmt.Fprintf(&b, "- **Focus time:** %s\n\n", formatDuration(report.Focus.Total))

	if len(report.Focus.ByTask) > 0 {
		b.WriteString("| Task | Pomodoros | Time | % |\n")
		b.WriteString("|------|-----------|------|---|\n")
		for _, tf := range report.Focus.ByTask {
			fmt.Fprintf(&b, "| %s | %d | %s | %.0f%% |\n",
				taskLabel(tf), tf.Pomodoros, formatDuration(tf.Duration), tf.Percentage)
		}
		b.WriteString("\n")
	}

	// Tasks
	b.WriteString("## Tasks\n\n")
	fmt.Fprintf(&b, "- **Completed:** %d\n", report.Tasks.CompletedCount)
	fmt.Fprintf(&b, "- **Pending:** %d\n", report.Tasks.PendingCount)
	fmt.Fprintf(&b, "- **Added:** %d\n\n", report.Tasks.AddedCount)

	if len(report.Tasks.Completed) > 0 {
		b.WriteString("### Completed\n\n")
		for _, task := range report.Tasks.Completed {
			fmt.Fprintf(&b, "- [x] %s (%d/%d)\n", task.Text, task.Completed, task.Estimate)
		}
		b.WriteString("\n")
	}

	if len(report.Tasks.Pending) > 0 {
		b.WriteString("### Pending\n\n")
		for _, task := range report.Tasks.Pending {
			fmt.Fprintf(&b, "- [ ] %s (%d/%d)\n", task.Text, task.Completed, task.Estimate)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Generated at %s*\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report - %s to %s\n\n",
		report.StartDate.Format("Jan 2"),
		report.EndDate.Format("Jan 2, 2006"))

	// Focus
	b.WriteString("## Focus\n\n")
	fmt.Fprintf(&b, "- **Pomodoros:** %d\n", report.Focus.Pomodoros)
	fmt.Fprintf(&b, "- **Focus time:** %s\n", formatDuration(report.Focus.Total))
	fmt.Fprintf(&b, "- **Daily average:** %s\n\n", formatDuration(report.Focus.DailyAverage))

	if len(report.Focus.ByTask) > 0 {
		b.WriteString("| Task | Pomodoros | Time | % |\n")
		b.WriteString("|------|-----------|------|---|\n")
		for _, tf := range report.Focus.ByTask {
			fmt.Fprintf(&b, "| %s | %d | %s | %.0f%% |\n",
				taskLabel(tf), tf.Pomodoros, formatDuration(tf.Duration), tf.Percentage)
		}
		b.WriteString("\n")
	}

	// Tasks
	b.WriteString("## Tasks\n\n")
	fmt.Fprintf(&b, "- **Completed:** %d\n", report.Tasks.TotalCompleted)
	fmt.Fprintf(&b, "- **Added:** %d\n\n", report.Tasks.TotalAdded)

	// Daily breakdown
	if len(report.DailyBreakdown) > 0 {
		b.WriteString("## Daily Breakdown\n\n")
		b.WriteString("| Day | Pomodoros | Focus | Tasks Done |\n")
		b.WriteString("|-----|-----------|-------|------------|\n")
		for _, day := range report.DailyBreakdown {
			fmt.Fprintf(&b, "| %s %s | %d | %s | %d |\n",
				day.DayOfWeek, day.Date, day.Pomodoros,
				formatDuration(day.FocusTime), day.TasksCompleted)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Generated at %s*\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

func taskLabel(tf TaskFocus) string {
	if tf.TaskText != "" {
		return tf.TaskText
	}
	return "(no task)"
}

// formatDuration renders a duration as "2h 05m" or "45m".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
