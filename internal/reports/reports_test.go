package reports

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"pomotodo/internal/pomodoro"
	"pomotodo/internal/storage"
)

// reportDay is the fixed "today" for report tests: a Wednesday.
var reportDay = time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local)

func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	store.SetNowFunc(func() time.Time { return reportDay })
	return store
}

func focusSession(taskID, taskText string, end time.Time, length time.Duration) storage.SessionEntry {
	return storage.SessionEntry{
		TaskID:    taskID,
		TaskText:  taskText,
		Phase:     pomodoro.PhaseFocus,
		StartedAt: end.Add(-length),
		EndedAt:   end,
	}
}

// seedDay populates storage with one completed task, one pending task,
// and two focus sessions ending on reportDay.
func seedDay(t *testing.T, store *storage.Storage) {
	t.Helper()

	done, err := store.AddTask("Write report", 2)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := store.AddTask("Review code", 1); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := store.CompleteTask(done.ID); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	sessions := []storage.SessionEntry{
		focusSession(done.ID, "Write report", reportDay.Add(-2*time.Hour), 25*time.Minute),
		focusSession(done.ID, "Write report", reportDay.Add(-time.Hour), 25*time.Minute),
		{
			Phase:     pomodoro.PhaseShortBreak,
			StartedAt: reportDay.Add(-90 * time.Minute),
			EndedAt:   reportDay.Add(-85 * time.Minute),
		},
	}
	for _, entry := range sessions {
		if err := store.AppendSession(entry); err != nil {
			t.Fatalf("AppendSession failed: %v", err)
		}
	}
}

func TestGenerateDaily(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	gen := NewGenerator(store)
	report, err := gen.GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	if report.Tasks.CompletedCount != 1 {
		t.Errorf("Expected 1 completed task, got %d", report.Tasks.CompletedCount)
	}
	if report.Tasks.PendingCount != 1 {
		t.Errorf("Expected 1 pending task, got %d", report.Tasks.PendingCount)
	}
	if report.Tasks.AddedCount != 2 {
		t.Errorf("Expected 2 added tasks, got %d", report.Tasks.AddedCount)
	}

	if report.Focus.Pomodoros != 2 {
		t.Errorf("Expected 2 pomodoros, got %d", report.Focus.Pomodoros)
	}
	if report.Focus.Total != 50*time.Minute {
		t.Errorf("Expected 50m focus, got %v", report.Focus.Total)
	}
	if len(report.Focus.ByTask) != 1 {
		t.Fatalf("Expected 1 task total, got %d", len(report.Focus.ByTask))
	}
	tf := report.Focus.ByTask[0]
	if tf.TaskText != "Write report" || tf.Pomodoros != 2 {
		t.Errorf("Unexpected task total: %+v", tf)
	}
	if tf.Percentage != 100 {
		t.Errorf("Expected 100%%, got %v", tf.Percentage)
	}
}

func TestGenerateDaily_BreaksExcluded(t *testing.T) {
	store := createTestStorage(t)

	entry := storage.SessionEntry{
		Phase:     pomodoro.PhaseShortBreak,
		StartedAt: reportDay.Add(-30 * time.Minute),
		EndedAt:   reportDay.Add(-25 * time.Minute),
	}
	if err := store.AppendSession(entry); err != nil {
		t.Fatalf("AppendSession failed: %v", err)
	}

	gen := NewGenerator(store)
	report, err := gen.GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	if report.Focus.Pomodoros != 0 || report.Focus.Total != 0 {
		t.Errorf("Break entries should not count as focus: %+v", report.Focus)
	}
}

func TestGenerateDaily_OtherDayExcluded(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	gen := NewGenerator(store)
	report, err := gen.GenerateDaily(reportDay.AddDate(0, 0, -3))
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	if report.Focus.Pomodoros != 0 {
		t.Errorf("Expected 0 pomodoros three days earlier, got %d", report.Focus.Pomodoros)
	}
	if report.Tasks.CompletedCount != 0 {
		t.Errorf("Expected 0 completed tasks, got %d", report.Tasks.CompletedCount)
	}
}

func TestGenerateWeekly(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	// One extra pomodoro the previous day, same week.
	yesterday := reportDay.AddDate(0, 0, -1)
	if err := store.AppendSession(focusSession("", "", yesterday, 25*time.Minute)); err != nil {
		t.Fatalf("AppendSession failed: %v", err)
	}

	gen := NewGenerator(store)
	report, err := gen.GenerateWeekly(reportDay)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	// Week is aligned to Sunday.
	if report.StartDate.Weekday() != time.Sunday {
		t.Errorf("Expected week to start Sunday, got %v", report.StartDate.Weekday())
	}
	if !report.EndDate.After(report.StartDate) {
		t.Error("EndDate should be after StartDate")
	}

	if report.Focus.Pomodoros != 3 {
		t.Errorf("Expected 3 pomodoros, got %d", report.Focus.Pomodoros)
	}
	if report.Focus.Total != 75*time.Minute {
		t.Errorf("Expected 75m focus, got %v", report.Focus.Total)
	}
	if report.Tasks.TotalCompleted != 1 {
		t.Errorf("Expected 1 completed task, got %d", report.Tasks.TotalCompleted)
	}

	if len(report.DailyBreakdown) != 7 {
		t.Fatalf("Expected 7 daily summaries, got %d", len(report.DailyBreakdown))
	}
	if len(report.Focus.ByDay) != 7 {
		t.Fatalf("Expected 7 day entries, got %d", len(report.Focus.ByDay))
	}

	// Wednesday carries the two seeded pomodoros.
	wed := report.Focus.ByDay[3]
	if wed.Pomodoros != 2 {
		t.Errorf("Expected 2 pomodoros on Wednesday, got %d", wed.Pomodoros)
	}
	tue := report.Focus.ByDay[2]
	if tue.Pomodoros != 1 {
		t.Errorf("Expected 1 pomodoro on Tuesday, got %d", tue.Pomodoros)
	}

	// Untasked pomodoro grouped under empty task id.
	found := false
	for _, tf := range report.Focus.ByTask {
		if tf.TaskID == "" {
			found = true
		}
	}
	if !found {
		t.Error("Expected untasked focus grouped under empty task id")
	}
}

func TestGenerateWeekly_Empty(t *testing.T) {
	store := createTestStorage(t)

	gen := NewGenerator(store)
	report, err := gen.GenerateWeekly(reportDay)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	if report.Focus.Total != 0 || report.Focus.Pomodoros != 0 {
		t.Errorf("Expected empty focus summary, got %+v", report.Focus)
	}
	if report.Tasks.TotalCompleted != 0 || report.Tasks.TotalAdded != 0 {
		t.Errorf("Expected empty task summary, got %+v", report.Tasks)
	}
}

func TestFormatDailyJSON(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	gen := NewGenerator(store)
	report, err := gen.GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	data, err := FormatDailyJSON(report)
	if err != nil {
		t.Fatalf("FormatDailyJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	for _, key := range []string{"date", "tasks", "focus", "generated_at"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing key %q in JSON output", key)
		}
	}
}

func TestFormatDailyMarkdown(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	gen := NewGenerator(store)
	report, err := gen.GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	out := FormatDailyMarkdown(report)

	for _, want := range []string{
		"# Daily Report",
		"**Pomodoros:** 2",
		"Write report",
		"- [x] Write report (2/2)",
		"- [ ] Review code (0/1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q\n%s", want, out)
		}
	}
}

func TestFormatWeeklyMarkdown(t *testing.T) {
	store := createTestStorage(t)
	seedDay(t, store)

	gen := NewGenerator(store)
	report, err := gen.GenerateWeekly(reportDay)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	out := FormatWeeklyMarkdown(report)

	for _, want := range []string{
		"# Weekly Report",
		"## Daily Breakdown",
		"**Completed:** 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q", want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{25 * time.Minute, "25m"},
		{90 * time.Minute, "1h 30m"},
		{2*time.Hour + 5*time.Minute, "2h 05m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
