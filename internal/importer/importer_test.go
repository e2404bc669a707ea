// Package importer provides import functionality for the pomotodo app.
// This file contains tests for the import functionality.
package importer

import (
	"fmt"
	"strings"
	"testing"

	"pomotodo/internal/storage"
)

// TestTodoist_ParseCSV tests parsing valid Todoist CSV.
func TestTodoist_ParseCSV(t *testing.T) {
	csv := `TYPE,CONTENT,PRIORITY,INDENT,AUTHOR,RESPONSIBLE,DATE,DATE_LANG,TIMEZONE,DURATION
task,Buy groceries,4,1,,,2025-12-20,en,America/New_York,50
task,Review PR,1,1,,,,,,
note,This is a note,4,1,,,,,,
task,Call mom,3,1,,,,,,25`

	importer := &TodoistImporter{}
	tasks, err := importer.Preview(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	// Should have 3 tasks (note is skipped)
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}

	// Check first task
	if tasks[0].Text != "Buy groceries" {
		t.Errorf("Expected 'Buy groceries', got %q", tasks[0].Text)
	}
	if tasks[0].Estimate != 2 {
		t.Errorf("Expected estimate 2 for 50 minutes, got %d", tasks[0].Estimate)
	}
	if tasks[1].Estimate != 1 {
		t.Errorf("Expected default estimate 1, got %d", tasks[1].Estimate)
	}
}

// TestTodoist_EstimateFromMinutes tests duration to estimate conversion.
func TestTodoist_EstimateFromMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 1},
		{"invalid", 1},
		{"0", 1},
		{"-5", 1},
		{"10", 1},
		{"25", 1},
		{"26", 2},
		{"50", 2},
		{"120", 5},
		{"10000", storage.MaxEstimate},
	}

	for _, tc := range tests {
		result := estimateFromMinutes(tc.input)
		if result != tc.expected {
			t.Errorf("estimateFromMinutes(%q) = %d, want %d", tc.input, result, tc.expected)
		}
	}
}

// TestTodoist_EmptyFile tests handling of empty CSV.
func TestTodoist_EmptyFile(t *testing.T) {
	importer := &TodoistImporter{}
	_, err := importer.Preview(strings.NewReader(""))
	if err == nil {
		t.Error("Expected error for empty CSV")
	}
}

// TestTodoist_MissingColumns tests handling of missing required columns.
func TestTodoist_MissingColumns(t *testing.T) {
	csv := `CONTENT,PRIORITY
Buy groceries,4`

	importer := &TodoistImporter{}
	_, err := importer.Preview(strings.NewReader(csv))
	if err == nil {
		t.Error("Expected error for missing TYPE column")
	}
}

func TestTodoist_HeaderBOM(t *testing.T) {
	csv := "\ufeffTYPE,CONTENT,PRIORITY\n" +
		"task,With BOM,4\n"

	importer := &TodoistImporter{}
	tasks, err := importer.Preview(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "With BOM" {
		t.Errorf("Expected 'With BOM', got %q", tasks[0].Text)
	}
}

func TestTodoist_RaggedRows(t *testing.T) {
	csv := `TYPE,CONTENT,PRIORITY
task,One,4,EXTRA,EXTRA2
task,Two,1`

	importer := &TodoistImporter{}
	tasks, err := importer.Preview(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
}

// TestTaskwarrior_ParseJSON tests parsing Taskwarrior JSON array.
func TestTaskwarrior_ParseJSON(t *testing.T) {
	json := `[
		{"description":"Buy milk","status":"pending","project":"Home"},
		{"description":"Review code","status":"completed","project":"Work"},
		{"description":"Deleted task","status":"deleted"}
	]`

	importer := &TaskwarriorImporter{}
	tasks, err := importer.Preview(strings.NewReader(json))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	// Should have 2 tasks (deleted is skipped)
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}

	// Project becomes a text prefix
	if tasks[0].Text != "Home: Buy milk" {
		t.Errorf("Expected 'Home: Buy milk', got %q", tasks[0].Text)
	}
	if tasks[0].Estimate != 1 {
		t.Errorf("Expected estimate 1, got %d", tasks[0].Estimate)
	}

	// Check completed task
	if !tasks[1].Done {
		t.Error("Expected second task to be done")
	}
}

// TestTaskwarrior_ParseNDJSON tests parsing newline-delimited JSON.
func TestTaskwarrior_ParseNDJSON(t *testing.T) {
	ndjson := `{"description":"Task 1","status":"pending"}
{"description":"Task 2","status":"pending"}
{"description":"Task 3","status":"completed"}`

	importer := &TaskwarriorImporter{}
	tasks, err := importer.Preview(strings.NewReader(ndjson))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	if len(tasks) != 3 {
		t.Errorf("Expected 3 tasks, got %d", len(tasks))
	}
}

// TestTaskwarrior_StatusMapping tests status to done conversion.
func TestTaskwarrior_StatusMapping(t *testing.T) {
	json := `[
		{"description":"Pending","status":"pending"},
		{"description":"Completed","status":"completed"},
		{"description":"Waiting","status":"waiting"},
		{"description":"Deleted","status":"deleted"}
	]`

	importer := &TaskwarriorImporter{}
	tasks, err := importer.Preview(strings.NewReader(json))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	// Should have 3 tasks (deleted is skipped)
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}

	// Check done status
	if tasks[0].Done {
		t.Error("Pending task should not be done")
	}
	if !tasks[1].Done {
		t.Error("Completed task should be done")
	}
	if tasks[2].Done {
		t.Error("Waiting task should not be done")
	}
}

// TestTaskwarrior_EmptyInput tests handling of empty input.
func TestTaskwarrior_EmptyInput(t *testing.T) {
	importer := &TaskwarriorImporter{}
	_, err := importer.Preview(strings.NewReader(""))
	if err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestTaskwarrior_LongNDJSONLine(t *testing.T) {
	desc := strings.Repeat("a", 70_000)
	ndjson := fmt.Sprintf("{\"description\":%q,\"status\":\"pending\"}\n", desc)

	importer := &TaskwarriorImporter{}
	tasks, err := importer.Preview(strings.NewReader(ndjson))
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != desc {
		t.Errorf("Unexpected task text length: got %d, want %d", len(tasks[0].Text), len(desc))
	}
}

func TestTaskwarrior_InvalidNDJSONReturnsError(t *testing.T) {
	ndjson := `{"description":"Task 1","status":"pending"}
{invalid json}
{"description":"Task 2","status":"pending"}`

	importer := &TaskwarriorImporter{}
	_, err := importer.Preview(strings.NewReader(ndjson))
	if err == nil {
		t.Fatal("Expected error for invalid NDJSON")
	}
}

// TestGetImporter tests the importer factory function.
func TestGetImporter(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{"todoist", "todoist"},
		{"taskwarrior", "taskwarrior"},
		{"unknown", ""},
	}

	for _, tc := range tests {
		importer := GetImporter(tc.format)
		if tc.expected == "" {
			if importer != nil {
				t.Errorf("GetImporter(%q) should return nil", tc.format)
			}
		} else {
			if importer == nil {
				t.Errorf("GetImporter(%q) should not return nil", tc.format)
			} else if importer.Name() != tc.expected {
				t.Errorf("GetImporter(%q).Name() = %q, want %q", tc.format, importer.Name(), tc.expected)
			}
		}
	}
}

// TestSupportedFormats tests the supported formats list.
func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) < 2 {
		t.Errorf("Expected at least 2 formats, got %d", len(formats))
	}

	// Check that todoist and taskwarrior are included
	found := map[string]bool{"todoist": false, "taskwarrior": false}
	for _, f := range formats {
		found[f] = true
	}

	for format, ok := range found {
		if !ok {
			t.Errorf("Expected %q in supported formats", format)
		}
	}
}

// TestImport_Integration tests actual import to storage.
func TestImport_Integration(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Import from Todoist
	csv := `TYPE,CONTENT,PRIORITY,INDENT,AUTHOR,RESPONSIBLE,DATE,DATE_LANG,TIMEZONE,DURATION
task,Test task 1,1,1,,,,,,75
task,Test task 2,4,1,,,,,,`

	importer := &TodoistImporter{}
	result, err := importer.Import(strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	// Verify tasks exist in storage
	tasks, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks() error: %v", err)
	}

	if len(tasks.Tasks) != 2 {
		t.Errorf("Expected 2 tasks in storage, got %d", len(tasks.Tasks))
	}
	if tasks.Tasks[0].Estimate != 3 {
		t.Errorf("Expected estimate 3 for 75 minutes, got %d", tasks.Tasks[0].Estimate)
	}
}

// TestTaskwarriorImport_CompletesTasks verifies completed tasks land done.
func TestTaskwarriorImport_CompletesTasks(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	json := `[
		{"description":"Open task","status":"pending"},
		{"description":"Finished task","status":"completed"}
	]`

	importer := &TaskwarriorImporter{}
	result, err := importer.Import(strings.NewReader(json), store)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks() error: %v", err)
	}
	if tasks.Tasks[0].Done {
		t.Error("Open task should not be done")
	}
	if !tasks.Tasks[1].Done {
		t.Error("Finished task should be done")
	}
}
