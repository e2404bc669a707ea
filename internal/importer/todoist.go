// Package importer provides import functionality for the pomotodo app.
// This file implements Todoist CSV import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pomotodo/internal/storage"
)

// TodoistImporter handles importing from Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Import reads tasks from Todoist CSV and adds them to storage.
func (t *TodoistImporter) Import(reader io.Reader, store *storage.Storage) (*ImportResult, error) {
	tasks, err := t.parseTasks(reader)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for _, task := range tasks {
		_, err := store.AddTask(task.Text, task.Estimate)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task.Text, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// Preview returns a list of tasks that would be imported.
func (t *TodoistImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	return t.parseTasks(reader)
}

// parseTasks reads and parses the Todoist CSV format.
func (t *TodoistImporter) parseTasks(reader io.Reader) ([]PreviewTask, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	// Read header
	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Find column indices
	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	// Verify required columns
	requiredCols := []string{"TYPE", "CONTENT"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var tasks []PreviewTask

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		// Skip non-task rows (notes, section headers)
		typeIdx := colIndex["TYPE"]
		if typeIdx >= len(record) || strings.ToLower(record[typeIdx]) != "task" {
			continue
		}

		task := PreviewTask{Estimate: 1}

		// Content (task text)
		if idx, ok := colIndex["CONTENT"]; ok && idx < len(record) {
			task.Text = strings.TrimSpace(record[idx])
		}

		// Skip empty tasks
		if task.Text == "" {
			continue
		}

		// Duration (minutes) maps onto a Pomodoro estimate
		if idx, ok := colIndex["DURATION"]; ok && idx < len(record) {
			task.Estimate = estimateFromMinutes(record[idx])
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

// estimateFromMinutes converts a Todoist duration in minutes to a
// Pomodoro estimate, rounding up in 25-minute units. Blank or
// unparsable durations default to 1.
func estimateFromMinutes(minutesStr string) int {
	minutesStr = strings.TrimSpace(minutesStr)
	if minutesStr == "" {
		return 1
	}

	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 {
		return 1
	}

	estimate := (minutes + 24) / 25
	if estimate < 1 {
		estimate = 1
	}
	if estimate > storage.MaxEstimate {
		estimate = storage.MaxEstimate
	}
	return estimate
}
