// Package storage persists tasks, timer settings, and session history
// as plain JSON files, written through on every mutation.
package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pomotodo/internal/fsutil"
)

// ErrNotFound is returned by ledger operations given an unknown task id.
// Callers can match it with errors.Is.
var ErrNotFound = errors.New("task not found")

// Storage handles all file I/O operations
type Storage struct {
	dataDir string
	onSave  func(filename string) // callback triggered after file saves
	now     func() time.Time      // injectable clock for deterministic tests
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxTaskTextLen = 200
	// MaxEstimate bounds the planned Pomodoros per task.
	MaxEstimate = 20
)

// New creates a new Storage instance with the given data directory
func New(dataDir string) (*Storage, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir, now: time.Now}

	// Initialize files if they don't exist
	if err := s.initFiles(); err != nil {
		return nil, err
	}

	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent storage operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// SetOnSave registers a callback to be called after each file save.
func (s *Storage) SetOnSave(fn func(filename string)) {
	s.onSave = fn
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// initFiles creates default JSON files if they don't exist
func (s *Storage) initFiles() error {
	if !fileExists(s.path("tasks.json")) {
		if err := s.SaveTasks(&TaskStore{Tasks: []Task{}}); err != nil {
			return err
		}
	}

	if !fileExists(s.path("settings.json")) {
		defaults := DefaultSettings()
		if err := s.writeJSONAtomic("settings.json", &defaults); err != nil {
			return err
		}
	}

	if !fileExists(s.path("sessions.json")) {
		if err := s.SaveSessions(&SessionStore{Entries: []SessionEntry{}}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}

func (s *Storage) writeJSONAtomic(filename string, v any) error {
	path := s.path(filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}

	if s.onSave != nil {
		s.onSave(filename)
	}

	return nil
}

func (s *Storage) loadJSONWithRecovery(filename string, v any) error {
	path := s.path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.writeJSONAtomic(filename, v); err != nil {
				return err
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorruptJSON(filename, v, fmt.Errorf("%s is empty", filename))
	}

	parseErr := json.Unmarshal(data, v)
	if parseErr == nil {
		return nil
	}
	return s.recoverCorruptJSON(filename, v, fmt.Errorf("parse %s: %w", filename, parseErr))
}

func (s *Storage) recoverCorruptJSON(filename string, v any, cause error) error {
	path := s.path(filename)

	// Try backup first.
	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if err := json.Unmarshal(bakData, v); err == nil {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.writeJSONAtomic(filename, v)
			return fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), filename)
		}
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	_ = s.writeJSONAtomic(filename, v)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), corruptPath)
}

// ============================================================================
// Tasks
// ============================================================================

// LoadTasks reads tasks from disk
func (s *Storage) LoadTasks() (*TaskStore, error) {
	store := TaskStore{Tasks: []Task{}}
	err := s.loadJSONWithRecovery("tasks.json", &store)
	return &store, err
}

// SaveTasks writes tasks to disk
func (s *Storage) SaveTasks(store *TaskStore) error {
	return s.writeJSONAtomic("tasks.json", store)
}

func validateTaskFields(text string, estimate int) error {
	if text == "" {
		return fmt.Errorf("task text is required")
	}
	if len(text) > maxTaskTextLen {
		return fmt.Errorf("task text too long (max %d)", maxTaskTextLen)
	}
	if estimate < 1 || estimate > MaxEstimate {
		return fmt.Errorf("estimate must be between 1 and %d", MaxEstimate)
	}
	return nil
}

// findTask returns the index of the task with the given id, or -1.
func findTask(store *TaskStore, id string) int {
	for i := range store.Tasks {
		if store.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask appends a new task with the given text and Pomodoro estimate.
func (s *Storage) AddTask(text string, estimate int) (*Task, error) {
	text = strings.TrimSpace(text)
	if err := validateTaskFields(text, estimate); err != nil {
		return nil, err
	}

	store, err := s.LoadTasks()
	if err != nil {
		return nil, err
	}

	id, err := newID("t")
	if err != nil {
		return nil, err
	}

	task := Task{
		ID:        id,
		Text:      text,
		Estimate:  estimate,
		Completed: 0,
		Done:      false,
		CreatedAt: s.Now(),
	}

	store.Tasks = append(store.Tasks, task)

	if err := s.SaveTasks(store); err != nil {
		return nil, err
	}

	return &task, nil
}

// EditTask updates a task's text and estimate. Lowering the estimate
// never truncates the completed count; raising it above the count
// reopens a finished task, matching the original app.
func (s *Storage) EditTask(id, text string, estimate int) error {
	text = strings.TrimSpace(text)
	if err := validateTaskFields(text, estimate); err != nil {
		return err
	}

	store, err := s.LoadTasks()
	if err != nil {
		return err
	}

	i := findTask(store, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	task := &store.Tasks[i]
	task.Text = text
	task.Estimate = estimate
	if task.Done && task.Completed < estimate {
		task.Done = false
		task.CompletedAt = nil
	}

	return s.SaveTasks(store)
}

// DeleteTask removes a task
func (s *Storage) DeleteTask(id string) error {
	store, err := s.LoadTasks()
	if err != nil {
		return err
	}

	i := findTask(store, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	store.Tasks = append(store.Tasks[:i], store.Tasks[i+1:]...)
	return s.SaveTasks(store)
}

// MoveTask moves a task to a new position in the display order, shifting
// the tasks in between. Positions out of range are clamped. The set of
// tasks is unchanged; only their order moves.
func (s *Storage) MoveTask(id string, newIndex int) error {
	store, err := s.LoadTasks()
	if err != nil {
		return err
	}

	i := findTask(store, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(store.Tasks)-1 {
		newIndex = len(store.Tasks) - 1
	}
	if newIndex == i {
		return nil
	}

	task := store.Tasks[i]
	store.Tasks = append(store.Tasks[:i], store.Tasks[i+1:]...)
	store.Tasks = append(store.Tasks[:newIndex], append([]Task{task}, store.Tasks[newIndex:]...)...)

	return s.SaveTasks(store)
}

// CompleteTask marks a task as done. Checking a task off by hand counts
// as finishing its remaining Pomodoros.
func (s *Storage) CompleteTask(id string) error {
	store, err := s.LoadTasks()
	if err != nil {
		return err
	}

	i := findTask(store, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	task := &store.Tasks[i]
	task.Done = true
	if task.Completed < task.Estimate {
		task.Completed = task.Estimate
	}
	now := s.Now()
	task.CompletedAt = &now

	return s.SaveTasks(store)
}

// UncompleteTask marks a task as not done
func (s *Storage) UncompleteTask(id string) error {
	store, err := s.LoadTasks()
	if err != nil {
		return err
	}

	i := findTask(store, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	store.Tasks[i].Done = false
	store.Tasks[i].CompletedAt = nil

	return s.SaveTasks(store)
}

// RecordPomodoro credits one finished focus phase to a task. When the
// count reaches the estimate the task is marked done. Done tasks take
// no further credit. The updated task is returned so callers can report
// a completion.
func (s *Storage) RecordPomodoro(id string) (*Task, error) {
	store, err := s.LoadTasks()
	if err != nil {
		return nil, err
	}

	i := findTask(store, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	task := &store.Tasks[i]
	if task.Done {
		out := *task
		return &out, nil
	}

	task.Completed++
	if task.Completed >= task.Estimate {
		task.Done = true
		now := s.Now()
		task.CompletedAt = &now
	}

	if err := s.SaveTasks(store); err != nil {
		return nil, err
	}

	out := *task
	return &out, nil
}

// RestoreTask restores a previously existing task (used for undo/redo).
// It preserves the task ID and timestamps.
func (s *Storage) RestoreTask(task Task) error {
	task.Text = strings.TrimSpace(task.Text)

	if strings.TrimSpace(task.ID) == "" {
		return fmt.Errorf("task id is required")
	}
	if err := validateTaskFields(task.Text, task.Estimate); err != nil {
		return err
	}
	if task.Completed < 0 {
		task.Completed = 0
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.Now()
	}
	if task.Done && task.CompletedAt == nil {
		now := s.Now()
		task.CompletedAt = &now
	}
	if !task.Done {
		task.CompletedAt = nil
	}

	store, err := s.LoadTasks()
	if err != nil {
		return err
	}
	if findTask(store, task.ID) >= 0 {
		return fmt.Errorf("task already exists: %s", task.ID)
	}

	store.Tasks = append(store.Tasks, task)
	return s.SaveTasks(store)
}
