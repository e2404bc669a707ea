package ui

import (
	"strings"
	"testing"

	"pomotodo/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadPaneTasks(t *testing.T, pane *TaskPane, store *storage.Storage) {
	t.Helper()
	tasks, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks() error = %v", err)
	}
	pane.setTasks(tasks.Tasks)
}

func TestTaskPaneView_Empty(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	output := pane.View()
	if !strings.Contains(output, "No tasks yet") {
		t.Errorf("empty pane should show the onboarding hint, got:\n%s", output)
	}
}

func TestTaskPaneView_ShowsPomodoroTally(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("Write report", 4)
	store.RecordPomodoro(task.ID)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	output := pane.View()
	if !strings.Contains(output, "Write report") {
		t.Errorf("view should contain the task text, got:\n%s", output)
	}
	if !strings.Contains(output, "1/4") {
		t.Errorf("view should show the pomodoro tally 1/4, got:\n%s", output)
	}
}

func TestTaskPaneView_DoneTaskCheckbox(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("Completed task", 1)
	store.AddTask("Pending task", 1)
	store.CompleteTask(task.ID)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	output := pane.View()
	if !strings.Contains(output, "[✓]") {
		t.Errorf("view should show a checked box for the done task, got:\n%s", output)
	}
	if !strings.Contains(output, "[ ]") {
		t.Errorf("view should show an empty box for the pending task, got:\n%s", output)
	}
	if !strings.Contains(output, "1/2 complete") {
		t.Errorf("view should show the completion stats, got:\n%s", output)
	}
}

func TestTaskPaneView_ActiveMarker(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("Focus on me", 2)
	store.AddTask("Someday", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)
	pane.SetActiveID(task.ID)
	loadPaneTasks(t, pane, store)

	output := pane.View()
	if !strings.Contains(output, "▶") {
		t.Errorf("view should mark the active task, got:\n%s", output)
	}
}

func TestTaskPane_Navigation(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("Task 1", 1)
	store.AddTask("Task 2", 1)
	store.AddTask("Task 3", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	if pane.cursor != 0 {
		t.Errorf("initial cursor = %d, want 0", pane.cursor)
	}

	pane.Update(keyPress('j'))
	if pane.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", pane.cursor)
	}

	pane.Update(keyPress('G'))
	if pane.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", pane.cursor)
	}

	// Down at the bottom stays put
	pane.Update(keyPress('j'))
	if pane.cursor != 2 {
		t.Errorf("cursor after j at bottom = %d, want 2", pane.cursor)
	}

	pane.Update(keyPress('g'))
	if pane.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", pane.cursor)
	}

	pane.Update(keyPress('k'))
	if pane.cursor != 0 {
		t.Errorf("cursor after k at top = %d, want 0", pane.cursor)
	}
}

func TestTaskPane_AddFlow(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetSize(40, 20)
	pane.SetFocused(true)

	pane.Update(keyPress('a'))
	if !pane.IsAdding() {
		t.Fatal("pane should be in add mode after 'a'")
	}

	pane.textInput.SetValue("New task")
	// Enter on the text field advances to the estimate field
	pane.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if pane.fieldCursor != 1 {
		t.Fatalf("fieldCursor after enter = %d, want 1", pane.fieldCursor)
	}

	pane.estimateInput.SetValue("3")
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submitting the form should return a command")
	}
	if pane.IsAdding() {
		t.Error("pane should leave add mode after submit")
	}

	// Execute the returned command and verify the add went through
	msg := cmd()
	added, ok := msg.(taskAddedMsg)
	if !ok {
		t.Fatalf("expected taskAddedMsg, got %T", msg)
	}
	if added.err != nil {
		t.Fatalf("add failed: %v", added.err)
	}
	if added.task.Text != "New task" || added.task.Estimate != 3 {
		t.Errorf("added task = %q estimate %d, want \"New task\" estimate 3", added.task.Text, added.task.Estimate)
	}
}

func TestTaskPane_AddDefaultsEstimateToOne(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)

	pane.Update(keyPress('a'))
	pane.textInput.SetValue("Quick one")
	pane.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter}) // estimate left blank

	msg := cmd()
	added, ok := msg.(taskAddedMsg)
	if !ok {
		t.Fatalf("expected taskAddedMsg, got %T", msg)
	}
	if added.err != nil {
		t.Fatalf("add failed: %v", added.err)
	}
	if added.task.Estimate != 1 {
		t.Errorf("estimate = %d, want default 1", added.task.Estimate)
	}
}

func TestTaskPane_AddCancelled(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)

	pane.Update(keyPress('a'))
	pane.textInput.SetValue("Discard me")
	pane.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if pane.IsAdding() {
		t.Error("esc should leave add mode")
	}
	tasks, _ := store.LoadTasks()
	if len(tasks.Tasks) != 0 {
		t.Errorf("cancelled add should not persist, got %d tasks", len(tasks.Tasks))
	}
}

func TestTaskPane_EditPrefillsForm(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("Original text", 2)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	pane.Update(keyPress('e'))
	if !pane.IsAdding() {
		t.Fatal("pane should be in edit mode after 'e'")
	}
	if pane.editingID == "" {
		t.Error("editingID should be set in edit mode")
	}
	if pane.textInput.Value() != "Original text" {
		t.Errorf("text field = %q, want prefilled original", pane.textInput.Value())
	}
	if pane.estimateInput.Value() != "2" {
		t.Errorf("estimate field = %q, want \"2\"", pane.estimateInput.Value())
	}
}

func TestTaskPane_EditSubmit(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("Original text", 2)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	pane.Update(keyPress('e'))
	pane.textInput.SetValue("Edited text")
	pane.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pane.estimateInput.SetValue("5")
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := cmd()
	edited, ok := msg.(taskEditedMsg)
	if !ok {
		t.Fatalf("expected taskEditedMsg, got %T", msg)
	}
	if edited.err != nil {
		t.Fatalf("edit failed: %v", edited.err)
	}
	if edited.prev == nil || edited.prev.Text != "Original text" {
		t.Error("edit message should carry the previous state for undo")
	}

	got, _ := store.LoadTasks()
	if got.Tasks[0].ID != task.ID || got.Tasks[0].Text != "Edited text" || got.Tasks[0].Estimate != 5 {
		t.Errorf("stored task = %+v, want edited text and estimate 5", got.Tasks[0])
	}
}

func TestTaskPane_ToggleDone(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("Toggle me", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	cmd := pane.Update(keyPress('d'))
	if cmd == nil {
		t.Fatal("toggle should return a command")
	}
	if _, ok := cmd().(taskCompletedMsg); !ok {
		t.Fatal("expected taskCompletedMsg from toggle on a pending task")
	}

	loadPaneTasks(t, pane, store)
	cmd = pane.Update(keyPress('d'))
	if _, ok := cmd().(taskUncompletedMsg); !ok {
		t.Fatal("expected taskUncompletedMsg from toggle on a done task")
	}
}

func TestTaskPane_MoveFollowsCursor(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("first", 1)
	store.AddTask("second", 1)
	store.AddTask("third", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	pane.cursor = 1
	cmd := pane.Update(keyPress('K'))
	if cmd == nil {
		t.Fatal("move up should return a command")
	}
	if pane.cursor != 0 {
		t.Errorf("cursor after move up = %d, want 0", pane.cursor)
	}

	msg := cmd()
	moved, ok := msg.(taskMovedMsg)
	if !ok {
		t.Fatalf("expected taskMovedMsg, got %T", msg)
	}
	if moved.err != nil {
		t.Fatalf("move failed: %v", moved.err)
	}

	got, _ := store.LoadTasks()
	if got.Tasks[0].Text != "second" || got.Tasks[1].Text != "first" {
		t.Errorf("order after move = [%s %s %s], want [second first third]",
			got.Tasks[0].Text, got.Tasks[1].Text, got.Tasks[2].Text)
	}
}

func TestTaskPane_MoveAtEdgesIsNoop(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("only", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	if cmd := pane.Update(keyPress('K')); cmd != nil {
		t.Error("move up at the top should be a no-op")
	}
	if cmd := pane.Update(keyPress('J')); cmd != nil {
		t.Error("move down at the bottom should be a no-op")
	}
}

func TestTaskPane_SetActiveToggles(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("Pick me", 2)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	cmd := pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("set-active should return a command")
	}
	msg, ok := cmd().(setActiveTaskMsg)
	if !ok {
		t.Fatal("expected setActiveTaskMsg")
	}
	if msg.id != task.ID || msg.text != "Pick me" {
		t.Errorf("setActiveTaskMsg = %+v, want the selected task", msg)
	}

	// Picking the already-active task clears it
	pane.SetActiveID(task.ID)
	cmd = pane.Update(tea.KeyMsg{Type: tea.KeySpace})
	msg = cmd().(setActiveTaskMsg)
	if msg.id != "" {
		t.Errorf("picking the active task again should clear it, got id %q", msg.id)
	}
}

func TestTaskPane_DeleteReturnsCommand(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("Doomed", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	cmd := pane.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("delete should return a command")
	}
	deleted, ok := cmd().(taskDeletedMsg)
	if !ok {
		t.Fatal("expected taskDeletedMsg")
	}
	if deleted.err != nil {
		t.Fatalf("delete failed: %v", deleted.err)
	}
	if deleted.task == nil || deleted.task.Text != "Doomed" {
		t.Error("delete message should carry the removed task for undo")
	}

	got, _ := store.LoadTasks()
	if len(got.Tasks) != 0 {
		t.Errorf("ledger should be empty after delete, got %d tasks", len(got.Tasks))
	}
}

func TestTaskPane_UnfocusedIgnoresKeys(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	store.AddTask("Task", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(false)
	loadPaneTasks(t, pane, store)

	if cmd := pane.Update(keyPress('x')); cmd != nil {
		t.Error("unfocused pane should ignore keys")
	}
	if pane.IsAdding() {
		t.Error("unfocused pane should not enter add mode")
	}
}

func TestTaskPane_CursorClampedAfterReload(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	t1, _ := store.AddTask("one", 1)
	store.AddTask("two", 1)

	pane := NewTaskPane(store, createTestStyles())
	pane.SetFocused(true)
	loadPaneTasks(t, pane, store)

	pane.cursor = 1
	store.DeleteTask(t1.ID)
	store.DeleteTask(pane.tasks[1].ID)
	loadPaneTasks(t, pane, store)

	if pane.cursor != 0 {
		t.Errorf("cursor should clamp to 0 on an empty list, got %d", pane.cursor)
	}
}

func TestTaskPane_Stats(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)

	task, _ := store.AddTask("done", 1)
	store.AddTask("pending", 1)
	store.CompleteTask(task.ID)

	pane := NewTaskPane(store, createTestStyles())
	loadPaneTasks(t, pane, store)

	done, total := pane.Stats()
	if done != 1 || total != 2 {
		t.Errorf("Stats() = (%d, %d), want (1, 2)", done, total)
	}
}
