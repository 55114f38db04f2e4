package mcpserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/tasks/internal/storage"
	"github.com/JamesPrial/tasks/internal/task"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)

// newTestTools returns handlers over a fresh SQLite file in a temp directory.
// The table is not created.
func newTestTools(t *testing.T) (*TaskTools, *storage.SQLiteBackend) {
	t.Helper()
	store := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "db.db3"))
	h := NewTaskTools(store, nil)
	h.now = func() time.Time { return fixedNow }
	return h, store
}

// newReadyTools is newTestTools with the table already created.
func newReadyTools(t *testing.T) (*TaskTools, *storage.SQLiteBackend) {
	t.Helper()
	h, store := newTestTools(t)
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return h, store
}

func makeRequest(name string, args map[string]any) mcp.CallToolRequest {
	if args == nil {
		args = map[string]any{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the text content from the first Content element of a
// CallToolResult. It calls t.Fatal if the result is nil or has no content.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no Content elements")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result.Content[0] is %T, want mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

// call invokes handler and fails the test on a Go error.
func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s returned Go error: %v", req.Params.Name, err)
	}
	return result
}

// mustSucceed calls handler and asserts a non-error result, returning its text.
func mustSucceed(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), req mcp.CallToolRequest) string {
	t.Helper()
	result := call(t, handler, req)
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("%s IsError = true, text: %s", req.Params.Name, text)
	}
	return text
}

// mustFail calls handler and asserts an error result, returning its text.
func mustFail(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), req mcp.CallToolRequest) string {
	t.Helper()
	result := call(t, handler, req)
	text := resultText(t, result)
	if !result.IsError {
		t.Fatalf("%s IsError = false, text: %s", req.Params.Name, text)
	}
	return text
}

func listAll(t *testing.T, store storage.TaskStore) []task.Task {
	t.Helper()
	tasks, err := store.List(context.Background(), task.All)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	return tasks
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %s not to exist, stat error: %v", path, err)
	}
}

// ---------------------------------------------------------------------------
// HandleCreateTable
// ---------------------------------------------------------------------------

func Test_HandleCreateTable_Idempotent(t *testing.T) {
	t.Parallel()
	h, store := newTestTools(t)

	for i := 0; i < 2; i++ {
		text := mustSucceed(t, h.HandleCreateTable, makeRequest("create_table", nil))
		if text != "Table ready" {
			t.Errorf("text = %q, want %q", text, "Table ready")
		}
	}
	if got := listAll(t, store); len(got) != 0 {
		t.Errorf("tasks after create = %d, want 0", len(got))
	}
}

// ---------------------------------------------------------------------------
// HandleAddTask
// ---------------------------------------------------------------------------

func Test_HandleAddTask_Inserts(t *testing.T) {
	t.Parallel()
	h, store := newReadyTools(t)

	text := mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "Buy milk"}))
	if text != "Added task 1" {
		t.Errorf("text = %q, want %q", text, "Added task 1")
	}

	got := listAll(t, store)
	if len(got) != 1 {
		t.Fatalf("tasks = %d, want 1", len(got))
	}
	want := task.Task{ID: 1, Title: "Buy milk", Status: task.Pending, CreatedAt: "2025-06-01 09:30:15"}
	if got[0] != want {
		t.Errorf("task = %+v, want %+v", got[0], want)
	}
}

func Test_HandleAddTask_InvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing title", args: nil, want: "title"},
		{name: "empty title", args: map[string]any{"title": ""}, want: task.ErrEmptyTitle.Error()},
		{name: "blank title", args: map[string]any{"title": "   "}, want: task.ErrEmptyTitle.Error()},
		{name: "numeric title", args: map[string]any{"title": 42}, want: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store := newReadyTools(t)

			text := mustFail(t, h.HandleAddTask, makeRequest("add_task", tt.args))
			if !strings.Contains(text, tt.want) {
				t.Errorf("text = %q, want it to contain %q", text, tt.want)
			}
			if got := listAll(t, store); len(got) != 0 {
				t.Errorf("tasks = %d, want 0", len(got))
			}
		})
	}
}

func Test_HandleAddTask_MissingTable(t *testing.T) {
	t.Parallel()
	h, _ := newTestTools(t)

	text := mustFail(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "x"}))
	if !strings.HasPrefix(text, "could not add task") {
		t.Errorf("text = %q, want prefix %q", text, "could not add task")
	}
}

// ---------------------------------------------------------------------------
// HandleDeleteTask
// ---------------------------------------------------------------------------

func Test_HandleDeleteTask(t *testing.T) {
	t.Parallel()
	h, store := newReadyTools(t)
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "a"}))
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "b"}))

	text := mustSucceed(t, h.HandleDeleteTask, makeRequest("delete_task", map[string]any{"id": float64(1)}))
	if text != "Deleted task 1" {
		t.Errorf("text = %q, want %q", text, "Deleted task 1")
	}

	got := listAll(t, store)
	if len(got) != 1 || got[0].Title != "b" {
		t.Errorf("remaining tasks = %+v, want only %q", got, "b")
	}
}

func Test_HandleDeleteTask_MissingIDIsNoOp(t *testing.T) {
	t.Parallel()
	h, store := newReadyTools(t)
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "a"}))

	mustSucceed(t, h.HandleDeleteTask, makeRequest("delete_task", map[string]any{"id": float64(99)}))
	if got := listAll(t, store); len(got) != 1 {
		t.Errorf("tasks = %d, want 1", len(got))
	}
}

func Test_HandleDeleteTask_InvalidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing", args: nil},
		{name: "string", args: map[string]any{"id": "1"}},
		{name: "negative", args: map[string]any{"id": float64(-1)}},
		{name: "too large", args: map[string]any{"id": float64(256)}},
		{name: "fractional", args: map[string]any{"id": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store := newReadyTools(t)
			mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "a"}))

			mustFail(t, h.HandleDeleteTask, makeRequest("delete_task", tt.args))
			if got := listAll(t, store); len(got) != 1 {
				t.Errorf("tasks = %d, want 1", len(got))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// HandleShowTasks
// ---------------------------------------------------------------------------

func Test_HandleShowTasks_Filters(t *testing.T) {
	t.Parallel()
	h, _ := newReadyTools(t)
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "finished"}))
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "open"}))
	mustSucceed(t, h.HandleSetStatus, makeRequest("set_status", map[string]any{"id": float64(1), "status": "d"}))

	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		notWant []string
	}{
		{
			name: "default shows all",
			args: nil,
			want: []string{"finished", "open", "DONE: 1", "PENDING: 1"},
		},
		{
			name:    "done",
			args:    map[string]any{"status": "d"},
			want:    []string{"finished", "DONE: 1"},
			notWant: []string{"open", "PENDING:"},
		},
		{
			name:    "pending",
			args:    map[string]any{"status": "p"},
			want:    []string{"open", "PENDING: 1"},
			notWant: []string{"finished", "DONE:"},
		},
		{
			name: "unrecognized shows all",
			args: map[string]any{"status": "x"},
			want: []string{"finished", "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := mustSucceed(t, h.HandleShowTasks, makeRequest("show_tasks", tt.args))
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("output missing %q:\n%s", w, text)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(text, nw) {
					t.Errorf("output unexpectedly contains %q:\n%s", nw, text)
				}
			}
		})
	}
}

func Test_HandleShowTasks_MultiCharStatus(t *testing.T) {
	t.Parallel()
	h, _ := newReadyTools(t)

	mustFail(t, h.HandleShowTasks, makeRequest("show_tasks", map[string]any{"status": "done"}))
}

func Test_HandleShowTasks_MissingTable(t *testing.T) {
	t.Parallel()
	h, _ := newTestTools(t)

	text := mustFail(t, h.HandleShowTasks, makeRequest("show_tasks", nil))
	if !strings.HasPrefix(text, "could not show tasks") {
		t.Errorf("text = %q, want prefix %q", text, "could not show tasks")
	}
}

// ---------------------------------------------------------------------------
// HandleSetStatus
// ---------------------------------------------------------------------------

func Test_HandleSetStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "d marks done", status: "d", want: task.Done},
		{name: "p marks pending", status: "p", want: task.Pending},
		{name: "other marks pending", status: "z", want: task.Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store := newReadyTools(t)
			mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "a"}))
			if tt.want == task.Pending {
				mustSucceed(t, h.HandleSetStatus, makeRequest("set_status", map[string]any{"id": float64(1), "status": "d"}))
			}

			text := mustSucceed(t, h.HandleSetStatus, makeRequest("set_status", map[string]any{"id": float64(1), "status": tt.status}))
			if text != "Updated status of task 1" {
				t.Errorf("text = %q, want %q", text, "Updated status of task 1")
			}
			if got := listAll(t, store); got[0].Status != tt.want {
				t.Errorf("status = %q, want %q", got[0].Status, tt.want)
			}
		})
	}
}

func Test_HandleSetStatus_MissingStatus(t *testing.T) {
	t.Parallel()
	h, _ := newReadyTools(t)

	mustFail(t, h.HandleSetStatus, makeRequest("set_status", map[string]any{"id": float64(1)}))
}

// ---------------------------------------------------------------------------
// HandleEditTask
// ---------------------------------------------------------------------------

func Test_HandleEditTask(t *testing.T) {
	t.Parallel()
	h, store := newReadyTools(t)
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "old"}))

	text := mustSucceed(t, h.HandleEditTask, makeRequest("edit_task", map[string]any{"id": float64(1), "title": "new"}))
	if text != "Updated title of task 1" {
		t.Errorf("text = %q, want %q", text, "Updated title of task 1")
	}

	got := listAll(t, store)
	if got[0].Title != "new" || got[0].Status != task.Pending {
		t.Errorf("task = %+v, want title %q and status unchanged", got[0], "new")
	}
}

func Test_HandleEditTask_EmptyTitle(t *testing.T) {
	t.Parallel()
	h, store := newReadyTools(t)
	mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "old"}))

	mustFail(t, h.HandleEditTask, makeRequest("edit_task", map[string]any{"id": float64(1), "title": ""}))
	if got := listAll(t, store); got[0].Title != "old" {
		t.Errorf("title = %q, want %q", got[0].Title, "old")
	}
}

// ---------------------------------------------------------------------------
// HandleClearTasks
// ---------------------------------------------------------------------------

func Test_HandleClearTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     string
		wantTitles []string
	}{
		{name: "d clears done", status: "d", wantTitles: []string{"open"}},
		{name: "p clears pending", status: "p", wantTitles: []string{"finished"}},
		{name: "a clears all", status: "a", wantTitles: nil},
		{name: "other clears pending", status: "q", wantTitles: []string{"finished"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store := newReadyTools(t)
			mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "finished"}))
			mustSucceed(t, h.HandleAddTask, makeRequest("add_task", map[string]any{"title": "open"}))
			mustSucceed(t, h.HandleSetStatus, makeRequest("set_status", map[string]any{"id": float64(1), "status": "d"}))

			text := mustSucceed(t, h.HandleClearTasks, makeRequest("clear_tasks", map[string]any{"status": tt.status}))
			if text != "Cleared tasks" {
				t.Errorf("text = %q, want %q", text, "Cleared tasks")
			}

			got := listAll(t, store)
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("remaining = %+v, want titles %v", got, tt.wantTitles)
			}
			for i, title := range tt.wantTitles {
				if got[i].Title != title {
					t.Errorf("remaining[%d].Title = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

func Test_HandleClearTasks_MissingStatus(t *testing.T) {
	t.Parallel()
	h, _ := newReadyTools(t)

	mustFail(t, h.HandleClearTasks, makeRequest("clear_tasks", nil))
}
