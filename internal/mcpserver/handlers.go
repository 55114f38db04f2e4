package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/tasks/internal/storage"
	"github.com/JamesPrial/tasks/internal/tracker"
)

// TaskTools implements the MCP tool handlers over a TaskStore.
//
// Handlers never return Go errors for bad input or storage failures; those
// are reported as error results so the client sees the message.
type TaskTools struct {
	store  storage.TaskStore
	logger *log.Logger

	// now is the clock stamped onto added tasks.
	now func() time.Time
}

// NewTaskTools creates handlers for store.
func NewTaskTools(store storage.TaskStore, logger *log.Logger) *TaskTools {
	return &TaskTools{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// newTracker returns a Tracker that writes rendered output into out.
func (h *TaskTools) newTracker(out io.Writer) *tracker.Tracker {
	tr := tracker.New(h.store, out, h.logger)
	tr.Now = h.now
	return tr
}

// toolError turns an action error into an error result.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// requireID extracts a task id argument. JSON numbers arrive as float64, so
// the value is formatted and decoded with the same rules as the CLI.
func requireID(request mcp.CallToolRequest) (int64, error) {
	v, err := request.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	return tracker.ParseID(strconv.FormatFloat(v, 'f', -1, 64))
}

// requireFlag extracts a single-character status argument.
func requireFlag(request mcp.CallToolRequest) (rune, error) {
	s, err := request.RequireString("status")
	if err != nil {
		return 0, err
	}
	return tracker.ParseFlag(s)
}

// HandleCreateTable creates the task table.
func (h *TaskTools) HandleCreateTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.newTracker(io.Discard).Create(ctx); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText("Table ready"), nil
}

// HandleAddTask adds a PENDING task.
// Parameters:
//   - title (string, required): task title
func (h *TaskTools) HandleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return toolError(err), nil
	}

	id, err := h.newTracker(io.Discard).Add(ctx, title)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added task %d", id)), nil
}

// HandleDeleteTask deletes one task.
// Parameters:
//   - id (number, required): task id
func (h *TaskTools) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return toolError(err), nil
	}

	if err := h.newTracker(io.Discard).Delete(ctx, id); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted task %d", id)), nil
}

// HandleShowTasks renders the selected tasks.
// Parameters:
//   - status (string, optional): one character, default "a"
func (h *TaskTools) HandleShowTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := tracker.ParseFlag(request.GetString("status", "a"))
	if err != nil {
		return toolError(err), nil
	}

	var out bytes.Buffer
	if err := h.newTracker(&out).Show(ctx, status); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(out.String()), nil
}

// HandleSetStatus sets a task status.
// Parameters:
//   - id (number, required): task id
//   - status (string, required): one character
func (h *TaskTools) HandleSetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return toolError(err), nil
	}
	status, err := requireFlag(request)
	if err != nil {
		return toolError(err), nil
	}

	if err := h.newTracker(io.Discard).Status(ctx, id, status); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated status of task %d", id)), nil
}

// HandleEditTask replaces a task title.
// Parameters:
//   - id (number, required): task id
//   - title (string, required): new title
func (h *TaskTools) HandleEditTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return toolError(err), nil
	}
	title, err := request.RequireString("title")
	if err != nil {
		return toolError(err), nil
	}

	if err := h.newTracker(io.Discard).Edit(ctx, id, title); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated title of task %d", id)), nil
}

// HandleClearTasks batch-deletes tasks.
// Parameters:
//   - status (string, required): one character
func (h *TaskTools) HandleClearTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := requireFlag(request)
	if err != nil {
		return toolError(err), nil
	}

	if err := h.newTracker(io.Discard).Clear(ctx, status); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText("Cleared tasks"), nil
}
