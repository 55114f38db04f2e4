package mcpserver

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/tasks/internal/storage"
)

// Name is the server name reported to MCP clients.
const Name = "tasks"

// NewServer creates an MCP server with every task action registered as a tool.
// Nothing touches the database until a tool is called.
func NewServer(store storage.TaskStore, logger *log.Logger, version string) (*server.MCPServer, error) {
	if store == nil {
		return nil, errors.New("mcp server requires a task store")
	}

	h := NewTaskTools(store, logger)

	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(createTableTool(), h.HandleCreateTable)
	s.AddTool(addTaskTool(), h.HandleAddTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)
	s.AddTool(showTasksTool(), h.HandleShowTasks)
	s.AddTool(setStatusTool(), h.HandleSetStatus)
	s.AddTool(editTaskTool(), h.HandleEditTask)
	s.AddTool(clearTasksTool(), h.HandleClearTasks)

	return s, nil
}
