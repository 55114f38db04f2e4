// Package mcpserver exposes the task actions as MCP tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTableTool returns a tool definition for creating the task table.
func createTableTool() mcp.Tool {
	return mcp.NewTool("create_table",
		mcp.WithDescription("Create the tasks table if it does not exist. Safe to call repeatedly."),
	)
}

// addTaskTool returns a tool definition for adding a PENDING task.
func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a new task with status PENDING and the current UTC timestamp."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title (must not be empty)")),
	)
}

// deleteTaskTool returns a tool definition for deleting one task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task by id. Deleting a missing id succeeds and changes nothing."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id (0-255)")),
	)
}

// showTasksTool returns a tool definition for listing tasks.
func showTasksTool() mcp.Tool {
	return mcp.NewTool("show_tasks",
		mcp.WithDescription("Show tasks as a table followed by DONE/PENDING counts."),
		mcp.WithString("status",
			mcp.Description("One character: d=done, p=pending, anything else=all (default: a)")),
	)
}

// setStatusTool returns a tool definition for changing a task status.
func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Set a task status. 'd' marks it DONE; any other character marks it PENDING."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id (0-255)")),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("One character: d=done, p=pending")),
	)
}

// editTaskTool returns a tool definition for changing a task title.
func editTaskTool() mcp.Tool {
	return mcp.NewTool("edit_task",
		mcp.WithDescription("Replace the title of a task."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id (0-255)")),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New task title (must not be empty)")),
	)
}

// clearTasksTool returns a tool definition for batch deletes.
func clearTasksTool() mcp.Tool {
	return mcp.NewTool("clear_tasks",
		mcp.WithDescription("Batch-delete tasks. 'd' deletes DONE tasks, 'a' deletes all tasks, 'p' or any other character deletes PENDING tasks."),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("One character: d=done, p=pending, a=all")),
	)
}
