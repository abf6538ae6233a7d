package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListTasksTool handles the taiga_list_tasks MCP tool.
type ListTasksTool struct {
	client *taiga.Client
}

// NewListTasksTool creates a ListTasksTool.
func NewListTasksTool(client *taiga.Client) *ListTasksTool {
	return &ListTasksTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_tasks.
func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_tasks",
		mcp.WithDescription("List tasks, optionally filtered. All filters combine with AND."),
		mcp.WithNumber("project",
			mcp.Description("Filter by project ID"),
		),
		mcp.WithNumber("user_story",
			mcp.Description("Filter by parent user story ID"),
		),
		mcp.WithNumber("milestone",
			mcp.Description("Filter by milestone ID"),
		),
		mcp.WithNumber("status",
			mcp.Description("Filter by status ID"),
		),
	)
}

// Handle processes the taiga_list_tasks tool call.
func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := t.client.ListTasks(ctx, taiga.TaskFilters{
		Project:   intArg(req, "project", 0),
		UserStory: intArg(req, "user_story", 0),
		Milestone: intArg(req, "milestone", 0),
		Status:    intArg(req, "status", 0),
	})
	if err != nil {
		return errResult("listing tasks", err)
	}
	return jsonResult(tasks)
}

// GetTaskTool handles the taiga_get_task MCP tool.
type GetTaskTool struct {
	client *taiga.Client
}

// NewGetTaskTool creates a GetTaskTool.
func NewGetTaskTool(client *taiga.Client) *GetTaskTool {
	return &GetTaskTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_task.
func (t *GetTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_task",
		mcp.WithDescription("Fetch a single task by ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)
}

// Handle processes the taiga_get_task tool call.
func (t *GetTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	task, err := t.client.GetTask(ctx, id)
	if err != nil {
		return errResult("fetching task", err)
	}
	return jsonResult(task)
}

// CreateTaskTool handles the taiga_create_task MCP tool.
type CreateTaskTool struct {
	client *taiga.Client
}

// NewCreateTaskTool creates a CreateTaskTool.
func NewCreateTaskTool(client *taiga.Client) *CreateTaskTool {
	return &CreateTaskTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_task.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_task",
		mcp.WithDescription("Create a task, optionally under a user story."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("description",
			mcp.Description("Task description"),
		),
		mcp.WithNumber("user_story",
			mcp.Description("Parent user story ID"),
		),
		mcp.WithNumber("milestone",
			mcp.Description("Milestone ID"),
		),
		mcp.WithNumber("status",
			mcp.Description("Initial status ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("User ID to assign the task to"),
		),
	)
}

// Handle processes the taiga_create_task tool call.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	subject := req.GetString("subject", "")
	if subject == "" {
		return mcp.NewToolResultError("'subject' is required"), nil
	}

	create := &taiga.CreateTaskRequest{
		Project:     project,
		Subject:     subject,
		Description: req.GetString("description", ""),
	}
	if v := intArg(req, "user_story", 0); v > 0 {
		create.UserStory = &v
	}
	if v := intArg(req, "milestone", 0); v > 0 {
		create.Milestone = &v
	}
	if v := intArg(req, "status", 0); v > 0 {
		create.Status = &v
	}
	if v := intArg(req, "assigned_to", 0); v > 0 {
		create.AssignedTo = &v
	}

	task, err := t.client.CreateTask(ctx, create)
	if err != nil {
		return errResult("creating task", err)
	}
	return jsonResult(task)
}

// UpdateTaskTool handles the taiga_update_task MCP tool.
type UpdateTaskTool struct {
	client *taiga.Client
}

// NewUpdateTaskTool creates an UpdateTaskTool.
func NewUpdateTaskTool(client *taiga.Client) *UpdateTaskTool {
	return &UpdateTaskTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_task.
func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_task",
		mcp.WithDescription(
			"Update fields of a task. Only the provided fields change; the update is "+
				"guarded against concurrent edits.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("subject",
			mcp.Description("New title"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithNumber("status",
			mcp.Description("New status ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("New assignee user ID"),
		),
	)
}

// Handle processes the taiga_update_task tool call.
func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	changes := map[string]any{}
	stringChange(req, changes, "subject")
	stringChange(req, changes, "description")
	intChange(req, changes, "status")
	intChange(req, changes, "assigned_to")
	if len(changes) == 0 {
		return mcp.NewToolResultError("no changes given; provide at least one field to update"), nil
	}

	task, err := t.client.UpdateTask(ctx, id, changes)
	if err != nil {
		return errResult("updating task", err)
	}
	return jsonResult(task)
}

// DeleteTaskTool handles the taiga_delete_task MCP tool.
type DeleteTaskTool struct {
	client *taiga.Client
}

// NewDeleteTaskTool creates a DeleteTaskTool.
func NewDeleteTaskTool(client *taiga.Client) *DeleteTaskTool {
	return &DeleteTaskTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_task.
func (t *DeleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_task",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)
}

// Handle processes the taiga_delete_task tool call.
func (t *DeleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteTask(ctx, id); err != nil {
		return errResult("deleting task", err)
	}
	return mcp.NewToolResultText("Task deleted."), nil
}
