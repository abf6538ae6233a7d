package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListUserStoriesTool handles the taiga_list_userstories MCP tool.
type ListUserStoriesTool struct {
	client *taiga.Client
}

// NewListUserStoriesTool creates a ListUserStoriesTool.
func NewListUserStoriesTool(client *taiga.Client) *ListUserStoriesTool {
	return &ListUserStoriesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_userstories.
func (t *ListUserStoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_userstories",
		mcp.WithDescription("List user stories, optionally filtered. All filters combine with AND."),
		mcp.WithNumber("project",
			mcp.Description("Filter by project ID"),
		),
		mcp.WithNumber("milestone",
			mcp.Description("Filter by milestone (sprint) ID"),
		),
		mcp.WithNumber("status",
			mcp.Description("Filter by status ID"),
		),
		mcp.WithNumber("epic",
			mcp.Description("Filter by epic ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("Filter by assignee user ID"),
		),
	)
}

// Handle processes the taiga_list_userstories tool call.
func (t *ListUserStoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stories, err := t.client.ListUserStories(ctx, taiga.UserStoryFilters{
		Project:    intArg(req, "project", 0),
		Milestone:  intArg(req, "milestone", 0),
		Status:     intArg(req, "status", 0),
		Epic:       intArg(req, "epic", 0),
		AssignedTo: intArg(req, "assigned_to", 0),
	})
	if err != nil {
		return errResult("listing user stories", err)
	}
	return jsonResult(stories)
}

// GetUserStoryTool handles the taiga_get_userstory MCP tool.
type GetUserStoryTool struct {
	client *taiga.Client
}

// NewGetUserStoryTool creates a GetUserStoryTool.
func NewGetUserStoryTool(client *taiga.Client) *GetUserStoryTool {
	return &GetUserStoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_userstory.
func (t *GetUserStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_userstory",
		mcp.WithDescription("Fetch a single user story by ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("User story ID"),
		),
	)
}

// Handle processes the taiga_get_userstory tool call.
func (t *GetUserStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	story, err := t.client.GetUserStory(ctx, id)
	if err != nil {
		return errResult("fetching user story", err)
	}
	return jsonResult(story)
}

// CreateUserStoryTool handles the taiga_create_userstory MCP tool.
type CreateUserStoryTool struct {
	client *taiga.Client
}

// NewCreateUserStoryTool creates a CreateUserStoryTool.
func NewCreateUserStoryTool(client *taiga.Client) *CreateUserStoryTool {
	return &CreateUserStoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_userstory.
func (t *CreateUserStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_userstory",
		mcp.WithDescription("Create a user story in a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Story title"),
		),
		mcp.WithString("description",
			mcp.Description("Story description, markdown allowed"),
		),
		mcp.WithNumber("milestone",
			mcp.Description("Milestone (sprint) ID to place the story in"),
		),
		mcp.WithNumber("status",
			mcp.Description("Initial status ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("User ID to assign the story to"),
		),
	)
}

// Handle processes the taiga_create_userstory tool call.
func (t *CreateUserStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	subject := req.GetString("subject", "")
	if subject == "" {
		return mcp.NewToolResultError("'subject' is required"), nil
	}

	create := &taiga.CreateUserStoryRequest{
		Project:     project,
		Subject:     subject,
		Description: req.GetString("description", ""),
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

	story, err := t.client.CreateUserStory(ctx, create)
	if err != nil {
		return errResult("creating user story", err)
	}
	return jsonResult(story)
}

// UpdateUserStoryTool handles the taiga_update_userstory MCP tool.
type UpdateUserStoryTool struct {
	client *taiga.Client
}

// NewUpdateUserStoryTool creates an UpdateUserStoryTool.
func NewUpdateUserStoryTool(client *taiga.Client) *UpdateUserStoryTool {
	return &UpdateUserStoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_userstory.
func (t *UpdateUserStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_userstory",
		mcp.WithDescription(
			"Update fields of a user story. Only the provided fields change; the "+
				"update is guarded against concurrent edits.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("User story ID"),
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
		mcp.WithNumber("milestone",
			mcp.Description("New milestone ID"),
		),
	)
}

// Handle processes the taiga_update_userstory tool call.
func (t *UpdateUserStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	changes := map[string]any{}
	stringChange(req, changes, "subject")
	stringChange(req, changes, "description")
	intChange(req, changes, "status")
	intChange(req, changes, "milestone")
	if len(changes) == 0 {
		return mcp.NewToolResultError("no changes given; provide at least one field to update"), nil
	}

	story, err := t.client.UpdateUserStory(ctx, id, changes)
	if err != nil {
		return errResult("updating user story", err)
	}
	return jsonResult(story)
}

// DeleteUserStoryTool handles the taiga_delete_userstory MCP tool.
type DeleteUserStoryTool struct {
	client *taiga.Client
}

// NewDeleteUserStoryTool creates a DeleteUserStoryTool.
func NewDeleteUserStoryTool(client *taiga.Client) *DeleteUserStoryTool {
	return &DeleteUserStoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_userstory.
func (t *DeleteUserStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_userstory",
		mcp.WithDescription("Delete a user story permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("User story ID"),
		),
	)
}

// Handle processes the taiga_delete_userstory tool call.
func (t *DeleteUserStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteUserStory(ctx, id); err != nil {
		return errResult("deleting user story", err)
	}
	return mcp.NewToolResultText("User story deleted."), nil
}

// AssignUserStoryTool handles the taiga_assign_userstory MCP tool.
type AssignUserStoryTool struct {
	client *taiga.Client
}

// NewAssignUserStoryTool creates an AssignUserStoryTool.
func NewAssignUserStoryTool(client *taiga.Client) *AssignUserStoryTool {
	return &AssignUserStoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_assign_userstory.
func (t *AssignUserStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_assign_userstory",
		mcp.WithDescription("Assign a user story to a user, or unassign it when no user is given."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("User story ID"),
		),
		mcp.WithNumber("user",
			mcp.Description("User ID to assign to; omit to clear the assignment"),
		),
	)
}

// Handle processes the taiga_assign_userstory tool call.
func (t *AssignUserStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	var story *taiga.UserStory
	var err error
	if user := intArg(req, "user", 0); user > 0 {
		story, err = t.client.AssignUserStory(ctx, id, user)
	} else {
		story, err = t.client.UnassignUserStory(ctx, id)
	}
	if err != nil {
		return errResult("assigning user story", err)
	}
	return jsonResult(story)
}

// ListUserStoryStatusesTool handles the taiga_list_userstory_statuses MCP tool.
type ListUserStoryStatusesTool struct {
	client *taiga.Client
}

// NewListUserStoryStatusesTool creates a ListUserStoryStatusesTool.
func NewListUserStoryStatusesTool(client *taiga.Client) *ListUserStoryStatusesTool {
	return &ListUserStoryStatusesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_userstory_statuses.
func (t *ListUserStoryStatusesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_userstory_statuses",
		mcp.WithDescription("List the user story statuses defined in a project, for use as status IDs."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_userstory_statuses tool call.
func (t *ListUserStoryStatusesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	statuses, err := t.client.ListUserStoryStatuses(ctx, project)
	if err != nil {
		return errResult("listing story statuses", err)
	}
	return jsonResult(statuses)
}
