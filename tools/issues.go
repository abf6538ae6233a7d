package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListIssuesTool handles the taiga_list_issues MCP tool.
type ListIssuesTool struct {
	client *taiga.Client
}

// NewListIssuesTool creates a ListIssuesTool.
func NewListIssuesTool(client *taiga.Client) *ListIssuesTool {
	return &ListIssuesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_issues.
func (t *ListIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_issues",
		mcp.WithDescription("List issues, optionally filtered. All filters combine with AND."),
		mcp.WithNumber("project",
			mcp.Description("Filter by project ID"),
		),
		mcp.WithNumber("milestone",
			mcp.Description("Filter by milestone ID"),
		),
		mcp.WithNumber("status",
			mcp.Description("Filter by status ID"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Filter by priority ID"),
		),
		mcp.WithNumber("severity",
			mcp.Description("Filter by severity ID"),
		),
		mcp.WithNumber("type",
			mcp.Description("Filter by issue type ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("Filter by assignee user ID"),
		),
	)
}

// Handle processes the taiga_list_issues tool call.
func (t *ListIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issues, err := t.client.ListIssues(ctx, taiga.IssueFilters{
		Project:    intArg(req, "project", 0),
		Milestone:  intArg(req, "milestone", 0),
		Status:     intArg(req, "status", 0),
		Priority:   intArg(req, "priority", 0),
		Severity:   intArg(req, "severity", 0),
		Type:       intArg(req, "type", 0),
		AssignedTo: intArg(req, "assigned_to", 0),
	})
	if err != nil {
		return errResult("listing issues", err)
	}
	return jsonResult(issues)
}

// GetIssueTool handles the taiga_get_issue MCP tool.
type GetIssueTool struct {
	client *taiga.Client
}

// NewGetIssueTool creates a GetIssueTool.
func NewGetIssueTool(client *taiga.Client) *GetIssueTool {
	return &GetIssueTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_issue.
func (t *GetIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_issue",
		mcp.WithDescription("Fetch a single issue by ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Issue ID"),
		),
	)
}

// Handle processes the taiga_get_issue tool call.
func (t *GetIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	issue, err := t.client.GetIssue(ctx, id)
	if err != nil {
		return errResult("fetching issue", err)
	}
	return jsonResult(issue)
}

// CreateIssueTool handles the taiga_create_issue MCP tool.
type CreateIssueTool struct {
	client *taiga.Client
}

// NewCreateIssueTool creates a CreateIssueTool.
func NewCreateIssueTool(client *taiga.Client) *CreateIssueTool {
	return &CreateIssueTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_issue.
func (t *CreateIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_issue",
		mcp.WithDescription(
			"Create an issue in a project. Use taiga_list_issue_options to discover "+
				"valid status, priority, severity, and type IDs.",
		),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Issue title"),
		),
		mcp.WithString("description",
			mcp.Description("Issue description, markdown allowed"),
		),
		mcp.WithNumber("status",
			mcp.Description("Initial status ID"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority ID"),
		),
		mcp.WithNumber("severity",
			mcp.Description("Severity ID"),
		),
		mcp.WithNumber("type",
			mcp.Description("Issue type ID"),
		),
		mcp.WithNumber("assigned_to",
			mcp.Description("User ID to assign the issue to"),
		),
	)
}

// Handle processes the taiga_create_issue tool call.
func (t *CreateIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	subject := req.GetString("subject", "")
	if subject == "" {
		return mcp.NewToolResultError("'subject' is required"), nil
	}

	create := &taiga.CreateIssueRequest{
		Project:     project,
		Subject:     subject,
		Description: req.GetString("description", ""),
	}
	if v := intArg(req, "status", 0); v > 0 {
		create.Status = &v
	}
	if v := intArg(req, "priority", 0); v > 0 {
		create.Priority = &v
	}
	if v := intArg(req, "severity", 0); v > 0 {
		create.Severity = &v
	}
	if v := intArg(req, "type", 0); v > 0 {
		create.Type = &v
	}
	if v := intArg(req, "assigned_to", 0); v > 0 {
		create.AssignedTo = &v
	}

	issue, err := t.client.CreateIssue(ctx, create)
	if err != nil {
		return errResult("creating issue", err)
	}
	return jsonResult(issue)
}

// UpdateIssueTool handles the taiga_update_issue MCP tool.
type UpdateIssueTool struct {
	client *taiga.Client
}

// NewUpdateIssueTool creates an UpdateIssueTool.
func NewUpdateIssueTool(client *taiga.Client) *UpdateIssueTool {
	return &UpdateIssueTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_issue.
func (t *UpdateIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_issue",
		mcp.WithDescription(
			"Update fields of an issue. Only the provided fields change; the update "+
				"is guarded against concurrent edits.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Issue ID"),
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
		mcp.WithNumber("priority",
			mcp.Description("New priority ID"),
		),
		mcp.WithNumber("severity",
			mcp.Description("New severity ID"),
		),
		mcp.WithNumber("type",
			mcp.Description("New issue type ID"),
		),
	)
}

// Handle processes the taiga_update_issue tool call.
func (t *UpdateIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	changes := map[string]any{}
	stringChange(req, changes, "subject")
	stringChange(req, changes, "description")
	intChange(req, changes, "status")
	intChange(req, changes, "priority")
	intChange(req, changes, "severity")
	intChange(req, changes, "type")
	if len(changes) == 0 {
		return mcp.NewToolResultError("no changes given; provide at least one field to update"), nil
	}

	issue, err := t.client.UpdateIssue(ctx, id, changes)
	if err != nil {
		return errResult("updating issue", err)
	}
	return jsonResult(issue)
}

// DeleteIssueTool handles the taiga_delete_issue MCP tool.
type DeleteIssueTool struct {
	client *taiga.Client
}

// NewDeleteIssueTool creates a DeleteIssueTool.
func NewDeleteIssueTool(client *taiga.Client) *DeleteIssueTool {
	return &DeleteIssueTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_issue.
func (t *DeleteIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_issue",
		mcp.WithDescription("Delete an issue permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Issue ID"),
		),
	)
}

// Handle processes the taiga_delete_issue tool call.
func (t *DeleteIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteIssue(ctx, id); err != nil {
		return errResult("deleting issue", err)
	}
	return mcp.NewToolResultText("Issue deleted."), nil
}

// AssignIssueTool handles the taiga_assign_issue MCP tool.
type AssignIssueTool struct {
	client *taiga.Client
}

// NewAssignIssueTool creates an AssignIssueTool.
func NewAssignIssueTool(client *taiga.Client) *AssignIssueTool {
	return &AssignIssueTool{client: client}
}

// Definition returns the MCP tool definition for taiga_assign_issue.
func (t *AssignIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_assign_issue",
		mcp.WithDescription("Assign an issue to a user, or unassign it when no user is given."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Issue ID"),
		),
		mcp.WithNumber("user",
			mcp.Description("User ID to assign to; omit to clear the assignment"),
		),
	)
}

// Handle processes the taiga_assign_issue tool call.
func (t *AssignIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	var issue *taiga.Issue
	var err error
	if user := intArg(req, "user", 0); user > 0 {
		issue, err = t.client.AssignIssue(ctx, id, user)
	} else {
		issue, err = t.client.UnassignIssue(ctx, id)
	}
	if err != nil {
		return errResult("assigning issue", err)
	}
	return jsonResult(issue)
}

// ListIssueOptionsTool handles the taiga_list_issue_options MCP tool.
type ListIssueOptionsTool struct {
	client *taiga.Client
}

// NewListIssueOptionsTool creates a ListIssueOptionsTool.
func NewListIssueOptionsTool(client *taiga.Client) *ListIssueOptionsTool {
	return &ListIssueOptionsTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_issue_options.
func (t *ListIssueOptionsTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_issue_options",
		mcp.WithDescription(
			"List the statuses, priorities, severities, and issue types defined in a "+
				"project, in one call. Use the returned IDs when creating or updating issues.",
		),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_issue_options tool call.
func (t *ListIssueOptionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}

	statuses, err := t.client.ListIssueStatuses(ctx, project)
	if err != nil {
		return errResult("listing issue statuses", err)
	}
	priorities, err := t.client.ListIssuePriorities(ctx, project)
	if err != nil {
		return errResult("listing priorities", err)
	}
	severities, err := t.client.ListIssueSeverities(ctx, project)
	if err != nil {
		return errResult("listing severities", err)
	}
	types, err := t.client.ListIssueTypes(ctx, project)
	if err != nil {
		return errResult("listing issue types", err)
	}

	return jsonResult(map[string]any{
		"statuses":   statuses,
		"priorities": priorities,
		"severities": severities,
		"types":      types,
	})
}
