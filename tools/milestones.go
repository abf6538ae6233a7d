package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListMilestonesTool handles the taiga_list_milestones MCP tool.
type ListMilestonesTool struct {
	client *taiga.Client
}

// NewListMilestonesTool creates a ListMilestonesTool.
func NewListMilestonesTool(client *taiga.Client) *ListMilestonesTool {
	return &ListMilestonesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_milestones.
func (t *ListMilestonesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_milestones",
		mcp.WithDescription("List the milestones (sprints) of a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithBoolean("closed",
			mcp.Description("When set, return only closed (true) or only open (false) milestones"),
		),
	)
}

// Handle processes the taiga_list_milestones tool call.
func (t *ListMilestonesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}

	var closed *bool
	if v, ok := req.GetArguments()["closed"].(bool); ok {
		closed = &v
	}

	milestones, err := t.client.ListMilestones(ctx, project, closed)
	if err != nil {
		return errResult("listing milestones", err)
	}
	return jsonResult(milestones)
}

// GetMilestoneTool handles the taiga_get_milestone MCP tool.
type GetMilestoneTool struct {
	client *taiga.Client
}

// NewGetMilestoneTool creates a GetMilestoneTool.
func NewGetMilestoneTool(client *taiga.Client) *GetMilestoneTool {
	return &GetMilestoneTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_milestone.
func (t *GetMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_milestone",
		mcp.WithDescription("Fetch a single milestone by ID, optionally with burndown statistics."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Milestone ID"),
		),
		mcp.WithBoolean("stats",
			mcp.Description("Include completion and burndown statistics"),
		),
	)
}

// Handle processes the taiga_get_milestone tool call.
func (t *GetMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	milestone, err := t.client.GetMilestone(ctx, id)
	if err != nil {
		return errResult("fetching milestone", err)
	}

	if v, ok := req.GetArguments()["stats"].(bool); !ok || !v {
		return jsonResult(milestone)
	}

	stats, err := t.client.GetMilestoneStats(ctx, id)
	if err != nil {
		return errResult("fetching milestone stats", err)
	}
	return jsonResult(map[string]any{
		"milestone": milestone,
		"stats":     stats,
	})
}

// CreateMilestoneTool handles the taiga_create_milestone MCP tool.
type CreateMilestoneTool struct {
	client *taiga.Client
}

// NewCreateMilestoneTool creates a CreateMilestoneTool.
func NewCreateMilestoneTool(client *taiga.Client) *CreateMilestoneTool {
	return &CreateMilestoneTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_milestone.
func (t *CreateMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_milestone",
		mcp.WithDescription("Create a milestone (sprint) in a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Milestone name, e.g. Sprint 4"),
		),
		mcp.WithString("estimated_start",
			mcp.Required(),
			mcp.Description("Start date, YYYY-MM-DD"),
		),
		mcp.WithString("estimated_finish",
			mcp.Required(),
			mcp.Description("Finish date, YYYY-MM-DD"),
		),
	)
}

// Handle processes the taiga_create_milestone tool call.
func (t *CreateMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	name := req.GetString("name", "")
	start := req.GetString("estimated_start", "")
	finish := req.GetString("estimated_finish", "")
	if name == "" || start == "" || finish == "" {
		return mcp.NewToolResultError("'name', 'estimated_start', and 'estimated_finish' are required"), nil
	}

	milestone, err := t.client.CreateMilestone(ctx, &taiga.CreateMilestoneRequest{
		Project:         project,
		Name:            name,
		EstimatedStart:  start,
		EstimatedFinish: finish,
	})
	if err != nil {
		return errResult("creating milestone", err)
	}
	return jsonResult(milestone)
}

// UpdateMilestoneTool handles the taiga_update_milestone MCP tool.
type UpdateMilestoneTool struct {
	client *taiga.Client
}

// NewUpdateMilestoneTool creates an UpdateMilestoneTool.
func NewUpdateMilestoneTool(client *taiga.Client) *UpdateMilestoneTool {
	return &UpdateMilestoneTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_milestone.
func (t *UpdateMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_milestone",
		mcp.WithDescription("Update fields of a milestone. Only the provided fields change."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Milestone ID"),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("estimated_start",
			mcp.Description("New start date, YYYY-MM-DD"),
		),
		mcp.WithString("estimated_finish",
			mcp.Description("New finish date, YYYY-MM-DD"),
		),
	)
}

// Handle processes the taiga_update_milestone tool call.
func (t *UpdateMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	changes := map[string]any{}
	stringChange(req, changes, "name")
	stringChange(req, changes, "estimated_start")
	stringChange(req, changes, "estimated_finish")
	if len(changes) == 0 {
		return mcp.NewToolResultError("no changes given; provide at least one field to update"), nil
	}

	milestone, err := t.client.UpdateMilestone(ctx, id, changes)
	if err != nil {
		return errResult("updating milestone", err)
	}
	return jsonResult(milestone)
}

// DeleteMilestoneTool handles the taiga_delete_milestone MCP tool.
type DeleteMilestoneTool struct {
	client *taiga.Client
}

// NewDeleteMilestoneTool creates a DeleteMilestoneTool.
func NewDeleteMilestoneTool(client *taiga.Client) *DeleteMilestoneTool {
	return &DeleteMilestoneTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_milestone.
func (t *DeleteMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_milestone",
		mcp.WithDescription("Delete a milestone permanently. Items in the milestone are not deleted."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Milestone ID"),
		),
	)
}

// Handle processes the taiga_delete_milestone tool call.
func (t *DeleteMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteMilestone(ctx, id); err != nil {
		return errResult("deleting milestone", err)
	}
	return mcp.NewToolResultText("Milestone deleted."), nil
}
