package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListEpicsTool handles the taiga_list_epics MCP tool.
type ListEpicsTool struct {
	client *taiga.Client
}

// NewListEpicsTool creates a ListEpicsTool.
func NewListEpicsTool(client *taiga.Client) *ListEpicsTool {
	return &ListEpicsTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_epics.
func (t *ListEpicsTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_epics",
		mcp.WithDescription("List the epics of a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_epics tool call.
func (t *ListEpicsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	epics, err := t.client.ListEpics(ctx, project)
	if err != nil {
		return errResult("listing epics", err)
	}
	return jsonResult(epics)
}

// GetEpicTool handles the taiga_get_epic MCP tool.
type GetEpicTool struct {
	client *taiga.Client
}

// NewGetEpicTool creates a GetEpicTool.
func NewGetEpicTool(client *taiga.Client) *GetEpicTool {
	return &GetEpicTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_epic.
func (t *GetEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_epic",
		mcp.WithDescription("Fetch a single epic by ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Epic ID"),
		),
	)
}

// Handle processes the taiga_get_epic tool call.
func (t *GetEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	epic, err := t.client.GetEpic(ctx, id)
	if err != nil {
		return errResult("fetching epic", err)
	}
	return jsonResult(epic)
}

// CreateEpicTool handles the taiga_create_epic MCP tool.
type CreateEpicTool struct {
	client *taiga.Client
}

// NewCreateEpicTool creates a CreateEpicTool.
func NewCreateEpicTool(client *taiga.Client) *CreateEpicTool {
	return &CreateEpicTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_epic.
func (t *CreateEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_epic",
		mcp.WithDescription("Create an epic in a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Epic title"),
		),
		mcp.WithString("description",
			mcp.Description("Epic description"),
		),
		mcp.WithString("color",
			mcp.Description("Display color, e.g. #ff5733"),
		),
	)
}

// Handle processes the taiga_create_epic tool call.
func (t *CreateEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	subject := req.GetString("subject", "")
	if subject == "" {
		return mcp.NewToolResultError("'subject' is required"), nil
	}

	epic, err := t.client.CreateEpic(ctx, &taiga.CreateEpicRequest{
		Project:     project,
		Subject:     subject,
		Description: req.GetString("description", ""),
		Color:       req.GetString("color", ""),
	})
	if err != nil {
		return errResult("creating epic", err)
	}
	return jsonResult(epic)
}

// UpdateEpicTool handles the taiga_update_epic MCP tool.
type UpdateEpicTool struct {
	client *taiga.Client
}

// NewUpdateEpicTool creates an UpdateEpicTool.
func NewUpdateEpicTool(client *taiga.Client) *UpdateEpicTool {
	return &UpdateEpicTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_epic.
func (t *UpdateEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_epic",
		mcp.WithDescription(
			"Update fields of an epic. Only the provided fields change; the update is "+
				"guarded against concurrent edits.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Epic ID"),
		),
		mcp.WithString("subject",
			mcp.Description("New title"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("color",
			mcp.Description("New display color"),
		),
	)
}

// Handle processes the taiga_update_epic tool call.
func (t *UpdateEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}

	changes := map[string]any{}
	stringChange(req, changes, "subject")
	stringChange(req, changes, "description")
	stringChange(req, changes, "color")
	if len(changes) == 0 {
		return mcp.NewToolResultError("no changes given; provide at least one field to update"), nil
	}

	epic, err := t.client.UpdateEpic(ctx, id, changes)
	if err != nil {
		return errResult("updating epic", err)
	}
	return jsonResult(epic)
}

// DeleteEpicTool handles the taiga_delete_epic MCP tool.
type DeleteEpicTool struct {
	client *taiga.Client
}

// NewDeleteEpicTool creates a DeleteEpicTool.
func NewDeleteEpicTool(client *taiga.Client) *DeleteEpicTool {
	return &DeleteEpicTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_epic.
func (t *DeleteEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_epic",
		mcp.WithDescription("Delete an epic permanently. Linked user stories are not deleted."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Epic ID"),
		),
	)
}

// Handle processes the taiga_delete_epic tool call.
func (t *DeleteEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteEpic(ctx, id); err != nil {
		return errResult("deleting epic", err)
	}
	return mcp.NewToolResultText("Epic deleted."), nil
}

// EpicStoriesTool handles the taiga_epic_userstories MCP tool.
type EpicStoriesTool struct {
	client *taiga.Client
}

// NewEpicStoriesTool creates an EpicStoriesTool.
func NewEpicStoriesTool(client *taiga.Client) *EpicStoriesTool {
	return &EpicStoriesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_epic_userstories.
func (t *EpicStoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_epic_userstories",
		mcp.WithDescription(
			"Manage the user stories linked to an epic: list them, link a story, "+
				"unlink a story, or reorder a linked story.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of: list, add, remove, reorder"),
		),
		mcp.WithNumber("epic",
			mcp.Required(),
			mcp.Description("Epic ID"),
		),
		mcp.WithNumber("user_story",
			mcp.Description("User story ID, required for add, remove, and reorder"),
		),
		mcp.WithNumber("order",
			mcp.Description("New position, required for reorder"),
		),
	)
}

// Handle processes the taiga_epic_userstories tool call.
func (t *EpicStoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	epic, errRes := requiredInt(req, "epic")
	if errRes != nil {
		return errRes, nil
	}

	action := req.GetString("action", "")
	if action == "list" {
		related, err := t.client.ListEpicUserStories(ctx, epic)
		if err != nil {
			return errResult("listing epic stories", err)
		}
		return jsonResult(related)
	}

	story, errRes := requiredInt(req, "user_story")
	if errRes != nil {
		return errRes, nil
	}

	switch action {
	case "add":
		related, err := t.client.AddUserStoryToEpic(ctx, epic, story)
		if err != nil {
			return errResult("linking story to epic", err)
		}
		return jsonResult(related)
	case "remove":
		if err := t.client.RemoveUserStoryFromEpic(ctx, epic, story); err != nil {
			return errResult("unlinking story from epic", err)
		}
		return mcp.NewToolResultText("User story unlinked from epic."), nil
	case "reorder":
		order := intArg(req, "order", -1)
		if order < 0 {
			return mcp.NewToolResultError("'order' is required for reorder"), nil
		}
		if err := t.client.ReorderEpicUserStory(ctx, epic, story, order); err != nil {
			return errResult("reordering epic story", err)
		}
		return mcp.NewToolResultText("User story reordered."), nil
	default:
		return mcp.NewToolResultError("'action' must be one of: list, add, remove, reorder"), nil
	}
}
