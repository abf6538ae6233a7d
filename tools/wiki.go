package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListWikiPagesTool handles the taiga_list_wiki_pages MCP tool.
type ListWikiPagesTool struct {
	client *taiga.Client
}

// NewListWikiPagesTool creates a ListWikiPagesTool.
func NewListWikiPagesTool(client *taiga.Client) *ListWikiPagesTool {
	return &ListWikiPagesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_wiki_pages.
func (t *ListWikiPagesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_wiki_pages",
		mcp.WithDescription("List the wiki pages of a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_wiki_pages tool call.
func (t *ListWikiPagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	pages, err := t.client.ListWikiPages(ctx, project)
	if err != nil {
		return errResult("listing wiki pages", err)
	}
	return jsonResult(pages)
}

// GetWikiPageTool handles the taiga_get_wiki_page MCP tool.
type GetWikiPageTool struct {
	client *taiga.Client
}

// NewGetWikiPageTool creates a GetWikiPageTool.
func NewGetWikiPageTool(client *taiga.Client) *GetWikiPageTool {
	return &GetWikiPageTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_wiki_page.
func (t *GetWikiPageTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_wiki_page",
		mcp.WithDescription("Fetch a wiki page by numeric ID, or by project and slug."),
		mcp.WithNumber("id",
			mcp.Description("Wiki page ID"),
		),
		mcp.WithNumber("project",
			mcp.Description("Project ID, used with 'slug' when no ID is given"),
		),
		mcp.WithString("slug",
			mcp.Description("Page slug, e.g. home"),
		),
	)
}

// Handle processes the taiga_get_wiki_page tool call.
func (t *GetWikiPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := intArg(req, "id", 0); id > 0 {
		page, err := t.client.GetWikiPage(ctx, id)
		if err != nil {
			return errResult("fetching wiki page", err)
		}
		return jsonResult(page)
	}

	project := intArg(req, "project", 0)
	slug := req.GetString("slug", "")
	if project <= 0 || slug == "" {
		return mcp.NewToolResultError("either 'id' or both 'project' and 'slug' are required"), nil
	}

	page, err := t.client.GetWikiPageBySlug(ctx, project, slug)
	if err != nil {
		return errResult("fetching wiki page", err)
	}
	return jsonResult(page)
}

// CreateWikiPageTool handles the taiga_create_wiki_page MCP tool.
type CreateWikiPageTool struct {
	client *taiga.Client
}

// NewCreateWikiPageTool creates a CreateWikiPageTool.
func NewCreateWikiPageTool(client *taiga.Client) *CreateWikiPageTool {
	return &CreateWikiPageTool{client: client}
}

// Definition returns the MCP tool definition for taiga_create_wiki_page.
func (t *CreateWikiPageTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_create_wiki_page",
		mcp.WithDescription("Create a wiki page in a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("Page slug, e.g. architecture-notes"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Page content, markdown allowed"),
		),
	)
}

// Handle processes the taiga_create_wiki_page tool call.
func (t *CreateWikiPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	slug := req.GetString("slug", "")
	content := req.GetString("content", "")
	if slug == "" || content == "" {
		return mcp.NewToolResultError("'slug' and 'content' are required"), nil
	}

	page, err := t.client.CreateWikiPage(ctx, &taiga.CreateWikiPageRequest{
		Project: project,
		Slug:    slug,
		Content: content,
	})
	if err != nil {
		return errResult("creating wiki page", err)
	}
	return jsonResult(page)
}

// UpdateWikiPageTool handles the taiga_update_wiki_page MCP tool.
type UpdateWikiPageTool struct {
	client *taiga.Client
}

// NewUpdateWikiPageTool creates an UpdateWikiPageTool.
func NewUpdateWikiPageTool(client *taiga.Client) *UpdateWikiPageTool {
	return &UpdateWikiPageTool{client: client}
}

// Definition returns the MCP tool definition for taiga_update_wiki_page.
func (t *UpdateWikiPageTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_update_wiki_page",
		mcp.WithDescription(
			"Replace the content of a wiki page. The update is guarded against "+
				"concurrent edits.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Wiki page ID"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("New page content"),
		),
	)
}

// Handle processes the taiga_update_wiki_page tool call.
func (t *UpdateWikiPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	content := req.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	page, err := t.client.UpdateWikiPage(ctx, id, map[string]any{"content": content})
	if err != nil {
		return errResult("updating wiki page", err)
	}
	return jsonResult(page)
}

// DeleteWikiPageTool handles the taiga_delete_wiki_page MCP tool.
type DeleteWikiPageTool struct {
	client *taiga.Client
}

// NewDeleteWikiPageTool creates a DeleteWikiPageTool.
func NewDeleteWikiPageTool(client *taiga.Client) *DeleteWikiPageTool {
	return &DeleteWikiPageTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_wiki_page.
func (t *DeleteWikiPageTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_wiki_page",
		mcp.WithDescription("Delete a wiki page permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Wiki page ID"),
		),
	)
}

// Handle processes the taiga_delete_wiki_page tool call.
func (t *DeleteWikiPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteWikiPage(ctx, id); err != nil {
		return errResult("deleting wiki page", err)
	}
	return mcp.NewToolResultText("Wiki page deleted."), nil
}
