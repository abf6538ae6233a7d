package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// ListProjectsTool handles the taiga_list_projects MCP tool.
type ListProjectsTool struct {
	client *taiga.Client
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(client *taiga.Client) *ListProjectsTool {
	return &ListProjectsTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_projects.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_projects",
		mcp.WithDescription(
			"List Taiga projects. Without a member filter this lists every project "+
				"visible to the authenticated user.",
		),
		mcp.WithNumber("member",
			mcp.Description("Filter to projects this user ID is a member of"),
		),
	)
}

// Handle processes the taiga_list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.client.ListProjects(ctx, intArg(req, "member", 0))
	if err != nil {
		return errResult("listing projects", err)
	}
	return jsonResult(projects)
}

// GetProjectTool handles the taiga_get_project MCP tool.
type GetProjectTool struct {
	client *taiga.Client
}

// NewGetProjectTool creates a GetProjectTool.
func NewGetProjectTool(client *taiga.Client) *GetProjectTool {
	return &GetProjectTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_project.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_project",
		mcp.WithDescription("Fetch a single project by numeric ID or by slug."),
		mcp.WithNumber("id",
			mcp.Description("Project ID"),
		),
		mcp.WithString("slug",
			mcp.Description("Project slug, used when no ID is given"),
		),
	)
}

// Handle processes the taiga_get_project tool call.
func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := intArg(req, "id", 0); id > 0 {
		project, err := t.client.GetProject(ctx, id)
		if err != nil {
			return errResult("fetching project", err)
		}
		return jsonResult(project)
	}

	slug := req.GetString("slug", "")
	if slug == "" {
		return mcp.NewToolResultError("either 'id' or 'slug' is required"), nil
	}
	project, err := t.client.GetProjectBySlug(ctx, slug)
	if err != nil {
		return errResult("fetching project", err)
	}
	return jsonResult(project)
}

// ListMembersTool handles the taiga_list_project_members MCP tool.
type ListMembersTool struct {
	client *taiga.Client
}

// NewListMembersTool creates a ListMembersTool.
func NewListMembersTool(client *taiga.Client) *ListMembersTool {
	return &ListMembersTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_project_members.
func (t *ListMembersTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_project_members",
		mcp.WithDescription("List the memberships of a project, including each member's role."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_project_members tool call.
func (t *ListMembersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	members, err := t.client.ListProjectMembers(ctx, project)
	if err != nil {
		return errResult("listing members", err)
	}
	return jsonResult(members)
}

// InviteMemberTool handles the taiga_invite_member MCP tool.
type InviteMemberTool struct {
	client *taiga.Client
}

// NewInviteMemberTool creates an InviteMemberTool.
func NewInviteMemberTool(client *taiga.Client) *InviteMemberTool {
	return &InviteMemberTool{client: client}
}

// Definition returns the MCP tool definition for taiga_invite_member.
func (t *InviteMemberTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_invite_member",
		mcp.WithDescription(
			"Invite a user to a project with a given role. Use taiga_list_project_roles "+
				"to discover role IDs first.",
		),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithNumber("role",
			mcp.Required(),
			mcp.Description("Role ID for the new member"),
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("Username or email address to invite"),
		),
	)
}

// Handle processes the taiga_invite_member tool call.
func (t *InviteMemberTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	role, errRes := requiredInt(req, "role")
	if errRes != nil {
		return errRes, nil
	}
	username := req.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("'username' is required"), nil
	}

	membership, err := t.client.InviteProjectMember(ctx, project, role, username)
	if err != nil {
		return errResult("inviting member", err)
	}
	return jsonResult(membership)
}

// ListRolesTool handles the taiga_list_project_roles MCP tool.
type ListRolesTool struct {
	client *taiga.Client
}

// NewListRolesTool creates a ListRolesTool.
func NewListRolesTool(client *taiga.Client) *ListRolesTool {
	return &ListRolesTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_project_roles.
func (t *ListRolesTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_project_roles",
		mcp.WithDescription("List the roles defined in a project."),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
	)
}

// Handle processes the taiga_list_project_roles tool call.
func (t *ListRolesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errRes := requiredInt(req, "project")
	if errRes != nil {
		return errRes, nil
	}
	roles, err := t.client.ListProjectRoles(ctx, project)
	if err != nil {
		return errResult("listing roles", err)
	}
	return jsonResult(roles)
}
