package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// ListProjects returns all projects visible to the authenticated user,
// traversing every page. When memberID is non-zero, only projects that user
// is a member of are returned.
func (c *Client) ListProjects(ctx context.Context, memberID int) ([]Project, error) {
	query := url.Values{}
	if memberID != 0 {
		query.Set("member", strconv.Itoa(memberID))
	}
	return listPages[Project](ctx, c, "/projects", query)
}

// GetProject fetches a project by id.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var project Project
	if err := c.get(ctx, "/projects/"+strconv.Itoa(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectBySlug fetches a project by its slug.
func (c *Client) GetProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	if slug == "" {
		return nil, ErrSlugRequired
	}

	query := url.Values{}
	query.Set("slug", slug)

	var project Project
	if err := c.get(ctx, "/projects/by_slug", query, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjectMembers returns the memberships of a project.
func (c *Client) ListProjectMembers(ctx context.Context, projectID int) ([]Membership, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))
	return listPages[Membership](ctx, c, "/memberships", query)
}

// InviteProjectMember invites a user to a project by username or email,
// with the given role.
func (c *Client) InviteProjectMember(ctx context.Context, projectID, roleID int, username string) (*Membership, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	body := map[string]any{
		"project":  projectID,
		"role":     roleID,
		"username": username,
	}

	var membership Membership
	if err := c.post(ctx, "/memberships", body, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListProjectRoles returns the roles defined in a project.
func (c *Client) ListProjectRoles(ctx context.Context, projectID int) ([]ChoiceValue, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))

	var roles []ChoiceValue
	if err := c.get(ctx, "/roles", query, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
