package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// CreateWikiPageRequest holds the fields for creating a wiki page.
type CreateWikiPageRequest struct {
	Project int    `json:"project"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// ListWikiPages returns the wiki pages of a project, traversing every page.
func (c *Client) ListWikiPages(ctx context.Context, projectID int) ([]WikiPage, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))
	return listPages[WikiPage](ctx, c, "/wiki", query)
}

// GetWikiPage fetches a wiki page by id.
func (c *Client) GetWikiPage(ctx context.Context, id int) (*WikiPage, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var page WikiPage
	if err := c.get(ctx, "/wiki/"+strconv.Itoa(id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetWikiPageBySlug fetches a wiki page by project and slug.
func (c *Client) GetWikiPageBySlug(ctx context.Context, projectID int, slug string) (*WikiPage, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))
	query.Set("slug", slug)

	var page WikiPage
	if err := c.get(ctx, "/wiki/by_slug", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateWikiPage creates a new wiki page.
func (c *Client) CreateWikiPage(ctx context.Context, req *CreateWikiPageRequest) (*WikiPage, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Slug == "" {
		return nil, ErrSlugRequired
	}
	if req.Content == "" {
		return nil, ErrWikiContentRequired
	}

	var page WikiPage
	if err := c.post(ctx, "/wiki", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateWikiPage applies a version-guarded partial update to a wiki page.
func (c *Client) UpdateWikiPage(ctx context.Context, id int, changes map[string]any) (*WikiPage, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var page WikiPage
	if err := c.patchVersionedPath(ctx, "/wiki/"+strconv.Itoa(id), changes, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteWikiPage removes a wiki page.
func (c *Client) DeleteWikiPage(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/wiki/"+strconv.Itoa(id))
}
