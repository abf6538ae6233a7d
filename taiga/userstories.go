package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// UserStoryFilters narrows a user story listing. Zero fields are omitted.
type UserStoryFilters struct {
	Project    int
	Milestone  int
	Status     int
	Epic       int
	AssignedTo int
}

func (f UserStoryFilters) values() url.Values {
	query := url.Values{}
	if f.Project != 0 {
		query.Set("project", strconv.Itoa(f.Project))
	}
	if f.Milestone != 0 {
		query.Set("milestone", strconv.Itoa(f.Milestone))
	}
	if f.Status != 0 {
		query.Set("status", strconv.Itoa(f.Status))
	}
	if f.Epic != 0 {
		query.Set("epic", strconv.Itoa(f.Epic))
	}
	if f.AssignedTo != 0 {
		query.Set("assigned_to", strconv.Itoa(f.AssignedTo))
	}
	return query
}

// CreateUserStoryRequest holds the fields for creating a user story.
type CreateUserStoryRequest struct {
	Project     int      `json:"project"`
	Subject     string   `json:"subject"`
	Description string   `json:"description,omitempty"`
	Milestone   *int     `json:"milestone,omitempty"`
	Status      *int     `json:"status,omitempty"`
	AssignedTo  *int     `json:"assigned_to,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListUserStories returns user stories matching the filters, traversing
// every page.
func (c *Client) ListUserStories(ctx context.Context, filters UserStoryFilters) ([]UserStory, error) {
	return listPages[UserStory](ctx, c, "/userstories", filters.values())
}

// GetUserStory fetches a user story by id.
func (c *Client) GetUserStory(ctx context.Context, id int) (*UserStory, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var story UserStory
	if err := c.get(ctx, "/userstories/"+strconv.Itoa(id), nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// CreateUserStory creates a new user story.
func (c *Client) CreateUserStory(ctx context.Context, req *CreateUserStoryRequest) (*UserStory, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Subject == "" {
		return nil, ErrSubjectRequired
	}

	var story UserStory
	if err := c.post(ctx, "/userstories", req, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// UpdateUserStory applies a version-guarded partial update to a user story.
// The changes map holds the fields to modify; the current version is read
// fresh and merged in before the write.
func (c *Client) UpdateUserStory(ctx context.Context, id int, changes map[string]any) (*UserStory, error) {
	var story UserStory
	if err := c.patchVersioned(ctx, KindUserStory, id, changes, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// DeleteUserStory removes a user story.
func (c *Client) DeleteUserStory(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/userstories/"+strconv.Itoa(id))
}

// AssignUserStory assigns a user story to a user.
func (c *Client) AssignUserStory(ctx context.Context, id, userID int) (*UserStory, error) {
	return c.UpdateUserStory(ctx, id, map[string]any{"assigned_to": userID})
}

// UnassignUserStory clears a user story's assignee.
func (c *Client) UnassignUserStory(ctx context.Context, id int) (*UserStory, error) {
	return c.UpdateUserStory(ctx, id, map[string]any{"assigned_to": nil})
}

// ListUserStoryStatuses returns the user story statuses of a project.
func (c *Client) ListUserStoryStatuses(ctx context.Context, projectID int) ([]StatusValue, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))

	var statuses []StatusValue
	if err := c.get(ctx, "/userstory-statuses", query, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
