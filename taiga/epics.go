package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// CreateEpicRequest holds the fields for creating an epic.
type CreateEpicRequest struct {
	Project     int    `json:"project"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	AssignedTo  *int   `json:"assigned_to,omitempty"`
}

// RelatedUserStory links a user story to an epic.
type RelatedUserStory struct {
	Epic      int `json:"epic"`
	UserStory int `json:"user_story"`
	Order     int `json:"order,omitempty"`
}

// ListEpics returns the epics of a project, traversing every page.
func (c *Client) ListEpics(ctx context.Context, projectID int) ([]Epic, error) {
	query := url.Values{}
	if projectID != 0 {
		query.Set("project", strconv.Itoa(projectID))
	}
	return listPages[Epic](ctx, c, "/epics", query)
}

// GetEpic fetches an epic by id.
func (c *Client) GetEpic(ctx context.Context, id int) (*Epic, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var epic Epic
	if err := c.get(ctx, "/epics/"+strconv.Itoa(id), nil, &epic); err != nil {
		return nil, err
	}
	return &epic, nil
}

// CreateEpic creates a new epic.
func (c *Client) CreateEpic(ctx context.Context, req *CreateEpicRequest) (*Epic, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Subject == "" {
		return nil, ErrSubjectRequired
	}

	var epic Epic
	if err := c.post(ctx, "/epics", req, &epic); err != nil {
		return nil, err
	}
	return &epic, nil
}

// UpdateEpic applies a version-guarded partial update to an epic.
func (c *Client) UpdateEpic(ctx context.Context, id int, changes map[string]any) (*Epic, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var epic Epic
	if err := c.patchVersionedPath(ctx, "/epics/"+strconv.Itoa(id), changes, &epic); err != nil {
		return nil, err
	}
	return &epic, nil
}

// DeleteEpic removes an epic.
func (c *Client) DeleteEpic(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/epics/"+strconv.Itoa(id))
}

// ListEpicUserStories returns the user stories linked to an epic.
func (c *Client) ListEpicUserStories(ctx context.Context, epicID int) ([]RelatedUserStory, error) {
	if epicID == 0 {
		return nil, ErrIDRequired
	}

	var related []RelatedUserStory
	if err := c.get(ctx, "/epics/"+strconv.Itoa(epicID)+"/related_userstories", nil, &related); err != nil {
		return nil, err
	}
	return related, nil
}

// AddUserStoryToEpic links a user story to an epic.
func (c *Client) AddUserStoryToEpic(ctx context.Context, epicID, storyID int) (*RelatedUserStory, error) {
	if epicID == 0 || storyID == 0 {
		return nil, ErrIDRequired
	}

	body := RelatedUserStory{Epic: epicID, UserStory: storyID}

	var related RelatedUserStory
	if err := c.post(ctx, "/epics/"+strconv.Itoa(epicID)+"/related_userstories", body, &related); err != nil {
		return nil, err
	}
	return &related, nil
}

// ReorderEpicUserStory changes a linked user story's position within an
// epic via a version-guarded update. The linkage object may omit a version
// field entirely, in which case the protocol's default of 1 applies.
func (c *Client) ReorderEpicUserStory(ctx context.Context, epicID, storyID, order int) error {
	if epicID == 0 || storyID == 0 {
		return ErrIDRequired
	}

	path := "/epics/" + strconv.Itoa(epicID) + "/related_userstories/" + strconv.Itoa(storyID)
	return c.patchVersionedPath(ctx, path, map[string]any{"order": order}, nil)
}

// RemoveUserStoryFromEpic unlinks a user story from an epic.
func (c *Client) RemoveUserStoryFromEpic(ctx context.Context, epicID, storyID int) error {
	if epicID == 0 || storyID == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/epics/"+strconv.Itoa(epicID)+"/related_userstories/"+strconv.Itoa(storyID))
}
