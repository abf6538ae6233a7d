package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// CreateMilestoneRequest holds the fields for creating a milestone (sprint).
type CreateMilestoneRequest struct {
	Project         int    `json:"project"`
	Name            string `json:"name"`
	EstimatedStart  string `json:"estimated_start"`
	EstimatedFinish string `json:"estimated_finish"`
}

// ListMilestones returns the milestones of a project. When closed is
// non-nil, only open or only closed milestones are returned.
func (c *Client) ListMilestones(ctx context.Context, projectID int, closed *bool) ([]Milestone, error) {
	if projectID == 0 {
		return nil, ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))
	if closed != nil {
		query.Set("closed", strconv.FormatBool(*closed))
	}
	return listPages[Milestone](ctx, c, "/milestones", query)
}

// GetMilestone fetches a milestone by id.
func (c *Client) GetMilestone(ctx context.Context, id int) (*Milestone, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var milestone Milestone
	if err := c.get(ctx, "/milestones/"+strconv.Itoa(id), nil, &milestone); err != nil {
		return nil, err
	}
	return &milestone, nil
}

// GetMilestoneStats fetches the burndown statistics for a milestone. It is
// read-only and independent of GetMilestone, so callers assembling a
// composite report may issue the two concurrently.
func (c *Client) GetMilestoneStats(ctx context.Context, id int) (*MilestoneStats, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var stats MilestoneStats
	if err := c.get(ctx, "/milestones/"+strconv.Itoa(id)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateMilestone creates a new milestone.
func (c *Client) CreateMilestone(ctx context.Context, req *CreateMilestoneRequest) (*Milestone, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Name == "" {
		return nil, ErrSubjectRequired
	}

	var milestone Milestone
	if err := c.post(ctx, "/milestones", req, &milestone); err != nil {
		return nil, err
	}
	return &milestone, nil
}

// UpdateMilestone applies a partial update to a milestone. Milestones do
// not carry a version field, so the update is a plain patch.
func (c *Client) UpdateMilestone(ctx context.Context, id int, changes map[string]any) (*Milestone, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var milestone Milestone
	if err := c.patch(ctx, "/milestones/"+strconv.Itoa(id), changes, &milestone); err != nil {
		return nil, err
	}
	return &milestone, nil
}

// DeleteMilestone removes a milestone.
func (c *Client) DeleteMilestone(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/milestones/"+strconv.Itoa(id))
}
