package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// IssueFilters narrows an issue listing. Zero fields are omitted.
type IssueFilters struct {
	Project    int
	Milestone  int
	Status     int
	Priority   int
	Severity   int
	Type       int
	AssignedTo int
}

func (f IssueFilters) values() url.Values {
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
	if f.Priority != 0 {
		query.Set("priority", strconv.Itoa(f.Priority))
	}
	if f.Severity != 0 {
		query.Set("severity", strconv.Itoa(f.Severity))
	}
	if f.Type != 0 {
		query.Set("type", strconv.Itoa(f.Type))
	}
	if f.AssignedTo != 0 {
		query.Set("assigned_to", strconv.Itoa(f.AssignedTo))
	}
	return query
}

// CreateIssueRequest holds the fields for creating an issue.
type CreateIssueRequest struct {
	Project     int      `json:"project"`
	Subject     string   `json:"subject"`
	Description string   `json:"description,omitempty"`
	Milestone   *int     `json:"milestone,omitempty"`
	Status      *int     `json:"status,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Severity    *int     `json:"severity,omitempty"`
	Type        *int     `json:"type,omitempty"`
	AssignedTo  *int     `json:"assigned_to,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListIssues returns issues matching the filters, traversing every page.
func (c *Client) ListIssues(ctx context.Context, filters IssueFilters) ([]Issue, error) {
	return listPages[Issue](ctx, c, "/issues", filters.values())
}

// GetIssue fetches an issue by id.
func (c *Client) GetIssue(ctx context.Context, id int) (*Issue, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var issue Issue
	if err := c.get(ctx, "/issues/"+strconv.Itoa(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateIssue creates a new issue.
func (c *Client) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*Issue, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Subject == "" {
		return nil, ErrSubjectRequired
	}

	var issue Issue
	if err := c.post(ctx, "/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue applies a version-guarded partial update to an issue.
func (c *Client) UpdateIssue(ctx context.Context, id int, changes map[string]any) (*Issue, error) {
	var issue Issue
	if err := c.patchVersioned(ctx, KindIssue, id, changes, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// DeleteIssue removes an issue.
func (c *Client) DeleteIssue(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/issues/"+strconv.Itoa(id))
}

// AssignIssue assigns an issue to a user.
func (c *Client) AssignIssue(ctx context.Context, id, userID int) (*Issue, error) {
	return c.UpdateIssue(ctx, id, map[string]any{"assigned_to": userID})
}

// UnassignIssue clears an issue's assignee.
func (c *Client) UnassignIssue(ctx context.Context, id int) (*Issue, error) {
	return c.UpdateIssue(ctx, id, map[string]any{"assigned_to": nil})
}

// ListIssueStatuses returns the issue statuses of a project.
func (c *Client) ListIssueStatuses(ctx context.Context, projectID int) ([]StatusValue, error) {
	var statuses []StatusValue
	if err := c.getProjectScoped(ctx, "/issue-statuses", projectID, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListIssuePriorities returns the issue priorities of a project.
func (c *Client) ListIssuePriorities(ctx context.Context, projectID int) ([]ChoiceValue, error) {
	var priorities []ChoiceValue
	if err := c.getProjectScoped(ctx, "/priorities", projectID, &priorities); err != nil {
		return nil, err
	}
	return priorities, nil
}

// ListIssueSeverities returns the issue severities of a project.
func (c *Client) ListIssueSeverities(ctx context.Context, projectID int) ([]ChoiceValue, error) {
	var severities []ChoiceValue
	if err := c.getProjectScoped(ctx, "/severities", projectID, &severities); err != nil {
		return nil, err
	}
	return severities, nil
}

// ListIssueTypes returns the issue types of a project.
func (c *Client) ListIssueTypes(ctx context.Context, projectID int) ([]ChoiceValue, error) {
	var types []ChoiceValue
	if err := c.getProjectScoped(ctx, "/issue-types", projectID, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// getProjectScoped performs a GET with a required project query parameter.
func (c *Client) getProjectScoped(ctx context.Context, endpoint string, projectID int, result any) error {
	if projectID == 0 {
		return ErrProjectIDRequired
	}

	query := url.Values{}
	query.Set("project", strconv.Itoa(projectID))
	return c.get(ctx, endpoint, query, result)
}
