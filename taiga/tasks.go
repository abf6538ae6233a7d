package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// TaskFilters narrows a task listing. Zero fields are omitted.
type TaskFilters struct {
	Project   int
	UserStory int
	Milestone int
	Status    int
}

func (f TaskFilters) values() url.Values {
	query := url.Values{}
	if f.Project != 0 {
		query.Set("project", strconv.Itoa(f.Project))
	}
	if f.UserStory != 0 {
		query.Set("user_story", strconv.Itoa(f.UserStory))
	}
	if f.Milestone != 0 {
		query.Set("milestone", strconv.Itoa(f.Milestone))
	}
	if f.Status != 0 {
		query.Set("status", strconv.Itoa(f.Status))
	}
	return query
}

// CreateTaskRequest holds the fields for creating a task.
type CreateTaskRequest struct {
	Project     int    `json:"project"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	UserStory   *int   `json:"user_story,omitempty"`
	Milestone   *int   `json:"milestone,omitempty"`
	Status      *int   `json:"status,omitempty"`
	AssignedTo  *int   `json:"assigned_to,omitempty"`
}

// ListTasks returns tasks matching the filters, traversing every page.
func (c *Client) ListTasks(ctx context.Context, filters TaskFilters) ([]Task, error) {
	return listPages[Task](ctx, c, "/tasks", filters.values())
}

// GetTask fetches a task by id.
func (c *Client) GetTask(ctx context.Context, id int) (*Task, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}

	var task Task
	if err := c.get(ctx, "/tasks/"+strconv.Itoa(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	if req.Project == 0 {
		return nil, ErrProjectIDRequired
	}
	if req.Subject == "" {
		return nil, ErrSubjectRequired
	}

	var task Task
	if err := c.post(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a version-guarded partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id int, changes map[string]any) (*Task, error) {
	var task Task
	if err := c.patchVersioned(ctx, KindTask, id, changes, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/tasks/"+strconv.Itoa(id))
}
