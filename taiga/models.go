package taiga

import "encoding/json"

// Project represents a Taiga project.
type Project struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	CreatedDate     string `json:"created_date,omitempty"`
	ModifiedDate    string `json:"modified_date,omitempty"`
	Owner           *User  `json:"owner,omitempty"`
	IsPrivate       bool   `json:"is_private"`
	IAmOwner        bool   `json:"i_am_owner,omitempty"`
	IAmMember       bool   `json:"i_am_member,omitempty"`
	TotalMilestones *int   `json:"total_milestones,omitempty"`
	TotalMemberships int   `json:"total_memberships,omitempty"`
}

// User represents a Taiga user account.
type User struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name,omitempty"`
	FullNameDisplay string `json:"full_name_display,omitempty"`
	Email           string `json:"email,omitempty"`
	Photo           string `json:"photo,omitempty"`
}

// Membership represents a user's membership in a project.
type Membership struct {
	ID              int    `json:"id"`
	Project         int    `json:"project"`
	UserID          *int   `json:"user"`
	Role            int    `json:"role"`
	RoleName        string `json:"role_name,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	Email           string `json:"email,omitempty"`
	IsAdmin         bool   `json:"is_admin,omitempty"`
	UserIsActive    bool   `json:"is_user_active,omitempty"`
	InvitationExtra string `json:"invitation_extra_text,omitempty"`
}

// UserStory represents a Taiga user story.
type UserStory struct {
	ID           int             `json:"id"`
	Ref          int             `json:"ref"`
	Subject      string          `json:"subject"`
	Description  string          `json:"description,omitempty"`
	Version      int             `json:"version"`
	Project      int             `json:"project"`
	Status       *int            `json:"status"`
	Milestone    *int            `json:"milestone"`
	AssignedTo   *int            `json:"assigned_to"`
	Epics        json.RawMessage `json:"epics,omitempty"`
	Tags         json.RawMessage `json:"tags,omitempty"`
	Points       json.RawMessage `json:"points,omitempty"`
	IsClosed     bool            `json:"is_closed"`
	IsBlocked    bool            `json:"is_blocked,omitempty"`
	CreatedDate  string          `json:"created_date,omitempty"`
	ModifiedDate string          `json:"modified_date,omitempty"`
}

// Issue represents a Taiga issue.
type Issue struct {
	ID           int             `json:"id"`
	Ref          int             `json:"ref"`
	Subject      string          `json:"subject"`
	Description  string          `json:"description,omitempty"`
	Version      int             `json:"version"`
	Project      int             `json:"project"`
	Status       *int            `json:"status"`
	Severity     *int            `json:"severity"`
	Priority     *int            `json:"priority"`
	Type         *int            `json:"type"`
	Milestone    *int            `json:"milestone"`
	AssignedTo   *int            `json:"assigned_to"`
	Tags         json.RawMessage `json:"tags,omitempty"`
	IsClosed     bool            `json:"is_closed"`
	IsBlocked    bool            `json:"is_blocked,omitempty"`
	CreatedDate  string          `json:"created_date,omitempty"`
	ModifiedDate string          `json:"modified_date,omitempty"`
}

// Task represents a Taiga task, always owned by a user story.
type Task struct {
	ID           int    `json:"id"`
	Ref          int    `json:"ref"`
	Subject      string `json:"subject"`
	Description  string `json:"description,omitempty"`
	Version      int    `json:"version"`
	Project      int    `json:"project"`
	UserStory    *int   `json:"user_story"`
	Status       *int   `json:"status"`
	Milestone    *int   `json:"milestone"`
	AssignedTo   *int   `json:"assigned_to"`
	IsClosed     bool   `json:"is_closed"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date,omitempty"`
}

// Epic represents a Taiga epic.
type Epic struct {
	ID                int    `json:"id"`
	Ref               int    `json:"ref"`
	Subject           string `json:"subject"`
	Description       string `json:"description,omitempty"`
	Version           int    `json:"version"`
	Project           int    `json:"project"`
	Status            *int   `json:"status"`
	AssignedTo        *int   `json:"assigned_to"`
	Color             string `json:"color,omitempty"`
	ClientRequirement bool   `json:"client_requirement,omitempty"`
	TeamRequirement   bool   `json:"team_requirement,omitempty"`
	CreatedDate       string `json:"created_date,omitempty"`
	ModifiedDate      string `json:"modified_date,omitempty"`
}

// Milestone represents a Taiga milestone (sprint).
type Milestone struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug,omitempty"`
	Project         int    `json:"project"`
	EstimatedStart  string `json:"estimated_start,omitempty"`
	EstimatedFinish string `json:"estimated_finish,omitempty"`
	Closed          bool   `json:"closed"`
	CreatedDate     string `json:"created_date,omitempty"`
	ModifiedDate    string `json:"modified_date,omitempty"`
}

// MilestoneStats represents the burndown statistics for a milestone.
type MilestoneStats struct {
	Name                 string          `json:"name"`
	EstimatedStart       string          `json:"estimated_start,omitempty"`
	EstimatedFinish      string          `json:"estimated_finish,omitempty"`
	TotalPoints          json.RawMessage `json:"total_points,omitempty"`
	CompletedPoints      json.RawMessage `json:"completed_points,omitempty"`
	TotalUserStories     int             `json:"total_userstories"`
	CompletedUserStories int             `json:"completed_userstories"`
	TotalTasks           int             `json:"total_tasks"`
	CompletedTasks       int             `json:"completed_tasks"`
}

// WikiPage represents a Taiga wiki page.
type WikiPage struct {
	ID           int    `json:"id"`
	Project      int    `json:"project"`
	Slug         string `json:"slug"`
	Content      string `json:"content"`
	Version      int    `json:"version"`
	Owner        *int   `json:"owner,omitempty"`
	LastModifier *int   `json:"last_modifier,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date,omitempty"`
}

// Attachment represents a file attached to an item.
type Attachment struct {
	ID           int    `json:"id"`
	Project      int    `json:"project"`
	ObjectID     int    `json:"object_id"`
	Name         string `json:"name"`
	AttachedFile string `json:"attached_file,omitempty"`
	Size         int64  `json:"size"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	IsDeprecated bool   `json:"is_deprecated,omitempty"`
	FromComment  bool   `json:"from_comment,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
	Owner        *int   `json:"owner,omitempty"`
}

// HistoryEntry represents one entry in an item's change history. Comments
// live in the history stream: a comment is a history entry whose Comment
// field is non-empty.
type HistoryEntry struct {
	ID                string          `json:"id"`
	User              json.RawMessage `json:"user,omitempty"`
	CreatedAt         string          `json:"created_at,omitempty"`
	Type              int             `json:"type,omitempty"`
	Comment           string          `json:"comment,omitempty"`
	CommentHTML       string          `json:"comment_html,omitempty"`
	DeleteCommentDate *string         `json:"delete_comment_date,omitempty"`
}

// IsComment reports whether the history entry carries a comment.
func (h *HistoryEntry) IsComment() bool {
	return h.Comment != ""
}

// StatusValue represents a workflow status for a resource family (user story
// status, issue status, task status, epic status).
type StatusValue struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Color    string `json:"color,omitempty"`
	Order    int    `json:"order,omitempty"`
	Project  int    `json:"project"`
	IsClosed bool   `json:"is_closed,omitempty"`
}

// ChoiceValue represents an issue attribute choice: priority, severity, or
// issue type.
type ChoiceValue struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
	Order   int    `json:"order,omitempty"`
	Project int    `json:"project"`
}
