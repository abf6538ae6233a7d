package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// AddCommentTool handles the taiga_add_comment MCP tool.
type AddCommentTool struct {
	client *taiga.Client
}

// NewAddCommentTool creates an AddCommentTool.
func NewAddCommentTool(client *taiga.Client) *AddCommentTool {
	return &AddCommentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_add_comment.
func (t *AddCommentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_add_comment",
		mcp.WithDescription("Add a comment to an issue, user story, or task."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("Comment text, markdown allowed"),
		),
	)
}

// Handle processes the taiga_add_comment tool call.
func (t *AddCommentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	comment := req.GetString("comment", "")
	if comment == "" {
		return mcp.NewToolResultError("'comment' is required"), nil
	}

	if err := t.client.AddComment(ctx, ref, comment); err != nil {
		return errResult("adding comment", err)
	}
	return mcp.NewToolResultText("Comment added."), nil
}

// ListCommentsTool handles the taiga_list_comments MCP tool.
type ListCommentsTool struct {
	client *taiga.Client
}

// NewListCommentsTool creates a ListCommentsTool.
func NewListCommentsTool(client *taiga.Client) *ListCommentsTool {
	return &ListCommentsTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_comments.
func (t *ListCommentsTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_comments",
		mcp.WithDescription(
			"List the comments on an issue, user story, or task. Each comment's ID "+
				"can be used with taiga_edit_comment and taiga_delete_comment.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
	)
}

// Handle processes the taiga_list_comments tool call.
func (t *ListCommentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	comments, err := t.client.ListComments(ctx, ref)
	if err != nil {
		return errResult("listing comments", err)
	}
	return jsonResult(comments)
}

// EditCommentTool handles the taiga_edit_comment MCP tool.
type EditCommentTool struct {
	client *taiga.Client
}

// NewEditCommentTool creates an EditCommentTool.
func NewEditCommentTool(client *taiga.Client) *EditCommentTool {
	return &EditCommentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_edit_comment.
func (t *EditCommentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_edit_comment",
		mcp.WithDescription("Edit an existing comment on an issue, user story, or task."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
		mcp.WithString("comment_id",
			mcp.Required(),
			mcp.Description("Comment ID from taiga_list_comments"),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("Replacement comment text"),
		),
	)
}

// Handle processes the taiga_edit_comment tool call.
func (t *EditCommentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	commentID := req.GetString("comment_id", "")
	comment := req.GetString("comment", "")
	if commentID == "" || comment == "" {
		return mcp.NewToolResultError("'comment_id' and 'comment' are required"), nil
	}

	if err := t.client.EditComment(ctx, ref, commentID, comment); err != nil {
		return errResult("editing comment", err)
	}
	return mcp.NewToolResultText("Comment updated."), nil
}

// DeleteCommentTool handles the taiga_delete_comment MCP tool.
type DeleteCommentTool struct {
	client *taiga.Client
}

// NewDeleteCommentTool creates a DeleteCommentTool.
func NewDeleteCommentTool(client *taiga.Client) *DeleteCommentTool {
	return &DeleteCommentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_comment.
func (t *DeleteCommentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_comment",
		mcp.WithDescription(
			"Delete a comment, or restore a previously deleted one. Deletion is soft: "+
				"the comment can be restored later.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
		mcp.WithString("comment_id",
			mcp.Required(),
			mcp.Description("Comment ID from taiga_list_comments"),
		),
		mcp.WithBoolean("restore",
			mcp.Description("Restore the comment instead of deleting it"),
		),
	)
}

// Handle processes the taiga_delete_comment tool call.
func (t *DeleteCommentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	commentID := req.GetString("comment_id", "")
	if commentID == "" {
		return mcp.NewToolResultError("'comment_id' is required"), nil
	}

	if restore, _ := req.GetArguments()["restore"].(bool); restore {
		if err := t.client.UndeleteComment(ctx, ref, commentID); err != nil {
			return errResult("restoring comment", err)
		}
		return mcp.NewToolResultText("Comment restored."), nil
	}

	if err := t.client.DeleteComment(ctx, ref, commentID); err != nil {
		return errResult("deleting comment", err)
	}
	return mcp.NewToolResultText("Comment deleted."), nil
}

// HistoryTool handles the taiga_get_history MCP tool.
type HistoryTool struct {
	client *taiga.Client
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(client *taiga.Client) *HistoryTool {
	return &HistoryTool{client: client}
}

// Definition returns the MCP tool definition for taiga_get_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_get_history",
		mcp.WithDescription(
			"Fetch the full change history of an issue, user story, or task, "+
				"including field changes and comments.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
	)
}

// Handle processes the taiga_get_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	entries, err := t.client.ListHistory(ctx, ref)
	if err != nil {
		return errResult("fetching history", err)
	}
	return jsonResult(entries)
}
