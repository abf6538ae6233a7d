package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// UploadAttachmentTool handles the taiga_upload_attachment MCP tool.
type UploadAttachmentTool struct {
	client *taiga.Client
}

// NewUploadAttachmentTool creates an UploadAttachmentTool.
func NewUploadAttachmentTool(client *taiga.Client) *UploadAttachmentTool {
	return &UploadAttachmentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_upload_attachment.
func (t *UploadAttachmentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_upload_attachment",
		mcp.WithDescription(
			"Attach a file to an issue, user story, or task. Provide either inline "+
				"base64 content with a file name, or a path to a file on disk. Relative "+
				"paths are searched in the working directory, then the home directory, "+
				"Desktop, and Downloads.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Item ID"),
		),
		mcp.WithString("file_path",
			mcp.Description("Path to the file to upload"),
		),
		mcp.WithString("file_name",
			mcp.Description("File name for inline content, e.g. report.pdf"),
		),
		mcp.WithString("content",
			mcp.Description("Base64-encoded file content; data URIs are accepted"),
		),
		mcp.WithString("description",
			mcp.Description("Attachment description"),
		),
	)
}

// Handle processes the taiga_upload_attachment tool call.
func (t *UploadAttachmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	description := req.GetString("description", "")

	if path := req.GetString("file_path", ""); path != "" {
		attachment, err := t.client.UploadAttachmentFromPath(ctx, ref, path, description)
		if err != nil {
			return errResult("uploading attachment", err)
		}
		return jsonResult(attachment)
	}

	name := req.GetString("file_name", "")
	content := req.GetString("content", "")
	if name == "" || content == "" {
		return mcp.NewToolResultError("provide 'file_path', or both 'file_name' and 'content'"), nil
	}

	attachment, err := t.client.UploadAttachment(ctx, ref, name, content, description)
	if err != nil {
		return errResult("uploading attachment", err)
	}
	return jsonResult(attachment)
}

// ListAttachmentsTool handles the taiga_list_attachments MCP tool.
type ListAttachmentsTool struct {
	client *taiga.Client
}

// NewListAttachmentsTool creates a ListAttachmentsTool.
func NewListAttachmentsTool(client *taiga.Client) *ListAttachmentsTool {
	return &ListAttachmentsTool{client: client}
}

// Definition returns the MCP tool definition for taiga_list_attachments.
func (t *ListAttachmentsTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_list_attachments",
		mcp.WithDescription("List the attachments of an issue, user story, or task."),
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

// Handle processes the taiga_list_attachments tool call.
func (t *ListAttachmentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	attachments, err := t.client.ListAttachments(ctx, ref)
	if err != nil {
		return errResult("listing attachments", err)
	}
	return jsonResult(attachments)
}

// DownloadAttachmentTool handles the taiga_download_attachment MCP tool.
type DownloadAttachmentTool struct {
	client *taiga.Client
}

// NewDownloadAttachmentTool creates a DownloadAttachmentTool.
func NewDownloadAttachmentTool(client *taiga.Client) *DownloadAttachmentTool {
	return &DownloadAttachmentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_download_attachment.
func (t *DownloadAttachmentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_download_attachment",
		mcp.WithDescription(
			"Download an attachment to a local file. Without a destination the file "+
				"is saved under its original name in the working directory.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind the attachment belongs to: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Attachment ID from taiga_list_attachments"),
		),
		mcp.WithString("dest",
			mcp.Description("Destination file path"),
		),
	)
}

// Handle processes the taiga_download_attachment tool call.
func (t *DownloadAttachmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}

	attachment, dest, err := t.client.DownloadAttachment(ctx, ref.Kind, ref.ID, req.GetString("dest", ""))
	if err != nil {
		return errResult("downloading attachment", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved %s to %s", attachment.Name, dest)), nil
}

// DeleteAttachmentTool handles the taiga_delete_attachment MCP tool.
type DeleteAttachmentTool struct {
	client *taiga.Client
}

// NewDeleteAttachmentTool creates a DeleteAttachmentTool.
func NewDeleteAttachmentTool(client *taiga.Client) *DeleteAttachmentTool {
	return &DeleteAttachmentTool{client: client}
}

// Definition returns the MCP tool definition for taiga_delete_attachment.
func (t *DeleteAttachmentTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_delete_attachment",
		mcp.WithDescription("Delete an attachment permanently."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind the attachment belongs to: issue, user_story, or task"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Attachment ID from taiga_list_attachments"),
		),
	)
}

// Handle processes the taiga_delete_attachment tool call.
func (t *DeleteAttachmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errRes := refArg(req)
	if errRes != nil {
		return errRes, nil
	}
	if err := t.client.DeleteAttachment(ctx, ref.Kind, ref.ID); err != nil {
		return errResult("deleting attachment", err)
	}
	return mcp.NewToolResultText("Attachment deleted."), nil
}
