package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// NewServer creates the MCP server with every Taiga tool registered.
// This is the composition root: the shared client is injected into each
// tool here and nowhere else.
func NewServer(client *taiga.Client, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"taiga-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// Projects
	listProjects := NewListProjectsTool(client)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	getProject := NewGetProjectTool(client)
	s.AddTool(getProject.Definition(), getProject.Handle)

	listMembers := NewListMembersTool(client)
	s.AddTool(listMembers.Definition(), listMembers.Handle)

	inviteMember := NewInviteMemberTool(client)
	s.AddTool(inviteMember.Definition(), inviteMember.Handle)

	listRoles := NewListRolesTool(client)
	s.AddTool(listRoles.Definition(), listRoles.Handle)

	// User stories
	listStories := NewListUserStoriesTool(client)
	s.AddTool(listStories.Definition(), listStories.Handle)

	getStory := NewGetUserStoryTool(client)
	s.AddTool(getStory.Definition(), getStory.Handle)

	createStory := NewCreateUserStoryTool(client)
	s.AddTool(createStory.Definition(), createStory.Handle)

	updateStory := NewUpdateUserStoryTool(client)
	s.AddTool(updateStory.Definition(), updateStory.Handle)

	deleteStory := NewDeleteUserStoryTool(client)
	s.AddTool(deleteStory.Definition(), deleteStory.Handle)

	assignStory := NewAssignUserStoryTool(client)
	s.AddTool(assignStory.Definition(), assignStory.Handle)

	storyStatuses := NewListUserStoryStatusesTool(client)
	s.AddTool(storyStatuses.Definition(), storyStatuses.Handle)

	// Issues
	listIssues := NewListIssuesTool(client)
	s.AddTool(listIssues.Definition(), listIssues.Handle)

	getIssue := NewGetIssueTool(client)
	s.AddTool(getIssue.Definition(), getIssue.Handle)

	createIssue := NewCreateIssueTool(client)
	s.AddTool(createIssue.Definition(), createIssue.Handle)

	updateIssue := NewUpdateIssueTool(client)
	s.AddTool(updateIssue.Definition(), updateIssue.Handle)

	deleteIssue := NewDeleteIssueTool(client)
	s.AddTool(deleteIssue.Definition(), deleteIssue.Handle)

	assignIssue := NewAssignIssueTool(client)
	s.AddTool(assignIssue.Definition(), assignIssue.Handle)

	issueOptions := NewListIssueOptionsTool(client)
	s.AddTool(issueOptions.Definition(), issueOptions.Handle)

	// Tasks
	listTasks := NewListTasksTool(client)
	s.AddTool(listTasks.Definition(), listTasks.Handle)

	getTask := NewGetTaskTool(client)
	s.AddTool(getTask.Definition(), getTask.Handle)

	createTask := NewCreateTaskTool(client)
	s.AddTool(createTask.Definition(), createTask.Handle)

	updateTask := NewUpdateTaskTool(client)
	s.AddTool(updateTask.Definition(), updateTask.Handle)

	deleteTask := NewDeleteTaskTool(client)
	s.AddTool(deleteTask.Definition(), deleteTask.Handle)

	// Epics
	listEpics := NewListEpicsTool(client)
	s.AddTool(listEpics.Definition(), listEpics.Handle)

	getEpic := NewGetEpicTool(client)
	s.AddTool(getEpic.Definition(), getEpic.Handle)

	createEpic := NewCreateEpicTool(client)
	s.AddTool(createEpic.Definition(), createEpic.Handle)

	updateEpic := NewUpdateEpicTool(client)
	s.AddTool(updateEpic.Definition(), updateEpic.Handle)

	deleteEpic := NewDeleteEpicTool(client)
	s.AddTool(deleteEpic.Definition(), deleteEpic.Handle)

	epicStories := NewEpicStoriesTool(client)
	s.AddTool(epicStories.Definition(), epicStories.Handle)

	// Milestones
	listMilestones := NewListMilestonesTool(client)
	s.AddTool(listMilestones.Definition(), listMilestones.Handle)

	getMilestone := NewGetMilestoneTool(client)
	s.AddTool(getMilestone.Definition(), getMilestone.Handle)

	createMilestone := NewCreateMilestoneTool(client)
	s.AddTool(createMilestone.Definition(), createMilestone.Handle)

	updateMilestone := NewUpdateMilestoneTool(client)
	s.AddTool(updateMilestone.Definition(), updateMilestone.Handle)

	deleteMilestone := NewDeleteMilestoneTool(client)
	s.AddTool(deleteMilestone.Definition(), deleteMilestone.Handle)

	// Wiki
	listWiki := NewListWikiPagesTool(client)
	s.AddTool(listWiki.Definition(), listWiki.Handle)

	getWiki := NewGetWikiPageTool(client)
	s.AddTool(getWiki.Definition(), getWiki.Handle)

	createWiki := NewCreateWikiPageTool(client)
	s.AddTool(createWiki.Definition(), createWiki.Handle)

	updateWiki := NewUpdateWikiPageTool(client)
	s.AddTool(updateWiki.Definition(), updateWiki.Handle)

	deleteWiki := NewDeleteWikiPageTool(client)
	s.AddTool(deleteWiki.Definition(), deleteWiki.Handle)

	// Comments and history
	addComment := NewAddCommentTool(client)
	s.AddTool(addComment.Definition(), addComment.Handle)

	listComments := NewListCommentsTool(client)
	s.AddTool(listComments.Definition(), listComments.Handle)

	editComment := NewEditCommentTool(client)
	s.AddTool(editComment.Definition(), editComment.Handle)

	deleteComment := NewDeleteCommentTool(client)
	s.AddTool(deleteComment.Definition(), deleteComment.Handle)

	history := NewHistoryTool(client)
	s.AddTool(history.Definition(), history.Handle)

	// Attachments
	uploadAttachment := NewUploadAttachmentTool(client)
	s.AddTool(uploadAttachment.Definition(), uploadAttachment.Handle)

	listAttachments := NewListAttachmentsTool(client)
	s.AddTool(listAttachments.Definition(), listAttachments.Handle)

	downloadAttachment := NewDownloadAttachmentTool(client)
	s.AddTool(downloadAttachment.Definition(), downloadAttachment.Handle)

	deleteAttachment := NewDeleteAttachmentTool(client)
	s.AddTool(deleteAttachment.Definition(), deleteAttachment.Handle)

	// Session
	whoami := NewWhoamiTool(client)
	s.AddTool(whoami.Definition(), whoami.Handle)

	return s
}

// serverInstructions tells the model how to navigate the tool set.
func serverInstructions() string {
	return `You have access to a Taiga project management server.

## Finding your way around
- Start with taiga_list_projects to discover project IDs.
- Work items come in three kinds: issue, user_story, and task. Tools that
  operate on an item take a 'kind' and an 'id'.
- Status, priority, severity, and type are numeric IDs that differ per
  project. Discover them with taiga_list_issue_options and
  taiga_list_userstory_statuses before creating or updating items.

## Updating items
- Update tools change only the fields you pass. Updates are guarded
  against concurrent edits: if someone changed the item while you were
  working, the tool reports a conflict. Re-read the item and retry.
- Listings may be truncated on very large projects; prefer filters
  (project, milestone, status, assignee) over fetching everything.

## Comments and attachments
- taiga_add_comment adds a comment; taiga_list_comments returns comment
  IDs for editing and deletion. Comment deletion is soft and reversible.
- taiga_upload_attachment accepts either a file path on the machine
  running this server, or inline base64 content with a file name.

## Diagnostics
- If calls start failing with authentication errors, run taiga_whoami to
  check the session and token expiry.`
}
