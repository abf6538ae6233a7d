package taiga

import (
	"context"
	"net/url"
	"strconv"
)

// The service has no dedicated comment-create endpoint: a comment is added
// by a version-guarded update carrying a "comment" field, and existing
// comments live in the item's history stream. History endpoints address
// items by history object type, not endpoint family; the two naming
// schemes diverge (see kinds.go).

// AddComment adds a comment to an item. It is implemented as a
// version-guarded update whose only change is the comment field.
func (c *Client) AddComment(ctx context.Context, ref ItemRef, comment string) error {
	if comment == "" {
		return ErrCommentRequired
	}
	return c.patchVersioned(ctx, ref.Kind, ref.ID, map[string]any{"comment": comment}, nil)
}

// ListComments returns the comment entries from an item's history, oldest
// entries in the order the service returns them. Non-comment history
// entries (field changes) are filtered out.
func (c *Client) ListComments(ctx context.Context, ref ItemRef) ([]HistoryEntry, error) {
	entries, err := c.ListHistory(ctx, ref)
	if err != nil {
		return nil, err
	}

	comments := entries[:0]
	for _, e := range entries {
		if e.IsComment() {
			comments = append(comments, e)
		}
	}
	return comments, nil
}

// ListHistory returns an item's full change history.
func (c *Client) ListHistory(ctx context.Context, ref ItemRef) ([]HistoryEntry, error) {
	path, err := historyPath(ref)
	if err != nil {
		return nil, err
	}

	var entries []HistoryEntry
	if err := c.get(ctx, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EditComment replaces the text of an existing comment.
func (c *Client) EditComment(ctx context.Context, ref ItemRef, commentID, comment string) error {
	if commentID == "" {
		return ErrCommentIDRequired
	}
	if comment == "" {
		return ErrCommentRequired
	}
	path, err := historyPath(ref)
	if err != nil {
		return err
	}

	body := map[string]any{"comment": comment}
	return c.post(ctx, path+"/edit_comment?id="+url.QueryEscape(commentID), body, nil)
}

// DeleteComment soft-deletes a comment from an item's history.
func (c *Client) DeleteComment(ctx context.Context, ref ItemRef, commentID string) error {
	if commentID == "" {
		return ErrCommentIDRequired
	}
	path, err := historyPath(ref)
	if err != nil {
		return err
	}
	return c.post(ctx, path+"/delete_comment?id="+url.QueryEscape(commentID), nil, nil)
}

// UndeleteComment restores a soft-deleted comment.
func (c *Client) UndeleteComment(ctx context.Context, ref ItemRef, commentID string) error {
	if commentID == "" {
		return ErrCommentIDRequired
	}
	path, err := historyPath(ref)
	if err != nil {
		return err
	}
	return c.post(ctx, path+"/undelete_comment?id="+url.QueryEscape(commentID), nil, nil)
}

// historyPath builds the history endpoint path for an item, routed by the
// kind's history object type.
func historyPath(ref ItemRef) (string, error) {
	objType, err := ref.Kind.HistoryObjectType()
	if err != nil {
		return "", err
	}
	if ref.ID == 0 {
		return "", ErrIDRequired
	}
	return "/history/" + objType + "/" + strconv.Itoa(ref.ID), nil
}
