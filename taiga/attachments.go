package taiga

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// UploadAttachment attaches base64-encoded content to an item. The payload
// may carry a data-URI header ("data:<mime>;base64,<payload>"), which is
// stripped before decoding. The content is fully materialized in memory
// before transmission; no local size cap is applied, since the service enforces
// its own limit, surfaced as ErrPayloadTooLarge.
func (c *Client) UploadAttachment(ctx context.Context, ref ItemRef, fileName, payload, description string) (*Attachment, error) {
	if fileName == "" {
		return nil, ErrFileNameRequired
	}
	if payload == "" {
		return nil, ErrPayloadEmpty
	}
	family, err := ref.Kind.EndpointFamily()
	if err != nil {
		return nil, err
	}
	if ref.ID == 0 {
		return nil, ErrIDRequired
	}

	data, err := base64.StdEncoding.DecodeString(stripDataURI(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}

	// Best-effort enrichment: the upload endpoint accepts the owning
	// project id, obtained by looking up the owning item. The upload must
	// not depend on this metadata being available.
	project := c.lookupItemProject(ctx, family, ref.ID)

	body, contentType, err := buildAttachmentForm(ref.ID, fileName, contentTypeForName(fileName), data, description, project)
	if err != nil {
		return nil, err
	}

	var attachment Attachment
	if err := c.rest.PostMultipart(ctx, c.apiPath("/"+family+"/attachments"), body, contentType, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// UploadAttachmentFromPath reads a file from disk and attaches it to an
// item. Relative paths are resolved against the working directory, the home
// directory, home/Desktop, and home/Downloads, in that order.
func (c *Client) UploadAttachmentFromPath(ctx context.Context, ref ItemRef, path, description string) (*Attachment, error) {
	resolved, err := resolveAttachmentPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", resolved, err)
	}

	return c.UploadAttachment(ctx, ref, filepath.Base(resolved), base64.StdEncoding.EncodeToString(data), description)
}

// ListAttachments returns all attachments for an item. The attachment set
// for a single item is assumed small, so the listing is not paginated.
func (c *Client) ListAttachments(ctx context.Context, ref ItemRef) ([]Attachment, error) {
	family, err := ref.Kind.EndpointFamily()
	if err != nil {
		return nil, err
	}
	if ref.ID == 0 {
		return nil, ErrIDRequired
	}

	query := url.Values{}
	query.Set("object_id", strconv.Itoa(ref.ID))
	if project := c.lookupItemProject(ctx, family, ref.ID); project != 0 {
		query.Set("project", strconv.Itoa(project))
	}

	var attachments []Attachment
	if err := c.get(ctx, "/"+family+"/attachments", query, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// GetAttachment fetches an attachment's metadata.
func (c *Client) GetAttachment(ctx context.Context, kind Kind, id int) (*Attachment, error) {
	family, err := kind.EndpointFamily()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrIDRequired
	}

	var attachment Attachment
	if err := c.get(ctx, "/"+family+"/attachments/"+strconv.Itoa(id), nil, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// DeleteAttachment removes an attachment.
func (c *Client) DeleteAttachment(ctx context.Context, kind Kind, id int) error {
	family, err := kind.EndpointFamily()
	if err != nil {
		return err
	}
	if id == 0 {
		return ErrIDRequired
	}
	return c.delete(ctx, "/"+family+"/attachments/"+strconv.Itoa(id))
}

// DownloadAttachment fetches an attachment's metadata and streams its
// content to destPath. When destPath is empty, the destination is the
// attachment's recorded name under the working directory. The destination
// path is returned only after the full write completes.
func (c *Client) DownloadAttachment(ctx context.Context, kind Kind, id int, destPath string) (*Attachment, string, error) {
	attachment, err := c.GetAttachment(ctx, kind, id)
	if err != nil {
		return nil, "", err
	}

	source := attachment.URL
	if source == "" {
		source = attachment.AttachedFile
	}
	if source == "" {
		return nil, "", fmt.Errorf("attachment %d has no download url", id)
	}

	if destPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("resolve working directory: %w", err)
		}
		destPath = filepath.Join(cwd, attachment.Name)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return nil, "", fmt.Errorf("create %s: %w", destPath, err)
	}

	if _, err := c.rest.StreamURL(ctx, source, f); err != nil {
		f.Close()
		os.Remove(destPath)
		return nil, "", err
	}
	if err := f.Close(); err != nil {
		return nil, "", fmt.Errorf("write %s: %w", destPath, err)
	}

	return attachment, destPath, nil
}

// stripDataURI removes a leading data-URI scheme segment (everything up to
// and including the first comma) from a base64 payload.
func stripDataURI(payload string) string {
	if !strings.HasPrefix(payload, "data:") {
		return payload
	}
	if i := strings.Index(payload, ","); i >= 0 {
		return payload[i+1:]
	}
	return payload
}

// lookupItemProject fetches the owning item and reads its project id.
// Failures are logged at debug level and reported as 0: enrichment is
// best-effort and never aborts the primary operation.
func (c *Client) lookupItemProject(ctx context.Context, family string, id int) int {
	var item struct {
		Project json.RawMessage `json:"project"`
	}
	if err := c.get(ctx, "/"+family+"/"+strconv.Itoa(id), nil, &item); err != nil {
		c.logger.Debug("project enrichment lookup failed",
			"family", family,
			"id", id,
			"error", err,
		)
		return 0
	}

	var project int
	if err := json.Unmarshal(item.Project, &project); err != nil {
		return 0
	}
	return project
}

// buildAttachmentForm assembles the multipart/form-data body for an upload:
// object_id, attached_file bound to the file name, optional description,
// optional project. It returns the body and its content type (which carries
// the boundary).
func buildAttachmentForm(objectID int, fileName, fileContentType string, data []byte, description string, project int) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("object_id", strconv.Itoa(objectID)); err != nil {
		return nil, "", fmt.Errorf("assemble multipart body: %w", err)
	}
	if description != "" {
		if err := w.WriteField("description", description); err != nil {
			return nil, "", fmt.Errorf("assemble multipart body: %w", err)
		}
	}
	if project != 0 {
		if err := w.WriteField("project", strconv.Itoa(project)); err != nil {
			return nil, "", fmt.Errorf("assemble multipart body: %w", err)
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attached_file"; filename=%q`, fileName))
	header.Set("Content-Type", fileContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("assemble multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("assemble multipart body: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("assemble multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
