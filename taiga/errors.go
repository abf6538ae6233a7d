package taiga

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors.
var (
	ErrConfigURLRequired   = errors.New("taiga url is required")
	ErrConfigTokenRequired = errors.New("taiga auth token is required")
)

// Validation errors, detected before any network call.
var (
	ErrKindUnknown         = errors.New("unknown item kind")
	ErrIDRequired          = errors.New("item id is required")
	ErrProjectIDRequired   = errors.New("project id is required")
	ErrSubjectRequired     = errors.New("subject is required")
	ErrSlugRequired        = errors.New("slug is required")
	ErrFileNameRequired    = errors.New("attachment file name is required")
	ErrFilePathRequired    = errors.New("attachment file path is required")
	ErrPayloadEmpty        = errors.New("attachment payload is empty")
	ErrPayloadInvalid      = errors.New("attachment payload is not valid base64")
	ErrCommentRequired     = errors.New("comment text is required")
	ErrCommentIDRequired   = errors.New("comment id is required")
	ErrWikiContentRequired = errors.New("wiki page content is required")
)

// FileNotFoundError reports a relative attachment path that matched none of
// the probed locations. It carries every path that was tried so the caller
// can see exactly where the file was looked for.
type FileNotFoundError struct {
	Name  string
	Tried []string
}

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found; tried: %s", e.Name, strings.Join(e.Tried, ", "))
}
