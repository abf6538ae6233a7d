package taiga

import "fmt"

// Kind identifies the resource family an item belongs to. It routes
// sub-resource operations (attachments, comments, history) to the right
// endpoints.
type Kind string

// Item kinds recognized by the client.
const (
	KindIssue     Kind = "issue"
	KindUserStory Kind = "user_story"
	KindTask      Kind = "task"
)

// ItemRef identifies a single item: which family it belongs to and its id.
type ItemRef struct {
	Kind Kind
	ID   int
}

// endpointFamilies maps a kind to its endpoint family, the path segment its
// CRUD and attachment endpoints live under.
var endpointFamilies = map[Kind]string{
	KindIssue:     "issues",
	KindUserStory: "userstories",
	KindTask:      "tasks",
}

// historyObjectTypes maps a kind to the object type name used by the history
// endpoints (comments, edits). The two naming schemes diverge: user stories
// are "userstories" as an endpoint family but "userstory" in history paths,
// so the tables are kept independent rather than deriving one from the other.
var historyObjectTypes = map[Kind]string{
	KindIssue:     "issue",
	KindUserStory: "userstory",
	KindTask:      "task",
}

// EndpointFamily returns the endpoint family for the kind.
func (k Kind) EndpointFamily() (string, error) {
	family, ok := endpointFamilies[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKindUnknown, k)
	}
	return family, nil
}

// HistoryObjectType returns the history object type name for the kind.
func (k Kind) HistoryObjectType() (string, error) {
	objType, ok := historyObjectTypes[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKindUnknown, k)
	}
	return objType, nil
}

// ParseKind normalizes a kind string. It accepts the canonical names plus
// the common aliases callers send ("userstory", "story", "us").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "issue":
		return KindIssue, nil
	case "user_story", "userstory", "story", "us":
		return KindUserStory, nil
	case "task":
		return KindTask, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrKindUnknown, s)
	}
}
