package tools

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// newTestClient builds a taiga client pointed at a test server.
func newTestClient(t *testing.T, baseURL string) *taiga.Client {
	t.Helper()
	c, err := taiga.NewClient(&taiga.Config{
		URL:  baseURL,
		Auth: taiga.AuthConfig{Token: "test-token"},
	}, taiga.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetIssueTool_Definition(t *testing.T) {
	tool := NewGetIssueTool(nil)
	def := tool.Definition()

	if def.Name != "taiga_get_issue" {
		t.Errorf("tool name = %q", def.Name)
	}
	if _, ok := def.InputSchema.Properties["id"]; !ok {
		t.Error("missing 'id' parameter")
	}

	found := false
	for _, r := range def.InputSchema.Required {
		if r == "id" {
			found = true
		}
	}
	if !found {
		t.Error("'id' should be required")
	}
}

func TestGetIssueTool_Handle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/issues/5" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(taiga.Issue{ID: 5, Subject: "crash on login"})
	}))
	defer srv.Close()

	tool := NewGetIssueTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"id": float64(5)}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "crash on login") {
		t.Errorf("result = %s", resultText(res))
	}
}

func TestGetIssueTool_MissingID(t *testing.T) {
	tool := NewGetIssueTool(nil)
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result for a missing id")
	}
	if !strings.Contains(resultText(res), "'id'") {
		t.Errorf("error = %s", resultText(res))
	}
}

func TestGetIssueTool_NotFoundIsToolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"No Issue matches the given query."}`))
	}))
	defer srv.Close()

	tool := NewGetIssueTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"id": float64(999)}))
	if err != nil {
		t.Fatalf("API failures must be tool errors, got Go error: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result")
	}
	if !strings.Contains(resultText(res), "not found") {
		t.Errorf("error = %s", resultText(res))
	}
}

func TestUpdateIssueTool_SendsOnlyGivenFields(t *testing.T) {
	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			json.NewDecoder(r.Body).Decode(&patched)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 5, "version": 2, "subject": "new"})
	}))
	defer srv.Close()

	tool := NewUpdateIssueTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"id":      float64(5),
		"subject": "new",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}

	if patched["subject"] != "new" {
		t.Errorf("patched subject = %v", patched["subject"])
	}
	if _, ok := patched["description"]; ok {
		t.Error("description must not be sent when not given")
	}
	if _, ok := patched["version"]; !ok {
		t.Error("the observed version must accompany the update")
	}
}

func TestUpdateIssueTool_NoChanges(t *testing.T) {
	tool := NewUpdateIssueTool(nil)
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"id": float64(5)}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result when no fields are given")
	}
}

func TestUpdateIssueTool_ConflictMentionsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(map[string]any{"id": 5, "version": 3})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"version":["The version doesn't match"]}`))
	}))
	defer srv.Close()

	tool := NewUpdateIssueTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"id":     float64(5),
		"status": float64(2),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result")
	}
	if !strings.Contains(resultText(res), "retry") {
		t.Errorf("conflict message should tell the model to retry: %s", resultText(res))
	}
}

func TestAddCommentTool_BadKind(t *testing.T) {
	tool := NewAddCommentTool(nil)
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"kind":    "bug",
		"id":      float64(1),
		"comment": "hello",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result for an unknown kind")
	}
	if !strings.Contains(resultText(res), "issue, user_story, task") {
		t.Errorf("error should list valid kinds: %s", resultText(res))
	}
}

func TestAddCommentTool_Handle(t *testing.T) {
	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			if r.URL.Path != "/api/v1/userstories/4" {
				t.Errorf("patch path = %s", r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&patched)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 4, "version": 1})
	}))
	defer srv.Close()

	tool := NewAddCommentTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"kind":    "user_story",
		"id":      float64(4),
		"comment": "looks good",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}
	if patched["comment"] != "looks good" {
		t.Errorf("patched = %v", patched)
	}
}

func TestUploadAttachmentTool_InlineContent(t *testing.T) {
	payload := []byte("attachment body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/issues/9":
			json.NewEncoder(w).Encode(map[string]any{"id": 9, "project": 3})
		case r.URL.Path == "/api/v1/issues/attachments":
			if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
				t.Errorf("content type = %s", ct)
			}
			json.NewEncoder(w).Encode(taiga.Attachment{ID: 1, Name: "notes.txt"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tool := NewUploadAttachmentTool(newTestClient(t, srv.URL))
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"kind":      "issue",
		"id":        float64(9),
		"file_name": "notes.txt",
		"content":   base64.StdEncoding.EncodeToString(payload),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "notes.txt") {
		t.Errorf("result = %s", resultText(res))
	}
}

func TestUploadAttachmentTool_NeitherPathNorContent(t *testing.T) {
	tool := NewUploadAttachmentTool(nil)
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"kind": "issue",
		"id":   float64(9),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result")
	}
}

func TestEpicStoriesTool_UnknownAction(t *testing.T) {
	tool := NewEpicStoriesTool(nil)
	res, err := tool.Handle(t.Context(), makeReq(map[string]any{
		"action":     "merge",
		"epic":       float64(1),
		"user_story": float64(2),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Fatal("want an error result for an unknown action")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := NewServer(newTestClient(t, srv.URL), "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
