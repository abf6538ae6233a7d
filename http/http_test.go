package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 404,
				Message:    "No Issue matches the given query.",
				Endpoint:   "/issues/42",
			},
			wantMsg:    "taiga API error (404) at /issues/42: No Issue matches the given query.",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 500,
				Message:    "Internal error",
				Endpoint:   "/projects",
				RequestID:  "abc123",
			},
			wantMsg:    "taiga API error (500) at /projects [abc123]: Internal error",
			wantUnwrap: ErrServerError,
		},
		{
			name: "unauthorized",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 401,
				Message:    "Invalid token",
				Endpoint:   "/users/me",
			},
			wantMsg:    "taiga API error (401) at /users/me: Invalid token",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name: "forbidden",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 403,
				Message:    "You do not have permission",
				Endpoint:   "/projects/7",
			},
			wantMsg:    "taiga API error (403) at /projects/7: You do not have permission",
			wantUnwrap: ErrForbidden,
		},
		{
			name: "bad request",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 400,
				Message:    "subject is required",
				Endpoint:   "/userstories",
			},
			wantMsg:    "taiga API error (400) at /userstories: subject is required",
			wantUnwrap: ErrBadRequest,
		},
		{
			name: "version conflict",
			err: &APIError{
				Service:         "taiga",
				StatusCode:      400,
				Message:         "The version doesn't match with the current one",
				Endpoint:        "/issues/42",
				VersionConflict: true,
			},
			wantMsg:    "taiga API error (400) at /issues/42: The version doesn't match with the current one",
			wantUnwrap: ErrVersionConflict,
		},
		{
			name: "payload too large",
			err: &APIError{
				Service:    "taiga",
				StatusCode: 413,
				Message:    "Request entity too large",
				Endpoint:   "/issues/attachments",
			},
			wantMsg:    "taiga API error (413) at /issues/attachments: Request entity too large",
			wantUnwrap: ErrPayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantUnwrap) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.wantUnwrap)
			}
		})
	}
}

func TestDescribeErrorBody(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantMsg      string
		wantConflict bool
	}{
		{
			name:         "taiga error message",
			status:       400,
			body:         `{"_error_message":"wrong project id","_error_type":"taiga.base.exceptions.WrongArguments"}`,
			wantMsg:      "wrong project id",
			wantConflict: false,
		},
		{
			name:         "version field error",
			status:       400,
			body:         `{"version":["The version doesn't match with the current one"]}`,
			wantMsg:      "version is invalid or the resource was concurrently modified",
			wantConflict: true,
		},
		{
			name:         "version named in detail",
			status:       400,
			body:         `{"detail":"The version parameter is not valid"}`,
			wantMsg:      "The version parameter is not valid",
			wantConflict: true,
		},
		{
			name:         "version field error on other status is not a conflict",
			status:       404,
			body:         `{"detail":"Not found."}`,
			wantMsg:      "Not found.",
			wantConflict: false,
		},
		{
			name:         "non-json body",
			status:       502,
			body:         `<html>bad gateway</html>`,
			wantMsg:      "",
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, conflict := describeErrorBody(tt.status, []byte(tt.body))
			if msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
			if conflict != tt.wantConflict {
				t.Errorf("conflict = %v, want %v", conflict, tt.wantConflict)
			}
		})
	}
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q, want bearer token", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header")
		}
		if got := r.URL.Query().Get("project"); got != "7" {
			t.Errorf("project query = %q, want 7", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "subject": "hello"})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "taiga",
		Logger:      testLogger(),
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer tok")
		},
	})

	var result struct {
		ID      int    `json:"id"`
		Subject string `json:"subject"`
	}
	q := map[string][]string{"project": {"7"}}
	if err := c.Get(context.Background(), "/issues/1", q, &result); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if result.Subject != "hello" {
		t.Errorf("subject = %q, want %q", result.Subject, "hello")
	}
}

func TestClientErrorTranslation(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantTarget error
	}{
		{"bad request", 400, `{"_error_message":"bad data"}`, ErrBadRequest},
		{"version conflict", 400, `{"version":["stale"]}`, ErrVersionConflict},
		{"unauthorized", 401, `{"detail":"Invalid token"}`, ErrUnauthorized},
		{"forbidden", 403, `{"detail":"nope"}`, ErrForbidden},
		{"not found", 404, `{"detail":"missing"}`, ErrNotFound},
		{"too large", 413, ``, ErrPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "taiga", Logger: testLogger()})

			err := c.Get(context.Background(), "/x", nil, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantTarget) {
				t.Errorf("errors.Is(err, %v) = false; err = %v", tt.wantTarget, err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error is not *APIError: %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestClientRetriesServerError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]int{"id": 9})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "taiga",
		MaxRetries:  3,
		RetryWait:   time.Millisecond,
		Logger:      testLogger(),
	})

	var result struct {
		ID int `json:"id"`
	}
	if err := c.Get(context.Background(), "/x", nil, &result); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if result.ID != 9 {
		t.Errorf("id = %d, want 9", result.ID)
	}
}

func TestClientPostRetainsBodyAcrossRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("attempt %d: decode body: %v", attempts, err)
		}
		if body["subject"] != "retry me" {
			t.Errorf("attempt %d: subject = %v", attempts, body["subject"])
		}
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "taiga",
		MaxRetries:  3,
		RetryWait:   time.Millisecond,
		Logger:      testLogger(),
	})

	if err := c.Post(context.Background(), "/x", map[string]string{"subject": "retry me"}, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestClientDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "taiga", Logger: testLogger()})
	if err := c.Delete(context.Background(), "/issues/attachments/3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
