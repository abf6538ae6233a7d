package taiga

import (
	"errors"
	"testing"
)

func TestKindRouting(t *testing.T) {
	tests := []struct {
		kind        Kind
		wantFamily  string
		wantObjType string
	}{
		{KindIssue, "issues", "issue"},
		{KindUserStory, "userstories", "userstory"},
		{KindTask, "tasks", "task"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			family, err := tt.kind.EndpointFamily()
			if err != nil {
				t.Fatalf("EndpointFamily: %v", err)
			}
			if family != tt.wantFamily {
				t.Errorf("EndpointFamily = %q, want %q", family, tt.wantFamily)
			}

			objType, err := tt.kind.HistoryObjectType()
			if err != nil {
				t.Fatalf("HistoryObjectType: %v", err)
			}
			if objType != tt.wantObjType {
				t.Errorf("HistoryObjectType = %q, want %q", objType, tt.wantObjType)
			}
		})
	}
}

func TestKindNamingSchemesDiverge(t *testing.T) {
	// The endpoint family and history object type are independent tables;
	// user stories are where the two naming schemes differ.
	family, _ := KindUserStory.EndpointFamily()
	objType, _ := KindUserStory.HistoryObjectType()
	if family == objType {
		t.Errorf("family %q should differ from history object type %q", family, objType)
	}
}

func TestKindUnknown(t *testing.T) {
	if _, err := Kind("epic").EndpointFamily(); !errors.Is(err, ErrKindUnknown) {
		t.Errorf("EndpointFamily error = %v, want ErrKindUnknown", err)
	}
	if _, err := Kind("epic").HistoryObjectType(); !errors.Is(err, ErrKindUnknown) {
		t.Errorf("HistoryObjectType error = %v, want ErrKindUnknown", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"issue", KindIssue, false},
		{"user_story", KindUserStory, false},
		{"userstory", KindUserStory, false},
		{"story", KindUserStory, false},
		{"us", KindUserStory, false},
		{"task", KindTask, false},
		{"wiki", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrKindUnknown) {
					t.Errorf("err = %v, want ErrKindUnknown", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
