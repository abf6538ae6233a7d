package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigaflow/taiga-mcp/taiga"
)

func TestResolver_Defaults(t *testing.T) {
	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))

	cfg := resolver.Resolve()

	if got := cfg.Get(KeyURL); got != "https://api.taiga.io" {
		t.Errorf("url = %q, want %q", got, "https://api.taiga.io")
	}
	if got := cfg.Source(KeyURL); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
	if got := cfg.Get(KeyAuthToken); got != "" {
		t.Errorf("auth_token = %q, want empty (no default)", got)
	}
}

func TestResolver_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TAIGA_URL", "https://tree.taiga.example.com")

	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyURL); got != "https://tree.taiga.example.com" {
		t.Errorf("url = %q", got)
	}
	if got := cfg.Source(KeyURL); got != SourceEnv {
		t.Errorf("source = %q, want %q", got, SourceEnv)
	}
}

func TestResolver_TokenShorthand(t *testing.T) {
	t.Setenv("TAIGA_TOKEN", "short-token")

	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyAuthToken); got != "short-token" {
		t.Errorf("auth_token = %q, want %q", got, "short-token")
	}
}

func TestResolver_FullFormWinsOverShorthand(t *testing.T) {
	t.Setenv("TAIGA_TOKEN", "short-token")
	t.Setenv("TAIGA_AUTH_TOKEN", "full-token")

	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyAuthToken); got != "full-token" {
		t.Errorf("auth_token = %q, want %q", got, "full-token")
	}
}

func TestResolver_GlobalConfig(t *testing.T) {
	globalPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(globalPath, []byte("url: https://global.taiga.example.com\n"), 0o600)

	resolver := NewResolver(WithPaths(globalPath, ""), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyURL); got != "https://global.taiga.example.com" {
		t.Errorf("url = %q", got)
	}
	if got := cfg.Source(KeyURL); got != SourceGlobal {
		t.Errorf("source = %q, want %q", got, SourceGlobal)
	}
}

func TestResolver_LocalOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.yaml")
	localPath := filepath.Join(dir, "local.yaml")
	os.WriteFile(globalPath, []byte("url: https://global.example.com\nmax_pages: 50\n"), 0o600)
	os.WriteFile(localPath, []byte("url: https://local.example.com\n"), 0o600)

	resolver := NewResolver(WithPaths(globalPath, localPath), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyURL); got != "https://local.example.com" {
		t.Errorf("url = %q", got)
	}
	if got := cfg.Source(KeyURL); got != SourceLocal {
		t.Errorf("source = %q, want %q", got, SourceLocal)
	}
	// Keys the local file doesn't set keep their global values.
	if got := cfg.Get(KeyMaxPages); got != "50" {
		t.Errorf("max_pages = %q, want 50", got)
	}
}

func TestResolver_EnvOverridesFiles(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "local.yaml")
	os.WriteFile(localPath, []byte("url: https://local.example.com\n"), 0o600)
	t.Setenv("TAIGA_URL", "https://env.example.com")

	resolver := NewResolver(WithPaths("", localPath), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyURL); got != "https://env.example.com" {
		t.Errorf("url = %q", got)
	}
}

func TestResolver_UnknownKeyWarns(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "local.yaml")
	os.WriteFile(localPath, []byte("no_such_key: x\n"), 0o600)

	resolver := NewResolver(WithPaths("", localPath), WithErrWriter(io.Discard))
	resolver.Resolve()

	if len(resolver.Warnings) != 1 {
		t.Errorf("warnings = %v, want one unknown-key warning", resolver.Warnings)
	}
}

func TestResolver_MalformedFileWarns(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "local.yaml")
	os.WriteFile(localPath, []byte("url: [unterminated\n"), 0o600)

	resolver := NewResolver(WithPaths("", localPath), WithErrWriter(io.Discard))
	cfg := resolver.Resolve()

	if len(resolver.Warnings) == 0 {
		t.Error("want a parse warning")
	}
	// Defaults survive a malformed file.
	if got := cfg.Get(KeyURL); got != "https://api.taiga.io" {
		t.Errorf("url = %q", got)
	}
}

func TestResolved_Taiga(t *testing.T) {
	t.Setenv("TAIGA_URL", "https://api.taiga.io")
	t.Setenv("TAIGA_AUTH_TOKEN", "tok")
	t.Setenv("TAIGA_TIMEOUT", "45s")
	t.Setenv("TAIGA_MAX_PAGES", "7")

	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	got, err := resolver.Resolve().Taiga()
	if err != nil {
		t.Fatalf("Taiga() error = %v", err)
	}

	if got.URL != "https://api.taiga.io" || got.Auth.Token != "tok" {
		t.Errorf("cfg = %+v", got)
	}
	if got.Auth.Type != taiga.AuthBearer {
		t.Errorf("auth type = %q", got.Auth.Type)
	}
	if got.HTTP.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", got.HTTP.Timeout)
	}
	if got.MaxPages != 7 {
		t.Errorf("max_pages = %d", got.MaxPages)
	}
}

func TestResolved_TaigaMissingToken(t *testing.T) {
	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	if _, err := resolver.Resolve().Taiga(); err == nil {
		t.Fatal("want validation error without a token")
	}
}

func TestResolved_TaigaBadDuration(t *testing.T) {
	t.Setenv("TAIGA_AUTH_TOKEN", "tok")
	t.Setenv("TAIGA_TIMEOUT", "banana")

	resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
	if _, err := resolver.Resolve().Taiga(); err == nil {
		t.Fatal("want error for unparseable timeout")
	}
}

func TestResolved_LogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TAIGA_LOG_LEVEL", tt.value)
			resolver := NewResolver(WithPaths("", ""), WithErrWriter(io.Discard))
			if got := resolver.Resolve().LogLevel(); got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
