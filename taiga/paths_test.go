package taiga

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveAttachmentPathAbsolute(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	writeFile(t, target, "x")

	got, err := resolveAttachmentPath(target)
	if err != nil {
		t.Fatalf("resolveAttachmentPath: %v", err)
	}
	if got != target {
		t.Errorf("resolved = %q, want %q", got, target)
	}
}

func TestResolveAttachmentPathAbsoluteMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")

	_, err := resolveAttachmentPath(missing)

	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *FileNotFoundError", err)
	}
	if len(notFound.Tried) != 1 || notFound.Tried[0] != missing {
		t.Errorf("Tried = %v, want just the absolute path", notFound.Tried)
	}
}

func TestResolveAttachmentPathDesktopFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	// The file exists only under home/Desktop, not the working directory
	// or the home directory itself.
	desktop := filepath.Join(home, "Desktop", "report.pdf")
	writeFile(t, desktop, "x")

	got, err := resolveAttachmentPath("report.pdf")
	if err != nil {
		t.Fatalf("resolveAttachmentPath: %v", err)
	}
	if got != desktop {
		t.Errorf("resolved = %q, want Desktop path %q", got, desktop)
	}
}

func TestResolveAttachmentPathPriorityOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cwd := t.TempDir()
	t.Chdir(cwd)

	// Present in both cwd and Desktop: the working directory wins.
	inCwd := filepath.Join(cwd, "notes.md")
	writeFile(t, inCwd, "cwd")
	writeFile(t, filepath.Join(home, "Desktop", "notes.md"), "desktop")

	got, err := resolveAttachmentPath("notes.md")
	if err != nil {
		t.Fatalf("resolveAttachmentPath: %v", err)
	}
	resolved, _ := filepath.EvalSymlinks(got)
	want, _ := filepath.EvalSymlinks(inCwd)
	if resolved != want {
		t.Errorf("resolved = %q, want cwd path %q", got, inCwd)
	}
}

func TestResolveAttachmentPathEnumeratesTried(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	_, err := resolveAttachmentPath("ghost.txt")

	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *FileNotFoundError", err)
	}
	if len(notFound.Tried) != 4 {
		t.Fatalf("Tried = %d paths, want 4: %v", len(notFound.Tried), notFound.Tried)
	}

	msg := err.Error()
	for _, tried := range notFound.Tried {
		if !strings.Contains(msg, tried) {
			t.Errorf("error message %q does not name tried path %q", msg, tried)
		}
	}

	wantSuffixes := []string{
		"ghost.txt",
		filepath.Join(home, "ghost.txt"),
		filepath.Join(home, "Desktop", "ghost.txt"),
		filepath.Join(home, "Downloads", "ghost.txt"),
	}
	for i, suffix := range wantSuffixes[1:] {
		if notFound.Tried[i+1] != suffix {
			t.Errorf("Tried[%d] = %q, want %q", i+1, notFound.Tried[i+1], suffix)
		}
	}
}

func TestResolveAttachmentPathEmpty(t *testing.T) {
	if _, err := resolveAttachmentPath(""); !errors.Is(err, ErrFilePathRequired) {
		t.Errorf("err = %v, want ErrFilePathRequired", err)
	}
}

func TestResolveAttachmentPathDirectoryDoesNotMatch(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	t.Setenv("HOME", t.TempDir())

	// A directory with the probed name is not a usable attachment source.
	if err := os.MkdirAll(filepath.Join(cwd, "report.pdf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := resolveAttachmentPath("report.pdf")
	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *FileNotFoundError", err)
	}
}
