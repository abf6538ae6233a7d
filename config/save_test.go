package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func readSaved(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var saved map[string]any
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return saved
}

func TestSaveGlobal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(os.Getenv("HOME"), ".config", globalConfigDir, globalConfig)

	t.Run("creates config file", func(t *testing.T) {
		if err := SaveGlobal(KeyURL, "https://example.com"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		saved := readSaved(t, configPath)
		if saved[KeyURL] != "https://example.com" {
			t.Errorf("saved url = %v", saved[KeyURL])
		}
	})

	t.Run("preserves existing keys", func(t *testing.T) {
		if err := SaveGlobal(KeyLogLevel, "debug"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		saved := readSaved(t, configPath)
		if saved[KeyURL] != "https://example.com" {
			t.Errorf("url lost: %v", saved)
		}
		if saved[KeyLogLevel] != "debug" {
			t.Errorf("log_level = %v", saved[KeyLogLevel])
		}
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		err := SaveGlobal("bogus", "x")
		if err == nil || !strings.Contains(err.Error(), "unknown config key") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("file is private", func(t *testing.T) {
		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("perm = %o, want 600", perm)
		}
	})
}

func TestSaveLocal(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := SaveLocal(KeyMaxPages, "25"); err != nil {
		t.Fatalf("SaveLocal() error = %v", err)
	}
	saved := readSaved(t, localConfig)
	if saved[KeyMaxPages] != "25" {
		t.Errorf("max_pages = %v", saved[KeyMaxPages])
	}
}

func TestSaveLocalRefusesToken(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := SaveLocal(KeyAuthToken, "secret"); err == nil {
		t.Fatal("want refusal to write a token into a shared file")
	}
	if _, err := os.Stat(localConfig); !os.IsNotExist(err) {
		t.Error("local config must not have been created")
	}
}

func TestDeleteGlobalKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SaveGlobal(KeyURL, "https://example.com"); err != nil {
		t.Fatal(err)
	}
	if err := SaveGlobal(KeyLogLevel, "debug"); err != nil {
		t.Fatal(err)
	}

	if err := DeleteGlobalKey(KeyURL); err != nil {
		t.Fatalf("DeleteGlobalKey() error = %v", err)
	}

	configPath := filepath.Join(os.Getenv("HOME"), ".config", globalConfigDir, globalConfig)
	saved := readSaved(t, configPath)
	if _, ok := saved[KeyURL]; ok {
		t.Error("url still present after delete")
	}
	if saved[KeyLogLevel] != "debug" {
		t.Error("unrelated key lost")
	}
}

func TestDeleteGlobalKeyMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := DeleteGlobalKey(KeyURL); err != nil {
		t.Errorf("DeleteGlobalKey() on missing file = %v, want nil", err)
	}
}

func TestParseValue(t *testing.T) {
	if got := parseValue("true"); got != true {
		t.Errorf("parseValue(true) = %v", got)
	}
	if got := parseValue("False"); got != false {
		t.Errorf("parseValue(False) = %v", got)
	}
	if got := parseValue("30s"); got != "30s" {
		t.Errorf("parseValue(30s) = %v", got)
	}
}
