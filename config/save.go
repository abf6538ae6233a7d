package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveGlobal writes a key-value pair to the global config file, creating
// it if necessary.
func SaveGlobal(key, value string) error {
	if !contains(Keys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(Keys, ", "))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(home, ".config", globalConfigDir, globalConfig)

	existing := readConfigFile(configPath)
	existing[key] = parseValue(value)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}

	// Tokens live here, keep it private.
	return os.WriteFile(configPath, data, 0o600)
}

// SaveLocal writes a key-value pair to .taiga-mcp.yaml in the working
// directory.
func SaveLocal(key, value string) error {
	if !contains(Keys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(Keys, ", "))
	}
	if key == KeyAuthToken {
		return fmt.Errorf("refusing to write %s to the local config; use the global config or the environment", KeyAuthToken)
	}

	existing := readConfigFile(localConfig)
	existing[key] = parseValue(value)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}

	// Local config is shared and should be readable
	return os.WriteFile(localConfig, data, 0o644) //nolint:gosec
}

// DeleteGlobalKey removes a key from the global config file.
func DeleteGlobalKey(key string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(home, ".config", globalConfigDir, globalConfig)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil // Nothing to delete
	}

	var existing map[string]any
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return nil
	}

	delete(existing, key)

	data, err = yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o600)
}

func readConfigFile(path string) map[string]any {
	var existing map[string]any
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &existing)
	}
	if existing == nil {
		existing = make(map[string]any)
	}
	return existing
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) any {
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	return value
}
