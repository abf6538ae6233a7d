package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// Configuration keys.
const (
	KeyURL        = "url"
	KeyAuthToken  = "auth_token"
	KeyAuthType   = "auth_type"
	KeyTimeout    = "timeout"
	KeyMaxRetries = "max_retries"
	KeyRetryWait  = "retry_wait"
	KeyMaxPages   = "max_pages"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

const (
	envPrefix       = "TAIGA_"
	globalConfigDir = "taiga-mcp"
	globalConfig    = "config.yaml"
	localConfig     = ".taiga-mcp.yaml"
)

// Keys lists every recognized configuration key.
var Keys = []string{
	KeyURL,
	KeyAuthToken,
	KeyAuthType,
	KeyTimeout,
	KeyMaxRetries,
	KeyRetryWait,
	KeyMaxPages,
	KeyLogLevel,
	KeyLogFormat,
}

// Defaults returns the built-in default values.
func Defaults() map[string]string {
	return map[string]string{
		KeyURL:        "https://api.taiga.io",
		KeyAuthType:   string(taiga.AuthBearer),
		KeyTimeout:    "30s",
		KeyMaxRetries: "3",
		KeyRetryWait:  "1s",
		KeyMaxPages:   "100",
		KeyLogLevel:   "info",
		KeyLogFormat:  "text",
	}
}

// Resolver merges configuration from defaults, config files, and the
// environment.
type Resolver struct {
	globalPath string
	localPath  string
	errWriter  io.Writer

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithPaths overrides the global and local config file paths.
func WithPaths(globalPath, localPath string) ResolverOption {
	return func(r *Resolver) {
		r.globalPath = globalPath
		r.localPath = localPath
	}
}

// WithErrWriter sets where resolution warnings are written.
func WithErrWriter(w io.Writer) ResolverOption {
	return func(r *Resolver) {
		r.errWriter = w
	}
}

// NewResolver creates a resolver with the standard file locations.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		localPath: localConfig,
		errWriter: os.Stderr,
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.globalPath = filepath.Join(home, ".config", globalConfigDir, globalConfig)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.errWriter != nil {
		fmt.Fprintf(r.errWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range Defaults() {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}

	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

func (r *Resolver) applyFile(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if !contains(Keys, key) {
			r.warn(fmt.Sprintf("%s: unknown key %q ignored", path, key))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = source
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	for _, key := range Keys {
		envKey := envPrefix + strings.ToUpper(key)
		if value := os.Getenv(envKey); value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceEnv
		}
	}

	// TAIGA_TOKEN is accepted as a shorthand for TAIGA_AUTH_TOKEN.
	if cfg.values[KeyAuthToken] == "" {
		if value := os.Getenv("TAIGA_TOKEN"); value != "" {
			cfg.values[KeyAuthToken] = value
			cfg.sources[KeyAuthToken] = SourceEnv
		}
	}
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// Taiga converts the resolved values into a typed client configuration.
func (c *Resolved) Taiga() (*taiga.Config, error) {
	cfg := &taiga.Config{
		URL: c.Get(KeyURL),
	}
	cfg.Auth.Token = c.Get(KeyAuthToken)
	cfg.Auth.Type = taiga.AuthType(c.Get(KeyAuthType))

	var err error
	if cfg.HTTP.Timeout, err = parseDuration(c, KeyTimeout); err != nil {
		return nil, err
	}
	if cfg.HTTP.RetryWait, err = parseDuration(c, KeyRetryWait); err != nil {
		return nil, err
	}
	if cfg.HTTP.MaxRetries, err = parseInt(c, KeyMaxRetries); err != nil {
		return nil, err
	}
	if cfg.MaxPages, err = parseInt(c, KeyMaxPages); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogLevel returns the resolved log level, defaulting to info on
// unrecognized values.
func (c *Resolved) LogLevel() slog.Level {
	switch strings.ToLower(c.Get(KeyLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat returns "json" or "text".
func (c *Resolved) LogFormat() string {
	if strings.EqualFold(c.Get(KeyLogFormat), "json") {
		return "json"
	}
	return "text"
}

func parseDuration(c *Resolved, key string) (time.Duration, error) {
	raw := c.Get(key)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config key %s: %w", key, err)
	}
	return d, nil
}

func parseInt(c *Resolved, key string) (int, error) {
	raw := c.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config key %s: %w", key, err)
	}
	return n, nil
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
