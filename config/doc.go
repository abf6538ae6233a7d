// Package config resolves the taiga-mcp configuration from layered sources.
//
// Values merge with clear precedence, highest first:
//  1. Environment variables (TAIGA_URL, TAIGA_AUTH_TOKEN, ...)
//  2. Local config (.taiga-mcp.yaml in the working directory)
//  3. Global config (~/.config/taiga-mcp/config.yaml)
//  4. Built-in defaults
//
// A dotenv file, when present, is loaded into the process environment
// before resolution, so .env values participate as environment variables.
//
// # Usage
//
//	res := config.NewResolver()
//	cfg := res.Resolve()
//	taigaCfg, err := cfg.Taiga()
//
// Each resolved value tracks its source, so diagnostics can report where
// a setting came from:
//
//	value, source := cfg.GetWithSource(config.KeyURL)
package config
