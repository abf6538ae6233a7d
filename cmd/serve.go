package cmd

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/taigaflow/taiga-mcp/config"
	"github.com/taigaflow/taiga-mcp/taiga"
	"github.com/taigaflow/taiga-mcp/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP tools over stdio",
	Long: `Serve starts the MCP server on stdin/stdout. Logs go to stderr so they
never corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved := config.NewResolver().Resolve()

		logger := newLogger(resolved)
		slog.SetDefault(logger)

		taigaCfg, err := resolved.Taiga()
		if err != nil {
			return fmt.Errorf("resolving configuration: %w", err)
		}

		client, err := taiga.NewClient(taigaCfg, taiga.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}

		logger.Info("starting taiga-mcp",
			"version", Version,
			"url", taigaCfg.URL,
			"url_source", resolved.Source(config.KeyURL),
		)

		s := tools.NewServer(client, Version)
		if err := mcpserver.ServeStdio(s); err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

// newLogger builds the process logger. Stderr only: stdout carries the
// MCP protocol.
func newLogger(resolved *config.Resolved) *slog.Logger {
	opts := &slog.HandlerOptions{Level: resolved.LogLevel()}
	if resolved.LogFormat() == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
