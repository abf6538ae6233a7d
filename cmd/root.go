// Package cmd implements the taiga-mcp command line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is the release version, set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "taiga-mcp",
	Short: "MCP server for Taiga project management",
	Long: `taiga-mcp exposes a Taiga instance to MCP clients. It serves tools for
projects, user stories, issues, tasks, epics, milestones, wiki pages,
comments, and attachments over stdio.

Configuration is resolved from built-in defaults, ~/.config/taiga-mcp/config.yaml,
.taiga-mcp.yaml in the working directory, and TAIGA_* environment variables,
in rising order of precedence. A .env file in the working directory is loaded
into the environment first.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is the normal case.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
