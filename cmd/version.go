package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taiga-mcp version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taiga-mcp %s\n", Version)
	},
}
