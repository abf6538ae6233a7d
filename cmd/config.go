package cmd

import (
	"fmt"
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"github.com/taigaflow/taiga-mcp/config"
)

var configSetLocal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit taiga-mcp configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all resolved configuration values and their sources",
	Run: func(cmd *cobra.Command, args []string) {
		resolved := config.NewResolver().Resolve()

		keys := make([]string, len(config.Keys))
		copy(keys, config.Keys)
		sort.Strings(keys)

		for _, key := range keys {
			value, source := resolved.GetWithSource(key)
			if key == config.KeyAuthToken && value != "" {
				value = "(set)"
			}
			fmt.Printf("%-12s %-24s (%s)\n", key, value, source)
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a single resolved configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Keys, args[0]) {
			return fmt.Errorf("unknown config key: %s", args[0])
		}
		resolved := config.NewResolver().Resolve()
		value, source := resolved.GetWithSource(args[0])
		fmt.Printf("%s (%s)\n", value, source)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a configuration value",
	Long: `Set writes a key to the global config file at
~/.config/taiga-mcp/config.yaml, or to .taiga-mcp.yaml in the working
directory with --local.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configSetLocal {
			return config.SaveLocal(args[0], args[1])
		}
		return config.SaveGlobal(args[0], args[1])
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a key from the global config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.DeleteGlobalKey(args[0])
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&configSetLocal, "local", false, "write to .taiga-mcp.yaml in the working directory")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}
