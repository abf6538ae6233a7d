// Package main is the entry point for the taiga-mcp server.
package main

import (
	"fmt"
	"os"

	"github.com/taigaflow/taiga-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
