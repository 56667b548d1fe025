// ABOUTME: CLI command starting the MCP server over stdio.
package main

import (
	"context"
	"fmt"

	"github.com/harperreed/fitlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long: `Start an MCP server over stdio, exposing session logging, lookup,
and month summary tools to MCP-compatible AI assistants.

Add to an assistant's MCP configuration:

  {
    "mcpServers": {
      "fitlog": {
        "command": "fitlog",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		return server.Serve(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
