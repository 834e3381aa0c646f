package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/solace/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Solace MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes mood tracking,
the journal, wellness tasks, badges, the wellness score and the support bot as
MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\solace\solace.db
- macOS: ~/Library/Application Support/solace/solace.db
- Linux: ~/.local/share/solace/solace.db

Example:
  solace mcp
  solace mcp --db solace.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, path, closeFn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		srv := mcp.NewSolaceMCPServer(sess, logger)

		// stdout carries the JSON-RPC stream.
		fmt.Fprintf(os.Stderr, "Solace MCP server started. DB: %s (WAL: %t, Sync: %s)\n", path, cfg.WAL, cfg.Sync)
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
