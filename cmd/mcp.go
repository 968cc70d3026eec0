package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sizegate/sizegate/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Sizegate MCP server",
	Long:  `Launch an MCP server that allows AI agents to check bundle sizes and query run history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol runs over stdio, so setup must not print to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
