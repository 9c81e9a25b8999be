package cmd

import (
	"github.com/huangsam/shiftlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd serves the roster queries over MCP on stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp [source]",
	Short: "Start the ShiftLens MCP server",
	Long:  `Launch an MCP server that allows AI agents to query a nurse roster via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	// Tool handlers suppress the roster header, since stdout carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
