package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	mdmcp "MarkdownCombine/internal/mcp"
)

// newServeCmd は MCP サーバーとして動く serve コマンドを作成します
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run mdcombine as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "mdcombine": {
        "command": "mdcombine",
        "args": ["serve", "--vault", "/path/to/vault"]
      }
    }
  }

Available tools: list_folders, list_markdown_files, combine`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			combiner := a.newCombiner(mdmcp.NewLogNotifier(a.logger))
			server := mdmcp.NewServer(buildVersion(), combiner, a.vault)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
