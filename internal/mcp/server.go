// Package mcp はボルトのフォルダ一覧と結合処理を MCP ツールとして公開するサーバーを提供します
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/usecase/combine"
)

// ServerName は MCP の実装名です
const ServerName = "mdcombine"

// NewServer はすべてのツールを登録した MCP サーバーを作成します
func NewServer(version string, combiner *combine.Combiner, vault filesystem.Vault) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	registerTools(server, combiner, vault)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations は読み取り専用ツールの注釈です
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations は新しいファイルを作るだけで既存を壊さないツールの注釈です
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, combiner *combine.Combiner, vault filesystem.Vault) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List every folder in the vault, root first, in depth-first order. These are the valid targets for combine.",
		Annotations: readOnlyAnnotations(),
	}, handleListFolders(combiner))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_markdown_files",
		Description: "List the markdown files under a folder (recursively) in the order combine would concatenate them.",
		Annotations: readOnlyAnnotations(),
	}, handleListMarkdownFiles(combiner, vault))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "combine",
		Description: "Combine every markdown file under a folder into a new combined-<folder>-<timestamp>.md file at the vault root.",
		Annotations: writeAnnotations(),
	}, handleCombine(combiner))
}
