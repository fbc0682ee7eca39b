package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/infrastructure/logging"
	"MarkdownCombine/internal/infrastructure/markdown"
	"MarkdownCombine/internal/usecase/combine"
)

// LogNotifier は通知をログに記録します。MCP サーバーには通知を表示する画面がありません
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier は新しい LogNotifier インスタンスを作成します
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notice は通知をINFOレベルで記録します
func (n *LogNotifier) Notice(message string) {
	n.logger.Log(logging.LevelInfo, message, nil)
}

// --- list_folders ---

// ListFoldersInput は list_folders の入力です（引数なし）
type ListFoldersInput struct{}

// ListFoldersOutput は list_folders の出力です
type ListFoldersOutput struct {
	Count   int      `json:"count"   jsonschema:"number of folders including the root"`
	Folders []string `json:"folders" jsonschema:"folder paths; the root is /"`
}

func handleListFolders(combiner *combine.Combiner) mcp.ToolHandlerFor[ListFoldersInput, ListFoldersOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListFoldersInput) (*mcp.CallToolResult, ListFoldersOutput, error) {
		folders, err := combiner.Folders(ctx)
		if err != nil {
			return nil, ListFoldersOutput{}, fmt.Errorf("listing folders: %w", err)
		}
		paths := make([]string, 0, len(folders))
		for _, f := range folders {
			paths = append(paths, f.Path)
		}
		return nil, ListFoldersOutput{Count: len(paths), Folders: paths}, nil
	}
}

// --- list_markdown_files ---

// ListFilesInput は list_markdown_files の入力です
type ListFilesInput struct {
	Folder string `json:"folder"           jsonschema:"folder path as returned by list_folders"`
	Titles bool   `json:"titles,omitempty" jsonschema:"read each file and include its front matter title"`
}

// FileSummary は結合対象ファイルの概要です
type FileSummary struct {
	Path  string `json:"path"            jsonschema:"vault path of the file"`
	Title string `json:"title,omitempty" jsonschema:"front matter title, if any"`
}

// ListFilesOutput は list_markdown_files の出力です
type ListFilesOutput struct {
	Folder string        `json:"folder" jsonschema:"the requested folder"`
	Count  int           `json:"count"  jsonschema:"number of markdown files"`
	Files  []FileSummary `json:"files"  jsonschema:"markdown files in combine order"`
}

func handleListMarkdownFiles(combiner *combine.Combiner, vault filesystem.Vault) mcp.ToolHandlerFor[ListFilesInput, ListFilesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, ListFilesOutput, error) {
		if input.Folder == "" {
			return nil, ListFilesOutput{}, errors.New("specify folder")
		}
		files, err := combiner.Files(ctx, input.Folder)
		if errors.Is(err, combine.ErrInvalidFolder) {
			return nil, ListFilesOutput{}, errors.New(combine.NoticeInvalidFolder)
		}
		if err != nil {
			return nil, ListFilesOutput{}, fmt.Errorf("listing files: %w", err)
		}

		out := ListFilesOutput{Folder: input.Folder, Count: len(files), Files: make([]FileSummary, 0, len(files))}
		for _, file := range files {
			summary := FileSummary{Path: file.Path}
			if input.Titles {
				content, err := vault.Read(ctx, file)
				if err != nil {
					return nil, ListFilesOutput{}, fmt.Errorf("reading %s: %w", file.Path, err)
				}
				// フロントマターが壊れていてもタイトルなしとして続ける
				summary.Title, _ = markdown.Title([]byte(content))
			}
			out.Files = append(out.Files, summary)
		}
		return nil, out, nil
	}
}

// --- combine ---

// CombineInput は combine の入力です
type CombineInput struct {
	Folder string `json:"folder" jsonschema:"folder path as returned by list_folders; / combines the whole vault"`
}

// CombineOutput は combine の出力です
type CombineOutput struct {
	FileName string   `json:"file_name" jsonschema:"name of the created file at the vault root"`
	Count    int      `json:"count"     jsonschema:"number of combined files"`
	Files    []string `json:"files"     jsonschema:"combined file paths in order"`
	Notice   string   `json:"notice"    jsonschema:"the user-facing notice"`
}

func handleCombine(combiner *combine.Combiner) mcp.ToolHandlerFor[CombineInput, CombineOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CombineInput) (*mcp.CallToolResult, CombineOutput, error) {
		if input.Folder == "" {
			return nil, CombineOutput{}, errors.New("specify folder")
		}
		result, err := combiner.Combine(ctx, input.Folder)
		switch {
		case errors.Is(err, combine.ErrInvalidFolder):
			return nil, CombineOutput{}, errors.New(combine.NoticeInvalidFolder)
		case errors.Is(err, combine.ErrNoMarkdownFiles):
			return nil, CombineOutput{}, errors.New(combine.NoticeNoMarkdownFiles)
		case err != nil:
			return nil, CombineOutput{}, fmt.Errorf("combining %s: %w", input.Folder, err)
		}
		return nil, CombineOutput{
			FileName: result.FileName,
			Count:    len(result.Files),
			Files:    result.Files,
			Notice:   combine.NoticeCreated(result.FileName, len(result.Files)),
		}, nil
	}
}
