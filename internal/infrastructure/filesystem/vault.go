// Package filesystem はストレージツリー（ボルト）へのアクセスを提供します
package filesystem

import (
	"context"
	"errors"

	"MarkdownCombine/internal/domain/model"
)

// ErrNotFound は指定パスの要素が存在しないことを表します
var ErrNotFound = errors.New("指定されたパスは存在しません")

// Vault はフォルダとファイルの階層を持つストレージツリーです
type Vault interface {
	// Root は呼び出し時点のツリー全体のスナップショットを返します
	Root(ctx context.Context) (*model.FolderNode, error)
	// Lookup はパスに一致する要素を返します。存在しない場合は ErrNotFound です
	Lookup(ctx context.Context, path string) (model.Node, error)
	// Read はファイルの内容全体を読み込みます
	Read(ctx context.Context, file *model.FileNode) (string, error)
	// Create はボルトのルートに新しいファイルを作成します。
	// 同名のファイルが存在する場合は fs.ErrExist をラップしたエラーを返し、上書きしません
	Create(ctx context.Context, name, content string) (*model.FileNode, error)
}
