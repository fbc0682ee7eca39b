// Package ui はOSネイティブのダイアログによるフォルダ選択を提供します
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"MarkdownCombine/internal/domain/model"
)

// DialogTitle はフォルダ選択ダイアログのタイトルです
const DialogTitle = "Select folder to combine"

// VaultResolver はローカルの絶対パスをボルトのパスに変換します
type VaultResolver interface {
	Dir() string
	RelPath(abs string) (string, error)
}

// NativePicker はOSのフォルダ選択ダイアログを使う combine.Picker です
type NativePicker struct {
	// resolver は選択されたディレクトリをボルトのパスに変換します
	resolver VaultResolver
	browse   func(title, startDir string) (string, error)
}

// NewNativePicker は新しい NativePicker インスタンスを作成します
func NewNativePicker(resolver VaultResolver) *NativePicker {
	return &NativePicker{resolver: resolver, browse: browseDirectory}
}

func browseDirectory(title, startDir string) (string, error) {
	return dialog.Directory().Title(title).SetStartDir(startDir).Browse()
}

// Pick はダイアログを表示し、選択されたディレクトリをボルトのパスにして onSubmit に渡します。
// キャンセルされた場合は onSubmit を呼びません
func (p *NativePicker) Pick(ctx context.Context, _ *model.FolderNode, onSubmit func(path string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	selectedDir, err := p.browse(DialogTitle, p.resolver.Dir())
	if errors.Is(err, dialog.ErrCancelled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ディレクトリの選択がエラーになりました: %w", err)
	}

	path, err := p.resolver.RelPath(selectedDir)
	if err != nil {
		return fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}
	onSubmit(path)
	return nil
}
