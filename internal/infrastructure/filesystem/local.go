package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/logging"
)

// LocalVault はローカルディレクトリをボルトとして扱います
type LocalVault struct {
	dir    string
	logger logging.Logger
}

// NewLocalVault は dir をルートとする LocalVault を作成します。
// dir は絶対パスに変換してから検証されます
func NewLocalVault(dir string, logger logging.Logger) (*LocalVault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("絶対パスへの変換に失敗しました: %w", err)
	}
	v := &LocalVault{dir: abs, logger: logger}
	if err := v.ValidateDirectoryPath(abs); err != nil {
		return nil, err
	}
	return v, nil
}

// Dir はボルトルートの絶対パスを返します
func (v *LocalVault) Dir() string {
	return v.dir
}

// ValidateDirectoryPath はパスが安全で有効なディレクトリであることを確認します
func (v *LocalVault) ValidateDirectoryPath(path string) error {
	if path == "" {
		return fmt.Errorf("ディレクトリパスが指定されていません")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ディレクトリが存在しません: %w", err)
	}

	if !fileInfo.IsDir() {
		return fmt.Errorf("指定されたパスはディレクトリではありません")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("絶対パスで指定してください")
	}

	if strings.ContainsAny(path, "<>|?*") {
		return fmt.Errorf("パスに不正な文字が含まれています")
	}

	return nil
}

// RelPath はボルト内の絶対パスをボルトのパスに変換します。
// ボルトの外側を指すパスはエラーになります
func (v *LocalVault) RelPath(abs string) (string, error) {
	if err := v.ValidateDirectoryPath(abs); err != nil {
		return "", err
	}
	rel, err := filepath.Rel(v.dir, abs)
	if err != nil {
		return "", fmt.Errorf("相対パスの取得に失敗: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("ボルトの外側のディレクトリです: %s", abs)
	}
	return model.CleanPath(filepath.ToSlash(rel)), nil
}

// AbsPath はボルトのパスをローカルの絶対パスに変換します
func (v *LocalVault) AbsPath(p string) string {
	p = model.CleanPath(p)
	if p == model.RootPath {
		return v.dir
	}
	return filepath.Join(v.dir, filepath.FromSlash(p))
}

// Root はディレクトリを走査してツリーのスナップショットを作成します。
// ドットで始まる要素はボルトに含めません。ディレクトリへのシンボリックリンクはフォルダとして辿り、
// 走査中の祖先ディレクトリを指すリンクだけは循環するため含めません。
// 読めないディレクトリがあれば走査全体を失敗させます
func (v *LocalVault) Root(ctx context.Context) (*model.FolderNode, error) {
	info, err := os.Stat(v.dir)
	if err != nil {
		return nil, fmt.Errorf("ボルトの情報取得に失敗しました: %w", err)
	}
	root := model.NewFolder(model.RootPath)
	if err := v.scan(ctx, root, []fs.FileInfo{info}); err != nil {
		return nil, fmt.Errorf("ファイルシステムの走査に失敗しました: %w", err)
	}
	return root, nil
}

// scan は folder の子要素を読み込みます。ancestors は folder 自身を含む祖先ディレクトリです
func (v *LocalVault) scan(ctx context.Context, folder *model.FolderNode, ancestors []fs.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(v.AbsPath(folder.Path))
	if err != nil {
		v.logger.Log(logging.LevelError, fmt.Sprintf("パス '%s' の走査中にエラー発生", folder.Path), err)
		return fmt.Errorf("'%s' の走査に失敗: %w", folder.Path, err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		childPath := model.JoinPath(folder.Path, entry.Name())

		info, isDir, err := v.resolveEntry(entry, childPath)
		if err != nil {
			return err
		}
		if !isDir {
			folder.Children = append(folder.Children, model.NewFile(childPath))
			continue
		}
		if containsSameFile(ancestors, info) {
			v.logger.Log(logging.LevelWarn, fmt.Sprintf("祖先を指すシンボリックリンクを走査しません: %s", childPath), nil)
			continue
		}

		child := model.NewFolder(childPath)
		if err := v.scan(ctx, child, append(ancestors[:len(ancestors):len(ancestors)], info)); err != nil {
			return err
		}
		folder.Children = append(folder.Children, child)
	}
	return nil
}

// resolveEntry はエントリがディレクトリか（リンクならリンク先がディレクトリか）を判定します。
// リンク先が存在しないリンクはファイルとして扱います
func (v *LocalVault) resolveEntry(entry fs.DirEntry, childPath string) (fs.FileInfo, bool, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		target, err := os.Stat(v.AbsPath(childPath))
		if err != nil {
			v.logger.Log(logging.LevelWarn, fmt.Sprintf("リンク先を解決できません: %s", childPath), err)
			return nil, false, nil
		}
		return target, target.IsDir(), nil
	}
	if !entry.IsDir() {
		return nil, false, nil
	}
	info, err := entry.Info()
	if err != nil {
		return nil, false, fmt.Errorf("'%s' の情報取得に失敗: %w", childPath, err)
	}
	return info, true, nil
}

func containsSameFile(infos []fs.FileInfo, target fs.FileInfo) bool {
	for _, info := range infos {
		if os.SameFile(info, target) {
			return true
		}
	}
	return false
}

// Lookup はパスに一致する要素を返します。フォルダの Children は埋めません
func (v *LocalVault) Lookup(ctx context.Context, path string) (model.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = model.CleanPath(path)
	info, err := os.Stat(v.AbsPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("'%s' の情報取得に失敗: %w", path, err)
	}
	if info.IsDir() {
		return model.NewFolder(path), nil
	}
	return model.NewFile(path), nil
}

// Read はファイルの内容を読み込みます
func (v *LocalVault) Read(ctx context.Context, file *model.FileNode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := os.ReadFile(v.AbsPath(file.Path))
	if err != nil {
		return "", fmt.Errorf("ファイル '%s' の読み込みに失敗: %w", file.Path, err)
	}
	return string(content), nil
}

// Create はボルトのルートに新しいファイルを作成します。既存ファイルは上書きしません
func (v *LocalVault) Create(ctx context.Context, name, content string) (*model.FileNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateFileName(name); err != nil {
		return nil, err
	}

	target := filepath.Join(v.dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("出力ファイルへの書き込みに失敗しました: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("出力ファイルのクローズに失敗しました: %w", err)
	}

	v.logger.Log(logging.LevelDebug, fmt.Sprintf("ファイルを作成しました: %s", target), nil)
	return model.NewFile(name), nil
}

func validateFileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("不正なファイル名です: %q", name)
	}
	return nil
}
