package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"MarkdownCombine/internal/domain/model"
)

// MemoryVault はメモリ上のボルトです。テストや MCP のドライランで使います
type MemoryVault struct {
	mu       sync.Mutex
	files    map[string]string
	folders  map[string]struct{}
	reads    map[string]int
	readErrs map[string]error
}

// NewMemoryVault は空の MemoryVault を作成します
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{
		files:    make(map[string]string),
		folders:  make(map[string]struct{}),
		reads:    make(map[string]int),
		readErrs: make(map[string]error),
	}
}

// AddFile はファイルを追加します。親フォルダは自動的に作られます
func (m *MemoryVault) AddFile(path, content string) *MemoryVault {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[model.CleanPath(path)] = content
	return m
}

// AddFolder は空のフォルダを追加します
func (m *MemoryVault) AddFolder(path string) *MemoryVault {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := model.CleanPath(path); p != model.RootPath {
		m.folders[p] = struct{}{}
	}
	return m
}

// FailRead は指定ファイルの読み込みを err で失敗させます
func (m *MemoryVault) FailRead(path string, err error) *MemoryVault {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[model.CleanPath(path)] = err
	return m
}

// Content はファイルの内容を返します
func (m *MemoryVault) Content(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[model.CleanPath(path)]
	return content, ok
}

// ReadCount はファイルが読み込まれた回数を返します
func (m *MemoryVault) ReadCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[model.CleanPath(path)]
}

// Root はツリーのスナップショットを作成します。子要素は名前順です
func (m *MemoryVault) Root(ctx context.Context) (*model.FolderNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	root := model.NewFolder(model.RootPath)
	folders := map[string]*model.FolderNode{model.RootPath: root}

	var ensure func(p string) *model.FolderNode
	ensure = func(p string) *model.FolderNode {
		if f, ok := folders[p]; ok {
			return f
		}
		parent := ensure(model.ParentPath(p))
		f := model.NewFolder(p)
		parent.Children = append(parent.Children, f)
		folders[p] = f
		return f
	}

	// フォルダとファイルをまとめて名前順に並べてから組み立てる
	paths := make([]string, 0, len(m.folders)+len(m.files))
	for p := range m.folders {
		paths = append(paths, p)
	}
	for p := range m.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		if _, isFolder := m.folders[p]; isFolder {
			ensure(p)
			continue
		}
		parent := ensure(model.ParentPath(p))
		parent.Children = append(parent.Children, model.NewFile(p))
	}
	return root, nil
}

// Lookup はパスに一致する要素を返します
func (m *MemoryVault) Lookup(ctx context.Context, path string) (model.Node, error) {
	root, err := m.Root(ctx)
	if err != nil {
		return nil, err
	}
	node := model.Find(root, path)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return node, nil
}

// Read はファイルの内容を返し、読み込み回数を記録します
func (m *MemoryVault) Read(ctx context.Context, file *model.FileNode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads[file.Path]++
	if err := m.readErrs[file.Path]; err != nil {
		return "", fmt.Errorf("ファイル '%s' の読み込みに失敗: %w", file.Path, err)
	}
	content, ok := m.files[file.Path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, file.Path)
	}
	return content, nil
}

// Create はルートにファイルを作成します。同名の要素があればエラーです
func (m *MemoryVault) Create(ctx context.Context, name, content string) (*model.FileNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	_, fileExists := m.files[name]
	_, folderExists := m.folders[name]
	if fileExists || folderExists {
		return nil, fmt.Errorf("出力ファイルの作成に失敗しました: %s: %w", name, fs.ErrExist)
	}
	m.files[name] = content
	return model.NewFile(name), nil
}
