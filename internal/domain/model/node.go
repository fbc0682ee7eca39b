// package model はストレージツリー（ボルト）のドメインモデルを定義します
package model

import (
	"path"
	"strings"
)

const (
	// RootPath はボルトのルートフォルダのパスです
	RootPath = "/"
	// MarkdownExtension は結合対象となるファイルの拡張子です（ドットなし）
	MarkdownExtension = "md"
)

// Node はストレージツリーの要素（フォルダまたはファイル）を表します。
// 実装は *FolderNode と *FileNode のみです
type Node interface {
	// NodePath はボルトルートからのスラッシュ区切りのパスを返します
	NodePath() string
	node()
}

// FolderNode はフォルダを表します
type FolderNode struct {
	// Path はボルトルートからのパスです。ルートは "/" です
	Path string
	// Name はフォルダ名です。ルートでは空文字になります
	Name string
	// Children は子要素を保持します
	Children []Node
}

// FileNode はファイルを表します
type FileNode struct {
	// Path はボルトルートからのパスです（例: "docs/a.md"）
	Path string
	// Name は拡張子を含むファイル名です
	Name string
	// Extension は先頭のドットを含まない拡張子です
	Extension string
}

// Section は結合ドキュメントに含まれる1ファイル分の内容です
type Section struct {
	Path    string
	Content string
}

func (f *FolderNode) NodePath() string { return f.Path }
func (f *FileNode) NodePath() string   { return f.Path }

func (*FolderNode) node() {}
func (*FileNode) node()   {}

// NewFolder はパスからフォルダ名を導出して FolderNode を作成します
func NewFolder(p string) *FolderNode {
	if p == RootPath {
		return &FolderNode{Path: RootPath}
	}
	return &FolderNode{Path: p, Name: path.Base(p)}
}

// NewFile はパスからファイル名と拡張子を導出して FileNode を作成します
func NewFile(p string) *FileNode {
	name := path.Base(p)
	return &FileNode{
		Path:      p,
		Name:      name,
		Extension: strings.TrimPrefix(path.Ext(name), "."),
	}
}

// IsMarkdown は拡張子が厳密に "md" であるかを返します
func (f *FileNode) IsMarkdown() bool {
	return f.Extension == MarkdownExtension
}

// CleanPath はユーザー入力のパスをボルト内の正規形に変換します。
// 空文字と "/" はルートになり、先頭と末尾のスラッシュは取り除かれます。
// 空白は名前の一部として残します
func CleanPath(p string) string {
	cleaned := path.Clean("/" + p)
	if cleaned == RootPath {
		return RootPath
	}
	return strings.TrimPrefix(cleaned, "/")
}

// JoinPath は親フォルダのパスと子の名前から子のパスを組み立てます
func JoinPath(parent, name string) string {
	if parent == RootPath || parent == "" {
		return name
	}
	return parent + "/" + name
}

// ParentPath は親フォルダのパスを返します
func ParentPath(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return RootPath
	}
	return p[:i]
}
