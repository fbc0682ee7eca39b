package model

import (
	"slices"
	"strings"
)

// PathCompare はパス同士の比較関数です。a < b なら負、等しければ 0、a > b なら正を返します
type PathCompare func(a, b string) int

// Find はツリーからパスに一致する要素を探します。見つからない場合は nil を返します
func Find(root *FolderNode, p string) Node {
	if root == nil {
		return nil
	}
	p = CleanPath(p)
	if p == RootPath {
		return root
	}
	return findIn(root, p)
}

func findIn(folder *FolderNode, p string) Node {
	for _, child := range folder.Children {
		if child.NodePath() == p {
			return child
		}
		sub, ok := child.(*FolderNode)
		if ok && strings.HasPrefix(p, sub.Path+"/") {
			if found := findIn(sub, p); found != nil {
				return found
			}
		}
	}
	return nil
}

// Folders は root 自身を含む全フォルダを深さ優先（行きがけ順）で列挙します。
// ファイルは列挙対象になりません
func Folders(root *FolderNode) []*FolderNode {
	if root == nil {
		return nil
	}
	var folders []*FolderNode
	var traverse func(folder *FolderNode)
	traverse = func(folder *FolderNode) {
		folders = append(folders, folder)
		for _, child := range folder.Children {
			if sub, ok := child.(*FolderNode); ok {
				traverse(sub)
			}
		}
	}
	traverse(root)
	return folders
}

// MarkdownFiles は folder 配下（深さ無制限、folder 自身は除く）の
// 拡張子が "md" のファイルをすべて収集します。順序は走査順です
func MarkdownFiles(folder *FolderNode) []*FileNode {
	if folder == nil {
		return nil
	}
	var files []*FileNode
	var traverse func(current *FolderNode)
	traverse = func(current *FolderNode) {
		for _, child := range current.Children {
			switch n := child.(type) {
			case *FolderNode:
				traverse(n)
			case *FileNode:
				if n.IsMarkdown() {
					files = append(files, n)
				}
			}
		}
	}
	traverse(folder)
	return files
}

// SortByPath はファイルをパスの昇順に安定ソートします。cmp が nil の場合はバイト順です
func SortByPath(files []*FileNode, cmp PathCompare) {
	if cmp == nil {
		cmp = strings.Compare
	}
	slices.SortStableFunc(files, func(a, b *FileNode) int {
		return cmp(a.Path, b.Path)
	})
}

// Paths はファイルのパスを順序どおりに取り出します
func Paths(files []*FileNode) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}
