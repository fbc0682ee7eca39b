// Package markdown はマークダウン文書の解析（結合ドキュメントの検査、フロントマター）を提供します
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	combinedTitle     = "Combined Markdown Files"
	fileHeadingPrefix = "File: "
	sourcePrefix      = "Generated from: "
	countPrefix       = "Total files: "
)

// Outline は結合ドキュメントの構成です
type Outline struct {
	Title         string   `json:"title"`
	Source        string   `json:"source"`
	DeclaredCount int      `json:"declared_count"`
	Files         []string `json:"files"`
}

// Consistent はヘッダーのファイル数とファイル見出しの数が一致するかを返します。
// 結合元のファイル自体が "## File:" 見出しを含む場合は一致しません
func (o *Outline) Consistent() bool {
	return o.Title == combinedTitle && o.DeclaredCount == len(o.Files)
}

// Inspect は結合ドキュメントを goldmark で解析し、ヘッダーとファイル見出しを取り出します
func Inspect(source []byte) (*Outline, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	outline := &Outline{DeclaredCount: -1}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			heading := strings.TrimSpace(rawText(node, source))
			switch {
			case node.Level == 1 && outline.Title == "":
				outline.Title = heading
			case node.Level == 2 && strings.HasPrefix(heading, fileHeadingPrefix):
				outline.Files = append(outline.Files, strings.TrimPrefix(heading, fileHeadingPrefix))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if len(outline.Files) > 0 {
				return ast.WalkSkipChildren, nil
			}
			if err := readHeaderLines(outline, node, source); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if outline.Title != combinedTitle {
		return nil, fmt.Errorf("結合ドキュメントではありません（タイトル: %q）", outline.Title)
	}
	return outline, nil
}

// rawText はブロックの元テキストを返します。インライン記法として解釈される "_" や "*" を残します
func rawText(node ast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return b.String()
}

// readHeaderLines は "*Generated from: ...*" と "*Total files: N*" の行を読み取ります
func readHeaderLines(outline *Outline, node *ast.Paragraph, source []byte) error {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		line := strings.TrimSpace(string(segment.Value(source)))
		if len(line) >= 2 && strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*") {
			line = line[1 : len(line)-1]
		}
		if v, ok := strings.CutPrefix(line, sourcePrefix); ok && outline.Source == "" {
			outline.Source = v
		}
		if v, ok := strings.CutPrefix(line, countPrefix); ok && outline.DeclaredCount < 0 {
			count, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("ファイル数を解釈できません: %q", v)
			}
			outline.DeclaredCount = count
		}
	}
	return nil
}
