// Package report は結合ドキュメントの書式と出力ファイル名を提供します
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"MarkdownCombine/internal/domain/model"
)

const (
	OutputFilePrefix = "combined-"
	OutputFileSuffix = ".md"
	// TimestampLayout はミリ秒付き UTC の ISO-8601 表記です（例: 2024-01-02T03:04:05.678Z）
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	DocumentTitle = "# Combined Markdown Files"
	Separator     = "---"
)

// Generator は結合ドキュメントの生成機能を提供します
type Generator struct {
	now func() time.Time
}

// NewGenerator は現在時刻を使う Generator インスタンスを作成します
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock は時刻の取得元を差し替えた Generator を作成します
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Timestamp は t をファイル名に埋め込む秒精度の文字列に変換します。
// ISO-8601 文字列の ':' と '.' を '-' に置き換え、末尾5文字（ミリ秒とゾーン）を落とします
func Timestamp(t time.Time) string {
	iso := t.UTC().Format(TimestampLayout)
	replaced := strings.NewReplacer(":", "-", ".", "-").Replace(iso)
	return replaced[:len(replaced)-5]
}

// OutputFileName は "combined-<folderName>-<timestamp>.md" 形式のファイル名を返します
func (g *Generator) OutputFileName(folderName string) string {
	return fmt.Sprintf("%s%s-%s%s", OutputFilePrefix, folderName, Timestamp(g.now()), OutputFileSuffix)
}

// WriteHeader はタイトル、結合元フォルダ、ファイル数のヘッダーを出力します
func (g *Generator) WriteHeader(writer io.Writer, folderPath string, count int) {
	fmt.Fprintf(writer, "%s\n", DocumentTitle)
	fmt.Fprintf(writer, "*Generated from: %s*\n", folderPath)
	fmt.Fprintf(writer, "*Total files: %d*\n\n", count)
	fmt.Fprintf(writer, "%s\n\n", Separator)
}

// WriteSection は1ファイル分の見出し、内容、区切り線を出力します
func (g *Generator) WriteSection(writer io.Writer, section model.Section) {
	fmt.Fprintf(writer, "## File: %s\n\n", section.Path)
	io.WriteString(writer, section.Content)
	fmt.Fprintf(writer, "\n\n%s\n\n", Separator)
}

// Render は (path, content) の並びから結合ドキュメント全体を組み立てます
func (g *Generator) Render(folderPath string, sections []model.Section) string {
	var builder strings.Builder
	g.WriteHeader(&builder, folderPath, len(sections))
	for _, section := range sections {
		g.WriteSection(&builder, section)
	}
	return builder.String()
}
