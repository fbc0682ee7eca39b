package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

type frontMatter struct {
	Title string `yaml:"title"`
}

// Title はフロントマターの title を返します。フロントマターがなければ空文字です
func Title(content []byte) (string, error) {
	var meta frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err != nil {
		return "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta.Title, nil
}
