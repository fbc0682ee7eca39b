package combine

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"MarkdownCombine/internal/domain/model"
)

// 並び順の名前
const (
	OrderingLocale = "locale"
	OrderingBinary = "binary"
)

// LocaleCompare は言語非依存のルート照合順序でパスを比較する関数を返します。
// 大文字小文字は一次比較では区別せず、同順位のときだけ小文字を先にします
func LocaleCompare() model.PathCompare {
	var mu sync.Mutex
	collator := collate.New(language.Und)
	return func(a, b string) int {
		// Collator は並行利用できない
		mu.Lock()
		defer mu.Unlock()
		return collator.CompareString(a, b)
	}
}

// BinaryCompare はバイト列としてパスを比較します
func BinaryCompare() model.PathCompare {
	return strings.Compare
}

// ParseOrdering は設定値から比較関数を返します。空文字は locale として扱います
func ParseOrdering(name string) (model.PathCompare, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", OrderingLocale:
		return LocaleCompare(), nil
	case OrderingBinary:
		return BinaryCompare(), nil
	}
	return nil, fmt.Errorf("不明な並び順です: %q (locale または binary)", name)
}
