package combine

import (
	"context"
	"fmt"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/logging"
)

// Picker はフォルダの候補をユーザーに提示し、選ばれたフォルダのパスを onSubmit に渡します。
// キャンセルされた場合は onSubmit を呼ばずに nil を返します。
// Run で使う Picker は戻る前に onSubmit を呼び終える必要があります
type Picker interface {
	Pick(ctx context.Context, root *model.FolderNode, onSubmit func(path string)) error
}

// PathPicker は UI を出さずに決まったパスを選択します（コマンドライン引数用）
type PathPicker string

// Pick はパスが空でなければそのまま onSubmit に渡します
func (p PathPicker) Pick(_ context.Context, _ *model.FolderNode, onSubmit func(path string)) error {
	if p == "" {
		return nil
	}
	onSubmit(string(p))
	return nil
}

// Run はフォルダ選択から結合までの一連の流れを実行します。
// 選択がキャンセルされた場合は (nil, nil) を返します
func (c *Combiner) Run(ctx context.Context, picker Picker) (*Result, error) {
	root, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var (
		result     *Result
		combineErr error
		submitted  bool
	)
	err = picker.Pick(ctx, root, func(path string) {
		submitted = true
		result, combineErr = c.Combine(ctx, path)
	})
	if err != nil {
		return nil, fmt.Errorf("フォルダ選択に失敗: %w", err)
	}
	if !submitted {
		c.logger.Log(logging.LevelInfo, "フォルダ選択がキャンセルされました", nil)
		return nil, nil
	}
	return result, combineErr
}
