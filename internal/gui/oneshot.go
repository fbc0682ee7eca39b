package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"MarkdownCombine/internal/domain/model"
)

// OneShot は Strategy のウィンドウを1回だけ開き、閉じられるまで待つ combine.Picker です。
// onSubmit はイベントループが終わってから呼び出します
type OneShot struct {
	strategy Strategy
	newApp   func() fyne.App
	run      func(a fyne.App)
}

// NewOneShot は新しい OneShot インスタンスを作成します
func NewOneShot(strategy Strategy) *OneShot {
	return &OneShot{
		strategy: strategy,
		newApp:   app.New,
		run:      func(a fyne.App) { a.Run() },
	}
}

// Pick はフォルダ選択ウィンドウを表示します。
// ウィンドウが選択なしで閉じられた場合は onSubmit を呼ばずに nil を返します
func (o *OneShot) Pick(ctx context.Context, root *model.FolderNode, onSubmit func(path string)) error {
	var (
		selected string
		chosen   bool
	)

	a := o.newApp()
	w := o.strategy.Open(a, model.Folders(root), func(path string) {
		selected = path
		chosen = true
	})
	w.SetOnClosed(a.Quit)

	// イベントループ内で待機するため、ctx のキャンセルは別ゴルーチンで監視する
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.Quit()
		case <-done:
		}
	}()
	o.run(a)

	if err := ctx.Err(); err != nil {
		return err
	}
	if chosen {
		onSubmit(selected)
	}
	return nil
}
