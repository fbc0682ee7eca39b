package gui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/logging"
	"MarkdownCombine/internal/usecase/combine"
)

// CommandName はメニューに表示するコマンド名です
const CommandName = "Combine markdown files from folder"

// CombineShortcut は結合コマンドのキーボードショートカット（Ctrl+Shift+M）です
var CombineShortcut = &desktop.CustomShortcut{
	KeyName:  fyne.KeyM,
	Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
}

// Desktop は結合コマンドを常駐ウィンドウから実行します。
// ボタン、メニュー、ショートカットのどれからでも同じフォルダ選択が開きます
type Desktop struct {
	ctx      context.Context
	app      fyne.App
	window   fyne.Window
	combiner *combine.Combiner
	strategy Strategy
	logger   logging.Logger
	status   *widget.Label

	inflight sync.WaitGroup
}

// NewDesktop は新しい Desktop インスタンスを作成します。
// notifier の通知はウィンドウのステータス表示にも反映されます
func NewDesktop(ctx context.Context, a fyne.App, combiner *combine.Combiner, strategy Strategy, notifier *Notifier, logger logging.Logger) *Desktop {
	d := &Desktop{
		ctx:      ctx,
		app:      a,
		combiner: combiner,
		strategy: strategy,
		logger:   logger,
		status:   widget.NewLabel(""),
	}
	if notifier != nil {
		notifier.status = d.status.SetText
	}
	d.build()
	return d
}

func (d *Desktop) build() {
	d.window = d.app.NewWindow(WindowTitle)
	d.window.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentIcon(), d.Trigger),
	)
	button := widget.NewButtonWithIcon(WindowTitle, theme.DocumentIcon(), d.Trigger)
	hint := widget.NewLabel(fmt.Sprintf("%s (Ctrl+Shift+M)", CommandName))

	d.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("Commands", fyne.NewMenuItem(CommandName, d.Trigger)),
	))
	d.window.Canvas().AddShortcut(CombineShortcut, func(fyne.Shortcut) { d.Trigger() })
	d.window.SetContent(container.NewBorder(toolbar, d.status, nil, nil, container.NewVBox(button, hint)))
}

// Window は常駐ウィンドウを返します
func (d *Desktop) Window() fyne.Window {
	return d.window
}

// Status は現在のステータス表示を返します
func (d *Desktop) Status() string {
	return d.status.Text
}

// Trigger はその時点のボルトからフォルダ候補を作り、フォルダ選択を開きます
func (d *Desktop) Trigger() {
	root, err := d.combiner.Snapshot(d.ctx)
	if err != nil {
		d.logger.Log(logging.LevelError, "フォルダ一覧の取得に失敗", err)
		d.status.SetText(err.Error())
		return
	}
	d.strategy.Open(d.app, model.Folders(root), func(path string) {
		d.inflight.Add(1)
		go func() {
			defer d.inflight.Done()
			d.combine(path)
		}()
	})
}

func (d *Desktop) combine(path string) {
	result, err := d.combiner.Combine(d.ctx, path)
	switch {
	case err == nil:
		d.logger.Log(logging.LevelInfo, fmt.Sprintf("結合が完了しました: %s", result.FileName), nil)
	case errors.Is(err, combine.ErrInvalidFolder), errors.Is(err, combine.ErrNoMarkdownFiles):
		// 通知済み
	case errors.Is(err, combine.ErrBusy):
		d.status.SetText("A combine is already in progress")
	default:
		d.logger.Log(logging.LevelError, fmt.Sprintf("結合に失敗しました: %s", path), err)
		d.status.SetText(err.Error())
	}
}

// Wait は実行中の結合処理がすべて終わるまで待ちます
func (d *Desktop) Wait() {
	d.inflight.Wait()
}

// ShowAndRun はウィンドウを表示してイベントループを実行します
func (d *Desktop) ShowAndRun() {
	d.window.ShowAndRun()
	d.Wait()
}
