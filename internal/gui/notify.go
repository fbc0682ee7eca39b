package gui

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"MarkdownCombine/internal/domain/model"
)

// Notifier はデスクトップ通知で結果を知らせます。
// ステータス表示が設定されていれば同じ文言を表示します
type Notifier struct {
	app    fyne.App
	status func(message string)
}

// NewNotifier は新しい Notifier インスタンスを作成します
func NewNotifier(a fyne.App) *Notifier {
	return &Notifier{app: a}
}

// Notice は通知を送ります
func (n *Notifier) Notice(message string) {
	n.app.SendNotification(fyne.NewNotification(WindowTitle, message))
	if n.status != nil {
		n.status(message)
	}
}

// PathResolver はボルトのパスをローカルの絶対パスに変換します
type PathResolver interface {
	AbsPath(p string) string
}

// URLOpener は作成したファイルを既定のアプリケーションで開きます
type URLOpener struct {
	app      fyne.App
	resolver PathResolver
}

// NewURLOpener は新しい URLOpener インスタンスを作成します
func NewURLOpener(a fyne.App, resolver PathResolver) *URLOpener {
	return &URLOpener{app: a, resolver: resolver}
}

// Open はファイルの file URL を開きます
func (o *URLOpener) Open(_ context.Context, file *model.FileNode) error {
	return o.app.OpenURL(FileURL(o.resolver.AbsPath(file.Path)))
}

// FileURL はローカルの絶対パスを file URL に変換します
func FileURL(abs string) *url.URL {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows のドライブレター
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}
