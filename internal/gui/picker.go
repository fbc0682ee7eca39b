// Package gui はFyneを使ったフォルダ選択ウィンドウとデスクトップウィンドウを提供します
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sahilm/fuzzy"

	"MarkdownCombine/internal/domain/model"
)

// Default window size constants
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// 画面に表示する文言
const (
	WindowTitle       = "Combine Markdown Files"
	FilterPlaceholder = "Type to search for a folder..."
	SubmitLabel       = "Combine"
)

// Strategy はフォルダ候補を提示するウィンドウを開きます。
// フォルダが選ばれたら onSubmit を1回だけ呼び、ウィンドウを閉じます
type Strategy interface {
	Open(a fyne.App, folders []*model.FolderNode, onSubmit func(path string)) fyne.Window
}

// NewStrategy は名前（filter / dropdown）から Strategy を返します
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "filter":
		return FilterPicker{}, nil
	case "dropdown":
		return DropdownPicker{}, nil
	}
	return nil, fmt.Errorf("GUI で使えないフォルダ選択方式です: %q", name)
}

// FolderPaths はフォルダのパスを表示順のまま返します
func FolderPaths(folders []*model.FolderNode) []string {
	paths := make([]string, 0, len(folders))
	for _, f := range folders {
		paths = append(paths, f.Path)
	}
	return paths
}

// FilterPaths は query にあいまい一致するパスをスコア順に返します。
// query が空ならすべてのパスを元の順序で返します
func FilterPaths(query string, paths []string) []string {
	if query == "" {
		return append([]string(nil), paths...)
	}
	matches := fuzzy.Find(query, paths)
	filtered := make([]string, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, m.Str)
	}
	return filtered
}

// FilterPicker は入力欄とリストでフォルダを絞り込んで選ぶ方式です
type FilterPicker struct{}

// Open は絞り込みウィンドウを開きます
func (FilterPicker) Open(a fyne.App, folders []*model.FolderNode, onSubmit func(path string)) fyne.Window {
	w := newPickerWindow(a)
	view := newFilterView(FolderPaths(folders), submitOnce(w, onSubmit))
	w.SetContent(view.content())
	w.Show()
	w.Canvas().Focus(view.entry)
	return w
}

// DropdownPicker はドロップダウンとボタンでフォルダを選ぶ方式です。
// 最初の候補（ルート）が選択された状態で開きます
type DropdownPicker struct{}

// Open はドロップダウンのウィンドウを開きます
func (DropdownPicker) Open(a fyne.App, folders []*model.FolderNode, onSubmit func(path string)) fyne.Window {
	w := newPickerWindow(a)
	view := newDropdownView(FolderPaths(folders), submitOnce(w, onSubmit))
	w.SetContent(view.content())
	w.Show()
	return w
}

func newPickerWindow(a fyne.App) fyne.Window {
	w := a.NewWindow(WindowTitle)
	w.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))
	return w
}

// submitOnce は最初の選択だけを onSubmit に渡してウィンドウを閉じる関数を返します
func submitOnce(w fyne.Window, onSubmit func(path string)) func(path string) {
	done := false
	return func(path string) {
		if done {
			return
		}
		done = true
		onSubmit(path)
		w.Close()
	}
}

type filterView struct {
	paths    []string
	visible  []string
	entry    *widget.Entry
	list     *widget.List
	onChoose func(path string)
}

func newFilterView(paths []string, onChoose func(path string)) *filterView {
	v := &filterView{
		paths:    paths,
		visible:  FilterPaths("", paths),
		onChoose: onChoose,
	}

	v.entry = widget.NewEntry()
	v.entry.SetPlaceHolder(FilterPlaceholder)
	v.entry.OnChanged = v.setQuery
	v.entry.OnSubmitted = func(string) { v.choose(0) }

	v.list = widget.NewList(
		func() int { return len(v.visible) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(v.visible[id])
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) { v.choose(id) }
	return v
}

func (v *filterView) setQuery(query string) {
	v.visible = FilterPaths(query, v.paths)
	v.list.UnselectAll()
	v.list.Refresh()
}

// choose は表示中の id 番目のフォルダを選びます。範囲外なら何もしません
func (v *filterView) choose(id int) {
	if id < 0 || id >= len(v.visible) {
		return
	}
	v.onChoose(v.visible[id])
}

func (v *filterView) content() fyne.CanvasObject {
	return container.NewBorder(v.entry, nil, nil, nil, v.list)
}

type dropdownView struct {
	selector *widget.Select
	button   *widget.Button
}

func newDropdownView(paths []string, onChoose func(path string)) *dropdownView {
	v := &dropdownView{}
	v.selector = widget.NewSelect(paths, nil)
	if len(paths) > 0 {
		v.selector.SetSelectedIndex(0)
	}
	v.button = widget.NewButton(SubmitLabel, func() {
		if v.selector.Selected == "" {
			return
		}
		onChoose(v.selector.Selected)
	})
	v.button.Importance = widget.HighImportance
	return v
}

func (v *dropdownView) content() fyne.CanvasObject {
	return container.NewVBox(v.selector, v.button)
}
