// Package combine はフォルダ配下のマークダウンを1つのドキュメントに結合するユースケースを提供します
package combine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/infrastructure/logging"
	"MarkdownCombine/internal/usecase/report"
)

var (
	// ErrInvalidFolder は指定パスが存在しないかフォルダではないことを表します
	ErrInvalidFolder = errors.New("invalid folder")
	// ErrNoMarkdownFiles はフォルダ配下にマークダウンファイルがないことを表します
	ErrNoMarkdownFiles = errors.New("no markdown files")
	// ErrBusy は別の結合処理が実行中であることを表します
	ErrBusy = errors.New("combine already in progress")
)

// ユーザーに表示する通知
const (
	NoticeInvalidFolder   = "Invalid folder selected"
	NoticeNoMarkdownFiles = "No markdown files found in this folder"
)

// NoticeCreated は結合成功時の通知文を返します
func NoticeCreated(fileName string, count int) string {
	return fmt.Sprintf("Created %s with %d files", fileName, count)
}

// Notifier はユーザーに一時的な通知を表示します
type Notifier interface {
	Notice(message string)
}

// Opener は作成したファイルをユーザーに開いて見せます
type Opener interface {
	Open(ctx context.Context, file *model.FileNode) error
}

// Result は結合処理の結果です
type Result struct {
	FolderPath string   `json:"folder_path"`
	FileName   string   `json:"file_name"`
	Files      []string `json:"files"`
	Opened     bool     `json:"opened"`
}

// Combiner は結合処理を実行します。同時に実行できる結合処理は1つだけです
type Combiner struct {
	vault     filesystem.Vault
	notifier  Notifier
	logger    logging.Logger
	opener    Opener
	generator *report.Generator
	compare   model.PathCompare

	running sync.Mutex
}

// Option は Combiner の設定を変更します
type Option func(*Combiner)

// WithOpener は作成したファイルを開く Opener を設定します
func WithOpener(opener Opener) Option {
	return func(c *Combiner) { c.opener = opener }
}

// WithGenerator はドキュメント生成に使う Generator を差し替えます
func WithGenerator(generator *report.Generator) Option {
	return func(c *Combiner) { c.generator = generator }
}

// WithOrdering はファイルの並び順に使う比較関数を設定します
func WithOrdering(compare model.PathCompare) Option {
	return func(c *Combiner) { c.compare = compare }
}

// NewCombiner は新しい Combiner インスタンスを作成します。
// 並び順の既定はロケールを考慮した比較です
func NewCombiner(vault filesystem.Vault, notifier Notifier, logger logging.Logger, opts ...Option) *Combiner {
	c := &Combiner{
		vault:     vault,
		notifier:  notifier,
		logger:    logger,
		generator: report.NewGenerator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.compare == nil {
		c.compare = LocaleCompare()
	}
	return c
}

// Snapshot は現在のボルトのツリーを返します
func (c *Combiner) Snapshot(ctx context.Context) (*model.FolderNode, error) {
	root, err := c.vault.Root(ctx)
	if err != nil {
		return nil, fmt.Errorf("ストレージツリーの取得に失敗しました: %w", err)
	}
	return root, nil
}

// Folders はフォルダ選択の候補をルートから深さ優先で返します
func (c *Combiner) Folders(ctx context.Context) ([]*model.FolderNode, error) {
	root, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return model.Folders(root), nil
}

// Discover は folder 配下のマークダウンファイルをパスの昇順で返します
func (c *Combiner) Discover(folder *model.FolderNode) []*model.FileNode {
	files := model.MarkdownFiles(folder)
	model.SortByPath(files, c.compare)
	return files
}

// Files はパスを解決して結合対象のファイル一覧を返します。通知は行いません
func (c *Combiner) Files(ctx context.Context, folderPath string) ([]*model.FileNode, error) {
	root, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	folder, ok := model.Find(root, folderPath).(*model.FolderNode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFolder, folderPath)
	}
	return c.Discover(folder), nil
}

// Combine は folderPath 配下のマークダウンを結合し、ボルトのルートに新しいファイルを作成します。
// フォルダが無効な場合とマークダウンがない場合は通知を1回出してエラーを返し、ファイルは作成しません。
// 読み込み、作成、オープンの失敗はそのまま返します
func (c *Combiner) Combine(ctx context.Context, folderPath string) (*Result, error) {
	if !c.running.TryLock() {
		c.logger.Log(logging.LevelWarn, "結合処理が実行中のため要求を拒否しました", ErrBusy)
		return nil, ErrBusy
	}
	defer c.running.Unlock()

	root, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	folder, ok := model.Find(root, folderPath).(*model.FolderNode)
	if !ok {
		c.notifier.Notice(NoticeInvalidFolder)
		c.logger.Log(logging.LevelWarn, fmt.Sprintf("無効なフォルダが選択されました: %s", folderPath), nil)
		return nil, fmt.Errorf("%w: %s", ErrInvalidFolder, folderPath)
	}

	files := c.Discover(folder)
	if len(files) == 0 {
		c.notifier.Notice(NoticeNoMarkdownFiles)
		c.logger.Log(logging.LevelInfo, fmt.Sprintf("マークダウンファイルがありません: %s", folder.Path), nil)
		return nil, fmt.Errorf("%w: %s", ErrNoMarkdownFiles, folderPath)
	}
	c.logger.Log(logging.LevelInfo, fmt.Sprintf("%d 件のマークダウンファイルを結合します: %s", len(files), folder.Path), nil)

	// 1ファイルずつ順番に読み込み、読み終えてから次へ進む
	var document strings.Builder
	c.generator.WriteHeader(&document, folderPath, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := c.vault.Read(ctx, file)
		if err != nil {
			c.logger.Log(logging.LevelError, fmt.Sprintf("ファイル '%s' の読み込みに失敗", file.Path), err)
			return nil, err
		}
		c.generator.WriteSection(&document, model.Section{Path: file.Path, Content: content})
	}

	fileName := c.generator.OutputFileName(folder.Name)
	if _, err := c.vault.Create(ctx, fileName, document.String()); err != nil {
		c.logger.Log(logging.LevelError, fmt.Sprintf("出力ファイル '%s' の作成に失敗", fileName), err)
		return nil, err
	}

	c.notifier.Notice(NoticeCreated(fileName, len(files)))
	c.logger.Log(logging.LevelInfo, fmt.Sprintf("結合ファイルを作成しました: %s", fileName), nil)

	result := &Result{
		FolderPath: folderPath,
		FileName:   fileName,
		Files:      model.Paths(files),
	}

	if c.opener == nil {
		return result, nil
	}
	created, err := c.vault.Lookup(ctx, fileName)
	if err != nil {
		c.logger.Log(logging.LevelWarn, fmt.Sprintf("作成したファイルを解決できません: %s", fileName), err)
		return result, nil
	}
	file, ok := created.(*model.FileNode)
	if !ok {
		return result, nil
	}
	if err := c.opener.Open(ctx, file); err != nil {
		return result, fmt.Errorf("'%s' を開けませんでした: %w", fileName, err)
	}
	result.Opened = true
	return result, nil
}
