package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/infrastructure/config"
	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/infrastructure/logging"
	"MarkdownCombine/internal/interface/output"
	"MarkdownCombine/internal/usecase/combine"
)

// app はコマンドが共有する設定、ロガー、ボルトです
type app struct {
	cfg      config.Config
	logger   *logging.JSONLogger
	closeLog func()
	vault    *filesystem.LocalVault
	compare  model.PathCompare
}

// configPath は --config または既定の設定ファイルのパスを返します
func configPath(cmd *cobra.Command) string {
	if path := flagValue(cmd, "config"); path != "" {
		return path
	}
	return config.DefaultPath()
}

// loadConfig は設定ファイルを読み込み、コマンドラインの指定で上書きします
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return cfg, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	if flagChanged(cmd, "vault") {
		cfg.Vault = flagValue(cmd, "vault")
	}
	if flagChanged(cmd, "log-level") {
		cfg.LogLevel = strings.ToUpper(flagValue(cmd, "log-level"))
	}
	return cfg, nil
}

// loadApp は設定を読み込み、ロガーとボルトを用意します。終わったら close を呼んでください
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, closeLog: func() {}}
	if cfg.LogFile == "" || cfg.LogFile == "stderr" {
		a.logger = logging.NewJSONLoggerWithLevel(cmd.ErrOrStderr(), cfg.LogLevel)
	} else {
		logger, closeLog, err := logging.OpenJSONLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, output.NewSystemErrorWithCause(fmt.Sprintf("ログファイルを開けません: %v", err), err)
		}
		a.logger, a.closeLog = logger, closeLog
	}

	a.vault, err = filesystem.NewLocalVault(cfg.Vault, a.logger)
	if err != nil {
		a.close()
		return nil, &output.ExitError{
			Code:    output.ExitUserError,
			Message: fmt.Sprintf("ボルトを開けません (%s): %v", cfg.Vault, err),
			Cause:   err,
		}
	}

	a.compare, err = combine.ParseOrdering(cfg.Ordering)
	if err != nil {
		a.close()
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	a.logger.Log(logging.LevelDebug, fmt.Sprintf("ボルト: %s", a.vault.Dir()), nil)
	return a, nil
}

func (a *app) close() {
	// 標準エラー出力の Sync は環境によって失敗するため結果は見ない
	_ = a.logger.Sync()
	a.closeLog()
}

// newCombiner は設定の並び順を使う Combiner を作成します
func (a *app) newCombiner(notifier combine.Notifier, opts ...combine.Option) *combine.Combiner {
	opts = append([]combine.Option{combine.WithOrdering(a.compare)}, opts...)
	return combine.NewCombiner(a.vault, notifier, a.logger, opts...)
}

// toExitError は結合処理のエラーを終了コード付きのエラーに変換します
func toExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *output.ExitError
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, combine.ErrInvalidFolder):
		return &output.ExitError{Code: output.ExitUserError, Message: combine.NoticeInvalidFolder, Cause: err}
	case errors.Is(err, combine.ErrNoMarkdownFiles):
		return &output.ExitError{Code: output.ExitUserError, Message: combine.NoticeNoMarkdownFiles, Cause: err}
	case errors.Is(err, fs.ErrExist):
		return output.NewConflictErrorWithCause(fmt.Sprintf("output file already exists: %v", err), err)
	case errors.Is(err, combine.ErrBusy):
		return output.NewConflictErrorWithCause("a combine is already in progress", err)
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}

// noticeShown は通知で既にユーザーに伝えたエラーかを返します
func noticeShown(err error) bool {
	return errors.Is(err, combine.ErrInvalidFolder) || errors.Is(err, combine.ErrNoMarkdownFiles)
}
