package output

import "errors"

// 終了コード
// 0 = 成功
// 1 = ユーザーの誤り（無効なフォルダ、マークダウンなし、引数の誤り）
// 2 = システムエラー（I/O エラー）
// 3 = 競合（出力ファイル名の衝突、結合処理の実行中）
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError は終了コードを持つエラーです
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap は元のエラーを返します
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError は終了コード1のエラーを作成します
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemErrorWithCause は終了コード2のエラーを作成します
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictErrorWithCause は終了コード3のエラーを作成します
func NewConflictErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message, Cause: cause}
}

// GetExitCode はエラーから終了コードを取り出します。
// nil は ExitSuccess、ExitError 以外は ExitUserError です
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
