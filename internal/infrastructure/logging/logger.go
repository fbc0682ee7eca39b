// Package logging はロギング機能を提供します
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ログレベル
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error)
}

// JSONLogger はJSONフォーマットでログを出力するロガーです。
// 1行が {"timestamp", "level", "message", "error"} の1オブジェクトになります
type JSONLogger struct {
	logger *zap.Logger
}

// NewJSONLogger は DEBUG 以上をすべて出力する JSONLogger を作成します
func NewJSONLogger(writer io.Writer) *JSONLogger {
	return NewJSONLoggerWithLevel(writer, LevelDebug)
}

// NewJSONLoggerWithLevel は指定レベル以上のみを出力する JSONLogger を作成します。
// 解釈できないレベルは INFO として扱います
func NewJSONLoggerWithLevel(writer io.Writer, level string) *JSONLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return newJSONLogger(zapcore.AddSync(writer), level)
}

// OpenJSONLogger はファイルパス（または "stdout" / "stderr"）へ出力する JSONLogger を作成します。
// 返される関数でファイルを閉じます
func OpenJSONLogger(path, level string) (*JSONLogger, func(), error) {
	sink, closeSink, err := zap.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ログ出力先を開けませんでした: %w", err)
	}
	return newJSONLogger(sink, level), closeSink, nil
}

func newJSONLogger(sink zapcore.WriteSyncer, level string) *JSONLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, parseLevel(level))
	return &JSONLogger{logger: zap.New(core)}
}

// Log はメッセージをJSONフォーマットでログ出力します
func (l *JSONLogger) Log(level, message string, err error) {
	var fields []zap.Field
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	switch parseLevel(level) {
	case zapcore.DebugLevel:
		l.logger.Debug(message, fields...)
	case zapcore.WarnLevel:
		l.logger.Warn(message, fields...)
	case zapcore.ErrorLevel:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}

// Sync はバッファ済みのログを書き出します
func (l *JSONLogger) Sync() error {
	return l.logger.Sync()
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	switch lvl {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return lvl
	}
	return zapcore.ErrorLevel
}
