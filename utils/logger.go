package utils

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger は進捗ログ (標準出力) と診断ログ (標準エラー) を分けて出力します
type Logger struct {
	out  *log.Logger
	diag *log.Logger
}

// NewLogger は出力先を指定してロガーを作成します
func NewLogger(stdout, stderr io.Writer, verbose bool) *Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}

	return &Logger{
		out:  log.NewWithOptions(stdout, opts),
		diag: log.NewWithOptions(stderr, opts),
	}
}

// NewStdLogger は os.Stdout / os.Stderr に出力するロガーを作成します
func NewStdLogger(verbose bool) *Logger {
	return NewLogger(os.Stdout, os.Stderr, verbose)
}

// With はキーと値を付与したロガーを返します
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{
		out:  l.out.With(keyvals...),
		diag: l.diag.With(keyvals...),
	}
}

// LogInfo は進捗メッセージを標準出力に記録します
func (l *Logger) LogInfo(format string, v ...interface{}) {
	l.out.Infof(format, v...)
}

// LogNotice は情報レベルの診断メッセージを標準エラーに記録します
func (l *Logger) LogNotice(format string, v ...interface{}) {
	l.diag.Infof(format, v...)
}

// LogWarn は警告レベルのメッセージを標準エラーに記録します
func (l *Logger) LogWarn(format string, v ...interface{}) {
	l.diag.Warnf(format, v...)
}

// LogError はエラーレベルのメッセージを標準エラーに記録します
func (l *Logger) LogError(format string, v ...interface{}) {
	l.diag.Errorf(format, v...)
}

// LogDebug は --verbose 指定時のみ標準エラーに記録します
func (l *Logger) LogDebug(format string, v ...interface{}) {
	l.diag.Debugf(format, v...)
}

// TrackTime は関数の実行時間を計測して出力するユーティリティです
func (l *Logger) TrackTime(start time.Time, name string) {
	elapsed := time.Since(start)
	l.LogInfo("%s 完了時間: %s", name, elapsed)
}

// Discard は何も出力しないロガーです (テスト用)
func Discard() *Logger {
	return NewLogger(io.Discard, io.Discard, false)
}
