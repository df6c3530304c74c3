// Package logger 提供 go-altsvc 的子系统日志
//
// 基于标准库 log/slog，每个子系统一个缓存的 *slog.Logger，
// 级别与格式来自环境变量（见 config.go），也可以在运行时调整。
//
// 使用示例:
//
//	var log = logger.Logger("altsvc/advert")
//
//	log.Debug("entry dropped", "service", svc, "reason", "disabled")
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	// loggers 子系统名 -> *slog.Logger
	loggers sync.Map

	// levels 子系统名 -> *slog.LevelVar，用于动态调整级别
	levels sync.Map

	output   io.Writer = os.Stderr
	outputMu sync.RWMutex
)

// Logger 获取指定子系统的 Logger，同名多次调用返回同一实例
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	lv := new(slog.LevelVar)
	lv.Set(cfg.LevelForSubsystem(subsystem))
	if actual, loaded := levels.LoadOrStore(subsystem, lv); loaded {
		lv = actual.(*slog.LevelVar)
	}

	l := slog.New(newHandler(lv, cfg)).With(slog.String("subsystem", subsystem))
	actual, _ := loggers.LoadOrStore(subsystem, l)
	return actual.(*slog.Logger)
}

// SetLevel 运行时调整子系统级别，子系统尚未创建时预先登记
func SetLevel(subsystem string, level slog.Level) {
	lv := new(slog.LevelVar)
	if actual, loaded := levels.LoadOrStore(subsystem, lv); loaded {
		lv = actual.(*slog.LevelVar)
	}
	lv.Set(level)
}

// SetGlobalLevel 调整所有已登记子系统的级别
func SetGlobalLevel(level slog.Level) {
	levels.Range(func(_, value any) bool {
		value.(*slog.LevelVar).Set(level)
		return true
	})
}

// SetOutput 设置输出目标，对已创建的 Logger 同样生效
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

// Writer 返回跟随 SetOutput 的输出目标，供其他日志库共用同一输出
func Writer() io.Writer {
	return dynamicWriter{}
}

// Discard 返回丢弃所有日志的 Logger（用于测试）
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// ============================================================================
//                              Handler
// ============================================================================

// dynamicWriter 每次写入时读取当前的 output
type dynamicWriter struct{}

func (dynamicWriter) Write(p []byte) (int, error) {
	outputMu.RLock()
	w := output
	outputMu.RUnlock()
	return w.Write(p)
}

func newHandler(level slog.Leveler, cfg *Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}
	if cfg.Format == FormatJSON {
		return slog.NewJSONHandler(dynamicWriter{}, opts)
	}
	return slog.NewTextHandler(dynamicWriter{}, opts)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
