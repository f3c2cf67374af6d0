package clog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// namespaceKey 命名空间在日志输出中的字段名
const namespaceKey = "namespace"

// slogLogger 基于 slog 的 Logger 实现（非导出）
type slogLogger struct {
	sl        *slog.Logger
	namespace string
}

// newLogger 创建 slog Logger（内部函数）
func newLogger(cfg *Config, opts *options) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var w io.Writer
	switch cfg.Output {
	case "stdout", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	l := &slogLogger{
		sl:        slog.New(handler),
		namespace: strings.Join(opts.namespace, "."),
	}
	return l, nil
}

func (l *slogLogger) log(level Level, msg string, fields ...Field) {
	if l.namespace != "" {
		fields = append([]Field{slog.String(namespaceKey, l.namespace)}, fields...)
	}
	l.sl.LogAttrs(context.Background(), level, msg, fields...)
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

// With 创建一个带有预设字段的子 Logger
func (l *slogLogger) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, f)
	}
	return &slogLogger{
		sl:        l.sl.With(args...),
		namespace: l.namespace,
	}
}

// WithNamespace 创建一个扩展命名空间的子 Logger
func (l *slogLogger) WithNamespace(parts ...string) Logger {
	ns := l.namespace
	for _, p := range parts {
		if p == "" {
			continue
		}
		if ns == "" {
			ns = p
		} else {
			ns = ns + "." + p
		}
	}
	return &slogLogger{sl: l.sl, namespace: ns}
}
