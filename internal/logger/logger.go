// Package logger 提供基于 log/slog 的全局结构化日志。
//
// 启动时调用 Setup 按配置的级别替换全局 logger，其余代码通过 L() 取用。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	global = New(os.Stderr, "info")
)

// ParseLevel 将 debug/info/warn/error 转为 slog.Level，未知值按 info 处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 创建一个输出到 w 的文本格式 logger
func New(w io.Writer, level string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h)
}

// Setup 用指定级别重建全局 logger（输出到 stderr），并返回它
func Setup(level string) *slog.Logger {
	l := New(os.Stderr, level)
	SetDefault(l)
	return l
}

func SetDefault(l *slog.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
