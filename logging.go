package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// The TUI owns the terminal, so debug output goes to a file. Enabled with
// LFG_DEBUG=1; silent otherwise.

var (
	debugOnce   sync.Once
	debugFile   *os.File
	debugLogger *slog.Logger
)

func debugLogPath() string {
	return filepath.Join(os.TempDir(), "lfg-debug.log")
}

func initDebugLogger() {
	if !debugEnabled() {
		return
	}
	f, err := os.OpenFile(debugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	debugFile = f
	debugLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func debugf(format string, args ...any) {
	debugOnce.Do(initDebugLogger)
	if debugLogger == nil {
		return
	}
	debugLogger.Debug(fmt.Sprintf(format, args...))
}
