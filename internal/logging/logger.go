// Package logging provides config-driven categorized logging for archiwum.
// Logs go to a daily file under the logs directory and, optionally, to
// stderr. Each category is a named child of one zap logger and can be
// switched off in the config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"archiwum/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot  Category = "boot"  // startup and shutdown
	CategoryStore Category = "store" // archive reads and writes
	CategoryWatch Category = "watch" // archive directory watcher
	CategoryUI    Category = "ui"    // TUI state changes
	CategoryForm  Category = "form"  // form edits and conversions
	CategoryCLI   Category = "cli"   // non-interactive commands
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	logFile *os.File
	logPath string
)

// FileName returns the log file name used for day t.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s_archiwum.log", t.Format("2006-01-02"))
}

// Initialize opens today's log file in logsDir and installs the root
// logger. Calling it again replaces the previous setup.
func Initialize(logsDir string, lc config.LoggingConfig) error {
	level, err := zapcore.ParseLevel(lc.EffectiveLevel())
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	path := filepath.Join(logsDir, FileName(time.Now()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var fileEnc zapcore.Encoder
	if lc.Format == "json" {
		fileEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		fileEnc = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(fileEnc, zapcore.AddSync(file), level)}
	if lc.Console {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level))
	}

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	cfg = lc
	logFile = file
	logPath = path
	return nil
}

// Get returns the logger for a category. Disabled categories, and every
// category before Initialize, get a no-op logger.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil || !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return base.Named(string(category))
}

// Path returns the file currently logged to, or "" before Initialize.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// Sync flushes and closes the log file. Loggers obtained before the call
// should not be used afterwards.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logFile == nil {
		return nil
	}
	_ = base.Sync()
	err := logFile.Close()
	base = zap.NewNop()
	logFile = nil
	logPath = ""
	return err
}
