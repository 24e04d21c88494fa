// Package logging provides config-driven categorized logging for claudeforge.
// Every category is a named child of one zap logger that writes to stderr,
// so command output on stdout stays clean. Before Initialize is called all
// loggers are no-ops.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"claudeforge/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, config loading
	CategoryCollect  Category = "collect"  // Signal collection (file reads, walks)
	CategoryDetect   Category = "detect"   // Stack classification
	CategoryGenerate Category = "generate" // Artifact synthesis
	CategoryWrite    Category = "write"    // Merge policy and disk writes
	CategoryWatch    Category = "watch"    // File watching and reruns
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	loggers = make(map[Category]*zap.Logger)
	cfg     config.LoggingConfig
	runID   string
)

// Initialize builds the process logger from config. verbose forces debug level.
// Calling it again replaces the previous logger.
func Initialize(lc config.LoggingConfig, verbose bool) error {
	return InitializeWithWriter(lc, verbose, os.Stderr)
}

// InitializeWithWriter is Initialize with an explicit sink, used by tests.
func InitializeWithWriter(lc config.LoggingConfig, verbose bool, w io.Writer) error {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch lc.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return fmt.Errorf("unknown log format: %s", lc.Format)
	}

	id := uuid.NewString()
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	logger := zap.New(core).With(zap.String("run_id", id))

	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	base = logger
	cfg = lc
	runID = id
	loggers = make(map[Category]*zap.Logger)
	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// RunID returns the identifier attached to every entry of the current run.
func RunID() string {
	mu.RLock()
	defer mu.RUnlock()
	return runID
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if the category is disabled.
func Get(category Category) *zap.Logger {
	mu.RLock()
	if !cfg.IsCategoryEnabled(string(category)) {
		mu.RUnlock()
		return zap.NewNop()
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Named(string(category))
	loggers[category] = l
	return l
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

// Reset restores the no-op logger.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	base = zap.NewNop()
	cfg = config.LoggingConfig{}
	runID = ""
	loggers = make(map[Category]*zap.Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - printf-style logging without getting a logger first
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Sugar().Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Sugar().Debugf(format, args...)
}

// BootWarn logs warning to the boot category
func BootWarn(format string, args ...interface{}) {
	Get(CategoryBoot).Sugar().Warnf(format, args...)
}

// CollectDebug logs debug to the collect category
func CollectDebug(format string, args ...interface{}) {
	Get(CategoryCollect).Sugar().Debugf(format, args...)
}

// Detect logs to the detect category
func Detect(format string, args ...interface{}) {
	Get(CategoryDetect).Sugar().Infof(format, args...)
}

// DetectDebug logs debug to the detect category
func DetectDebug(format string, args ...interface{}) {
	Get(CategoryDetect).Sugar().Debugf(format, args...)
}

// Generate logs to the generate category
func Generate(format string, args ...interface{}) {
	Get(CategoryGenerate).Sugar().Infof(format, args...)
}

// GenerateDebug logs debug to the generate category
func GenerateDebug(format string, args ...interface{}) {
	Get(CategoryGenerate).Sugar().Debugf(format, args...)
}

// Write logs to the write category
func Write(format string, args ...interface{}) {
	Get(CategoryWrite).Sugar().Infof(format, args...)
}

// WriteDebug logs debug to the write category
func WriteDebug(format string, args ...interface{}) {
	Get(CategoryWrite).Sugar().Debugf(format, args...)
}

// WriteError logs error to the write category
func WriteError(format string, args ...interface{}) {
	Get(CategoryWrite).Sugar().Errorf(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Sugar().Infof(format, args...)
}

// WatchWarn logs warning to the watch category
func WatchWarn(format string, args ...interface{}) {
	Get(CategoryWatch).Sugar().Warnf(format, args...)
}
