// Package logging provides categorized file-based logging for shopfront.
// Logs go to <state dir>/logs/shopfront.log; nothing is ever written to the
// terminal, which belongs to the TUI. Logging is a no-op until Initialize is
// called with debug mode enabled.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category tags a log entry with the subsystem that produced it.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config, state restore
	CategoryAPI     Category = "api"     // backend HTTP calls
	CategoryCart    Category = "cart"    // cart store mutations
	CategoryAuth    Category = "auth"    // auth store transitions
	CategoryQuery   Category = "query"   // fetch cache hits/misses
	CategoryUI      Category = "ui"      // page transitions, toasts
	CategoryStorage Category = "storage" // persisted record reads/writes
)

var (
	mu   sync.RWMutex
	root *zap.Logger = zap.NewNop()
)

// Options controls log output.
type Options struct {
	// Dir is the state directory; log files live under Dir/logs.
	Dir string
	// Debug enables logging at all and lowers the level to debug.
	Debug bool
}

// Initialize wires the package-level logger. Call once at startup, before
// the TUI takes over the terminal. With Debug false this is a no-op and
// every logger stays silent.
func Initialize(opts Options) error {
	if !opts.Debug {
		return nil
	}
	if opts.Dir == "" {
		return fmt.Errorf("state directory required")
	}

	logsDir := filepath.Join(opts.Dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logsDir, "shopfront.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(f),
		zap.DebugLevel,
	)

	mu.Lock()
	root = zap.New(core)
	mu.Unlock()

	Get(CategoryBoot).Info("logging initialized", zap.String("dir", logsDir))
	return nil
}

// Get returns the logger for a category. Safe to call before Initialize; the
// result is then a no-op logger.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(cat))
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
