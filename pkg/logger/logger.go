package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string
	ServiceName string
	Development bool
}

// Logger wraps zap.Logger
type Logger struct {
	*zap.Logger
}

var (
	global *Logger
	mu     sync.Mutex
)

// Init initializes the global logger
func Init(cfg *Config) error {
	mu.Lock()
	defer mu.Unlock()

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	base, err := zapCfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		base = base.With(zap.String("service", cfg.ServiceName))
	}

	global = &Logger{Logger: base}
	return nil
}

// Get returns the global logger, falling back to a no-op logger if Init was
// never called (keeps tests and early startup paths safe).
func Get() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = &Logger{Logger: zap.NewNop()}
	}
	return global
}

// Sync flushes any buffered log entries
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		_ = global.Logger.Sync()
	}
}

// With returns a child logger with the given fields attached
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
