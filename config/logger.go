package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// InitLogger builds a Zap logger at the given level. Unknown level strings
// fall back to info rather than failing bootstrap.
func InitLogger(logLevelStr string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = level != zapcore.DebugLevel

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	// Kept for Cleanup at shutdown
	globalLogger = logger

	return logger, nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if globalLogger != nil {
		globalLogger.Sync()
	}
}
