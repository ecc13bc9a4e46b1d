package logging

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until Initialize
// is called, so packages can log unconditionally.
var Logger = zap.NewNop().Sugar()

// Initialize sends JSON log lines to path. The terminal belongs to the UI, so
// there is no console output. An empty path keeps the no-op logger.
func Initialize(path string, debug bool) error {
	if path == "" {
		return nil
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return errors.Wrapf(err, "creating log file %s", path)
	}
	Logger = zapLogger.Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing are not actionable at
// exit and are dropped.
func Sync() {
	_ = Logger.Sync()
}
