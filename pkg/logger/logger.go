package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Init builds the process logger. Until it is called every log call is a
// no-op, so packages may log freely from tests.
func Init(env string) error {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	current.Store(l.Sugar())
	return nil
}

// Set swaps in an existing logger, e.g. zaptest's in tests.
func Set(l *zap.Logger) {
	current.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Sync() {
	_ = current.Load().Sync()
}

func Debug(msg string, keysAndValues ...any) {
	current.Load().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	current.Load().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	current.Load().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	current.Load().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	current.Load().Fatalw(msg, keysAndValues...)
}
