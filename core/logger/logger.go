package logger

import (
	"log"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init configures the global logger. Level is one of debug, info, warn, error.
// Production mode emits JSON, development mode emits colored console output.
func Init(level string, production bool) {
	once.Do(func() {
		var cfg zap.Config
		if production {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		switch strings.ToLower(level) {
		case "debug":
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		case "warn":
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		case "error":
			cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		default:
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		sugar = l.Sugar()
	})
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init("info", false)
	}
	return sugar
}

func Debug(msg string, args ...any) {
	get().Debugw(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Errorw(msg, normalize(args)...)
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// normalize tolerates call sites that pass a bare error (or any odd trailing
// value) instead of key/value pairs.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	if err, ok := args[len(args)-1].(error); ok {
		return append(args[:len(args)-1], "error", err)
	}
	return append(args[:len(args)-1], "detail", args[len(args)-1])
}
