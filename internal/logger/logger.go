package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = zap.NewNop().Sugar()

// Options configures the process logger.
type Options struct {
	Level string // debug, info, warn, error
	File  string // optional log file; rotated when set
}

// Init builds the global zap logger. Logs go to stderr, plus a rotated file
// when one is configured.
func Init(opts Options) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	level := parseLevel(opts.Level)
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), level),
	}
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotated), level))
	}

	log = zap.New(zapcore.NewTee(cores...)).Sugar()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

func Debug(msg string, kv ...any) { log.Debugw(msg, kv...) }
func Info(msg string, kv ...any)  { log.Infow(msg, kv...) }
func Warn(msg string, kv ...any)  { log.Warnw(msg, kv...) }
func Error(msg string, kv ...any) { log.Errorw(msg, kv...) }
