package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zap's levels so callers don't import zap directly.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	atom  = zap.NewAtomicLevelAt(LevelInfo)
	sugar *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}
	sugar = logger.Sugar()
}

// SetLevel adjusts the global log level.
func SetLevel(level Level) { atom.SetLevel(level) }

func Debug(args ...any)                   { sugar.Debug(args...) }
func Debugf(template string, args ...any) { sugar.Debugf(template, args...) }
func Info(args ...any)                    { sugar.Info(args...) }
func Infof(template string, args ...any)  { sugar.Infof(template, args...) }
func Warn(args ...any)                    { sugar.Warn(args...) }
func Warnf(template string, args ...any)  { sugar.Warnf(template, args...) }
func Error(args ...any)                   { sugar.Error(args...) }
func Errorf(template string, args ...any) { sugar.Errorf(template, args...) }
func Fatalf(template string, args ...any) { sugar.Fatalf(template, args...) }
