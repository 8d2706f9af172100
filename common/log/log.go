package log

import (
	"sync/atomic"

	"github.com/framebluffer/KTX-Software/go/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	String = zap.String
	Int    = zap.Int
	Int64  = zap.Int64
	Uint32 = zap.Uint32
	Err    = zap.Error
)

var logger atomic.Value

func init() {
	l, err := newLogger(options.DefaultLogConfig())
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func newLogger(cfg options.LogConfig, opts ...Option) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Encoding = cfg.Format
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Format == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zc.Build(append([]Option{AddCallerSkip(1)}, opts...)...)
}

// InitLogger replaces the package logger.
func InitLogger(cfg options.LogConfig, opts ...Option) error {
	l, err := newLogger(cfg, opts...)
	if err != nil {
		return err
	}
	ReplaceLogger(l)
	return nil
}

func ReplaceLogger(l *zap.Logger) {
	logger.Store(l)
}

func L() *zap.Logger {
	return logger.Load().(*zap.Logger)
}

func Debug(msg string, fields ...Field) {
	L().Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	L().Error(msg, fields...)
}

func Panic(msg string, fields ...Field) {
	L().Panic(msg, fields...)
}

func Sync() error {
	return L().Sync()
}
