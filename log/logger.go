// Package log is the process logger. It keeps the printf-style helpers used across the
// service on top of a zap sugared logger so that every line carries level, time and caller.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(zapcore.AddSync(os.Stdout), zapcore.AddSync(os.Stderr))
)

func newLogger(out, errOut zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 - 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " "
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), out, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.ErrorOutput(errOut)).
		Named("SRV").Sugar()
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("unknown log level %q", name)
	}
	level.SetLevel(l)
	return nil
}

// With returns a child logger carrying the given key/value pairs, used for request scoped fields.
func With(args ...interface{}) *zap.SugaredLogger {
	return logger.With(args...)
}

func Sync() {
	_ = logger.Sync()
}

func Debug(a ...interface{}) {
	logger.Debug(a...)
}

func Debugf(format string, a ...interface{}) {
	logger.Debugf(format, a...)
}

func Info(a ...interface{}) {
	logger.Info(a...)
}

func Infof(format string, a ...interface{}) {
	logger.Infof(format, a...)
}

func Warn(a ...interface{}) {
	logger.Warn(a...)
}

func Warnf(format string, a ...interface{}) {
	logger.Warnf(format, a...)
}

func Error(a ...interface{}) {
	logger.Error(a...)
}

func Errorf(format string, a ...interface{}) {
	logger.Errorf(format, a...)
}

// Fatal the application cannot continue
func Fatal(a ...interface{}) {
	logger.Fatal(a...)
}

func Fatalf(format string, a ...interface{}) {
	logger.Fatalf(format, a...)
}
