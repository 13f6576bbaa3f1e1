package logging

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger()
)

func newLogger() *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.LevelKey = "level"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level)
	return zap.New(core)
}

// SetLevel changes the minimum level written. Accepts debug, info, warn and error.
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(name))
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	_ = logger.Sync()
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func withError(err error, fields Fields) []zap.Field {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.String("error", err.Error()))
	}
	return zf
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	logger.Debug(msg, toZap(fields)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Info(msg, toZap(fields)...)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	logger.Warn(msg, toZap(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	logger.Error(msg, withError(err, fields)...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	logger.Fatal(msg, withError(err, fields)...)
}
