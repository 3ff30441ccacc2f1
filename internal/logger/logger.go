// Package logger provides a context-aware logging facility for the
// application built on top of zap. Log output goes to the console and,
// with rotation, to a JSON log file.
package logger

import (
	"context"
	"net/http"
	"os"

	"github.com/TigerNinja22/Mini-URL/internal/config"
	sqldblogger "github.com/simukti/sqldb-logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface the application codes against.
// With returns a logger enriched with the request metadata stored
// in the context, if any.
type Logger interface {
	With(ctx context.Context, args ...interface{}) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// Sync flushes any buffered log entries.
	Sync() error
}

type contextKey int

const requestIDKey contextKey = iota

type logger struct {
	*zap.SugaredLogger
}

// New builds a Logger from the application configuration: a colored console
// core plus a rotated JSON file core, both filtered by the configured level.
func New(cfg config.Logger) Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	atomicLevel := zap.NewAtomicLevelAt(level)

	fileSync := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(developmentCfg),
			zapcore.AddSync(os.Stdout),
			atomicLevel,
		),
		zapcore.NewCore(
			zapcore.NewJSONEncoder(productionCfg),
			fileSync,
			atomicLevel,
		),
	)

	return &logger{zap.New(core).Sugar()}
}

// NewForTest returns a no-op Logger for use in tests.
func NewForTest() Logger {
	return &logger{zap.NewNop().Sugar()}
}

// With returns a logger with the given key-value pairs plus the request ID
// associated with the context, if present.
func (l *logger) With(ctx context.Context, args ...interface{}) Logger {
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey).(string); ok {
			args = append(args, zap.String("request_id", id))
		}
	}
	if len(args) > 0 {
		return &logger{l.SugaredLogger.With(args...)}
	}
	return l
}

// Log implements the sqldblogger.Logger interface so that every SQL query
// issued through the database/sql driver is recorded by this logger.
func (l *logger) Log(
	ctx context.Context,
	level sqldblogger.Level,
	msg string,
	data map[string]interface{},
) {
	args := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}
	switch level {
	case sqldblogger.LevelError:
		l.With(ctx, args...).Error(msg)
	case sqldblogger.LevelInfo:
		l.With(ctx, args...).Info(msg)
	default:
		l.With(ctx, args...).Debug(msg)
	}
}

// WithRequest returns a context that carries the ID of the given request
// so that handlers and storages can correlate their log messages.
func WithRequest(ctx context.Context, req *http.Request) context.Context {
	id := req.Header.Get("X-Request-Id")
	if id == "" {
		id = req.Header.Get("X-Correlation-Id")
	}
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}
