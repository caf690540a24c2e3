// Package logging defines the structured-logging interface used across the
// portal, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "file stored", "name", name, "size", size)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New builds a Logger writing to w.
// backend is "slog" or "zap"; format is "json" or "text".
func New(backend, format string, w io.Writer) (Logger, error) {
	switch backend {
	case "", "slog":
		var h slog.Handler
		switch format {
		case "", "json":
			h = slog.NewJSONHandler(w, nil)
		case "text":
			h = slog.NewTextHandler(w, nil)
		default:
			return nil, fmt.Errorf("unknown log format %q", format)
		}
		return NewSlogLogger(slog.New(h)), nil

	case "zap":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		var enc zapcore.Encoder
		switch format {
		case "", "json":
			enc = zapcore.NewJSONEncoder(encCfg)
		case "text":
			enc = zapcore.NewConsoleEncoder(encCfg)
		default:
			return nil, fmt.Errorf("unknown log format %q", format)
		}
		core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel)
		return NewZapLogger(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
