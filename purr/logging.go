package purr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

type moduleKeyContextKey struct{}

// withModuleKey tags ctx so log records written under it carry the module.
func withModuleKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, moduleKeyContextKey{}, key)
}

type logHandler struct {
	slog.Handler
}

func (h *logHandler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(moduleKeyContextKey{}).(string); ok {
		record.Add("purr.module", v)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{Handler: h.Handler.WithGroup(name)}
}

// NewLogger builds the host-side logger: text records to w, plus JSON
// records to cfg.LogFile when set. The returned closer releases the file.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	options := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(w, options)}

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, options))
		closer = file
	}

	return slog.New(&logHandler{
		Handler: slogmulti.Fanout(handlers...),
	}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
