package logging

import (
	"context"
	"io"
	"log/slog"
)

// New returns a logger that writes Debug and Info records to low and Warn and
// Error records to high, plus the level variable gating both. The level
// starts at Error, matching a CLI invoked without any -v flags.
func New(low, high io.Writer) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelError)

	opts := &slog.HandlerOptions{Level: level}
	h := &splitHandler{
		low:   slog.NewTextHandler(low, opts),
		high:  slog.NewTextHandler(high, opts),
		level: level,
	}
	return slog.New(h), level
}

// splitHandler routes records to one of two handlers by severity.
type splitHandler struct {
	low   slog.Handler
	high  slog.Handler
	level *slog.LevelVar
}

func (h *splitHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.high.Handle(ctx, r)
	}
	return h.low.Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{
		low:   h.low.WithAttrs(attrs),
		high:  h.high.WithAttrs(attrs),
		level: h.level,
	}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{
		low:   h.low.WithGroup(name),
		high:  h.high.WithGroup(name),
		level: h.level,
	}
}
