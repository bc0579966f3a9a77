package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Logger sends informative messages to a compact text log and errors to a
// JSON log.
type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}

// Handler writes one line per record:
//
//	[2006/01/02 15:04:05] [INFO] [module] message key=value ...
//
// The module attribute is printed without its key, right after the level.
type Handler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	out    io.Writer
	prefix string
	attrs  []string
	module string
}

func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{out: o, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) clone() *Handler {
	c := *h
	c.attrs = append([]string(nil), h.attrs...)
	return &c
}

func (h *Handler) add(a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Key == "module" && h.prefix == "" {
		h.module = a.Value.String()
		return
	}
	h.attrs = append(h.attrs, fmt.Sprintf("%s%s=%s", h.prefix, a.Key, a.Value.Resolve().String()))
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.add(a)
	}
	return c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.prefix += name + "."
	return c
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	c := h.clone()
	r.Attrs(func(a slog.Attr) bool {
		c.add(a)
		return true
	})

	var b strings.Builder
	b.WriteString(r.Time.Format("[2006/01/02 15:04:05]"))
	fmt.Fprintf(&b, " [%s]", r.Level)
	if c.module != "" {
		fmt.Fprintf(&b, " [%s]", c.module)
	}
	b.WriteString(" ")
	b.WriteString(r.Message)
	for _, a := range c.attrs {
		b.WriteString(" ")
		b.WriteString(a)
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}
