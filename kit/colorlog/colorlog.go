// Package colorlog provides slog loggers with a human-friendly, colorized
// terminal output format. Each subsystem creates its own labeled logger,
// e.g. colorlog.New("content"). Colors are only emitted when stderr is a
// terminal.
package colorlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

func New(label string) *slog.Logger {
	return NewWithWriter(label, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func NewWithWriter(label string, w io.Writer, useColor bool) *slog.Logger {
	return slog.New(&handler{
		label: label,
		w:     w,
		color: useColor,
		level: slog.LevelInfo,
		mu:    &sync.Mutex{},
	})
}

type handler struct {
	label string
	w     io.Writer
	color bool
	level slog.Level
	attrs []slog.Attr

	// Shared by pointer across WithAttrs clones so all writers to the same
	// stream serialize on one lock.
	mu *sync.Mutex
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	h.writeColored(&b, colorDim, r.Time.Format(time.TimeOnly))
	b.WriteString(" ")
	h.writeColored(&b, levelColor(r.Level), fmt.Sprintf("%-5s", r.Level.String()))
	b.WriteString(" ")
	h.writeColored(&b, colorCyan, "["+h.label+"]")
	b.WriteString(" ")
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&b, attr)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *handler) WithGroup(name string) slog.Handler {
	// Groups are flattened: this handler targets terminals, not structured sinks.
	return h
}

func (h *handler) writeAttr(b *strings.Builder, attr slog.Attr) {
	b.WriteString(" ")
	h.writeColored(b, colorDim, attr.Key+"=")
	b.WriteString(attr.Value.String())
}

func (h *handler) writeColored(b *strings.Builder, color, s string) {
	if !h.color {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	default:
		return colorBlue
	}
}
