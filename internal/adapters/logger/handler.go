// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/ui/output"
	"go.trai.ch/esmbridge/internal/ui/style"
)

// HandlerOptions configures a PrettyHandler.
type HandlerOptions struct {
	// Level is read on every record, so a *slog.LevelVar changes verbosity at runtime.
	Level slog.Leveler

	// Root shortens absolute paths and file URLs below it to their project-relative form.
	Root string
}

// PrettyHandler is a slog.Handler producing colored, human-readable lines. The message
// takes the level's color and attributes follow it muted.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	paths *strings.Replacer

	// prefix is the dotted group path applied to attributes added from now on.
	prefix string
	// attrs holds the attributes added with WithAttrs, already rendered.
	attrs []string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil w writes to stderr.
func NewPrettyHandler(w io.Writer, opts *HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	h := &PrettyHandler{
		out:   output.New(w),
		level: slog.LevelInfo,
	}
	if opts == nil {
		return h
	}
	if opts.Level != nil {
		h.level = opts.Level
	}
	if dir := filepath.Clean(opts.Root); opts.Root != "" && dir != filepath.Dir(dir) {
		root := dir + string(filepath.Separator)
		h.paths = strings.NewReplacer(domain.PathToFileURL(root), "", root, "")
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one line for the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark, color := levelStyle(r.Level)

	msg := h.shorten(r.Message)
	if mark != "" {
		msg = mark + " " + msg
	}
	line := h.paint(msg, color)

	attrs := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = h.appendAttr(attrs, h.prefix, a)
		return true
	})
	if len(attrs) > 0 {
		line += " " + h.paint(strings.Join(attrs, " "), style.Slate)
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a Handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	c.attrs = append([]string(nil), h.attrs...)
	for _, a := range attrs {
		c.attrs = h.appendAttr(c.attrs, h.prefix, a)
	}
	return &c
}

// WithGroup returns a Handler that qualifies later attributes with name. Groups nest.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	case level < slog.LevelInfo:
		return style.Dot, style.Iris
	default:
		return "", style.Slate
	}
}

// appendAttr renders a as key=value, flattening group values into dotted keys.
func (h *PrettyHandler) appendAttr(dst []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = h.appendAttr(dst, prefix, ga)
		}
		return dst
	}

	return append(dst, prefix+a.Key+"="+quoteValue(h.shorten(a.Value.String())))
}

func (h *PrettyHandler) shorten(s string) string {
	if h.paths == nil {
		return s
	}
	return h.paths.Replace(s)
}

func (h *PrettyHandler) paint(s string, c lipgloss.Color) string {
	return h.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

// quoteValue quotes values that would otherwise not read back as a single field.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
