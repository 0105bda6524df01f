// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI, and the printer commands report
// their results through.
package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/esmbridge/internal/ui/style"
)

// ColorProfile returns the color profile for the current environment.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the specific profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Printer writes command results either as colored lines or as JSON lines.
// It is safe for concurrent use.
type Printer struct {
	mu   sync.Mutex
	out  *termenv.Output
	enc  *json.Encoder
	json bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, jsonMode bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Printer{
		out:  New(w),
		enc:  enc,
		json: jsonMode,
	}
}

// JSON reports whether the printer emits JSON lines.
func (p *Printer) JSON() bool {
	return p.json
}

// Record prints a result. In JSON mode v is encoded as one line; otherwise line is printed.
func (p *Printer) Record(v any, line string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return p.enc.Encode(v)
	}
	_, err := p.out.WriteString(line + "\n")
	return err
}

// Raw writes data unchanged. It is used for module sources, which are never decorated.
func (p *Printer) Raw(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.out.Write(data)
	return err
}

// Success renders a successful "subject → value" line.
func (p *Printer) Success(subject, value string) string {
	return p.paint(style.Check, style.Green) + " " + subject + " " +
		p.paint(style.Arrow, style.Slate) + " " + value
}

// Failure renders a failed "subject: message" line.
func (p *Printer) Failure(subject, msg string) string {
	return p.paint(style.Cross, style.Red) + " " + subject + ": " + msg
}

// Format renders a module format name in its color.
func (p *Printer) Format(format string) string {
	return p.paint(format, style.FormatColor(format))
}

func (p *Printer) paint(s string, c lipgloss.Color) string {
	return p.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}
