// Package logger configures slog for the colorhash server and CLI.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

const (
	ansiReset   = "\033[0m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiBold    = "\033[1m"
	ansiDim     = "\033[2m"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Writer      io.Writer
	Format      string // "json" or "pretty"; empty picks by Environment
	Environment string
	Level       slog.Level
	AddSource   bool
	// Color forces ANSI colors on or off in the pretty format. Nil means
	// colors are used only when Writer is a terminal.
	Color *bool
}

// New creates a logger. Production environments log JSON, everything else
// logs the pretty format.
func New(cfg Config) *Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = FormatPretty
		if cfg.Environment == "production" {
			cfg.Format = FormatJSON
		}
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					src.File = filepath.Base(src.File)
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	} else {
		color := isTerminal(cfg.Writer)
		if cfg.Color != nil {
			color = *cfg.Color
		}
		handler = NewPrettyHandler(cfg.Writer, opts, color)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether ParseLevel understands level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrettyHandler writes one human-readable line per record:
//
//	15:04:05 INF message key=value group.key=value
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	color  bool
	mu     *sync.Mutex
	w      io.Writer
	prefix string // dotted group path for attrs added later
	attrs  []byte // pre-rendered attrs from WithAttrs
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, color: color, mu: &sync.Mutex{}, w: w}
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = h.paint(buf, ansiDim, r.Time.Format("15:04:05"))
	buf = append(buf, ' ')

	lvl, lvlColor := levelLabel(r.Level)
	buf = h.paint(buf, lvlColor, lvl)
	buf = append(buf, ' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf = h.paint(buf, ansiDim, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
			buf = append(buf, ' ')
		}
	}

	buf = h.paint(buf, ansiBold, r.Message)

	attrs := h.attrs
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	if len(attrs) > 0 {
		buf = h.paint(buf, ansiCyan, string(attrs))
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = appendAttr(next.attrs, h.prefix, a)
	}
	return &next
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *PrettyHandler) paint(buf []byte, code, s string) []byte {
	if !h.color {
		return append(buf, s...)
	}
	buf = append(buf, code...)
	buf = append(buf, s...)
	return append(buf, ansiReset...)
}

func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, p, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	switch a.Value.Kind() {
	case slog.KindTime:
		buf = append(buf, a.Value.Time().Format(time.RFC3339)...)
	case slog.KindString:
		s := a.Value.String()
		if strings.ContainsAny(s, " \t\n\"=") {
			s = fmt.Sprintf("%q", s)
		}
		buf = append(buf, s...)
	default:
		buf = append(buf, a.Value.String()...)
	}
	return buf
}

func levelLabel(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return "DBG", ansiMagenta
	case level < slog.LevelWarn:
		return "INF", ansiGreen
	case level < slog.LevelError:
		return "WRN", ansiYellow
	default:
		return "ERR", ansiRed
	}
}

// WithError adds an error attribute.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With(slog.String("error", err.Error()))}
}

// WithField adds a single attribute.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(slog.Any(key, value))}
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// Fatal logs at error level and exits with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}
