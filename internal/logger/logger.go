// Package logger is the site's structured logger: zerolog underneath, a small
// nil-safe surface on top so a missing logger never needs a guard at call sites.
package logger

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the line encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures New. Zero values log JSON at info level to stdout.
type Options struct {
	Level  string
	Format Format
	Out    io.Writer
}

// Logger writes structured entries. A nil *Logger discards everything.
type Logger struct {
	zl zerolog.Logger
}

func New(opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

// Nop discards everything but, unlike nil, can still be derived from.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithFields returns a child logger that stamps fields on every entry.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *Logger) Debug(msg string) { l.write(zerolog.DebugLevel, nil, msg) }

func (l *Logger) Info(msg string) { l.write(zerolog.InfoLevel, nil, msg) }

func (l *Logger) Warn(msg string) { l.write(zerolog.WarnLevel, nil, msg) }

// Error logs msg with err attached under "error".
func (l *Logger) Error(err error, msg string) { l.write(zerolog.ErrorLevel, err, msg) }

func (l *Logger) write(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	ev := l.zl.WithLevel(level)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

// RequestLog describes one served HTTP request.
type RequestLog struct {
	Method    string
	Path      string
	Status    int
	Latency   time.Duration
	RequestID string
	ClientIP  string
}

// LevelForStatus maps a response status to the level its access line is logged at:
// server errors are errors, client errors are warnings, the rest is info.
func LevelForStatus(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// Request writes the access line for r.
func (l *Logger) Request(r RequestLog) {
	if l == nil {
		return
	}
	l.zl.WithLevel(LevelForStatus(r.Status)).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", r.Status).
		Dur("latency", r.Latency).
		Str("request_id", r.RequestID).
		Str("client_ip", r.ClientIP).
		Msg("request")
}
