// Package logger adds levels and component prefixes on top of hal.Logger.
//
// Lines look like:
//
//	[info] tapswitch: switch -> layer 2 (symbols)
package logger

import (
	"fmt"
	"strings"
	"sync"

	"tx42/hal"
)

// Level orders log lines by severity.
type Level int8

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int8(l))
}

// ParseLevel accepts the names printed by Level.String.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("logger: unknown level %q", s)
}

type sink struct {
	out hal.Logger
	min Level
}

type shared struct {
	mu    sync.Mutex
	sinks []sink
}

// Logger writes leveled lines to one or more hal.Logger sinks. Loggers made
// with With share their parent's sinks.
type Logger struct {
	s         *shared
	component string
}

// New returns a logger that writes lines at or above minLevel to out.
func New(out hal.Logger, minLevel Level) *Logger {
	l := &Logger{s: &shared{}}
	if out != nil {
		l.AddSink(out, minLevel)
	}
	return l
}

// Discard returns a logger with no sinks.
func Discard() *Logger { return &Logger{s: &shared{}} }

// AddSink mirrors lines at or above minLevel to out.
func (l *Logger) AddSink(out hal.Logger, minLevel Level) {
	l.s.mu.Lock()
	l.s.sinks = append(l.s.sinks, sink{out: out, min: minLevel})
	l.s.mu.Unlock()
}

// With returns a logger that prefixes lines with component.
func (l *Logger) With(component string) *Logger {
	return &Logger{s: l.s, component: component}
}

// Enabled reports whether any sink takes lines at lvl.
func (l *Logger) Enabled(lvl Level) bool {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for _, s := range l.s.sinks {
		if lvl >= s.min {
			return true
		}
	}
	return false
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(Error, format, args...) }

func (l *Logger) logf(lvl Level, format string, args ...any) {
	if !l.Enabled(lvl) {
		return
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(lvl.String())
	b.WriteString("] ")
	if l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	b.WriteString(fmt.Sprintf(format, args...))
	line := b.String()

	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for _, s := range l.s.sinks {
		if lvl >= s.min {
			s.out.WriteLineString(line)
		}
	}
}
