// Package logging is the harness's log sink.
package logging

import (
	"strings"
)

// Severity defines the severity of a log line.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String makes Severity satisfy the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity returns the severity named by s, defaulting to Info.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WARN", "WARNING":
		return Warning
	case "ERROR":
		return Error
	default:
		return Info
	}
}

// Logger receives every line the harness prints.
type Logger interface {
	Log(message string, severity Severity)
}

// Func adapts a function to Logger.
type Func func(message string, severity Severity)

// Log calls f.
func (f Func) Log(message string, severity Severity) {
	f(message, severity)
}

// Discard drops everything.
var Discard Logger = Func(func(string, Severity) {})

// Filter returns a Logger passing lines of at least min severity to l.
func Filter(l Logger, min Severity) Logger {
	return Func(func(message string, severity Severity) {
		if severity >= min {
			l.Log(message, severity)
		}
	})
}
