package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// JSON writes one structured record per line, for CI log collectors.
type JSON struct {
	logger zerolog.Logger
}

// NewJSON creates a JSON logger writing to out, or to stderr if out is nil.
func NewJSON(out io.Writer) *JSON {
	if out == nil {
		out = os.Stderr
	}
	return &JSON{logger: zerolog.New(out).With().Timestamp().Str("component", "batchtest").Logger()}
}

// Log implements Logger.
func (j *JSON) Log(message string, severity Severity) {
	var ev *zerolog.Event
	switch severity {
	case Warning:
		ev = j.logger.Warn()
	case Error:
		ev = j.logger.Error()
	default:
		ev = j.logger.Info()
	}
	ev.Msg(message)
}
