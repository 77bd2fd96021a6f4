package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Console writes coloured lines to a terminal. Colours are dropped
// automatically when the output is not a terminal (batch mode).
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	warning *color.Color
	err     *color.Color
}

// NewConsole creates a Console writing to out, or to stdout if out is nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:     out,
		warning: color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
}

// SetColor forces colouring on or off, overriding terminal detection.
func (c *Console) SetColor(enabled bool) {
	if enabled {
		c.warning.EnableColor()
		c.err.EnableColor()
		return
	}
	c.warning.DisableColor()
	c.err.DisableColor()
}

// Log implements Logger.
func (c *Console) Log(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch severity {
	case Warning:
		c.warning.Fprintln(c.out, message)
	case Error:
		c.err.Fprintln(c.out, message)
	default:
		fmt.Fprintln(c.out, message)
	}
}
