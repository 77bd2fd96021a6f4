package logging

import (
	"strings"
	"sync"
)

// Entry is a line captured by Recorder.
type Entry struct {
	Message  string
	Severity Severity
}

// Recorder keeps every line in memory. It is meant for tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Log implements Logger.
func (r *Recorder) Log(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Message: message, Severity: severity})
}

// Entries returns a copy of the captured lines.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns captured messages of the given severity.
func (r *Recorder) Messages(severity Severity) []string {
	var msgs []string
	for _, e := range r.Entries() {
		if e.Severity == severity {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Contains reports whether any captured message contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, e := range r.Entries() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
