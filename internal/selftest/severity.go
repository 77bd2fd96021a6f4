package selftest

import (
	"fmt"

	"batchtest/internal/logging"
)

// SeverityTests checks severity parsing.
type SeverityTests struct{}

func (s *SeverityTests) Parses(name string, want logging.Severity) error {
	if got := logging.ParseSeverity(name); got != want {
		return fmt.Errorf("ParseSeverity(%q) = %s, want %s", name, got, want)
	}
	return nil
}

func (s *SeverityTests) Orders(lower, higher string) error {
	if logging.ParseSeverity(lower) >= logging.ParseSeverity(higher) {
		return fmt.Errorf("%s is not below %s", lower, higher)
	}
	return nil
}

// severityNames only holds the data source shared with SeverityTests.
type severityNames struct{}

func severityRows() [][]any {
	return [][]any{
		{"info", logging.Info},
		{"WARN", logging.Warning},
		{"warning", logging.Warning},
		{" error ", logging.Error},
		{"verbose", logging.Info},
	}
}
