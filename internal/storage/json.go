package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"batchtest/internal/domain"
	"batchtest/internal/execution"
)

// Save writes the report and the failed outcomes to the configured JSON output file.
func (s *JSONStorage) Save(report domain.Report, outcomes []domain.Outcome, duration time.Duration) error {
	output := domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           uuid.NewString(),
			TotalTests:      report.TotalCount,
			PassedTests:     report.PassedCount(),
			FailedTests:     report.FailedCount,
			IgnoredTests:    report.IgnoredCount,
			Failed:          report.Failed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       s.now().Format(time.RFC3339),
		},
		Details: Failures(outcomes),
	}
	return s.SaveOutput(&output)
}

// Failures converts failed outcomes into their stored form.
func Failures(outcomes []domain.Outcome) []domain.TestFailure {
	failures := []domain.TestFailure{}
	for _, o := range outcomes {
		if o.Passed() {
			continue
		}
		f := domain.TestFailure{
			Group:           o.Group,
			TestName:        o.Name,
			Stage:           o.Stage.String(),
			Message:         execution.FailureMessage(o.Err),
			DurationSeconds: o.Duration.Seconds(),
		}
		var panicErr *domain.PanicError
		if errors.As(o.Err, &panicErr) {
			f.ErrorDetails = string(panicErr.Stack)
		}
		failures = append(failures, f)
	}
	return failures
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
