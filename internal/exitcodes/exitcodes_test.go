package exitcodes

import (
	"errors"
	"testing"

	"batchtest/internal/domain"
)

func TestFromReport(t *testing.T) {
	tests := []struct {
		name   string
		report domain.Report
		err    error
		want   int
	}{
		{"all passed", domain.Report{TotalCount: 3}, nil, Success},
		{"failures", domain.Report{TotalCount: 3, FailedCount: 1, Failed: true}, nil, TestFailure},
		{"ignored", domain.Report{TotalCount: 3, IgnoredCount: 2}, nil, SuccessWithIgnored},
		{"failures win over ignored", domain.Report{FailedCount: 1, IgnoredCount: 2, Failed: true}, nil, TestFailure},
		{"registration error", domain.Report{Failed: true}, errors.New("bad source"), RuntimeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromReport(tt.report, tt.err); got != tt.want {
				t.Errorf("FromReport() = %d, want %d", got, tt.want)
			}
		})
	}
}
