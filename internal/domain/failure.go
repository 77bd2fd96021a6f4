package domain

// TestFailure represents a failed test as stored in the results file
type TestFailure struct {
	Group           string  `json:"group"`
	TestName        string  `json:"test_name"`
	Stage           string  `json:"stage"`
	Message         string  `json:"message"`
	ErrorDetails    string  `json:"error_details,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	Resolved        bool    `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
