package domain

// Callable is a zero-argument step of a test: a setup, teardown or body.
type Callable func() error

// TestRecord represents one runnable test
type TestRecord struct {
	Group       string     // Name of the declaring type
	DisplayName string     // Method name, plus rendered arguments for parameterized cases
	Invoke      Callable   // Test body
	SetUps      []Callable // Run in order before Invoke
	TearDowns   []Callable // Run in order after Invoke, unconditionally
}
