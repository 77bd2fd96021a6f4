package domain

import (
	"errors"
	"fmt"
)

// RegistrationError aborts a whole run. It is raised when a test type cannot
// be instantiated or one of its test methods cannot be expanded.
type RegistrationError struct {
	Type   string
	Method string // empty when the type itself failed
	Err    error
}

func (e *RegistrationError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("registering %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("registering %s.%s: %v", e.Type, e.Method, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IsRegistrationError checks if the error is or wraps a RegistrationError
func IsRegistrationError(err error) bool {
	var regErr *RegistrationError
	return err != nil && errors.As(err, &regErr)
}

// DataSourceError reports a test case source that could not be resolved
type DataSourceError struct {
	Type   string
	Member string
	Reason string
	Err    error
}

func (e *DataSourceError) Error() string {
	msg := fmt.Sprintf("test case source %s.%s: %s", e.Type, e.Member, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsDataSourceError checks if the error is or wraps a DataSourceError
func IsDataSourceError(err error) bool {
	var dsErr *DataSourceError
	return err != nil && errors.As(err, &dsErr)
}

// UnsupportedMethodSignatureError reports a test method that cannot be turned
// into invocations, e.g. one that needs arguments but has no data.
type UnsupportedMethodSignatureError struct {
	Method string
	Reason string
}

func (e *UnsupportedMethodSignatureError) Error() string {
	return fmt.Sprintf("unsupported signature for %s: %s", e.Method, e.Reason)
}

// IsUnsupportedMethodSignatureError checks if the error is or wraps an UnsupportedMethodSignatureError
func IsUnsupportedMethodSignatureError(err error) bool {
	var sigErr *UnsupportedMethodSignatureError
	return err != nil && errors.As(err, &sigErr)
}

// StageError is a failure raised by one stage of a test
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *StageError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking test step
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return fmt.Sprintf("panic: %v", err)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
