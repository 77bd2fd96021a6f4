package selftest

import (
	"fmt"

	"batchtest/internal/discovery"
)

// NamingTests checks how parameterized cases are named in the log.
type NamingTests struct{}

func (n *NamingTests) Renders(method string, args []any, want string) error {
	if got := discovery.DisplayName(method, args); got != want {
		return fmt.Errorf("DisplayName(%q, %v) = %q, want %q", method, args, got, want)
	}
	return nil
}

func (n *NamingTests) Sanitizes(in, want string) error {
	if got := discovery.Sanitize(in); got != want {
		return fmt.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
	}
	return nil
}
