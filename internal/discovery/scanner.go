package discovery

import (
	"reflect"
	"strings"

	"batchtest/pkg/testkit"
)

// Provider supplies the declared modules and their types.
type Provider interface {
	Modules() []*testkit.Module
	Lookup(t reflect.Type) (*testkit.Type, bool)
}

// Scanner finds test types in the modules of a Provider
type Scanner struct {
	ignoredPrefixes []string
}

// NewScanner creates a new Scanner skipping modules whose name starts with any of ignoredPrefixes
func NewScanner(ignoredPrefixes []string) *Scanner {
	return &Scanner{ignoredPrefixes: append([]string(nil), ignoredPrefixes...)}
}

// Ignored reports whether the module is excluded from scanning.
func (s *Scanner) Ignored(module string) bool {
	for _, prefix := range s.ignoredPrefixes {
		if strings.HasPrefix(module, prefix) {
			return true
		}
	}
	return false
}

// Scan returns the types declaring at least one test or playmode test, in
// module then declaration order.
func (s *Scanner) Scan(p Provider) []*testkit.Type {
	var types []*testkit.Type
	for _, m := range p.Modules() {
		if s.Ignored(m.Name) {
			continue
		}
		for _, t := range m.Types {
			// Types without a usable reflect type cannot be introspected.
			if t.Reflect == nil {
				continue
			}
			if hasTestMethod(t) {
				types = append(types, t)
			}
		}
	}
	return types
}

func hasTestMethod(t *testkit.Type) bool {
	for _, tag := range t.Tags() {
		if tag.IsTest() || tag.Kind == testkit.KindPlaymodeTest {
			return true
		}
	}
	return false
}
