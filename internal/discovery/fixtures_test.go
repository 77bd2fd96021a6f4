package discovery

import (
	"errors"
	"reflect"

	"batchtest/pkg/testkit"
)

type mathTests struct{ calls []string }

func (m *mathTests) Simple()                        { m.calls = append(m.calls, "Simple") }
func (m *mathTests) Checked() error                 { return nil }
func (m *mathTests) Add(a, b int)                   { m.calls = append(m.calls, "Add") }
func (m *mathTests) Scale(f float64) float64        { return f * 2 }
func (m *mathTests) Answer() int                    { return 42 }
func (m *mathTests) Greet(name string, p *struct{}) {}
func (m *mathTests) InstanceCases() [][]any         { return [][]any{{1, 2}} }
func (m *mathTests) Count(n uint)                   {}
func (m *mathTests) Offset(n int64)                 {}
func (m *mathTests) Small(n int8)                   {}

func pairOf[T any](m *mathTests, a, b T) []T { return []T{a, b} }

type caseHolder struct{}

type fakeProvider struct {
	modules []*testkit.Module
	catalog *testkit.Catalog
}

func (p *fakeProvider) Modules() []*testkit.Module { return p.modules }

func (p *fakeProvider) Lookup(t reflect.Type) (*testkit.Type, bool) {
	return p.catalog.Lookup(t)
}

func newProvider(c *testkit.Catalog) *fakeProvider {
	return &fakeProvider{modules: c.Modules(), catalog: c}
}

var errSourceBroken = errors.New("source broken")
