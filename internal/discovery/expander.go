package discovery

import (
	"fmt"
	"reflect"

	"batchtest/internal/domain"
	"batchtest/pkg/testkit"
)

// Case is one concrete invocation of a test method.
type Case struct {
	Name string
	Func reflect.Value // takes the test instance first
	Args []reflect.Value
}

// Bind returns the invocation of the case on instance.
func (c Case) Bind(instance reflect.Value) domain.Callable {
	return func() error {
		return Call(c.Func, instance, c.Args)
	}
}

// Expander turns test methods into concrete cases
type Expander struct {
	provider Provider
}

// NewExpander creates a new Expander resolving cross-type data sources through p
func NewExpander(p Provider) *Expander {
	return &Expander{provider: p}
}

// Expand produces the cases of method m declared on t.
//
// A method with no parameters and no return value yields exactly one case.
// Any other method yields one case per inline TestCase row followed by one
// per row of each TestCaseSource, and fails if there is no row at all.
func (e *Expander) Expand(t *testkit.Type, m *Method) ([]Case, error) {
	if m.Generic == nil && len(m.Params) == 0 && m.ReturnsNothing() {
		return []Case{{Name: m.Name, Func: m.Func}}, nil
	}

	rows, err := e.rows(t, m)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		reason := "method takes parameters but has no test data"
		if len(m.Params) == 0 {
			reason = "method returns a value but has no test data"
		}
		return nil, &domain.UnsupportedMethodSignatureError{Method: m.Name, Reason: reason}
	}

	cases := make([]Case, 0, len(rows))
	for _, row := range rows {
		c, err := e.buildCase(m, row)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (e *Expander) rows(t *testkit.Type, m *Method) ([][]any, error) {
	var rows [][]any
	for _, tag := range m.Tags {
		if tag.Kind == testkit.KindTestCase {
			rows = append(rows, tag.Args)
		}
	}
	for _, tag := range m.Tags {
		if tag.Kind != testkit.KindTestCaseSource {
			continue
		}
		sourced, err := e.resolveSource(t, tag.Source)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sourced...)
	}
	return rows, nil
}

// buildCase specializes generic methods for the row before converting it,
// so each row gets its own instantiation.
func (e *Expander) buildCase(m *Method, row []any) (Case, error) {
	fn := m.Func
	params := m.Params
	if m.Generic != nil {
		var err error
		if fn, err = specialize(m, row); err != nil {
			return Case{}, err
		}
		params = paramTypes(fn)
	}

	args, err := convertArgs(row, params)
	if err != nil {
		return Case{}, &domain.UnsupportedMethodSignatureError{
			Method: m.Name,
			Reason: fmt.Sprintf("case %s: %v", DisplayName(m.Name, row), err),
		}
	}
	return Case{Name: DisplayName(m.Name, row), Func: fn, Args: args}, nil
}
