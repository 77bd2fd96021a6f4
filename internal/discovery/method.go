package discovery

import (
	"fmt"
	"reflect"

	"batchtest/internal/domain"
	"batchtest/pkg/testkit"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Method describes a tagged method of a test type.
type Method struct {
	Name string
	// Func takes the test instance as its first argument. It is invalid for
	// generic methods, whose function is picked per row of data.
	Func reflect.Value
	// Params excludes the receiver. Entries bound to a type parameter are nil.
	Params  []reflect.Type
	Results []reflect.Type
	Generic *testkit.GenericSpec
	Tags    []testkit.Tag
}

// Describe builds the descriptor of the method name declared on t.
func Describe(t *testkit.Type, name string) (*Method, error) {
	m := &Method{Name: name, Tags: t.MethodTags(name)}
	for _, tag := range m.Tags {
		if tag.Kind == testkit.KindGeneric {
			m.Generic = tag.Generic
		}
	}
	if m.Generic != nil {
		return m, describeGeneric(m, t.Reflect)
	}

	rm, ok := t.Reflect.MethodByName(name)
	if !ok {
		return nil, &domain.UnsupportedMethodSignatureError{
			Method: name,
			Reason: fmt.Sprintf("%s has no exported method %s", t.Name, name),
		}
	}
	ft := rm.Type
	if ft.IsVariadic() {
		return nil, &domain.UnsupportedMethodSignatureError{Method: name, Reason: "variadic methods are not supported"}
	}
	m.Func = rm.Func
	for i := 1; i < ft.NumIn(); i++ {
		m.Params = append(m.Params, ft.In(i))
	}
	for i := 0; i < ft.NumOut(); i++ {
		m.Results = append(m.Results, ft.Out(i))
	}
	return m, nil
}

func describeGeneric(m *Method, receiver reflect.Type) error {
	spec := m.Generic
	for _, p := range spec.Params {
		if p.TypeParam < 0 {
			m.Params = append(m.Params, p.Type)
			continue
		}
		if p.TypeParam >= len(spec.TypeParams) {
			return &domain.UnsupportedMethodSignatureError{
				Method: m.Name,
				Reason: fmt.Sprintf("parameter refers to undeclared type parameter %d", p.TypeParam),
			}
		}
		m.Params = append(m.Params, nil)
	}
	if len(spec.Instances) == 0 {
		return &domain.UnsupportedMethodSignatureError{Method: m.Name, Reason: "generic method has no instantiations"}
	}
	for _, inst := range spec.Instances {
		ft := reflect.TypeOf(inst.Func)
		if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() != len(spec.Params)+1 {
			return &domain.UnsupportedMethodSignatureError{
				Method: m.Name,
				Reason: fmt.Sprintf("instantiation %v must be a function taking the test instance and %d argument(s)", inst.TypeArgs, len(spec.Params)),
			}
		}
		if !receiver.AssignableTo(ft.In(0)) {
			return &domain.UnsupportedMethodSignatureError{
				Method: m.Name,
				Reason: fmt.Sprintf("instantiation %v takes %s first, want %s", inst.TypeArgs, ft.In(0), receiver),
			}
		}
		if len(inst.TypeArgs) != len(spec.TypeParams) {
			return &domain.UnsupportedMethodSignatureError{
				Method: m.Name,
				Reason: fmt.Sprintf("instantiation lists %d type argument(s), want %d", len(inst.TypeArgs), len(spec.TypeParams)),
			}
		}
	}
	ft := reflect.TypeOf(spec.Instances[0].Func)
	for i := 0; i < ft.NumOut(); i++ {
		m.Results = append(m.Results, ft.Out(i))
	}
	return nil
}

// ReturnsNothing reports whether the method produces no value. A lone error
// result is how a Go test reports failure, so it does not count as a value.
func (m *Method) ReturnsNothing() bool {
	switch len(m.Results) {
	case 0:
		return true
	case 1:
		return m.Results[0] == errorType
	default:
		return false
	}
}

// Call invokes fn with the instance and arguments. A non-nil error returned
// as the last result is reported as the call's error.
func Call(fn, instance reflect.Value, args []reflect.Value) error {
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, instance)
	in = append(in, args...)
	out := fn.Call(in)
	if n := len(out); n > 0 && fn.Type().Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}
