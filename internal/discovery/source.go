package discovery

import (
	"fmt"
	"reflect"

	"batchtest/internal/domain"
	"batchtest/pkg/testkit"
)

// resolveSource produces the argument rows of a TestCaseSource reference.
func (e *Expander) resolveSource(declaring *testkit.Type, ref *testkit.SourceRef) ([][]any, error) {
	owner := declaring
	ownerType := declaring.Reflect
	if ref.Type != nil {
		ownerType = ref.Type
		owner, _ = e.provider.Lookup(ref.Type)
	}

	fail := func(reason string, err error) error {
		return &domain.DataSourceError{Type: ownerType.Elem().Name(), Member: ref.Member, Reason: reason, Err: err}
	}

	var statics []*testkit.Static
	if owner != nil {
		statics = owner.Statics(ref.Member)
	}
	instance := hasInstanceMember(ownerType, ref.Member)
	switch {
	case len(statics) == 0 && instance:
		return nil, fail("member is not static", nil)
	case len(statics) == 0:
		return nil, fail("no such member", nil)
	case len(statics) > 1 || instance:
		return nil, fail("member name is not unique", nil)
	}

	s := statics[0]
	var produced any
	switch s.Kind {
	case testkit.StaticFieldKind, testkit.StaticPropertyKind:
		if len(ref.Params) > 0 {
			return nil, fail(fmt.Sprintf("a %s takes no parameters, %d supplied", s.Kind, len(ref.Params)), nil)
		}
		if s.Kind == testkit.StaticFieldKind {
			produced = s.Value
			break
		}
		v, err := callStatic(s.Value, nil)
		if err != nil {
			return nil, fail("property getter failed", err)
		}
		produced = v
	case testkit.StaticMethodKind:
		fn := reflect.ValueOf(s.Value)
		if fn.Kind() != reflect.Func {
			return nil, fail("method is not a function", nil)
		}
		if n := fn.Type().NumIn(); n != len(ref.Params) {
			return nil, fail(fmt.Sprintf("method takes %d parameter(s), %d supplied", n, len(ref.Params)), nil)
		}
		v, err := callStatic(s.Value, ref.Params)
		if err != nil {
			return nil, fail("method failed", err)
		}
		produced = v
	}

	rows, err := flattenRows(produced)
	if err != nil {
		return nil, fail("unusable result", err)
	}
	return rows, nil
}

// hasInstanceMember reports whether t has a method or struct field named name.
func hasInstanceMember(t reflect.Type, name string) bool {
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if elem := t.Elem(); elem.Kind() == reflect.Struct {
		if _, ok := elem.FieldByName(name); ok {
			return true
		}
	}
	return false
}

// callStatic calls a property getter or static method. fn may return the rows
// alone or followed by an error.
func callStatic(fn any, params []any) (result any, err error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%T is not a function", fn)
	}
	ft := v.Type()
	if ft.IsVariadic() || ft.NumIn() != len(params) {
		return nil, fmt.Errorf("%s cannot be called with %d argument(s)", ft, len(params))
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errorType) {
		return nil, fmt.Errorf("%s must return a value, optionally followed by an error", ft)
	}
	in := make([]reflect.Type, ft.NumIn())
	for i := range in {
		in[i] = ft.In(i)
	}
	args, err := convertArgs(params, in)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	out := v.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// flattenRows turns a sequence into argument rows. An element of type []any
// is a full row; any other element is a row with a single argument.
func flattenRows(produced any) ([][]any, error) {
	if produced == nil {
		return nil, nil
	}
	v := reflect.ValueOf(produced)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("%T is not a sequence of rows", produced)
	}
	rows := make([][]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i).Interface()
		if row, ok := elem.([]any); ok {
			rows = append(rows, row)
			continue
		}
		rows = append(rows, []any{elem})
	}
	return rows, nil
}
