package discovery

import (
	"fmt"
	"reflect"
	"strings"

	"batchtest/internal/domain"
)

// inferTypeArgs binds each type parameter to the dynamic type of the first
// non-nil argument declared with it, in parameter order.
func inferTypeArgs(m *Method, row []any) ([]reflect.Type, error) {
	spec := m.Generic
	if len(row) != len(spec.Params) {
		return nil, &domain.UnsupportedMethodSignatureError{
			Method: m.Name,
			Reason: fmt.Sprintf("expects %d argument(s), got %d", len(spec.Params), len(row)),
		}
	}
	typeArgs := make([]reflect.Type, len(spec.TypeParams))
	for i, p := range spec.Params {
		if p.TypeParam < 0 || typeArgs[p.TypeParam] != nil || row[i] == nil {
			continue
		}
		typeArgs[p.TypeParam] = reflect.TypeOf(row[i])
	}
	for i, ta := range typeArgs {
		if ta == nil {
			return nil, &domain.UnsupportedMethodSignatureError{
				Method: m.Name,
				Reason: fmt.Sprintf("cannot infer type parameter %s from the arguments", spec.TypeParams[i]),
			}
		}
	}
	return typeArgs, nil
}

// specialize picks the instantiation of a generic method matching the types
// of one row of arguments.
func specialize(m *Method, row []any) (reflect.Value, error) {
	typeArgs, err := inferTypeArgs(m, row)
	if err != nil {
		return reflect.Value{}, err
	}
	for _, inst := range m.Generic.Instances {
		if sameTypes(inst.TypeArgs, typeArgs) {
			return reflect.ValueOf(inst.Func), nil
		}
	}
	return reflect.Value{}, &domain.UnsupportedMethodSignatureError{
		Method: m.Name,
		Reason: fmt.Sprintf("no instantiation for %s[%s]", m.Name, typeList(typeArgs)),
	}
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeList(ts []reflect.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// paramTypes returns the parameter types of fn, receiver excluded.
func paramTypes(fn reflect.Value) []reflect.Type {
	ft := fn.Type()
	params := make([]reflect.Type, 0, ft.NumIn())
	for i := 1; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}
	return params
}
