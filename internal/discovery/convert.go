package discovery

import (
	"fmt"
	"math"
	"reflect"
)

// convertArgs turns a row of data into call arguments for params.
func convertArgs(row []any, params []reflect.Type) ([]reflect.Value, error) {
	if len(row) != len(params) {
		return nil, fmt.Errorf("expects %d argument(s), got %d", len(params), len(row))
	}
	args := make([]reflect.Value, len(row))
	for i, a := range row {
		v, err := convertArg(a, params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args[i] = v
	}
	return args, nil
}

func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if nilable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("null is not a valid %s", t)
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(t.Kind()) {
		return convertNumber(v, t)
	}
	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), t)
}

// convertNumber converts between numeric kinds, refusing lossy conversions
// of integers.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	// Sign changes keep the bit pattern, so the round trip below misses them.
	if (signed(v.Kind()) && unsigned(t.Kind()) && v.Int() < 0) ||
		(unsigned(v.Kind()) && signed(t.Kind()) && v.Uint() > math.MaxInt64) {
		return reflect.Value{}, fmt.Errorf("%v does not fit in %s", v.Interface(), t)
	}
	out := v.Convert(t)
	if back := out.Convert(v.Type()); !back.Equal(v) {
		return reflect.Value{}, fmt.Errorf("%v does not fit in %s", v.Interface(), t)
	}
	return out, nil
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func signed(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func unsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}
