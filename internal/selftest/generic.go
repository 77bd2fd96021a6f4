package selftest

import "fmt"

// GenericTests checks that generic test methods get one instantiation per
// argument type.
type GenericTests struct{}

func keeps[T comparable](g *GenericTests, v T) error {
	box := []T{v}
	if box[0] != v {
		return fmt.Errorf("%T value %v changed in a []%T", v, v, v)
	}
	return nil
}

// WaitsForFrame needs a frame loop the harness does not provide.
func (g *GenericTests) WaitsForFrame() {}
