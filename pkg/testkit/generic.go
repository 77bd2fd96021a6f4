package testkit

import "reflect"

// GenericSpec describes a generic test method.
//
// Go cannot instantiate a generic function at run time, so every
// instantiation the tests need is listed up front. The harness infers type
// arguments from each row of test data and picks the matching instance.
type GenericSpec struct {
	TypeParams []string
	Params     []Param
	Instances  []Instance
}

// Param is one declared parameter of a generic method. Exactly one of Type
// and TypeParam is meaningful: TypeParam is an index into
// GenericSpec.TypeParams, or -1 for a concrete parameter.
type Param struct {
	Type      reflect.Type
	TypeParam int
}

// Instance is one instantiation of a generic method. Func takes the test
// instance as its first argument.
type Instance struct {
	TypeArgs []reflect.Type
	Func     any
}

// Concrete declares a parameter of fixed type t.
func Concrete(t reflect.Type) Param {
	return Param{Type: t, TypeParam: -1}
}

// TypeParam declares a parameter whose type is the index-th type parameter.
func TypeParam(index int) Param {
	return Param{TypeParam: index}
}

// Instantiate pairs an instantiated function with its type arguments.
func Instantiate(fn any, typeArgs ...reflect.Type) Instance {
	return Instance{TypeArgs: typeArgs, Func: fn}
}

// Generic declares method as generic over typeParams.
func Generic(method string, typeParams []string, params []Param, instances ...Instance) Tag {
	return Tag{Kind: KindGeneric, Method: method, Generic: &GenericSpec{
		TypeParams: typeParams,
		Params:     params,
		Instances:  instances,
	}}
}

// TypeOf returns the reflect.Type of T, for use as a type argument.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
