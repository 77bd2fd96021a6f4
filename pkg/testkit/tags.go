// Package testkit declares test types to the batchtest harness.
//
// Go has no method annotations, so test packages describe their test types
// explicitly, usually from an init function:
//
//	func init() {
//		testkit.Declare((*PlayerTests)(nil),
//			testkit.SetUp("Spawn"),
//			testkit.Test("StartsAlive"),
//			testkit.TestCase("TakesDamage", 10, 90),
//			testkit.TestCaseSource("TakesDamage", "DamageCases"),
//			testkit.TearDown("Despawn"),
//			testkit.StaticField("DamageCases", [][]any{{5, 95}, {100, 0}}),
//		)
//	}
//
// Tags name methods of the declared type; the harness resolves them with
// reflection when it registers tests.
package testkit

import (
	"fmt"
	"reflect"
)

// Kind identifies a recognized tag.
type Kind int

const (
	// KindTest marks a single-run test method.
	KindTest Kind = iota
	// KindTestCase attaches one inline row of arguments to a test method.
	KindTestCase
	// KindTestCaseSource points a test method at a static data source.
	KindTestCaseSource
	// KindSetUp marks a method run before every test of the type.
	KindSetUp
	// KindTearDown marks a method run after every test of the type.
	KindTearDown
	// KindPlaymodeTest marks a cooperative test. Such tests are counted as ignored.
	KindPlaymodeTest
	// KindGeneric describes a generic test method and its instantiations.
	KindGeneric
	// KindStatic declares a static member usable as a data source.
	KindStatic
	// KindConstructor overrides how the declared type is instantiated.
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindTest:
		return "Test"
	case KindTestCase:
		return "TestCase"
	case KindTestCaseSource:
		return "TestCaseSource"
	case KindSetUp:
		return "SetUp"
	case KindTearDown:
		return "TearDown"
	case KindPlaymodeTest:
		return "PlaymodeTest"
	case KindGeneric:
		return "Generic"
	case KindStatic:
		return "Static"
	case KindConstructor:
		return "Constructor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Tag is a single declaration attached to a type or one of its methods.
type Tag struct {
	Kind   Kind
	Method string

	Args    []any        // KindTestCase
	Source  *SourceRef   // KindTestCaseSource
	Generic *GenericSpec // KindGeneric
	Static  *Static      // KindStatic
	Ctor    any          // KindConstructor
}

// SourceRef references a static data source.
type SourceRef struct {
	// Type is the pointer type holding the member. Nil means the declaring type.
	Type   reflect.Type
	Member string
	// Params are passed to a static method source.
	Params []any
}

// Test marks method as a single-run test.
func Test(method string) Tag {
	return Tag{Kind: KindTest, Method: method}
}

// TestCase attaches one row of inline arguments to method.
func TestCase(method string, args ...any) Tag {
	return Tag{Kind: KindTestCase, Method: method, Args: args}
}

// TestCaseSource feeds method with the rows produced by a static member of the
// declaring type.
func TestCaseSource(method, member string, params ...any) Tag {
	return Tag{Kind: KindTestCaseSource, Method: method, Source: &SourceRef{Member: member, Params: params}}
}

// TestCaseSourceOn is like TestCaseSource but looks the member up on the type
// of proto.
func TestCaseSourceOn(method string, proto any, member string, params ...any) Tag {
	return Tag{Kind: KindTestCaseSource, Method: method, Source: &SourceRef{
		Type:   pointerType(reflect.TypeOf(proto)),
		Member: member,
		Params: params,
	}}
}

// SetUp marks method as a per-test setup step.
func SetUp(method string) Tag {
	return Tag{Kind: KindSetUp, Method: method}
}

// TearDown marks method as a per-test teardown step.
func TearDown(method string) Tag {
	return Tag{Kind: KindTearDown, Method: method}
}

// PlaymodeTest marks method as a cooperative test. The harness never runs
// these; it reports them as ignored.
func PlaymodeTest(method string) Tag {
	return Tag{Kind: KindPlaymodeTest, Method: method}
}

// Constructor overrides instantiation of the declared type. fn must have the
// signature func() *T or func() (*T, error).
func Constructor(fn any) Tag {
	return Tag{Kind: KindConstructor, Ctor: fn}
}

// IsTest reports whether the tag makes its method a runnable test.
func (t Tag) IsTest() bool {
	return t.Kind == KindTest || t.Kind == KindTestCase || t.Kind == KindTestCaseSource
}

func pointerType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		return t
	}
	return reflect.PointerTo(t)
}
